package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"vertzc-go/packages/compiler/analysis"
	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/magicstring"
)

// PropObject is the textual object literal built for one child-component
// invocation's attribute list.
type PropObject struct {
	// Element is the child component's tag name.
	Element string
	// Start and End cover the JSX element the object was built for.
	Start int
	End   int
	// Object is the literal text, reactive attributes rendered as getters.
	Object string
}

// PropTransformer builds reactive/static prop objects for child-component
// calls. A reactive attribute expression becomes a getter property, so a
// child reading `props.key` transparently re-evaluates on each access;
// static attributes stay plain key/value pairs.
type PropTransformer struct {
	file *ast.SourceFile
	comp *analysis.ComponentInfo
	vars []*analysis.VariableInfo
	jsx  []*analysis.JSXExpressionInfo

	reactive map[span]bool
}

// NewPropTransformer creates the transformer for one component. The JSX
// analyzer's expression classification decides getter vs plain value.
func NewPropTransformer(file *ast.SourceFile, comp *analysis.ComponentInfo, vars []*analysis.VariableInfo, jsx []*analysis.JSXExpressionInfo) *PropTransformer {
	reactive := make(map[span]bool, len(jsx))
	for _, info := range jsx {
		reactive[span{info.Start, info.End}] = info.Reactive
	}
	return &PropTransformer{file: file, comp: comp, vars: vars, jsx: jsx, reactive: reactive}
}

// BuildPropObjects returns one prop object per child-component element in
// the component body, in document order.
func (t *PropTransformer) BuildPropObjects() []*PropObject {
	var objects []*PropObject
	ast.Walk(t.comp.Body, func(n *sitter.Node) bool {
		var opening *sitter.Node
		switch n.Type() {
		case ast.KindJSXElement:
			opening = n.NamedChild(0)
		case ast.KindJSXSelfClosingElement:
			opening = n
		default:
			return true
		}
		if opening == nil {
			return true
		}
		name := opening.ChildByFieldName("name")
		if name == nil || !isComponentName(t.file.Text(name)) {
			return true
		}
		objects = append(objects, &PropObject{
			Element: t.file.Text(name),
			Start:   int(n.StartByte()),
			End:     int(n.EndByte()),
			Object:  t.buildObject(opening),
		})
		return true
	})
	return objects
}

// buildObject renders the attribute list of one opening element as an object
// literal.
func (t *PropTransformer) buildObject(opening *sitter.Node) string {
	var fields []string
	for i := 0; i < int(opening.NamedChildCount()); i++ {
		child := opening.NamedChild(i)
		switch child.Type() {
		case ast.KindJSXAttribute:
			if f := t.attributeField(child); f != "" {
				fields = append(fields, f)
			}
		case ast.KindJSXExpression:
			// Spread attribute: {...rest}.
			if child.NamedChildCount() == 1 && child.NamedChild(0).Type() == ast.KindSpreadElement {
				fields = append(fields, t.transformedExpr(child.NamedChild(0)))
			}
		}
	}
	if len(fields) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}

func (t *PropTransformer) attributeField(attr *sitter.Node) string {
	if attr.NamedChildCount() == 0 {
		return ""
	}
	key := propKey(t.file.Text(attr.NamedChild(0)))
	if attr.NamedChildCount() == 1 {
		// Boolean shorthand: <Child disabled />.
		return key + ": true"
	}
	value := attr.NamedChild(1)
	switch value.Type() {
	case ast.KindString:
		return key + ": " + t.file.Text(value)
	case ast.KindJSXExpression:
		if value.NamedChildCount() == 0 {
			return ""
		}
		expr := value.NamedChild(0)
		text := t.transformedExpr(expr)
		if t.reactive[span{int(value.StartByte()), int(value.EndByte())}] {
			return "get " + key + "() { return " + text + "; }"
		}
		return key + ": " + text
	default:
		return key + ": " + t.file.Text(value)
	}
}

// transformedExpr returns the expression text with reactive reads already
// unwrapped, ready to embed in the prop object.
func (t *PropTransformer) transformedExpr(expr *sitter.Node) string {
	start, end := int(expr.StartByte()), int(expr.EndByte())
	sub := magicstring.New(t.file.Slice(start, end))
	rr := &readRewriter{
		file: t.file,
		ms:   sub,
		vars: variablesByName(t.vars),
		kinds: map[analysis.VariableKind]bool{
			analysis.KindSignal:   true,
			analysis.KindComputed: true,
		},
		includeObjects: true,
		baseOffset:     start,
	}
	rr.rewrite(expr)
	out, err := sub.String()
	if err != nil {
		return t.file.Slice(start, end)
	}
	return out
}

// isComponentName reports whether a JSX tag refers to a component rather
// than an intrinsic element.
func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// propKey quotes attribute names that are not plain identifiers, e.g.
// data-testid.
func propKey(name string) string {
	for i, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return `"` + name + `"`
	}
	return name
}
