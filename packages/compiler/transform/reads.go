// Package transform contains the source rewriters that turn the analyzer's
// classification into explicit reactive-primitive code. All rewriters share
// one magic string per file; edits are addressed against original offsets,
// so pass order never invalidates positions.
package transform

import (
	sitter "github.com/smacker/go-tree-sitter"

	"vertzc-go/packages/compiler/analysis"
	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/magicstring"
)

// Names of the reactive runtime accessors emitted by the rewriters.
const (
	valueAccessor = ".value"
	peekAccessor  = ".peek()"
	notifyMethod  = "notify"

	signalConstructor   = "signal"
	computedConstructor = "computed"
)

// readRewriter appends `.value` to reactive reads within a subtree: plain
// identifier reads of the requested kinds, signal-object property reads
// whitelisted by the API config, and reactive-source property reads.
//
// Excluded positions, which must never gain an unwrap suffix:
//   - a declaration's own name (the name field of any variable declarator)
//   - the right-hand name of a property access (a different node kind)
//   - object-literal property keys and shorthand properties
//   - binding-pattern elements
//   - function parameter names
//   - anything the caller's skip callback rejects (mutation ranges,
//     statements queued for wholesale replacement)
type readRewriter struct {
	file *ast.SourceFile
	ms   *magicstring.MagicString
	vars map[string]*analysis.VariableInfo

	kinds          map[analysis.VariableKind]bool
	includeObjects bool
	// baseOffset is subtracted from every edit position; non-zero when the
	// magic string covers a slice of the file rather than the whole file.
	baseOffset int
	skip       func(n *sitter.Node) bool
}

func (r *readRewriter) rewrite(root *sitter.Node) {
	ast.Walk(root, func(n *sitter.Node) bool {
		if r.skip != nil && r.skip(n) {
			return false
		}
		switch n.Type() {
		case ast.KindIdentifier:
			r.rewriteIdentifier(n)
		case ast.KindMemberExpression:
			if r.includeObjects {
				r.rewriteObjectAccess(n)
			}
		}
		return true
	})
}

func (r *readRewriter) rewriteIdentifier(n *sitter.Node) {
	v, ok := r.vars[r.file.Text(n)]
	if !ok || !r.kinds[v.Kind] {
		return
	}
	if isDeclarationName(n) || isParameterName(n) || isBindingPatternName(n) {
		return
	}
	r.ms.AppendLeft(int(n.EndByte())-r.baseOffset, valueAccessor)
}

// rewriteObjectAccess handles `obj.prop` (and the first property of longer
// chains) for signal-object and reactive-source variables. For
// signal-objects only whitelisted properties unwrap; everything else,
// method calls included, is left untouched. Field-signal properties unwrap
// one level deeper: `form.fields.email` reads the per-field signal.
func (r *readRewriter) rewriteObjectAccess(member *sitter.Node) {
	obj := member.ChildByFieldName("object")
	prop := member.ChildByFieldName("property")
	if obj == nil || prop == nil || obj.Type() != ast.KindIdentifier {
		return
	}
	v, ok := r.vars[r.file.Text(obj)]
	if !ok {
		return
	}
	propName := r.file.Text(prop)

	switch {
	case v.Kind == analysis.KindSignalObject && v.SignalAPI != nil:
		cfg := v.SignalAPI
		if cfg.SignalProperties[propName] {
			r.ms.AppendLeft(int(prop.EndByte())-r.baseOffset, valueAccessor)
			return
		}
		if cfg.FieldSignalProperties[propName] {
			// Unwrap the field access, not the container.
			parent := member.Parent()
			if parent == nil || parent.Type() != ast.KindMemberExpression {
				return
			}
			if inner := parent.ChildByFieldName("object"); inner == nil || !inner.Equal(member) {
				return
			}
			field := parent.ChildByFieldName("property")
			if field != nil {
				r.ms.AppendLeft(int(field.EndByte())-r.baseOffset, valueAccessor)
			}
		}

	case v.IsReactiveSource:
		// Every property read on a reactive source is reactive, but a
		// method call stays a method call.
		if isCallCallee(member) {
			return
		}
		r.ms.AppendLeft(int(prop.EndByte())-r.baseOffset, valueAccessor)
	}
}

func isDeclarationName(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Type() != ast.KindVariableDeclarator {
		return false
	}
	name := parent.ChildByFieldName("name")
	return name != nil && name.Equal(n)
}

func isParameterName(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case ast.KindFormalParameters, ast.KindRequiredParameter, ast.KindOptionalParameter:
		return true
	case ast.KindArrowFunction:
		// Unparenthesized single arrow parameter.
		param := parent.ChildByFieldName("parameter")
		return param != nil && param.Equal(n)
	}
	return false
}

// isBindingPatternName reports whether n is an identifier bound by a
// destructuring pattern: a rename target, an array element, a rest binding,
// or the left side of a pattern default. All of them declare a name and must
// never gain an unwrap suffix.
func isBindingPatternName(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case ast.KindPairPattern, ast.KindObjectPattern, ast.KindArrayPattern, ast.KindRestPattern:
		return true
	case ast.KindAssignmentPattern:
		left := parent.ChildByFieldName("left")
		return left != nil && left.Equal(n)
	}
	return false
}

func isCallCallee(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Type() != ast.KindCallExpression {
		return false
	}
	fn := parent.ChildByFieldName("function")
	return fn != nil && fn.Equal(n)
}

// variablesByName indexes a component's variables for the rewriters.
func variablesByName(vars []*analysis.VariableInfo) map[string]*analysis.VariableInfo {
	byName := make(map[string]*analysis.VariableInfo, len(vars))
	for _, v := range vars {
		if v.Synthetic {
			continue
		}
		byName[v.Name] = v
	}
	return byName
}

// span is a half-open byte range.
type span struct {
	start, end int
}

func (s span) contains(n *sitter.Node) bool {
	return int(n.StartByte()) >= s.start && int(n.EndByte()) <= s.end
}

// skipSpans builds a skip callback rejecting any node inside the given
// ranges.
func skipSpans(spans []span) func(n *sitter.Node) bool {
	if len(spans) == 0 {
		return nil
	}
	return func(n *sitter.Node) bool {
		for _, s := range spans {
			if s.contains(n) {
				return true
			}
		}
		return false
	}
}

// mutationSpans converts mutation ranges into skip spans; reads inside them
// are handled exclusively by the mutation transformer.
func mutationSpans(mutations []*analysis.MutationInfo) []span {
	spans := make([]span, 0, len(mutations))
	for _, m := range mutations {
		spans = append(spans, span{m.Start, m.End})
	}
	return spans
}

// expansionSpans returns the declaration statements that the computed
// transformer replaces wholesale (destructuring expansion); no other pass
// may edit inside them.
func expansionSpans(vars []*analysis.VariableInfo) []span {
	var spans []span
	seen := make(map[span]bool)
	for _, g := range destructuredGroups(vars) {
		if !g.needsExpansion() {
			continue
		}
		s := span{g.start, g.end}
		if !seen[s] {
			seen[s] = true
			spans = append(spans, s)
		}
	}
	return spans
}

// destructuredGroup is one object-destructuring statement slated for
// expansion into per-binding declarations.
type destructuredGroup struct {
	start, end int
	// holder is the synthetic signal-object variable, nil for generic
	// destructuring.
	holder   *analysis.VariableInfo
	bindings []*analysis.VariableInfo
}

func (g *destructuredGroup) needsExpansion() bool {
	for _, b := range g.bindings {
		if b.Kind == analysis.KindComputed || b.Kind == analysis.KindSignal {
			return true
		}
	}
	return false
}

// keyword is the declaration keyword of the statement the group came from.
func (g *destructuredGroup) keyword() string {
	if len(g.bindings) == 0 {
		return ""
	}
	return g.bindings[0].DeclKeyword
}

// sharedInit returns the offsets of the destructuring initializer: the
// holder's, or the first destructured binding's.
func (g *destructuredGroup) sharedInit() (int, int) {
	if g.holder != nil {
		return g.holder.InitStart, g.holder.InitEnd
	}
	for _, b := range g.bindings {
		if b.AccessedProperty != "" {
			return b.InitStart, b.InitEnd
		}
	}
	return 0, 0
}

// destructuredGroups gathers destructuring statements in declaration order:
// synthetic-holder groups plus generic object destructurings. Simple
// declarators sharing a statement with a pattern are carried as bindings of
// the same group, so a statement replacement re-emits them too.
func destructuredGroups(vars []*analysis.VariableInfo) []*destructuredGroup {
	var groups []*destructuredGroup
	byHolder := make(map[string]*destructuredGroup)
	byRange := make(map[span]*destructuredGroup)

	for _, v := range vars {
		if v.Synthetic {
			g := &destructuredGroup{start: v.Start, end: v.End, holder: v}
			byHolder[v.Name] = g
			groups = append(groups, g)
			continue
		}
		if v.DestructuredFrom == "" && v.AccessedProperty != "" {
			s := span{v.Start, v.End}
			if _, ok := byRange[s]; !ok {
				g := &destructuredGroup{start: v.Start, end: v.End}
				byRange[s] = g
				groups = append(groups, g)
			}
		}
	}
	for _, v := range vars {
		switch {
		case v.Synthetic:
		case v.DestructuredFrom != "":
			if g, ok := byHolder[v.DestructuredFrom]; ok {
				g.bindings = append(g.bindings, v)
			}
		default:
			if g, ok := byRange[span{v.Start, v.End}]; ok {
				g.bindings = append(g.bindings, v)
			}
		}
	}
	return groups
}

// transformedSlice returns the source range with reactive reads already
// rewritten, for embedding in replacement text.
func transformedSlice(file *ast.SourceFile, body *sitter.Node, vars []*analysis.VariableInfo, start, end int) string {
	sub := magicstring.New(file.Slice(start, end))
	node := ast.NamedNodeCovering(body, start, end)
	if node == nil {
		return sub.Original()
	}
	rr := &readRewriter{
		file: file,
		ms:   sub,
		vars: variablesByName(vars),
		kinds: map[analysis.VariableKind]bool{
			analysis.KindSignal:   true,
			analysis.KindComputed: true,
		},
		includeObjects: true,
		baseOffset:     start,
	}
	rr.rewrite(node)
	out, err := sub.String()
	if err != nil {
		return file.Slice(start, end)
	}
	return out
}

// overwriteStatement replaces a whole statement. The statement node normally
// includes its own semicolon; when it does not (ASI), a directly trailing one
// is swallowed so the replacement carries exactly one per declaration.
func overwriteStatement(ms *magicstring.MagicString, file *ast.SourceFile, start, end int, text string) {
	if file.Content[end-1] != ';' && end < len(file.Content) && file.Content[end] == ';' {
		end++
	}
	ms.Overwrite(start, end, text)
}
