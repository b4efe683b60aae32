package analysis

import (
	sitter "github.com/smacker/go-tree-sitter"

	"vertzc-go/packages/compiler/ast"
)

// ComponentInfo describes one JSX-returning function found in a file.
type ComponentInfo struct {
	// Name is the declared identifier, or "anonymous" for unnamed default
	// exports.
	Name string
	// PropsParam is the name of a single non-destructured parameter, if any.
	PropsParam string
	// HasDestructuredProps is set when the single parameter is an object
	// pattern.
	HasDestructuredProps bool
	// BodyStart and BodyEnd delimit the statement container to analyze: the
	// function block, or the expression of an expression-bodied arrow.
	BodyStart int
	BodyEnd   int

	// Body is the underlying body node (statement_block or expression).
	Body *sitter.Node
}

// FindComponents scans the top-level statements of a file for functions whose
// body contains JSX anywhere in its subtree: function declarations, arrow
// functions or function expressions assigned to a const, and default-exported
// functions. Detection is purely structural; absence of JSX yields an empty
// result, never an error.
func FindComponents(file *ast.SourceFile) []*ComponentInfo {
	var components []*ComponentInfo

	root := file.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() == ast.KindExportStatement {
			for j := 0; j < int(stmt.NamedChildCount()); j++ {
				components = append(components, componentsFromStatement(file, stmt.NamedChild(j))...)
			}
			continue
		}
		components = append(components, componentsFromStatement(file, stmt)...)
	}
	return components
}

func componentsFromStatement(file *ast.SourceFile, stmt *sitter.Node) []*ComponentInfo {
	switch stmt.Type() {
	case ast.KindFunctionDeclaration:
		name := "anonymous"
		if n := stmt.ChildByFieldName("name"); n != nil {
			name = file.Text(n)
		}
		if c := describeComponent(file, name, stmt); c != nil {
			return []*ComponentInfo{c}
		}

	case ast.KindLexicalDeclaration:
		// A statement can declare several components.
		var out []*ComponentInfo
		for i := 0; i < int(stmt.NamedChildCount()); i++ {
			declarator := stmt.NamedChild(i)
			if declarator.Type() != ast.KindVariableDeclarator {
				continue
			}
			name := declarator.ChildByFieldName("name")
			value := declarator.ChildByFieldName("value")
			if name == nil || value == nil || name.Type() != ast.KindIdentifier {
				continue
			}
			if !ast.IsFunctionLike(value) {
				continue
			}
			if c := describeComponent(file, file.Text(name), value); c != nil {
				out = append(out, c)
			}
		}
		return out

	case ast.KindArrowFunction, ast.KindFunction, ast.KindFunctionExpression:
		// Bare default-exported function expression.
		if c := describeComponent(file, "anonymous", stmt); c != nil {
			return []*ComponentInfo{c}
		}
	}
	return nil
}

func describeComponent(file *ast.SourceFile, name string, fn *sitter.Node) *ComponentInfo {
	if !ast.IsFunctionLike(fn) {
		return nil
	}
	body := fn.ChildByFieldName("body")
	if body == nil || !ast.ContainsJSX(body) {
		return nil
	}

	comp := &ComponentInfo{
		Name:      name,
		BodyStart: int(body.StartByte()),
		BodyEnd:   int(body.EndByte()),
		Body:      body,
	}
	recordPropsParam(file, fn, comp)
	return comp
}

// recordPropsParam records a single-parameter name or the destructured-props
// flag. Multi-parameter functions carry no props info.
func recordPropsParam(file *ast.SourceFile, fn *sitter.Node, comp *ComponentInfo) {
	if single := fn.ChildByFieldName("parameter"); single != nil {
		// Unparenthesized arrow parameter.
		if single.Type() == ast.KindIdentifier {
			comp.PropsParam = file.Text(single)
		}
		return
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil || params.NamedChildCount() != 1 {
		return
	}
	param := params.NamedChild(0)
	// The TSX grammar wraps each parameter when type annotations are in play.
	if param.Type() == ast.KindRequiredParameter || param.Type() == ast.KindOptionalParameter {
		if inner := param.ChildByFieldName("pattern"); inner != nil {
			param = inner
		}
	}
	switch param.Type() {
	case ast.KindIdentifier:
		comp.PropsParam = file.Text(param)
	case ast.KindObjectPattern:
		comp.HasDestructuredProps = true
	}
}
