package analysis

import (
	"sort"

	"vertzc-go/packages/compiler/ast"
)

// JSXExpressionInfo maps one JSX interpolation or attribute expression to the
// reactive identifiers it depends on. A non-empty dependency list makes the
// expression reactive; downstream prop construction turns reactive attribute
// expressions into getters.
type JSXExpressionInfo struct {
	// Start and End cover the jsx_expression node, braces included.
	Start int
	End   int
	// Reactive is true when the expression references at least one signal or
	// computed.
	Reactive bool
	// Dependencies is the sorted, de-duplicated list of referenced reactive
	// names.
	Dependencies []string
}

// AnalyzeJSXExpressions classifies every JSX expression in the component body
// by intersecting its referenced identifiers with the component's signal and
// computed names.
func AnalyzeJSXExpressions(file *ast.SourceFile, comp *ComponentInfo, vars []*VariableInfo) []*JSXExpressionInfo {
	reactiveNames := make(map[string]bool)
	for _, v := range vars {
		if v.Kind == KindSignal || v.Kind == KindComputed {
			reactiveNames[v.Name] = true
		}
	}

	var infos []*JSXExpressionInfo
	for _, expr := range ast.FindAll(comp.Body, ast.KindJSXExpression) {
		deps := make([]string, 0, 2)
		for name := range ast.CollectIdentifiers(file, expr) {
			if reactiveNames[name] {
				deps = append(deps, name)
			}
		}
		sort.Strings(deps)
		infos = append(infos, &JSXExpressionInfo{
			Start:        int(expr.StartByte()),
			End:          int(expr.EndByte()),
			Reactive:     len(deps) > 0,
			Dependencies: deps,
		})
	}
	return infos
}
