package transform_test

import (
	"context"
	"strings"
	"testing"

	"vertzc-go/packages/compiler/analysis"
	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/magicstring"
	"vertzc-go/packages/compiler/registry"
	"vertzc-go/packages/compiler/transform"
)

// rewrite runs the full transform stage over every component of source and
// returns the rewritten text, without the compiler's import injection.
func rewrite(t *testing.T, source string) string {
	t.Helper()
	out, _ := rewriteWithProps(t, source)
	return out
}

func rewriteWithProps(t *testing.T, source string) (string, []*transform.PropObject) {
	t.Helper()
	file, err := ast.ParseSource(context.Background(), "test.tsx", []byte(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	t.Cleanup(file.Close)

	reg := registry.Default()
	aliases := analysis.ResolveImports(file, reg)
	analyzer := analysis.NewAnalyzer(file, reg, aliases)
	ms := magicstring.New(source)

	var props []*transform.PropObject
	for _, comp := range analysis.FindComponents(file) {
		vars := analyzer.AnalyzeComponent(comp)
		mutations := analysis.FindMutations(file, comp, vars)
		jsx := analysis.AnalyzeJSXExpressions(file, comp, vars)

		transform.NewSignalTransformer(file, ms, comp, vars, mutations).Transform()
		transform.NewComputedTransformer(file, ms, comp, vars, mutations).Transform()
		transform.NewMutationTransformer(file, ms, comp, vars, mutations).Transform()
		props = append(props, transform.NewPropTransformer(file, comp, vars, jsx).BuildPropObjects()...)
	}

	out, err := ms.String()
	if err != nil {
		t.Fatalf("applying edits failed: %v", err)
	}
	return out, props
}

func expectContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func expectNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("expected output not to contain %q, got:\n%s", needle, haystack)
	}
}
