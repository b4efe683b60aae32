package transform

import (
	"strings"

	"vertzc-go/packages/compiler/analysis"
	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/magicstring"
)

// ComputedTransformer wraps computed const initializers in lazy-recompute
// containers, appends the unwrap accessor to computed reads, and expands
// destructuring statements that produced computed bindings into one explicit
// declaration per binding.
type ComputedTransformer struct {
	file      *ast.SourceFile
	ms        *magicstring.MagicString
	comp      *analysis.ComponentInfo
	vars      []*analysis.VariableInfo
	mutations []*analysis.MutationInfo
}

// NewComputedTransformer creates the transformer for one component.
func NewComputedTransformer(file *ast.SourceFile, ms *magicstring.MagicString, comp *analysis.ComponentInfo, vars []*analysis.VariableInfo, mutations []*analysis.MutationInfo) *ComputedTransformer {
	return &ComputedTransformer{file: file, ms: ms, comp: comp, vars: vars, mutations: mutations}
}

// Transform rewrites reads first, then wraps declarations, so an unwrap
// accessor appended at the tail of an initializer lands inside the wrapping
// call's closing parenthesis.
func (t *ComputedTransformer) Transform() {
	expansions := expansionSpans(t.vars)
	excluded := append(mutationSpans(t.mutations), expansions...)

	rr := &readRewriter{
		file:  t.file,
		ms:    t.ms,
		vars:  variablesByName(t.vars),
		kinds: map[analysis.VariableKind]bool{analysis.KindComputed: true},
		skip:  skipSpans(excluded),
	}
	rr.rewrite(t.comp.Body)

	expanded := make(map[span]bool)
	for _, s := range expansions {
		expanded[s] = true
	}
	for _, v := range t.vars {
		if v.Kind != analysis.KindComputed || v.AccessedProperty != "" || v.Synthetic {
			continue
		}
		if expanded[span{v.Start, v.End}] {
			continue
		}
		t.ms.AppendLeft(v.InitStart, computedConstructor+"(() => ")
		t.ms.AppendRight(v.InitEnd, ")")
	}

	for _, g := range destructuredGroups(t.vars) {
		// let statements belong to the signal transformer.
		if g.needsExpansion() && g.keyword() == "const" {
			t.expandGroup(g)
		}
	}
}

// expandGroup replaces one destructuring statement with explicit per-binding
// declarations. For a signal-API destructuring the synthetic holder is
// declared first and each binding reads its property off the holder; generic
// destructurings re-read their property off the parenthesized source
// expression. Reads inside the original initializer keep their rewrites: the
// replacement text is built from an initializer slice transformed on its own
// buffer.
func (t *ComputedTransformer) expandGroup(g *destructuredGroup) {
	initStart, initEnd := g.sharedInit()
	initText := transformedSlice(t.file, t.comp.Body, t.vars, initStart, initEnd)
	indent := indentationAt(t.file, g.start)

	var decls []string
	source := "(" + initText + ")"
	if g.holder != nil {
		source = g.holder.Name
		decls = append(decls, "const "+g.holder.Name+" = "+initText+";")
	}

	for _, b := range g.bindings {
		if b.AccessedProperty == "" {
			// Simple declarator sharing the statement; re-emit it with its
			// own initializer.
			decls = append(decls, t.simpleDecl(b))
			continue
		}
		read := source + "." + b.AccessedProperty
		if g.holder != nil && g.holder.SignalAPI != nil && g.holder.SignalAPI.SignalProperties[b.AccessedProperty] {
			// The property itself is a signal; the computed tracks its
			// value, not the container.
			read += valueAccessor
		}
		if b.Kind == analysis.KindComputed {
			decls = append(decls, "const "+b.Name+" = "+computedConstructor+"(() => "+read+");")
		} else {
			decls = append(decls, "const "+b.Name+" = "+read+";")
		}
	}

	overwriteStatement(t.ms, t.file, g.start, g.end, strings.Join(decls, "\n"+indent))
}

func (t *ComputedTransformer) simpleDecl(b *analysis.VariableInfo) string {
	if !b.HasInitializer {
		return b.DeclKeyword + " " + b.Name + ";"
	}
	init := transformedSlice(t.file, t.comp.Body, t.vars, b.InitStart, b.InitEnd)
	if b.Kind == analysis.KindComputed {
		return "const " + b.Name + " = " + computedConstructor + "(() => " + init + ");"
	}
	return b.DeclKeyword + " " + b.Name + " = " + init + ";"
}

// indentationAt returns the whitespace prefix of the line containing offset.
func indentationAt(file *ast.SourceFile, offset int) string {
	lineStart := offset
	for lineStart > 0 && file.Content[lineStart-1] != '\n' {
		lineStart--
	}
	i := lineStart
	for i < offset && (file.Content[i] == ' ' || file.Content[i] == '\t') {
		i++
	}
	return string(file.Content[lineStart:i])
}
