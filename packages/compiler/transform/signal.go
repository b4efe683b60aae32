package transform

import (
	"fmt"
	"strings"

	"vertzc-go/packages/compiler/analysis"
	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/magicstring"
)

// SignalTransformer rewrites signal declarations into reactive containers and
// appends the unwrap accessor to every signal read outside mutation ranges.
// Signal-object and reactive-source property reads are unwrapped here too.
type SignalTransformer struct {
	file      *ast.SourceFile
	ms        *magicstring.MagicString
	comp      *analysis.ComponentInfo
	vars      []*analysis.VariableInfo
	mutations []*analysis.MutationInfo

	used map[string]bool
}

// NewSignalTransformer creates the transformer for one component. Mutation
// ranges must already be computed: reads inside them belong to the mutation
// transformer.
func NewSignalTransformer(file *ast.SourceFile, ms *magicstring.MagicString, comp *analysis.ComponentInfo, vars []*analysis.VariableInfo, mutations []*analysis.MutationInfo) *SignalTransformer {
	return &SignalTransformer{file: file, ms: ms, comp: comp, vars: vars, mutations: mutations}
}

// Transform applies declaration and read rewrites for every signal-classified
// variable in the component. Destructuring statements that produced signal
// bindings are replaced wholesale with per-binding declarations.
func (t *SignalTransformer) Transform() {
	expansions := expansionSpans(t.vars)
	excluded := append(mutationSpans(t.mutations), expansions...)
	expanded := make(map[span]bool, len(expansions))
	for _, s := range expansions {
		expanded[s] = true
	}

	t.rewriteDeclarations(expanded)
	for _, g := range destructuredGroups(t.vars) {
		if g.needsExpansion() && g.keyword() == "let" {
			t.expandLetGroup(g)
		}
	}

	rr := &readRewriter{
		file:           t.file,
		ms:             t.ms,
		vars:           variablesByName(t.vars),
		kinds:          map[analysis.VariableKind]bool{analysis.KindSignal: true},
		includeObjects: true,
		skip:           skipSpans(excluded),
	}
	rr.rewrite(t.comp.Body)
}

// rewriteDeclarations turns `let x = e` into `const x = signal(e)`. The
// keyword flips to const only when every binding in the statement became a
// signal; a mixed statement keeps `let` so static siblings stay assignable.
// Statements slated for expansion are replaced wholesale and skipped here.
func (t *SignalTransformer) rewriteDeclarations(expanded map[span]bool) {
	keywordAll := make(map[span]bool)
	for _, v := range t.vars {
		if v.DeclKeyword != "let" || expanded[span{v.Start, v.End}] {
			continue
		}
		s := span{v.KeywordStart, v.KeywordEnd}
		if _, ok := keywordAll[s]; !ok {
			keywordAll[s] = true
		}
		if v.Kind != analysis.KindSignal {
			keywordAll[s] = false
		}
	}

	rewritten := make(map[span]bool)
	for _, v := range t.vars {
		if v.Kind != analysis.KindSignal || expanded[span{v.Start, v.End}] {
			continue
		}
		s := span{v.KeywordStart, v.KeywordEnd}
		if keywordAll[s] && !rewritten[s] {
			rewritten[s] = true
			t.ms.Overwrite(v.KeywordStart, v.KeywordEnd, "const")
		}
		if v.HasInitializer {
			t.ms.AppendLeft(v.InitStart, signalConstructor+"(")
			t.ms.AppendRight(v.InitEnd, ")")
		} else {
			t.ms.Overwrite(v.DeclaratorStart, v.DeclaratorEnd, v.Name+" = "+signalConstructor+"(undefined)")
		}
	}
}

// expandLetGroup replaces a let destructuring statement with per-binding
// declarations. The shared initializer is evaluated once into a temporary
// holder, signal bindings wrap their destructured value, and static bindings
// keep the let keyword so they stay assignable.
func (t *SignalTransformer) expandLetGroup(g *destructuredGroup) {
	initStart, initEnd := g.sharedInit()
	initText := transformedSlice(t.file, t.comp.Body, t.vars, initStart, initEnd)
	indent := indentationAt(t.file, g.start)

	holder := t.tempName()
	decls := []string{"const " + holder + " = " + initText + ";"}
	for _, b := range g.bindings {
		switch {
		case b.AccessedProperty == "":
			decls = append(decls, t.simpleDecl(b))
		case b.Kind == analysis.KindSignal:
			decls = append(decls, "const "+b.Name+" = "+signalConstructor+"("+holder+"."+b.AccessedProperty+");")
		default:
			decls = append(decls, "let "+b.Name+" = "+holder+"."+b.AccessedProperty+";")
		}
	}

	overwriteStatement(t.ms, t.file, g.start, g.end, strings.Join(decls, "\n"+indent))
}

func (t *SignalTransformer) simpleDecl(b *analysis.VariableInfo) string {
	if !b.HasInitializer {
		if b.Kind == analysis.KindSignal {
			return "const " + b.Name + " = " + signalConstructor + "(undefined);"
		}
		return b.DeclKeyword + " " + b.Name + ";"
	}
	init := transformedSlice(t.file, t.comp.Body, t.vars, b.InitStart, b.InitEnd)
	if b.Kind == analysis.KindSignal {
		return "const " + b.Name + " = " + signalConstructor + "(" + init + ");"
	}
	return b.DeclKeyword + " " + b.Name + " = " + init + ";"
}

// tempName picks a holder name colliding with no identifier in the component
// body, nor with a holder picked earlier for this component.
func (t *SignalTransformer) tempName() string {
	if t.used == nil {
		t.used = ast.CollectIdentifiers(t.file, t.comp.Body)
	}
	for n := 0; ; n++ {
		candidate := fmt.Sprintf("__destructured_%d", n)
		if !t.used[candidate] {
			t.used[candidate] = true
			return candidate
		}
	}
}
