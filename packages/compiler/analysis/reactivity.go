package analysis

import (
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/registry"
)

// VariableKind classifies a component-body binding.
type VariableKind string

const (
	// KindSignal is a let binding whose value is rendered, directly or
	// transitively, and therefore becomes a reactive container.
	KindSignal VariableKind = "signal"
	// KindComputed is a const binding derived from at least one reactive
	// value.
	KindComputed VariableKind = "computed"
	// KindSignalObject is a const bound to the result of a signal-producing
	// factory such as query().
	KindSignalObject VariableKind = "signal-object"
	// KindStatic is everything else; static bindings are left untouched.
	KindStatic VariableKind = "static"
)

// VariableInfo describes one let/const binding declared directly in a
// component body. Destructured bindings get one entry each.
type VariableInfo struct {
	Name string
	Kind VariableKind

	// Start and End cover the whole declaration statement.
	Start int
	End   int

	// SignalAPI is set for signal-object variables.
	SignalAPI *registry.SignalAPIConfig
	// IsReactiveSource marks variables initialized from a reactive-source
	// API; every property read on them is implicitly reactive.
	IsReactiveSource bool
	// DestructuredFrom names the synthetic holder this binding reads from
	// when it was extracted by destructuring a signal-API call result.
	DestructuredFrom string
	// AccessedProperty is the property this destructured binding reads off
	// its holder.
	AccessedProperty string
	// Synthetic marks holder variables that have no textual declaration of
	// their own.
	Synthetic bool

	// Declaration geometry, used by the rewriters.
	DeclKeyword    string
	KeywordStart   int
	KeywordEnd     int
	NameStart      int
	NameEnd        int
	HasInitializer bool
	InitStart      int
	InitEnd        int
	DeclaratorStart int
	DeclaratorEnd   int

	// Deps is the sorted dependency set recorded in pass 1.
	Deps []string

	deps map[string]bool
}

// Analyzer runs the two-pass taint analysis that classifies component-body
// declarations. It is a one-shot batch algorithm per component; no state
// survives across components.
type Analyzer struct {
	file    *ast.SourceFile
	reg     *registry.Registry
	aliases *ImportAliases
}

// NewAnalyzer creates an analyzer for one parsed file.
func NewAnalyzer(file *ast.SourceFile, reg *registry.Registry, aliases *ImportAliases) *Analyzer {
	return &Analyzer{file: file, reg: reg, aliases: aliases}
}

// AnalyzeComponent classifies every let/const declared directly in the
// component body. It never fails: a component with no relevant declarations
// yields an empty list.
func (a *Analyzer) AnalyzeComponent(comp *ComponentInfo) []*VariableInfo {
	if comp.Body == nil || comp.Body.Type() != ast.KindStatementBlock {
		return nil
	}

	vars := a.collectDeclarations(comp)
	a.propagate(comp, vars)
	return vars
}

// collectDeclarations is pass 1: it walks only the direct child statements of
// the body and records a VariableInfo per binding.
func (a *Analyzer) collectDeclarations(comp *ComponentInfo) []*VariableInfo {
	declared := a.declaredNames(comp)
	var vars []*VariableInfo

	body := comp.Body
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() != ast.KindLexicalDeclaration {
			continue
		}
		keyword, kwStart, kwEnd := declarationKeyword(a.file, stmt)
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			declarator := stmt.NamedChild(j)
			if declarator.Type() != ast.KindVariableDeclarator {
				continue
			}
			name := declarator.ChildByFieldName("name")
			if name == nil {
				continue
			}
			value := declarator.ChildByFieldName("value")

			switch name.Type() {
			case ast.KindIdentifier:
				vars = append(vars, a.simpleBinding(stmt, declarator, name, value, keyword, kwStart, kwEnd))
			case ast.KindObjectPattern:
				vars = append(vars, a.destructuredBindings(stmt, name, value, keyword, kwStart, kwEnd, declared, vars)...)
			}
		}
	}
	return vars
}

func (a *Analyzer) simpleBinding(stmt, declarator, name, value *sitter.Node, keyword string, kwStart, kwEnd int) *VariableInfo {
	v := &VariableInfo{
		Name:            a.file.Text(name),
		Kind:            KindStatic,
		Start:           int(stmt.StartByte()),
		End:             int(stmt.EndByte()),
		DeclKeyword:     keyword,
		KeywordStart:    kwStart,
		KeywordEnd:      kwEnd,
		NameStart:       int(name.StartByte()),
		NameEnd:         int(name.EndByte()),
		DeclaratorStart: int(declarator.StartByte()),
		DeclaratorEnd:   int(declarator.EndByte()),
		deps:            make(map[string]bool),
	}
	if value != nil {
		v.HasInitializer = true
		v.InitStart = int(value.StartByte())
		v.InitEnd = int(value.EndByte())
		v.deps = ast.CollectIdentifiers(a.file, value)

		if apiName, ok := a.initializerAPI(value); ok {
			if keyword == "const" && a.reg.IsSignalAPI(apiName) {
				v.Kind = KindSignalObject
				v.SignalAPI = a.reg.Config(apiName)
			} else if a.reg.IsReactiveSourceAPI(apiName) {
				v.IsReactiveSource = true
			}
		}
	}
	v.Deps = sortedNames(v.deps)
	return v
}

// destructuredBindings handles `const { a, b } = expr`. When expr is a
// signal-API call and every binding is a supported shape, a synthetic holder
// variable carries the signal object and each binding depends on it through
// its accessed property. Anything else falls back to per-binding dependency
// on the whole initializer expression.
func (a *Analyzer) destructuredBindings(stmt, pattern, value *sitter.Node, keyword string, kwStart, kwEnd int, declared map[string]bool, prior []*VariableInfo) []*VariableInfo {
	base := VariableInfo{
		Start:        int(stmt.StartByte()),
		End:          int(stmt.EndByte()),
		DeclKeyword:  keyword,
		KeywordStart: kwStart,
		KeywordEnd:   kwEnd,
	}
	if value == nil {
		return nil
	}
	base.HasInitializer = true
	base.InitStart = int(value.StartByte())
	base.InitEnd = int(value.EndByte())

	if keyword == "const" {
		if apiName, ok := a.initializerAPI(value); ok && a.reg.IsSignalAPI(apiName) && supportedBindingsOnly(pattern) {
			return a.holderBindings(pattern, apiName, base, declared, prior)
		}
	}

	// Fallback: each binding depends on everything the initializer touches.
	deps := ast.CollectIdentifiers(a.file, value)
	var out []*VariableInfo
	for _, b := range patternBindings(a.file, pattern) {
		v := base
		v.Name = b.name
		v.Kind = KindStatic
		v.AccessedProperty = b.property
		v.NameStart = b.start
		v.NameEnd = b.end
		v.deps = deps
		v.Deps = sortedNames(deps)
		out = append(out, &v)
	}
	return out
}

// holderBindings synthesizes the hidden holder variable and one entry per
// destructured binding. A binding depends on the holder only when its
// accessed property is one of the API's signal properties; plain properties
// are passthrough and stay static.
func (a *Analyzer) holderBindings(pattern *sitter.Node, apiName string, base VariableInfo, declared map[string]bool, prior []*VariableInfo) []*VariableInfo {
	for _, v := range prior {
		declared[v.Name] = true
	}
	holderName := a.syntheticName(apiName, declared)

	holder := base
	holder.Name = holderName
	holder.Kind = KindSignalObject
	holder.SignalAPI = a.reg.Config(apiName)
	holder.Synthetic = true
	holder.deps = make(map[string]bool)

	out := []*VariableInfo{&holder}
	cfg := holder.SignalAPI
	for _, b := range patternBindings(a.file, pattern) {
		v := base
		v.Name = b.name
		v.Kind = KindStatic
		v.DestructuredFrom = holderName
		v.AccessedProperty = b.property
		v.NameStart = b.start
		v.NameEnd = b.end
		v.deps = make(map[string]bool)
		if cfg != nil && cfg.SignalProperties[b.property] {
			v.deps[holderName] = true
		}
		v.Deps = sortedNames(v.deps)
		out = append(out, &v)
	}
	return out
}

// syntheticName picks `__<apiName>_<n>`, retrying with an incremented suffix
// until it collides with no name declared in the component. Silently
// shadowing a real binding would corrupt the rewrite, so the retry is a hard
// invariant.
func (a *Analyzer) syntheticName(apiName string, declared map[string]bool) string {
	for n := 0; ; n++ {
		candidate := fmt.Sprintf("__%s_%d", apiName, n)
		if !declared[candidate] {
			declared[candidate] = true
			return candidate
		}
	}
}

// propagate is pass 2: two fixed-point closures, first JSX reachability over
// const dependencies, then computed promotion.
func (a *Analyzer) propagate(comp *ComponentInfo, vars []*VariableInfo) {
	byName := make(map[string]*VariableInfo, len(vars))
	for _, v := range vars {
		byName[v.Name] = v
	}

	// Seed: every identifier referenced inside a JSX expression.
	reachable := make(map[string]bool)
	for _, expr := range ast.FindAll(comp.Body, ast.KindJSXExpression) {
		for name := range ast.CollectIdentifiers(a.file, expr) {
			reachable[name] = true
		}
	}

	// Transitive closure over the const dependency graph, seeded from JSX
	// usage. A worklist of newly reached names makes termination obvious.
	worklist := sortedNames(reachable)
	for len(worklist) > 0 {
		name := worklist[0]
		worklist = worklist[1:]
		v, ok := byName[name]
		if !ok || v.DeclKeyword != "const" {
			continue
		}
		for dep := range v.deps {
			if !reachable[dep] {
				reachable[dep] = true
				worklist = append(worklist, dep)
			}
		}
	}

	// Signals: every let that ends up JSX-reachable. A let never rendered
	// stays static even when mutated.
	for _, v := range vars {
		if v.DeclKeyword == "let" && reachable[v.Name] {
			v.Kind = KindSignal
		}
	}

	// Computeds: fixed point over const candidates. A const is computed as
	// soon as one dependency is reactive.
	reactive := func(name string) bool {
		dep, ok := byName[name]
		if !ok {
			return false
		}
		return dep.Kind == KindSignal || dep.Kind == KindComputed ||
			dep.Kind == KindSignalObject || dep.IsReactiveSource
	}
	for changed := true; changed; {
		changed = false
		for _, v := range vars {
			if v.Kind != KindStatic || v.DeclKeyword != "const" || v.IsReactiveSource {
				continue
			}
			for dep := range v.deps {
				if reactive(dep) {
					v.Kind = KindComputed
					changed = true
					break
				}
			}
		}
	}
}

// declaredNames collects every name declared by the body's direct child
// statements, including destructured bindings; used for synthetic-name
// collision checks.
func (a *Analyzer) declaredNames(comp *ComponentInfo) map[string]bool {
	names := make(map[string]bool)
	body := comp.Body
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() != ast.KindLexicalDeclaration {
			continue
		}
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			declarator := stmt.NamedChild(j)
			if declarator.Type() != ast.KindVariableDeclarator {
				continue
			}
			name := declarator.ChildByFieldName("name")
			if name == nil {
				continue
			}
			switch name.Type() {
			case ast.KindIdentifier:
				names[a.file.Text(name)] = true
			case ast.KindObjectPattern:
				for _, b := range patternBindings(a.file, name) {
					names[b.name] = true
				}
			}
		}
	}
	return names
}

// initializerAPI resolves a call-expression initializer to a canonical API
// name through the import alias map.
func (a *Analyzer) initializerAPI(value *sitter.Node) (string, bool) {
	if value == nil || value.Type() != ast.KindCallExpression {
		return "", false
	}
	return a.aliases.ResolveCallee(a.file, a.reg, value.ChildByFieldName("function"))
}

type patternBinding struct {
	name     string
	property string
	start    int
	end      int
}

// patternBindings flattens an object pattern into (binding name, accessed
// property) pairs. Shorthand bindings access the property of the same name;
// rename pairs access the key.
func patternBindings(file *ast.SourceFile, pattern *sitter.Node) []patternBinding {
	var out []patternBinding
	for i := 0; i < int(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Type() {
		case ast.KindShorthandPropertyPattern:
			out = append(out, patternBinding{
				name:     file.Text(child),
				property: file.Text(child),
				start:    int(child.StartByte()),
				end:      int(child.EndByte()),
			})
		case ast.KindPairPattern:
			key := child.ChildByFieldName("key")
			value := child.ChildByFieldName("value")
			if key == nil || value == nil || value.Type() != ast.KindIdentifier {
				continue
			}
			out = append(out, patternBinding{
				name:     file.Text(value),
				property: file.Text(key),
				start:    int(value.StartByte()),
				end:      int(value.EndByte()),
			})
		}
	}
	return out
}

// supportedBindingsOnly rejects patterns containing defaults, nested
// patterns, or rest elements; those fall back to generic destructuring.
func supportedBindingsOnly(pattern *sitter.Node) bool {
	for i := 0; i < int(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Type() {
		case ast.KindShorthandPropertyPattern:
		case ast.KindPairPattern:
			value := child.ChildByFieldName("value")
			if value == nil || value.Type() != ast.KindIdentifier {
				return false
			}
		default:
			return false
		}
	}
	return pattern.NamedChildCount() > 0
}

func declarationKeyword(file *ast.SourceFile, stmt *sitter.Node) (string, int, int) {
	kw := stmt.Child(0)
	if kw == nil {
		return "", int(stmt.StartByte()), int(stmt.StartByte())
	}
	return file.Text(kw), int(kw.StartByte()), int(kw.EndByte())
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
