// Package compiler wires the reactivity pipeline together: component
// detection, two-pass classification, mutation detection, JSX dependency
// analysis, and the source rewriters, all over one shared text buffer per
// file.
//
// Data flows strictly downstream and every component is processed
// independently; the only cross-invocation state is the read-only signal API
// registry and the optional transform result cache.
package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"vertzc-go/packages/compiler/analysis"
	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/config"
	"vertzc-go/packages/compiler/magicstring"
	"vertzc-go/packages/compiler/registry"
	"vertzc-go/packages/compiler/transform"
)

// ComponentResult reports what the pipeline found and rewrote in one
// component.
type ComponentResult struct {
	Name           string
	Variables      []*analysis.VariableInfo
	Mutations      []*analysis.MutationInfo
	JSXExpressions []*analysis.JSXExpressionInfo
	// Props holds the object literals built for child-component calls,
	// consumed by the surrounding build tool's JSX codegen.
	Props []*transform.PropObject
}

// Result is the outcome of transforming one source file.
type Result struct {
	// Code is the transformed source; identical to the input when nothing
	// in the file needed rewriting.
	Code string
	// Changed reports whether any rewrite was applied.
	Changed    bool
	Components []*ComponentResult
}

// Compiler transforms TSX component sources. Safe for sequential reuse; a
// Compiler carries no per-file state beyond its result cache.
type Compiler struct {
	reg           *registry.Registry
	runtimeImport string
	cache         *lru.Cache[string, *Result]
}

// New creates a compiler from the given configuration; nil means defaults.
func New(cfg *config.Config) (*Compiler, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Compiler{
		reg:           registry.WithExtra(cfg.RegistryExtras()),
		runtimeImport: cfg.RuntimeImport,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, *Result](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating transform cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// Transform analyzes and rewrites one source file. Analysis never fails;
// the only error sources are the parser itself and edit conflicts, which
// indicate a pipeline bug rather than bad input.
func (c *Compiler) Transform(ctx context.Context, fileName string, source []byte) (*Result, error) {
	key := cacheKey(source)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
	}

	file, err := ast.ParseSource(ctx, fileName, source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	aliases := analysis.ResolveImports(file, c.reg)
	analyzer := analysis.NewAnalyzer(file, c.reg, aliases)
	ms := magicstring.New(string(source))

	result := &Result{}
	var anySignal, anyComputed bool

	for _, comp := range analysis.FindComponents(file) {
		vars := analyzer.AnalyzeComponent(comp)
		// Mutation ranges must exist before the signal transformer runs so
		// it can exclude them.
		mutations := analysis.FindMutations(file, comp, vars)
		jsx := analysis.AnalyzeJSXExpressions(file, comp, vars)

		transform.NewSignalTransformer(file, ms, comp, vars, mutations).Transform()
		transform.NewComputedTransformer(file, ms, comp, vars, mutations).Transform()
		transform.NewMutationTransformer(file, ms, comp, vars, mutations).Transform()
		props := transform.NewPropTransformer(file, comp, vars, jsx).BuildPropObjects()

		for _, v := range vars {
			switch v.Kind {
			case analysis.KindSignal:
				anySignal = true
			case analysis.KindComputed:
				anyComputed = true
			}
		}

		result.Components = append(result.Components, &ComponentResult{
			Name:           comp.Name,
			Variables:      vars,
			Mutations:      mutations,
			JSXExpressions: jsx,
			Props:          props,
		})
	}

	if line := c.importLine(string(source), anySignal, anyComputed); line != "" {
		ms.AppendLeft(0, line)
	}

	result.Changed = ms.HasEdits()
	result.Code, err = ms.String()
	if err != nil {
		return nil, fmt.Errorf("applying rewrites to %s: %w", fileName, err)
	}

	if c.cache != nil {
		c.cache.Add(key, result)
	}
	return result, nil
}

// importLine injects the reactive-runtime import when any constructor was
// emitted and the file does not import the runtime already.
func (c *Compiler) importLine(source string, anySignal, anyComputed bool) string {
	if !anySignal && !anyComputed {
		return ""
	}
	if strings.Contains(source, `"`+c.runtimeImport+`"`) || strings.Contains(source, `'`+c.runtimeImport+`'`) {
		return ""
	}
	names := make([]string, 0, 2)
	if anySignal {
		names = append(names, "signal")
	}
	if anyComputed {
		names = append(names, "computed")
	}
	return "import { " + strings.Join(names, ", ") + ` } from "` + c.runtimeImport + `";` + "\n"
}

func cacheKey(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
