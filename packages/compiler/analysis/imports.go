package analysis

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/registry"
)

// ImportAliases maps the local names a source file binds to vertz signal
// APIs. Built once per file before any component is analyzed; handles
// `import { query as q }` renames and `import * as vertz` namespace access.
type ImportAliases struct {
	// locals maps a local binding name to the canonical API name.
	locals map[string]string
	// namespaces holds local names bound to the whole vertz package.
	namespaces map[string]bool
}

// ResolveImports scans the file's import declarations for the vertz UI
// package and records every local name bound to a known signal or
// reactive-source API.
func ResolveImports(file *ast.SourceFile, reg *registry.Registry) *ImportAliases {
	aliases := &ImportAliases{
		locals:     make(map[string]string),
		namespaces: make(map[string]bool),
	}

	root := file.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != ast.KindImportStatement {
			continue
		}
		source := stmt.ChildByFieldName("source")
		if source == nil || !isUIPackage(importPath(file, source)) {
			continue
		}
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			clause := stmt.NamedChild(j)
			if clause.Type() != ast.KindImportClause {
				continue
			}
			aliases.collectClause(file, reg, clause)
		}
	}
	return aliases
}

func (a *ImportAliases) collectClause(file *ast.SourceFile, reg *registry.Registry, clause *sitter.Node) {
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case ast.KindNamespaceImport:
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if id := child.NamedChild(j); id.Type() == ast.KindIdentifier {
					a.namespaces[file.Text(id)] = true
				}
			}
		case ast.KindNamedImports:
			for j := 0; j < int(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec.Type() != ast.KindImportSpecifier {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				canonical := file.Text(name)
				if !reg.KnownName(canonical) {
					continue
				}
				local := canonical
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = file.Text(alias)
				}
				a.locals[local] = canonical
			}
		}
	}
}

// ResolveCallee maps the callee of a call expression to a canonical API
// name: a direct (possibly aliased) identifier, or a namespace member call
// like `vertz.query(...)`. The second result is false for anything else.
func (a *ImportAliases) ResolveCallee(file *ast.SourceFile, reg *registry.Registry, callee *sitter.Node) (string, bool) {
	if callee == nil {
		return "", false
	}
	switch callee.Type() {
	case ast.KindIdentifier:
		if canonical, ok := a.locals[file.Text(callee)]; ok {
			return canonical, true
		}
	case ast.KindMemberExpression:
		obj := callee.ChildByFieldName("object")
		prop := callee.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Type() != ast.KindIdentifier {
			return "", false
		}
		if a.namespaces[file.Text(obj)] && reg.KnownName(file.Text(prop)) {
			return file.Text(prop), true
		}
	}
	return "", false
}

func importPath(file *ast.SourceFile, source *sitter.Node) string {
	text := file.Text(source)
	return strings.Trim(text, `"'`)
}

func isUIPackage(path string) bool {
	return path == registry.UIPackageName || strings.HasPrefix(path, registry.UIPackageName+"/")
}
