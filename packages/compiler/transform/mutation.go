package transform

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"vertzc-go/packages/compiler/analysis"
	"vertzc-go/packages/compiler/ast"
	"vertzc-go/packages/compiler/magicstring"
)

// MutationTransformer rewrites each detected mutation into a comma
// expression that dereferences the signal without tracking, performs the
// original mutation against the dereferenced value, then notifies:
//
//	items.push(x)        -> (items.peek().push(x), items.notify())
//	user.name = v        -> (user.peek().name = v, user.notify())
//	rows[0] = v          -> (rows.peek()[0] = v, rows.notify())
//	delete obj.k         -> (delete obj.peek().k, obj.notify())
//	Object.assign(s, p)  -> (Object.assign(s.peek(), p), s.notify())
//
// The peek call is anchored at the root identifier's AST offsets, so a name
// can never match a substring of a longer identifier. Reads inside the
// mutation range are rewritten here and nowhere else.
type MutationTransformer struct {
	file      *ast.SourceFile
	ms        *magicstring.MagicString
	comp      *analysis.ComponentInfo
	vars      []*analysis.VariableInfo
	mutations []*analysis.MutationInfo
}

// NewMutationTransformer creates the transformer for one component.
func NewMutationTransformer(file *ast.SourceFile, ms *magicstring.MagicString, comp *analysis.ComponentInfo, vars []*analysis.VariableInfo, mutations []*analysis.MutationInfo) *MutationTransformer {
	return &MutationTransformer{file: file, ms: ms, comp: comp, vars: vars, mutations: mutations}
}

// Transform rewrites every mutation, highest start offset first.
func (t *MutationTransformer) Transform() {
	ordered := make([]*analysis.MutationInfo, len(t.mutations))
	copy(ordered, t.mutations)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	byName := variablesByName(t.vars)
	for _, m := range ordered {
		t.rewriteMutation(m, byName)
	}
}

func (t *MutationTransformer) rewriteMutation(m *analysis.MutationInfo, byName map[string]*analysis.VariableInfo) {
	t.ms.AppendLeft(m.Start, "(")
	t.ms.AppendLeft(m.RootEnd, peekAccessor)
	t.ms.AppendRight(m.End, ", "+m.VariableName+"."+notifyMethod+"())")

	// Other reactive reads inside the mutation (arguments, right-hand
	// sides) still need their unwrap accessors; the root anchor itself and
	// nested declarations don't.
	node := ast.NamedNodeCovering(t.comp.Body, m.Start, m.End)
	if node == nil {
		return
	}
	root := m
	rr := &readRewriter{
		file: t.file,
		ms:   t.ms,
		vars: byName,
		kinds: map[analysis.VariableKind]bool{
			analysis.KindSignal:   true,
			analysis.KindComputed: true,
		},
		includeObjects: true,
		skip: func(n *sitter.Node) bool {
			return n.Type() == ast.KindIdentifier &&
				int(n.StartByte()) == root.RootStart && int(n.EndByte()) == root.RootEnd
		},
	}
	rr.rewrite(node)
}
