package analysis

import (
	sitter "github.com/smacker/go-tree-sitter"

	"vertzc-go/packages/compiler/ast"
)

// MutationKind is the syntactic shape of an in-place mutation.
type MutationKind string

const (
	MutationMethodCall         MutationKind = "method-call"
	MutationPropertyAssignment MutationKind = "property-assignment"
	MutationIndexAssignment    MutationKind = "index-assignment"
	MutationDelete             MutationKind = "delete"
	MutationObjectAssign       MutationKind = "object-assign"
)

// MutationInfo records one expression that mutates a signal's underlying
// value in place.
type MutationInfo struct {
	VariableName string
	Kind         MutationKind
	// Start and End cover the full mutating expression.
	Start int
	End   int
	// RootStart and RootEnd cover the root identifier the peek call is
	// anchored to (the mutated variable, or Object.assign's first argument).
	RootStart int
	RootEnd   int
}

// mutatorMethods are the array/object methods treated as in-place mutations.
var mutatorMethods = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true,
	"splice": true, "sort": true, "reverse": true, "fill": true,
	"copyWithin": true,
}

// FindMutations scans a component body for in-place mutations whose root
// target is a signal-classified variable. Mutations of non-signals are not
// reported; push on a plain local array is left alone. Detected mutation
// subtrees are not descended into, so nested shapes yield one entry.
func FindMutations(file *ast.SourceFile, comp *ComponentInfo, vars []*VariableInfo) []*MutationInfo {
	signals := make(map[string]bool)
	for _, v := range vars {
		if v.Kind == KindSignal {
			signals[v.Name] = true
		}
	}
	if len(signals) == 0 {
		return nil
	}

	var mutations []*MutationInfo
	ast.Walk(comp.Body, func(n *sitter.Node) bool {
		var m *MutationInfo
		switch n.Type() {
		case ast.KindCallExpression:
			m = matchCall(file, n, signals)
		case ast.KindAssignmentExpression, ast.KindAugmentedAssignment:
			m = matchAssignment(file, n, signals)
		case ast.KindUnaryExpression:
			m = matchDelete(file, n, signals)
		}
		if m != nil {
			mutations = append(mutations, m)
			return false
		}
		return true
	})
	return mutations
}

// matchCall recognizes `<signal>.<...>.push(...)` against the mutator set,
// and `Object.assign(<signal>, ...)`.
func matchCall(file *ast.SourceFile, call *sitter.Node, signals map[string]bool) *MutationInfo {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != ast.KindMemberExpression {
		return nil
	}
	obj := callee.ChildByFieldName("object")
	prop := callee.ChildByFieldName("property")
	if obj == nil || prop == nil {
		return nil
	}

	if obj.Type() == ast.KindIdentifier && file.Text(obj) == "Object" && file.Text(prop) == "assign" {
		args := call.ChildByFieldName("arguments")
		if args == nil || args.NamedChildCount() == 0 {
			return nil
		}
		first := args.NamedChild(0)
		if first.Type() != ast.KindIdentifier || !signals[file.Text(first)] {
			return nil
		}
		return &MutationInfo{
			VariableName: file.Text(first),
			Kind:         MutationObjectAssign,
			Start:        int(call.StartByte()),
			End:          int(call.EndByte()),
			RootStart:    int(first.StartByte()),
			RootEnd:      int(first.EndByte()),
		}
	}

	if !mutatorMethods[file.Text(prop)] {
		return nil
	}
	root := ast.RootIdentifier(obj)
	if root == nil || !signals[file.Text(root)] {
		return nil
	}
	return &MutationInfo{
		VariableName: file.Text(root),
		Kind:         MutationMethodCall,
		Start:        int(call.StartByte()),
		End:          int(call.EndByte()),
		RootStart:    int(root.StartByte()),
		RootEnd:      int(root.EndByte()),
	}
}

// matchAssignment recognizes property and index assignment (including the
// augmented operator family) whose left-hand side roots at a signal.
func matchAssignment(file *ast.SourceFile, assign *sitter.Node, signals map[string]bool) *MutationInfo {
	left := assign.ChildByFieldName("left")
	if left == nil {
		return nil
	}
	var kind MutationKind
	switch left.Type() {
	case ast.KindMemberExpression:
		kind = MutationPropertyAssignment
	case ast.KindSubscriptExpression:
		kind = MutationIndexAssignment
	default:
		return nil
	}
	root := ast.RootIdentifier(left)
	if root == nil || !signals[file.Text(root)] {
		return nil
	}
	return &MutationInfo{
		VariableName: file.Text(root),
		Kind:         kind,
		Start:        int(assign.StartByte()),
		End:          int(assign.EndByte()),
		RootStart:    int(root.StartByte()),
		RootEnd:      int(root.EndByte()),
	}
}

// matchDelete recognizes `delete <signal>.<...>.prop`.
func matchDelete(file *ast.SourceFile, unary *sitter.Node, signals map[string]bool) *MutationInfo {
	op := unary.ChildByFieldName("operator")
	if op == nil || file.Text(op) != "delete" {
		return nil
	}
	arg := unary.ChildByFieldName("argument")
	if arg == nil {
		return nil
	}
	switch arg.Type() {
	case ast.KindMemberExpression, ast.KindSubscriptExpression:
	default:
		return nil
	}
	root := ast.RootIdentifier(arg)
	if root == nil || !signals[file.Text(root)] {
		return nil
	}
	return &MutationInfo{
		VariableName: file.Text(root),
		Kind:         MutationDelete,
		Start:        int(unary.StartByte()),
		End:          int(unary.EndByte()),
		RootStart:    int(root.StartByte()),
		RootEnd:      int(root.EndByte()),
	}
}
