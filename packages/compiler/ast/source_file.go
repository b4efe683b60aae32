// Package ast wraps tree-sitter TSX parsing behind the small source-file
// abstraction the reactivity compiler works against: node traversal by kind,
// parent/child navigation, and source-text slicing by byte offset.
package ast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// SourceFile holds a parsed TSX tree together with the source it was parsed
// from. Offsets reported by nodes are byte offsets into Content.
type SourceFile struct {
	FileName string
	Content  []byte

	tree *sitter.Tree
}

// ParseSource parses TSX source into a SourceFile. A new parser instance is
// created per call, so concurrent parses of different files are safe. The
// caller must Close the returned file to release the tree.
func ParseSource(ctx context.Context, fileName string, content []byte) (*SourceFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsx.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse of %s failed: %w", fileName, err)
	}
	if tree.RootNode() == nil {
		tree.Close()
		return nil, fmt.Errorf("tree-sitter returned no root node for %s", fileName)
	}

	return &SourceFile{
		FileName: fileName,
		Content:  content,
		tree:     tree,
	}, nil
}

// Root returns the root program node.
func (f *SourceFile) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Close releases the underlying tree.
func (f *SourceFile) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Text returns the source text covered by node.
func (f *SourceFile) Text(node *sitter.Node) string {
	return string(f.Content[node.StartByte():node.EndByte()])
}

// Slice returns the source text between the given byte offsets.
func (f *SourceFile) Slice(start, end int) string {
	return string(f.Content[start:end])
}

// Walk visits node and all of its descendants in document order. Returning
// false from the callback prunes the subtree below the current node.
func Walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), visit)
	}
}

// NamedNodeCovering returns the smallest named descendant of root whose span
// covers [start, end), or nil when root itself does not cover the range.
func NamedNodeCovering(root *sitter.Node, start, end int) *sitter.Node {
	if root == nil || int(root.StartByte()) > start || int(root.EndByte()) < end {
		return nil
	}
	node := root
	for {
		var next *sitter.Node
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if int(child.StartByte()) <= start && int(child.EndByte()) >= end {
				next = child
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// FindAll returns every descendant of node (including node itself) whose kind
// matches one of the given kinds.
func FindAll(node *sitter.Node, kinds ...string) []*sitter.Node {
	var out []*sitter.Node
	Walk(node, func(n *sitter.Node) bool {
		for _, k := range kinds {
			if n.Type() == k {
				out = append(out, n)
				break
			}
		}
		return true
	})
	return out
}
