// Package bst is a small, unbalanced binary search tree of ints used to
// demonstrate the tree viewer. Nodes keep parent links and subtree heights.
package bst

import (
	"context"

	"github.com/Mr-Dark-debug/treepeek/pkg/treeview"
)

// Node is one element of the tree. A leaf has height 1.
type Node struct {
	Value  int
	Height int
	Left   *Node
	Right  *Node
	Parent *Node
}

// BinarySearchTree holds the root and the element count.
type BinarySearchTree struct {
	Root *Node
	size int
}

// renderer is resolved once, when the package is initialized, so a field
// naming change fails loudly before any tree is shown.
var renderer = treeview.MustResolve(&BinarySearchTree{})

// New builds a tree by inserting values in order.
func New(values ...int) *BinarySearchTree {
	t := &BinarySearchTree{}
	for _, v := range values {
		t.Insert(v)
	}
	return t
}

// Insert adds v and returns its node. Inserting a value that is already
// present returns the existing node.
func (t *BinarySearchTree) Insert(v int) *Node {
	var parent *Node
	link := &t.Root
	for *link != nil {
		parent = *link
		switch {
		case v < parent.Value:
			link = &parent.Left
		case v > parent.Value:
			link = &parent.Right
		default:
			return parent
		}
	}
	n := &Node{Value: v, Height: 1, Parent: parent}
	*link = n
	t.size++

	for p := parent; p != nil; p = p.Parent {
		h := 1 + max(height(p.Left), height(p.Right))
		if h == p.Height {
			break
		}
		p.Height = h
	}
	return n
}

// Find returns the node holding v, or nil.
func (t *BinarySearchTree) Find(v int) *Node {
	n := t.Root
	for n != nil && n.Value != v {
		if v < n.Value {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n
}

// Len returns the number of values in the tree.
func (t *BinarySearchTree) Len() int { return t.size }

// Walk calls fn on every node in pre-order.
func (t *BinarySearchTree) Walk(fn func(n *Node)) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		fn(n)
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.Root)
}

// String draws the top levels of the tree.
func (t *BinarySearchTree) String() string {
	return renderer.String(t)
}

// Disp opens the interactive viewer on the tree.
func (t *BinarySearchTree) Disp() error {
	return renderer.Display(context.Background(), t)
}

// Renderer returns the viewer bound to this tree type.
func Renderer() *treeview.Renderer { return renderer }

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Height
}
