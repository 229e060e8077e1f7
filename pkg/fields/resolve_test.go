package fields

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type studentNode struct {
	Data   int
	Height int
	LChild *studentNode
	RChild *studentNode
	Parent *studentNode
}

// Pop detaches the right child.
func (n *studentNode) Pop() *studentNode {
	r := n.RChild
	n.RChild = nil
	return r
}

type MyBST struct {
	size int
	Root *studentNode
}

type orphanNode struct {
	Val         string
	Left, Right *orphanNode
}

type BinaryTree struct {
	TreeRoot *orphanNode
}

type Forest struct {
	Root *studentNode
}

type hiddenNode struct {
	value       int
	left, right *hiddenNode
}

type HiddenTree struct {
	Root *hiddenNode
}

type Leaf struct {
	Value       int
	Left, Right *Leaf
}

type LeafTree struct {
	Root *Leaf
}

func TestResolveStudentNaming(t *testing.T) {
	tbl, err := Resolve(&MyBST{})
	require.NoError(t, err)
	assert.Equal(t, Table{
		TreeType: "fields.MyBST",
		NodeType: "fields.studentNode",
		Root:     "Root",
		Value:    "Data",
		Left:     "LChild",
		Right:    "RChild",
		Parent:   "Parent",
	}, tbl)
}

func TestResolveWithoutParent(t *testing.T) {
	tbl, err := Resolve(BinaryTree{})
	require.NoError(t, err)
	require.Equal(t, "TreeRoot", tbl.Root)
	require.Equal(t, "Val", tbl.Value)
	require.Empty(t, tbl.Parent)
	require.Nil(t, tbl.Accessors().Parent)
}

func TestResolveFailures(t *testing.T) {
	for _, tc := range []struct {
		name string
		tree any
		role string
	}{
		{"nil", nil, "tree"},
		{"not a struct", 42, "tree"},
		{"tree name", &Forest{}, "tree"},
		{"unexported node fields", &HiddenTree{}, "value"},
		{"node name", &LeafTree{}, "node"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.tree)
			require.Error(t, err)
			rerr, ok := AsResolutionError(err)
			require.True(t, ok, "expected a ResolutionError, got %T", err)
			require.Equal(t, tc.role, rerr.Role)
		})
	}
}

func TestMustResolvePanics(t *testing.T) {
	require.Panics(t, func() { MustResolve(&Forest{}) })
	require.NotPanics(t, func() { MustResolve(&MyBST{}) })
}

func TestAccessors(t *testing.T) {
	root := &studentNode{Data: 5}
	root.LChild = &studentNode{Data: 3, Parent: root}
	tree := &MyBST{Root: root}

	acc := MustResolve(tree).Accessors()
	require.NoError(t, acc.Validate())

	require.Same(t, root, acc.Root(tree))
	require.Equal(t, 5, acc.Value(root))

	l, r := acc.Children(root)
	require.Same(t, root.LChild, l)
	require.True(t, IsAbsent(r))
	require.Same(t, root, acc.Parent(l))
	require.True(t, IsAbsent(acc.Parent(root)))

	// Reading from an absent node yields nil rather than panicking.
	require.Nil(t, acc.Value((*studentNode)(nil)))
}

func TestValidate(t *testing.T) {
	require.Error(t, Accessors{}.Validate())
	acc := MustResolve(&MyBST{}).Accessors()
	acc.Right = nil
	require.ErrorContains(t, acc.Validate(), "Right")
}

func TestLookup(t *testing.T) {
	root := &studentNode{Data: 10, Height: 2}
	root.RChild = &studentNode{Data: 12, Height: 1, Parent: root}

	for _, tc := range []struct {
		path string
		want any
	}{
		{"data", 10},
		{"Height", 2},
		{"rchild.data", 12},
		{"rchild.parent.height", 2},
		{"lchild", nil},
		{"lchild.data", nil},
	} {
		t.Run(tc.path, func(t *testing.T) {
			got, err := Lookup(root, tc.path)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := Lookup(root, "colour")
	require.True(t, errors.Is(err, ErrUnknownAttr))
	_, err = Lookup(root, "data.")
	require.True(t, errors.Is(err, ErrUnknownAttr))
	_, err = Lookup((*studentNode)(nil), "data")
	require.True(t, errors.Is(err, ErrAbsentNode))
}

func TestLookupIgnoresMethods(t *testing.T) {
	root := &studentNode{Data: 10}
	right := &studentNode{Data: 12, Parent: root}
	root.RChild = right

	for _, path := range []string{"pop", "Pop", "rchild.pop"} {
		_, err := Lookup(root, path)
		require.True(t, errors.Is(err, ErrUnknownAttr), path)
	}
	require.Same(t, right, root.RChild)
}

func TestIsAbsent(t *testing.T) {
	var n *studentNode
	var iface any = n
	require.True(t, IsAbsent(nil))
	require.True(t, IsAbsent(iface))
	require.False(t, IsAbsent(&studentNode{}))
	require.False(t, IsAbsent(0))
	require.False(t, IsAbsent(""))
}
