package rows

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/treepeek/pkg/fields"
)

type node struct {
	Value       int
	Height      int
	Left, Right *node
}

type tree struct {
	Root *node
}

var acc = fields.MustResolve(&tree{}).Accessors()

func insert(n *node, v int) *node {
	if n == nil {
		return &node{Value: v, Height: 1}
	}
	if v < n.Value {
		n.Left = insert(n.Left, v)
	} else if v > n.Value {
		n.Right = insert(n.Right, v)
	}
	n.Height = 1 + max(height(n.Left), height(n.Right))
	return n
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.Height
}

func TestBuildThreeNodes(t *testing.T) {
	var root *node
	for _, v := range []int{5, 3, 8} {
		root = insert(root, v)
	}

	grid := Build(root, DefaultMaxRows, acc.Children)
	vals, err := Stringify(grid, ValueFunc(acc))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"5"}, {"3", "8"}}, vals)
}

func TestBuildSparse(t *testing.T) {
	var root *node
	for _, v := range []int{5, 3, 4} {
		root = insert(root, v)
	}

	vals, err := Stringify(Build(root, DefaultMaxRows, acc.Children), ValueFunc(acc))
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"5"},
		{"3", "_"},
		{"_", "4", "_", "_"},
	}, vals)
}

func TestBuildAbsentStart(t *testing.T) {
	grid := Build((*node)(nil), DefaultMaxRows, acc.Children)
	require.Len(t, grid, 1)
	vals, err := Stringify(grid, ValueFunc(acc))
	require.NoError(t, err)
	require.Equal(t, [][]string{{Absent}}, vals)
}

func TestBuildMaxRowsFloor(t *testing.T) {
	root := insert(nil, 1)
	insert(root, 2)
	require.Len(t, Build(root, 0, acc.Children), 1)
	require.Len(t, Build(root, -3, acc.Children), 1)
}

// TestBuildRowCounts checks the row count and slot count of randomly built
// trees against their real height.
func TestBuildRowCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		var root *node
		for n := rng.Intn(40) + 1; n > 0; n-- {
			root = insert(root, rng.Intn(100))
		}
		maxRows := rng.Intn(7) + 1

		grid := Build(root, maxRows, acc.Children)
		require.Len(t, grid, min(maxRows, root.Height), "tree %d", i)
		for k, row := range grid {
			require.Len(t, row, 1<<k, "tree %d row %d", i, k)
		}
	}
}

func TestAttrsFunc(t *testing.T) {
	root := insert(nil, 10)
	insert(root, 4)

	fn := AttrsFunc(acc, []string{"value", "height"})
	s, err := fn(root)
	require.NoError(t, err)
	require.Equal(t, "10:2", s)

	s, err = AttrsFunc(acc, []string{"left.value"})(root)
	require.NoError(t, err)
	require.Equal(t, "4", s)
}

func TestStringifyError(t *testing.T) {
	root := insert(nil, 10)
	insert(root, 4)

	_, err := Stringify(Build(root, DefaultMaxRows, acc.Children), AttrsFunc(acc, []string{"weight"}))
	require.True(t, errors.Is(err, fields.ErrUnknownAttr))
}
