package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeBareNode(t *testing.T) {
	tree, err := DecodeTree([]byte(`{"value": 5, "left": {"value": 3}, "right": {"value": "eight"}}`))
	require.NoError(t, err)

	root := tree.Root
	require.Equal(t, 5.0, root.Value)
	require.Equal(t, 3.0, root.Left.Value)
	require.Equal(t, "eight", root.Right.Value)
	require.Same(t, root, root.Left.Parent)
	require.Same(t, root, root.Right.Parent)
	require.Nil(t, root.Parent)
	require.Equal(t, 1, root.Right.Depth)
}

func TestDecodeRootMember(t *testing.T) {
	tree, err := DecodeTree([]byte(`{"root": {"value": 1, "right": {"value": 2, "right": {"value": 3}}}}`))
	require.NoError(t, err)
	require.Equal(t, 3.0, tree.Root.Right.Right.Value)
	require.Equal(t, 2, tree.Root.Right.Right.Depth)
	require.Same(t, tree.Root.Right, tree.Root.Right.Right.Parent)
}

func TestDecodeEmpty(t *testing.T) {
	for _, doc := range []string{`{"root": null}`, `null`} {
		tree, err := DecodeTree([]byte(doc))
		require.NoError(t, err, doc)
		require.Nil(t, tree.Root, doc)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, doc := range []string{``, `   `, `[1, 2]`, `{"name": "x"}`, `{"value": 1, "left": 7}`, `{`} {
		_, err := DecodeTree([]byte(doc))
		require.Error(t, err, doc)
	}
}
