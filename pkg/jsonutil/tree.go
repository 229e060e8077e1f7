// Package jsonutil decodes binary trees written as nested JSON objects.
//
// A node is an object with a "value" and optional "left" and "right"
// children:
//
//	{"value": 5, "left": {"value": 3}, "right": {"value": 8}}
//
// The document is either a node or an object whose "root" member is one;
// a null root is an empty tree.
package jsonutil

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Tree is a decoded tree.
type Tree struct {
	Root *Node
}

// Node is one decoded node. Value holds whatever JSON value was given:
// float64, string, bool, nil, or a map/slice for composite values.
type Node struct {
	Value  any   `json:"value"`
	Left   *Node `json:"left,omitempty"`
	Right  *Node `json:"right,omitempty"`
	Parent *Node `json:"-"`
	Depth  int   `json:"-"`
}

// DecodeTree parses data into a Tree and links every node to its parent.
func DecodeTree(data []byte) (*Tree, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("jsonutil: empty document")
	}

	if bytes.Equal(data, []byte("null")) {
		return &Tree{}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "jsonutil: parsing tree")
	}

	var t Tree
	if raw, ok := probe["root"]; ok {
		if err := json.Unmarshal(raw, &t.Root); err != nil {
			return nil, errors.Wrap(err, "jsonutil: parsing root")
		}
	} else {
		if _, ok := probe["value"]; !ok {
			return nil, errors.New(`jsonutil: document has neither "root" nor "value"`)
		}
		t.Root = &Node{}
		if err := json.Unmarshal(data, t.Root); err != nil {
			return nil, errors.Wrap(err, "jsonutil: parsing node")
		}
	}

	linkParents(t.Root, nil, 0)
	return &t, nil
}

func linkParents(n, parent *Node, depth int) {
	if n == nil {
		return
	}
	n.Parent = parent
	n.Depth = depth
	linkParents(n.Left, n, depth+1)
	linkParents(n.Right, n, depth+1)
}
