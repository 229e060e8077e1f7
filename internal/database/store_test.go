package database

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func id(v int64) *int64 { return &v }

// sampleTree is
//
//	  m
//	 / \
//	f   t
//	     \
//	      z
func sampleTree(treeID string) *TreeRecord {
	return &TreeRecord{
		TreeID: treeID,
		RootID: id(1),
		Nodes: []NodeRecord{
			{NodeID: 1, Value: "m", LeftID: id(2), RightID: id(3)},
			{NodeID: 2, Value: "f"},
			{NodeID: 3, Value: "t", RightID: id(4)},
			{NodeID: 4, Value: "z"},
		},
	}
}

func newTestService(t *testing.T) *DBService {
	t.Helper()
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

// TestNewDBService verifies that the database initializes correctly
// with the embedded schema using an in-memory SQLite instance.
func TestNewDBService(t *testing.T) {
	newTestService(t)
}

// TestSaveAndLoadTree verifies the full lifecycle:
// save → load → verify links, parents and heights.
func TestSaveAndLoadTree(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SaveTree(sampleTree("letters")); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}

	tree, err := svc.LoadTree("letters")
	if err != nil {
		t.Fatalf("LoadTree failed: %v", err)
	}
	if tree.Size != 4 {
		t.Errorf("expected size=4, got %d", tree.Size)
	}
	root := tree.Root
	if root == nil || root.Value != "m" {
		t.Fatalf("expected root m, got %+v", root)
	}
	if root.Height != 3 {
		t.Errorf("expected root height=3, got %d", root.Height)
	}
	if root.Left.Value != "f" || root.Right.Value != "t" {
		t.Errorf("unexpected children %q %q", root.Left.Value, root.Right.Value)
	}
	z := root.Right.Right
	if z == nil || z.Value != "z" {
		t.Fatalf("expected t.right=z, got %+v", z)
	}
	if z.Parent != root.Right || root.Right.Parent != root {
		t.Errorf("parent links not rebuilt")
	}
	if root.Parent != nil {
		t.Errorf("root should have no parent")
	}
	if z.Height != 1 {
		t.Errorf("expected leaf height=1, got %d", z.Height)
	}
}

// TestSaveReplaces verifies that saving under an existing id drops the
// old nodes.
func TestSaveReplaces(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SaveTree(sampleTree("x")); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	if err := svc.SaveTree(&TreeRecord{
		TreeID: "x",
		RootID: id(7),
		Nodes:  []NodeRecord{{NodeID: 7, Value: "only"}},
	}); err != nil {
		t.Fatalf("second SaveTree failed: %v", err)
	}

	tree, err := svc.LoadTree("x")
	if err != nil {
		t.Fatalf("LoadTree failed: %v", err)
	}
	if tree.Size != 1 || tree.Root.Value != "only" {
		t.Errorf("expected single node tree, got size=%d root=%+v", tree.Size, tree.Root)
	}
}

func TestLoadEmptyTree(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SaveTree(&TreeRecord{TreeID: "empty"}); err != nil {
		t.Fatalf("SaveTree failed: %v", err)
	}
	tree, err := svc.LoadTree("empty")
	if err != nil {
		t.Fatalf("LoadTree failed: %v", err)
	}
	if tree.Root != nil || tree.Size != 0 {
		t.Errorf("expected empty tree, got %+v", tree)
	}
}

func TestLoadMissingTree(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.LoadTree("nope")
	if !errors.Is(err, ErrTreeNotFound) {
		t.Fatalf("expected ErrTreeNotFound, got %v", err)
	}
}

func TestLoadMalformedTree(t *testing.T) {
	svc := newTestService(t)

	cases := map[string]*TreeRecord{
		"missing child": {
			TreeID: "a", RootID: id(1),
			Nodes: []NodeRecord{{NodeID: 1, Value: "r", LeftID: id(9)}},
		},
		"two parents": {
			TreeID: "b", RootID: id(1),
			Nodes: []NodeRecord{
				{NodeID: 1, Value: "r", LeftID: id(2), RightID: id(2)},
				{NodeID: 2, Value: "c"},
			},
		},
		"root has parent": {
			TreeID: "c", RootID: id(2),
			Nodes: []NodeRecord{
				{NodeID: 1, Value: "p", LeftID: id(2)},
				{NodeID: 2, Value: "r"},
			},
		},
		"self loop": {
			TreeID: "d", RootID: id(1),
			Nodes: []NodeRecord{{NodeID: 1, Value: "r", LeftID: id(1)}},
		},
		"missing root": {
			TreeID: "e", RootID: id(3),
			Nodes: []NodeRecord{{NodeID: 1, Value: "r"}},
		},
	}

	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			if err := svc.SaveTree(rec); err != nil {
				t.Fatalf("SaveTree failed: %v", err)
			}
			_, err := svc.LoadTree(rec.TreeID)
			if !errors.Is(err, ErrMalformedTree) {
				t.Fatalf("expected ErrMalformedTree, got %v", err)
			}
		})
	}
}

func TestListAndDeleteTrees(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{"beta", "alpha"} {
		if err := svc.SaveTree(sampleTree(name)); err != nil {
			t.Fatalf("SaveTree(%s) failed: %v", name, err)
		}
	}

	list, err := svc.ListTrees()
	if err != nil {
		t.Fatalf("ListTrees failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 trees, got %d", len(list))
	}
	if list[0].TreeID != "alpha" || list[0].NodeCount != 4 {
		t.Errorf("unexpected first summary %+v", list[0])
	}
	if list[0].CreatedAt == 0 {
		t.Errorf("expected created_at to be set")
	}

	if err := svc.DeleteTree("alpha"); err != nil {
		t.Fatalf("DeleteTree failed: %v", err)
	}
	if err := svc.DeleteTree("alpha"); !errors.Is(err, ErrTreeNotFound) {
		t.Fatalf("expected ErrTreeNotFound on second delete, got %v", err)
	}
	if _, err := svc.LoadTree("alpha"); !errors.Is(err, ErrTreeNotFound) {
		t.Fatalf("expected deleted tree to be gone, got %v", err)
	}

	list, err = svc.ListTrees()
	if err != nil {
		t.Fatalf("ListTrees failed: %v", err)
	}
	if len(list) != 1 || list[0].TreeID != "beta" {
		t.Errorf("expected only beta to remain, got %+v", list)
	}
}
