package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/Mr-Dark-debug/treepeek/internal/bst"
	"github.com/Mr-Dark-debug/treepeek/internal/database"
	"github.com/Mr-Dark-debug/treepeek/pkg/jsonutil"
	"github.com/Mr-Dark-debug/treepeek/pkg/treeview"
)

// source is a tree ready to draw, with the renderer for its type.
type source struct {
	tree     any
	renderer *treeview.Renderer
}

// loadSource picks the tree named by the flags: --json first, then --tree,
// then the integer arguments.
func loadSource(v *viper.Viper, args []string) (*source, error) {
	if path := v.GetString("json"); path != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("values cannot be combined with --json")
		}
		return loadJSON(path)
	}
	if name := v.GetString("tree"); name != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("values cannot be combined with --tree")
		}
		return loadStored(v.GetString("db"), name)
	}

	values, err := parseValues(args)
	if err != nil {
		return nil, err
	}
	return &source{tree: bst.New(values...), renderer: bst.Renderer()}, nil
}

func loadJSON(path string) (*source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tree, err := jsonutil.DecodeTree(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	r, err := treeview.Resolve(tree)
	if err != nil {
		return nil, err
	}
	return &source{tree: tree, renderer: r}, nil
}

func loadStored(dbPath, name string) (*source, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no tree database at %s (create one with: treepeek seed): %w", dbPath, err)
	}
	store, err := database.NewDBService(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", dbPath, err)
	}
	defer store.Close()

	tree, err := store.LoadTree(name)
	if err != nil {
		return nil, err
	}
	r, err := treeview.Resolve(tree)
	if err != nil {
		return nil, err
	}
	return &source{tree: tree, renderer: r}, nil
}

func parseValues(args []string) ([]int, error) {
	values := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an integer", a)
		}
		values = append(values, n)
	}
	return values, nil
}

// recordFromBST flattens t for storage, numbering nodes in pre-order.
func recordFromBST(name string, t *bst.BinarySearchTree) *database.TreeRecord {
	ids := make(map[*bst.Node]int64, t.Len())
	t.Walk(func(n *bst.Node) { ids[n] = int64(len(ids) + 1) })

	ref := func(n *bst.Node) *int64 {
		if n == nil {
			return nil
		}
		id := ids[n]
		return &id
	}

	rec := &database.TreeRecord{TreeID: name, RootID: ref(t.Root)}
	t.Walk(func(n *bst.Node) {
		rec.Nodes = append(rec.Nodes, database.NodeRecord{
			NodeID:  ids[n],
			Value:   strconv.Itoa(n.Value),
			LeftID:  ref(n.Left),
			RightID: ref(n.Right),
		})
	})
	return rec
}
