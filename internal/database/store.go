// Package database stores binary trees in SQLite so the viewer can load
// them by name.
//
// Trees are kept as flat node rows linking to their children by id. Loading
// a tree rebuilds the linked structure, derives parent links and subtree
// heights, and rejects rows that do not form a tree.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrTreeNotFound is returned when no tree has the requested id.
var ErrTreeNotFound = errors.New("tree not found")

// ErrMalformedTree is returned when stored rows do not form a binary tree.
var ErrMalformedTree = errors.New("malformed tree")

// Store defines the interface for tree persistence.
// This abstraction allows for mocking in tests.
type Store interface {
	// SaveTree replaces any tree with the same id.
	SaveTree(rec *TreeRecord) error
	// LoadTree rebuilds a stored tree.
	LoadTree(treeID string) (*Tree, error)
	// ListTrees returns a summary of every stored tree, ordered by id.
	ListTrees() ([]TreeSummary, error)
	// DeleteTree removes a tree and its nodes.
	DeleteTree(treeID string) error

	// Close gracefully shuts down the database connection.
	Close() error
}

// ============================================================
// Records
// ============================================================

// NodeRecord is one stored node.
type NodeRecord struct {
	NodeID  int64  `json:"node_id"`
	Value   string `json:"value"`
	LeftID  *int64 `json:"left_id,omitempty"`
	RightID *int64 `json:"right_id,omitempty"`
}

// TreeRecord is a tree as it is stored: a root id and flat node rows.
type TreeRecord struct {
	TreeID    string       `json:"tree_id"`
	RootID    *int64       `json:"root_id,omitempty"`
	CreatedAt int64        `json:"created_at"`
	Nodes     []NodeRecord `json:"nodes"`
}

// TreeSummary describes a stored tree without loading it.
type TreeSummary struct {
	TreeID    string `json:"tree_id"`
	NodeCount int    `json:"node_count"`
	CreatedAt int64  `json:"created_at"`
}

// ============================================================
// Loaded trees
// ============================================================

// Tree is a stored tree rebuilt in memory.
type Tree struct {
	ID   string
	Root *Node
	Size int
}

// Node is a node of a loaded tree. Height is 1 for a leaf.
type Node struct {
	ID     int64
	Value  string
	Height int
	Left   *Node
	Right  *Node
	Parent *Node
}

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements the Store interface using SQLite.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// NewDBService opens the database at path and initializes the schema.
// Use ":memory:" for in-memory databases (useful for testing).
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database at %s", path)
	}

	// SQLite only supports one writer at a time; a single connection also
	// keeps ":memory:" databases alive between statements.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing schema")
	}

	return svc, nil
}

// initSchema executes the embedded schema.sql.
func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return errors.Wrap(err, "reading embedded schema")
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return errors.Wrap(err, "executing schema")
	}

	return nil
}

// SaveTree writes rec in a single transaction, replacing any tree with the
// same id. A zero CreatedAt is set to the current time.
func (s *DBService) SaveTree(rec *TreeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixNano()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trees WHERE tree_id = ?`, rec.TreeID); err != nil {
		return errors.Wrapf(err, "clearing tree %s", rec.TreeID)
	}
	if _, err := tx.Exec(
		`INSERT INTO trees (tree_id, root_id, created_at) VALUES (?, ?, ?)`,
		rec.TreeID, rec.RootID, rec.CreatedAt,
	); err != nil {
		return errors.Wrapf(err, "inserting tree %s", rec.TreeID)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO nodes (tree_id, node_id, value, left_id, right_id)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "preparing node insert")
	}
	defer stmt.Close()

	for _, n := range rec.Nodes {
		if _, err := stmt.Exec(rec.TreeID, n.NodeID, n.Value, n.LeftID, n.RightID); err != nil {
			return errors.Wrapf(err, "inserting node %d of tree %s", n.NodeID, rec.TreeID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing tree")
	}
	return nil
}

// LoadTree reads a tree's rows and links them into a Tree.
func (s *DBService) LoadTree(treeID string) (*Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rootID sql.NullInt64
	err := s.db.QueryRow(`SELECT root_id FROM trees WHERE tree_id = ?`, treeID).Scan(&rootID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrTreeNotFound, "%q", treeID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "querying tree %s", treeID)
	}

	rows, err := s.db.Query(`
		SELECT node_id, value, left_id, right_id
		FROM nodes WHERE tree_id = ? ORDER BY node_id
	`, treeID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying nodes of %s", treeID)
	}
	defer rows.Close()

	var recs []NodeRecord
	for rows.Next() {
		var rec NodeRecord
		var left, right sql.NullInt64
		if err := rows.Scan(&rec.NodeID, &rec.Value, &left, &right); err != nil {
			return nil, errors.Wrap(err, "scanning node row")
		}
		if left.Valid {
			rec.LeftID = &left.Int64
		}
		if right.Valid {
			rec.RightID = &right.Int64
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating node rows")
	}

	var root *int64
	if rootID.Valid {
		root = &rootID.Int64
	}
	return link(treeID, root, recs)
}

// ListTrees returns every stored tree with its node count.
func (s *DBService) ListTrees() ([]TreeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.tree_id, t.created_at, COUNT(n.node_id)
		FROM trees t LEFT JOIN nodes n ON n.tree_id = t.tree_id
		GROUP BY t.tree_id, t.created_at
		ORDER BY t.tree_id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying trees")
	}
	defer rows.Close()

	var out []TreeSummary
	for rows.Next() {
		var ts TreeSummary
		if err := rows.Scan(&ts.TreeID, &ts.CreatedAt, &ts.NodeCount); err != nil {
			return nil, errors.Wrap(err, "scanning tree row")
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// DeleteTree removes a tree; its nodes go with it.
func (s *DBService) DeleteTree(treeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM trees WHERE tree_id = ?`, treeID)
	if err != nil {
		return errors.Wrapf(err, "deleting tree %s", treeID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrTreeNotFound, "%q", treeID)
	}
	return nil
}

// Close gracefully shuts down the database connection.
func (s *DBService) Close() error {
	return s.db.Close()
}

// link rebuilds the node structure from rows. Every child id must name a
// stored node, no node may have two parents, and the root may have none.
func link(treeID string, rootID *int64, recs []NodeRecord) (*Tree, error) {
	nodes := make(map[int64]*Node, len(recs))
	for _, r := range recs {
		nodes[r.NodeID] = &Node{ID: r.NodeID, Value: r.Value}
	}

	child := func(parent *Node, id *int64) (*Node, error) {
		if id == nil {
			return nil, nil
		}
		c, ok := nodes[*id]
		if !ok {
			return nil, errors.Wrapf(ErrMalformedTree, "node %d links to missing node %d", parent.ID, *id)
		}
		if c.Parent != nil {
			return nil, errors.Wrapf(ErrMalformedTree, "node %d has two parents", c.ID)
		}
		c.Parent = parent
		return c, nil
	}

	var err error
	for _, r := range recs {
		n := nodes[r.NodeID]
		if n.Left, err = child(n, r.LeftID); err != nil {
			return nil, err
		}
		if n.Right, err = child(n, r.RightID); err != nil {
			return nil, err
		}
	}

	t := &Tree{ID: treeID}
	if rootID == nil {
		return t, nil
	}
	root, ok := nodes[*rootID]
	if !ok {
		return nil, errors.Wrapf(ErrMalformedTree, "root %d is not a stored node", *rootID)
	}
	if root.Parent != nil {
		return nil, errors.Wrapf(ErrMalformedTree, "root %d has a parent", *rootID)
	}
	t.Root = root
	t.Size = measure(root)
	return t, nil
}

// measure sets Height on every node under n and returns the node count.
func measure(n *Node) int {
	if n == nil {
		return 0
	}
	count := 1 + measure(n.Left) + measure(n.Right)
	n.Height = 1 + max(height(n.Left), height(n.Right))
	return count
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Height
}
