// Package fields discovers the structural fields of tree and node types
// whose names are not known in advance.
//
// Discovery is a name heuristic: the tree type, its root field and the
// node fields are matched case-insensitively against curated synonym lists,
// and the first match in declaration order wins. Callers whose types do not
// follow common naming can skip discovery entirely and build an Accessors
// record by hand.
package fields

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// Role is the semantic meaning of a discovered field.
type Role int

const (
	RoleRoot Role = iota
	RoleValue
	RoleLeft
	RoleRight
	RoleParent
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleValue:
		return "value"
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	case RoleParent:
		return "parent"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Synonym lists, lowercased. Order matters only within a role's field scan,
// where the first field matching any synonym is taken.
var (
	TreeNames = []string{"binarysearchtree", "binarytree", "bst", "tree"}
	NodeNames = []string{"node"}

	roleNames = map[Role][]string{
		RoleRoot:   {"root"},
		RoleValue:  {"value", "val", "data", "key"},
		RoleLeft:   {"left", "l_child", "lchild"},
		RoleRight:  {"right", "r_child", "rchild"},
		RoleParent: {"parent"},
	}
)

// Table maps each role to the Go field name that plays it. A resolved Table
// is a plain value and is never modified afterwards.
type Table struct {
	TreeType string
	NodeType string

	Root   string
	Value  string
	Left   string
	Right  string
	Parent string // empty when the node type has no parent link
}

// ResolutionError reports that a type or a required field could not be
// matched.
type ResolutionError struct {
	// Role is "tree", "node" or one of the Role names.
	Role   string
	Type   string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("fields: cannot resolve %s on %s: %s", e.Role, e.Type, e.Reason)
}

// Resolve inspects the type of tree and discovers the field names of the
// tree and of its node type. tree is only used for its type; it may be a
// zero value.
func Resolve(tree any) (Table, error) {
	t := reflect.TypeOf(tree)
	if t == nil {
		return Table{}, &ResolutionError{Role: "tree", Type: "<nil>", Reason: "no type information"}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return Table{}, &ResolutionError{Role: "tree", Type: t.String(), Reason: "not a struct type"}
	}
	if !matches(t.Name(), TreeNames) {
		return Table{}, &ResolutionError{
			Role:   "tree",
			Type:   t.String(),
			Reason: fmt.Sprintf("type name matches none of %v", TreeNames),
		}
	}

	tbl := Table{TreeType: t.String()}

	root, ok := findField(t, roleNames[RoleRoot])
	if !ok {
		return Table{}, missing(RoleRoot, t)
	}
	tbl.Root = root.Name

	nt := root.Type
	if nt.Kind() != reflect.Pointer || nt.Elem().Kind() != reflect.Struct {
		return Table{}, &ResolutionError{
			Role:   "node",
			Type:   nt.String(),
			Reason: fmt.Sprintf("root field %s is not a pointer to a struct", root.Name),
		}
	}
	nt = nt.Elem()
	if !matches(nt.Name(), NodeNames) {
		return Table{}, &ResolutionError{
			Role:   "node",
			Type:   nt.String(),
			Reason: fmt.Sprintf("type name matches none of %v", NodeNames),
		}
	}
	tbl.NodeType = nt.String()

	for _, req := range []struct {
		role Role
		dst  *string
	}{
		{RoleValue, &tbl.Value},
		{RoleLeft, &tbl.Left},
		{RoleRight, &tbl.Right},
	} {
		f, ok := findField(nt, roleNames[req.role])
		if !ok {
			return Table{}, missing(req.role, nt)
		}
		*req.dst = f.Name
	}

	if f, ok := findField(nt, roleNames[RoleParent]); ok {
		tbl.Parent = f.Name
	}
	return tbl, nil
}

// MustResolve is like Resolve but panics on failure. It is meant for
// package-level initialization, where a tree type that cannot be resolved
// should stop the program before anything is displayed.
func MustResolve(tree any) Table {
	tbl, err := Resolve(tree)
	if err != nil {
		panic(err)
	}
	return tbl
}

// AsResolutionError reports whether err carries a *ResolutionError.
func AsResolutionError(err error) (*ResolutionError, bool) {
	var rerr *ResolutionError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}

func missing(role Role, t reflect.Type) error {
	return &ResolutionError{
		Role:   role.String(),
		Type:   t.String(),
		Reason: fmt.Sprintf("no exported field matches %v", roleNames[role]),
	}
}

func matches(name string, synonyms []string) bool {
	lower := strings.ToLower(name)
	for _, s := range synonyms {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// findField returns the first exported field, in declaration order, whose
// name matches one of synonyms.
func findField(t reflect.Type, synonyms []string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if matches(f.Name, synonyms) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
