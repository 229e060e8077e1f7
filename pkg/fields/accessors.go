package fields

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknownAttr is returned by Lookup when a path segment names no
	// exported field.
	ErrUnknownAttr = errors.New("unknown attribute")
	// ErrAbsentNode is returned by Lookup when asked to read from an absent
	// node.
	ErrAbsentNode = errors.New("absent node")
)

// Accessors is the capability record a tree must provide to be displayed.
// Root, Value, Left and Right are required; Parent may be nil when nodes
// carry no parent link. Lookup resolves a dotted attribute path on a node
// and defaults to the package-level Lookup.
type Accessors struct {
	Root   func(tree any) any
	Value  func(node any) any
	Left   func(node any) any
	Right  func(node any) any
	Parent func(node any) any
	Lookup func(node any, path string) (any, error)
}

// Validate reports whether the required accessors are set.
func (a Accessors) Validate() error {
	switch {
	case a.Root == nil:
		return errors.New("fields: accessors lack Root")
	case a.Value == nil:
		return errors.New("fields: accessors lack Value")
	case a.Left == nil:
		return errors.New("fields: accessors lack Left")
	case a.Right == nil:
		return errors.New("fields: accessors lack Right")
	}
	return nil
}

// WithDefaults returns a copy of a with a nil Lookup replaced by Lookup.
func (a Accessors) WithDefaults() Accessors {
	if a.Lookup == nil {
		a.Lookup = Lookup
	}
	return a
}

// Children returns the left and right children of node.
func (a Accessors) Children(node any) (left, right any) {
	return a.Left(node), a.Right(node)
}

// Accessors builds reflective accessors reading the fields named in t.
func (t Table) Accessors() Accessors {
	acc := Accessors{
		Root:   fieldGetter(t.Root),
		Value:  fieldGetter(t.Value),
		Left:   fieldGetter(t.Left),
		Right:  fieldGetter(t.Right),
		Lookup: Lookup,
	}
	if t.Parent != "" {
		acc.Parent = fieldGetter(t.Parent)
	}
	return acc
}

func fieldGetter(name string) func(any) any {
	return func(v any) any {
		rv, ok := deref(reflect.ValueOf(v))
		if !ok || rv.Kind() != reflect.Struct {
			return nil
		}
		f := rv.FieldByName(name)
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}
}

// IsAbsent reports whether v stands for "no node here": a nil interface or
// a nil pointer, map, slice, func or channel.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Lookup reads a dotted attribute path from node, such as "height" or
// "left.value". Each segment matches an exported field (case-insensitive,
// first in declaration order). Methods are never called, so looking up an
// attribute cannot change the tree; callers wanting computed attributes
// supply their own Accessors.Lookup. Reaching an absent value before the
// end of the path stops the walk and yields nil.
func Lookup(node any, path string) (any, error) {
	if IsAbsent(node) {
		return nil, errors.Wrapf(ErrAbsentNode, "reading %q", path)
	}
	cur := node
	for _, seg := range strings.Split(path, ".") {
		next, err := attr(cur, seg)
		if err != nil {
			return nil, err
		}
		if IsAbsent(next) {
			return nil, nil
		}
		cur = next
	}
	return cur, nil
}

func attr(v any, name string) (any, error) {
	if name == "" {
		return nil, errors.Wrap(ErrUnknownAttr, "empty attribute name")
	}
	orig := reflect.ValueOf(v)
	if rv, ok := deref(orig); ok && rv.Kind() == reflect.Struct {
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.IsExported() && strings.EqualFold(f.Name, name) {
				return rv.Field(i).Interface(), nil
			}
		}
	}
	return nil, errors.Wrapf(ErrUnknownAttr, "%q on %s", name, orig.Type())
}

func deref(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}
