package tree

import (
	"fmt"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// Kind identifies the JSON type of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBoolean
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

var (
	// ErrNodeAttached is returned when appending a node that already has a parent.
	ErrNodeAttached = errors.New("node already attached to a parent")
	// ErrNotContainer is returned when appending to a scalar node.
	ErrNotContainer = errors.New("node is not an object or array")
)

// Node is one element of an output tree. Object members and array elements
// keep their insertion order; object member names may repeat.
type Node struct {
	name     string
	kind     Kind
	str      string
	num      float64
	boolean  bool
	children []*Node
	attached bool
}

// Name returns the member name. It is empty for array elements and roots.
func (n *Node) Name() string { return n.name }

// Kind returns the node's JSON type.
func (n *Node) Kind() Kind { return n.kind }

// Str returns the value of a string node.
func (n *Node) Str() string { return n.str }

// Num returns the value of a number node.
func (n *Node) Num() float64 { return n.num }

// Bool returns the value of a boolean node.
func (n *Node) Bool() bool { return n.boolean }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// IsContainer reports whether the node is an object or an array.
func (n *Node) IsContainer() bool {
	return n.kind == KindObject || n.kind == KindArray
}

// Children returns the children in order. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Member returns the first child named name, or nil.
func (n *Node) Member(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Append adds child as the last child of n. A node can be appended only once.
func (n *Node) Append(child *Node) error {
	if child == nil {
		return errors.WrapInvalid(errors.ErrInvalidData, "Node", "Append", "append nil node")
	}
	if !n.IsContainer() {
		return errors.WrapInvalid(ErrNotContainer, "Node", "Append",
			fmt.Sprintf("append %q to %s", child.name, n.kind))
	}
	if child.attached || child == n {
		return errors.WrapInvalid(ErrNodeAttached, "Node", "Append", fmt.Sprintf("append %q", child.name))
	}
	child.attached = true
	n.children = append(n.children, child)
	return nil
}

// Add appends children in order, stopping at the first error.
func (n *Node) Add(children ...*Node) error {
	for _, c := range children {
		if err := n.Append(c); err != nil {
			return err
		}
	}
	return nil
}

// ToInterface converts the subtree into plain Go values: map[string]any,
// []any, string, float64, bool and nil. Duplicate member names collapse to
// the last one.
func (n *Node) ToInterface() any {
	switch n.kind {
	case KindObject:
		m := make(map[string]any, len(n.children))
		for _, c := range n.children {
			m[c.name] = c.ToInterface()
		}
		return m
	case KindArray:
		a := make([]any, 0, len(n.children))
		for _, c := range n.children {
			a = append(a, c.ToInterface())
		}
		return a
	case KindString:
		return n.str
	case KindNumber:
		return n.num
	case KindBoolean:
		return n.boolean
	default:
		return nil
	}
}
