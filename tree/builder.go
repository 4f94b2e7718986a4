package tree

import (
	"fmt"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// Builder creates nodes under an optional node budget. Once the budget is
// exhausted Err reports ErrOutOfMemory; the constructors keep returning usable
// detached nodes so a caller can check Err once after building.
type Builder struct {
	maxNodes int
	count    int
	err      error
}

// NewBuilder returns a builder allowing at most maxNodes nodes. Zero or a
// negative value means no limit.
func NewBuilder(maxNodes int) *Builder {
	return &Builder{maxNodes: maxNodes}
}

// Err returns the sticky allocation error, if any.
func (b *Builder) Err() error { return b.err }

// Count returns the number of nodes created.
func (b *Builder) Count() int { return b.count }

func (b *Builder) node(name string, kind Kind) *Node {
	b.count++
	if b.maxNodes > 0 && b.count > b.maxNodes && b.err == nil {
		b.err = errors.WrapFatal(errors.ErrOutOfMemory, "tree", "Builder",
			fmt.Sprintf("node limit %d exceeded", b.maxNodes))
	}
	return &Node{name: name, kind: kind}
}

// Object creates an empty object node.
func (b *Builder) Object(name string) *Node { return b.node(name, KindObject) }

// Array creates an empty array node.
func (b *Builder) Array(name string) *Node { return b.node(name, KindArray) }

// String creates a string node.
func (b *Builder) String(name, value string) *Node {
	n := b.node(name, KindString)
	n.str = value
	return n
}

// Number creates a number node.
func (b *Builder) Number(name string, value float64) *Node {
	n := b.node(name, KindNumber)
	n.num = value
	return n
}

// Boolean creates a boolean node.
func (b *Builder) Boolean(name string, value bool) *Node {
	n := b.node(name, KindBoolean)
	n.boolean = value
	return n
}

// Null creates a null node.
func (b *Builder) Null(name string) *Node { return b.node(name, KindNull) }
