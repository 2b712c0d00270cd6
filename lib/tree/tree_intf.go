package tree

import (
	"errors"

	"github.com/benz9527/xtree/lib/infra"
)

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "Unknown"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

func (d RBDirection) String() string {
	switch d {
	case Left:
		return "Left"
	case Root:
		return "Root"
	case Right:
		return "Right"
	default:
	}
	return "Unknown"
}

type RotationKind string

const (
	RotationLeftLeft   RotationKind = "LL"
	RotationLeftRight  RotationKind = "LR"
	RotationRightRight RotationKind = "RR"
	RotationRightLeft  RotationKind = "RL"
)

var (
	ErrRemoveUnsupported = errors.New("[xtree] remove is not supported")
	ErrValueNotFound     = errors.New("[xtree] value not found")
	ErrEmptyTree         = errors.New("[xtree] empty tree")
	ErrNaNValue          = errors.New("[xtree] NaN value is unordered")
)

// BinaryTree is not thread safe. A single writer
// is assumed, and even readers must not run
// concurrently with a mutation.
type BinaryTree[V infra.OrderedKey] interface {
	Len() int64
	Root() *Node[V]
	// Insert returns the node holding val. Inserting a
	// value that is already present changes nothing.
	Insert(val V) (*Node[V], error)
	Remove(val V) error
	Find(val V) *Node[V]
	Contains(val V) bool
	// Foreach runs the in-order (DFS) traversal until action
	// returns false.
	Foreach(action func(idx int64, node *Node[V]) bool)
	InOrder() []V
	String() string
	Release()
}
