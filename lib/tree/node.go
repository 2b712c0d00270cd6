package tree

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/benz9527/xtree/lib/infra"
)

// Node is a mutable binary tree vertex.
// The parent owns its children, node.parent is only a back-link.
// Links must be changed through SetLeft, SetRight, RemoveChild
// and ReplaceChild, they keep the back-links consistent.
type Node[V infra.OrderedKey] struct {
	parent *Node[V]
	left   *Node[V]
	right  *Node[V]
	meta   map[string]any
	value  V
	color  RBColor
}

func NewNode[V infra.OrderedKey](val V) *Node[V] {
	return &Node[V]{
		value: val,
	}
}

func (node *Node[V]) Value() V {
	return node.value
}

func (node *Node[V]) SetValue(val V) *Node[V] {
	node.value = val
	return node
}

func (node *Node[V]) Color() RBColor {
	return node.color
}

func (node *Node[V]) Left() *Node[V] {
	if node == nil {
		return nil
	}
	return node.left
}

func (node *Node[V]) Right() *Node[V] {
	if node == nil {
		return nil
	}
	return node.right
}

func (node *Node[V]) Parent() *Node[V] {
	if node == nil {
		return nil
	}
	return node.parent
}

// Set stores the strategy specific metadata.
func (node *Node[V]) Set(key string, val any) *Node[V] {
	if node.meta == nil {
		node.meta = make(map[string]any, 2)
	}
	node.meta[key] = val
	return node
}

func (node *Node[V]) Get(key string) (any, bool) {
	if node == nil || node.meta == nil {
		return nil, false
	}
	val, ok := node.meta[key]
	return val, ok
}

// SetLeft replaces the left child. The previous child's back-link
// is cleared only if it still points to this node, a child that has
// already been moved under another parent keeps its new parent.
func (node *Node[V]) SetLeft(child *Node[V]) *Node[V] {
	if node.left != nil && node.left.parent == node {
		node.left.parent = nil
	}
	node.left = child
	if child != nil {
		child.parent = node
	}
	return node
}

func (node *Node[V]) SetRight(child *Node[V]) *Node[V] {
	if node.right != nil && node.right.parent == node {
		node.right.parent = nil
	}
	node.right = child
	if child != nil {
		child.parent = node
	}
	return node
}

// RemoveChild compares by identity.
func (node *Node[V]) RemoveChild(target *Node[V]) bool {
	if target == nil {
		return false
	}
	if node.left == target {
		node.SetLeft(nil)
		return true
	}
	if node.right == target {
		node.SetRight(nil)
		return true
	}
	return false
}

// ReplaceChild puts replacement into the slot held by target.
// The replacement's back-link is updated here as well.
func (node *Node[V]) ReplaceChild(target, replacement *Node[V]) bool {
	if target == nil || replacement == nil {
		return false
	}
	if node.left == target {
		node.SetLeft(replacement)
		return true
	}
	if node.right == target {
		node.SetRight(replacement)
		return true
	}
	return false
}

// CopyNode overwrites target's value and children with source's.
// The target's parent is kept.
func CopyNode[V infra.OrderedKey](source, target *Node[V]) {
	l, r := source.left, source.right
	target.SetValue(source.value)
	target.SetLeft(l)
	target.SetRight(r)
}

func (node *Node[V]) LeftHeight() int {
	if node == nil || node.left == nil {
		return 0
	}
	return node.left.Height() + 1
}

func (node *Node[V]) RightHeight() int {
	if node == nil || node.right == nil {
		return 0
	}
	return node.right.Height() + 1
}

// Height is recomputed from the subtree on every call.
func (node *Node[V]) Height() int {
	return max(node.LeftHeight(), node.RightHeight())
}

func (node *Node[V]) BalanceFactor() int {
	return node.LeftHeight() - node.RightHeight()
}

func (node *Node[V]) IsRoot() bool {
	return node != nil && node.parent == nil
}

func (node *Node[V]) IsLeaf() bool {
	return node != nil && node.left == nil && node.right == nil
}

func (node *Node[V]) Direction() RBDirection {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] nil node without direction")
	}

	if node.IsRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *Node[V]) Sibling() *Node[V] {
	if node == nil || node.parent == nil {
		return nil
	}
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *Node[V]) Grandpa() *Node[V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent.parent
}

// Uncle is nil unless the grandpa has both children.
func (node *Node[V]) Uncle() *Node[V] {
	gp := node.Grandpa()
	if gp == nil || gp.left == nil || gp.right == nil {
		return nil
	}
	if gp.left == node.parent {
		return gp.right
	}
	return gp.left
}

func (node *Node[V]) Minimum() *Node[V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *Node[V]) Maximum() *Node[V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// TraverseInOrder materializes the values of the subtree.
func (node *Node[V]) TraverseInOrder() []V {
	if node == nil {
		return []V{}
	}
	res := node.left.TraverseInOrder()
	res = append(res, node.value)
	return append(res, node.right.TraverseInOrder()...)
}

func (node *Node[V]) String() string {
	return joinValues(node.TraverseInOrder())
}

func joinValues[V infra.OrderedKey](values []V) string {
	return strings.Join(lo.Map(values, func(v V, _ int) string {
		return fmt.Sprint(v)
	}), ",")
}
