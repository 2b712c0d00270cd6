package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

type Validator[V infra.OrderedKey] func(tree BinaryTree[V]) error

// Validate runs all validators and combines every failure.
func Validate[V infra.OrderedKey](tree BinaryTree[V], validators ...Validator[V]) error {
	var merr error
	for _, v := range validators {
		merr = multierr.Append(merr, v(tree))
	}
	return merr
}

// BalanceViolationValidate checks the AVL rule, every
// balance factor is in {-1, 0, 1}.
func BalanceViolationValidate[V infra.OrderedKey](tree BinaryTree[V]) error {
	var err error
	tree.Foreach(func(idx int64, node *Node[V]) bool {
		if bf := node.BalanceFactor(); bf > 1 || bf < -1 {
			err = infra.NewErrorStack(fmt.Sprintf("avl balance violation at %v, balance factor %d", node.value, bf))
			return false
		}
		return true
	})
	return err
}

// orderedTree exposes the comparator the tree has been built with.
type orderedTree[V infra.OrderedKey] interface {
	comparator() infra.OrderedKeyComparator[V]
}

// OrderViolationValidate checks every adjacent in-order pair is
// strictly ordered by the tree's own comparator. A tree without
// a comparator is checked in ascending order.
func OrderViolationValidate[V infra.OrderedKey](tree BinaryTree[V]) error {
	values := tree.InOrder()
	if int64(len(values)) != tree.Len() {
		return infra.NewErrorStack(fmt.Sprintf("tree length %d mismatch with %d traversed values", tree.Len(), len(values)))
	}
	cmp := infra.AscOrderedKeyComparator[V]()
	if ot, ok := tree.(orderedTree[V]); ok {
		cmp = ot.comparator()
	}
	for i := 1; i < len(values); i++ {
		if cmp(values[i-1], values[i]) < 0 {
			continue
		}
		return infra.NewErrorStack(fmt.Sprintf("tree order violation between %v and %v", values[i-1], values[i]))
	}
	return nil
}

// ParentLinkValidate checks every child points back to its parent.
func ParentLinkValidate[V infra.OrderedKey](tree BinaryTree[V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.parent != nil {
		return infra.NewErrorStack("tree root has a parent")
	}
	var err error
	tree.Foreach(func(idx int64, node *Node[V]) bool {
		if (node.left != nil && node.left.parent != node) ||
			(node.right != nil && node.right.parent != node) {
			err = infra.NewErrorStack(fmt.Sprintf("tree parent link violation at %v", node.value))
			return false
		}
		return true
	})
	return err
}
