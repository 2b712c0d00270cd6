package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// isColored tells a real node from a NIL leaf.
// NIL leaves are never materialized, they are nil
// pointers and count as black.
func isColored[V infra.OrderedKey](node *Node[V]) bool {
	return node != nil
}

func isBlack[V infra.OrderedKey](node *Node[V]) bool {
	return !isColored[V](node) || node.color == Black
}

func isRed[V infra.OrderedKey](node *Node[V]) bool {
	return isColored[V](node) && node.color == Red
}

func blackDepthTo[V infra.OrderedKey](target, to *Node[V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.parent {
		if isBlack[V](aux) {
			depth++
		}
	}
	return depth
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// Inorder traversal to validate the red rules (p3 and p5).
func RedViolationValidate[V infra.OrderedKey](tree BinaryTree[V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.color != Black {
		return infra.NewErrorStack("rbtree root is not black")
	}

	var err error
	tree.Foreach(func(idx int64, node *Node[V]) bool {
		if isRed[V](node) && (isRed[V](node.parent) || isRed[V](node.left) || isRed[V](node.right)) {
			err = infra.NewErrorStack("rbtree red violation")
			return false
		}
		return true
	})
	return err
}

// BFS traversal to load all nodes with at least one NIL child.
func bfsLeaves[V infra.OrderedKey](tree BinaryTree[V]) []*Node[V] {
	aux := tree.Root()
	if aux == nil {
		return nil
	}

	leaves := make([]*Node[V], 0, tree.Len()>>1+1)
	queue := make([]*Node[V], 0, tree.Len()>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.left, aux.right
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
	        /  \
	     <8>    [15]
	     / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            <16>

Each leaf node to root node black depth are equal (p4).
*/
func BlackViolationValidate[V infra.OrderedKey](tree BinaryTree[V]) error {
	leaves := bfsLeaves[V](tree)
	if leaves == nil {
		return nil
	}

	root := tree.Root()
	blackDepth := blackDepthTo[V](leaves[0], root)
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[V](leaves[i], root) != blackDepth {
			return infra.NewErrorStack("rbtree black violation")
		}
	}
	return nil
}
