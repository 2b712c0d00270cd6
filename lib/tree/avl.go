package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

var _ BinaryTree[int] = (*avlTree[int])(nil)

// avlTree keeps every node's balance factor in {-1, 0, 1}.
// Heights are not cached, they are recomputed from the
// subtrees whenever balance inspects a node.
type avlTree[V infra.OrderedKey] struct {
	*bsTree[V]
}

func NewAVLTree[V infra.OrderedKey](opts ...TreeOption) BinaryTree[V] {
	return &avlTree[V]{
		bsTree: newBSTree[V](kindAVL, opts...),
	}
}

// Insert walks from the new node up to the root, the
// closest ancestor is balanced first.
func (tree *avlTree[V]) Insert(val V) (*Node[V], error) {
	if /* NaN */ val != val {
		return nil, infra.WrapErrorStackWithMessage(ErrNaNValue, "avl insert")
	}
	node, inserted := tree.rawInsert(val)
	if !inserted {
		return node, nil
	}
	tree.rebalanceUpward(node)
	return node, nil
}

// Remove rebalances the whole path from the deepest changed
// node to the root, not only the root.
func (tree *avlTree[V]) Remove(val V) error {
	changed, err := tree.rawRemove(val)
	if err != nil {
		tree.errorStack(err, "avl remove failed", zap.Any("value", val))
		return err
	}
	tree.rebalanceUpward(changed)
	if tree.root != nil {
		tree.balance(tree.root)
	}
	return nil
}

func (tree *avlTree[V]) rebalanceUpward(node *Node[V]) {
	for aux := node; aux != nil; aux = aux.parent {
		tree.balance(aux)
	}
}

/*
balance checks the balance factor (bf) of X.

b1: bf(X) > 1, left heavy.
(1) bf(L) > 0, left-left.
(2) bf(L) < 0, left-right.
(3) bf(L) == 0 only happens after a remove, handled as left-left.

b2: bf(X) < -1, right heavy. Mirror of b1.

b3: -1 <= bf(X) <= 1, nothing to do.
*/
func (tree *avlTree[V]) balance(x *Node[V]) {
	if bf := x.BalanceFactor(); /* b1 */ bf > 1 {
		if x.left.BalanceFactor() >= 0 {
			tree.rotateLeftLeft(x)
		} else {
			tree.rotateLeftRight(x)
		}
	} else if /* b2 */ bf < -1 {
		if x.right.BalanceFactor() <= 0 {
			tree.rotateRightRight(x)
		} else {
			tree.rotateRightLeft(x)
		}
	}
}

/*
	    [X]              [L]
	    /                /  \
	  [L]     ====>    [Ll] [X]
	  /  \                  /
	[Ll] [Lr]            [Lr]
*/
func (tree *avlTree[V]) rotateLeftLeft(x *Node[V]) *Node[V] {
	l := tree.rotateRight(x)
	tree.stats.IncreaseRotationCount(RotationLeftLeft)
	tree.debug("avl rotate", zap.String("rotation", string(RotationLeftLeft)),
		zap.Any("pivot", x.value), zap.Any("promoted", l.value))
	return l
}

/*
	  [X]             [X]             [C]
	  /               /               / \
	[L]     ====>   [C]     ====>   [L] [X]
	  \             /
	  [C]         [L]
*/
func (tree *avlTree[V]) rotateLeftRight(x *Node[V]) *Node[V] {
	tree.liftLeftRight(x)
	c := tree.rotateRight(x)
	tree.stats.IncreaseRotationCount(RotationLeftRight)
	tree.debug("avl rotate", zap.String("rotation", string(RotationLeftRight)),
		zap.Any("pivot", x.value), zap.Any("promoted", c.value))
	return c
}

func (tree *avlTree[V]) rotateRightRight(x *Node[V]) *Node[V] {
	r := tree.rotateLeft(x)
	tree.stats.IncreaseRotationCount(RotationRightRight)
	tree.debug("avl rotate", zap.String("rotation", string(RotationRightRight)),
		zap.Any("pivot", x.value), zap.Any("promoted", r.value))
	return r
}

func (tree *avlTree[V]) rotateRightLeft(x *Node[V]) *Node[V] {
	tree.liftRightLeft(x)
	c := tree.rotateLeft(x)
	tree.stats.IncreaseRotationCount(RotationRightLeft)
	tree.debug("avl rotate", zap.String("rotation", string(RotationRightLeft)),
		zap.Any("pivot", x.value), zap.Any("promoted", c.value))
	return c
}
