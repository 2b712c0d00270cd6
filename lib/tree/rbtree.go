package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

var _ BinaryTree[int] = (*rbTree[int])(nil)

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
//
// Only the insert fix-up is provided. Remove always returns
// ErrRemoveUnsupported and leaves the tree untouched.
type rbTree[V infra.OrderedKey] struct {
	*bsTree[V]
}

func NewRBTree[V infra.OrderedKey](opts ...TreeOption) BinaryTree[V] {
	return &rbTree[V]{
		bsTree: newBSTree[V](kindRBTree, opts...),
	}
}

// i1: Empty rbtree, the new node becomes the root and is painted black.
// i2: Otherwise the new node is painted red and the fix-up runs.
func (tree *rbTree[V]) Insert(val V) (*Node[V], error) {
	if /* NaN */ val != val {
		return nil, infra.WrapErrorStackWithMessage(ErrNaNValue, "rbtree insert")
	}
	node, inserted := tree.rawInsert(val)
	if !inserted {
		return node, nil
	}
	if /* i1 */ node == tree.root {
		node.color = Black
	} else /* i2 */ {
		node.color = Red
	}
	tree.balance(node)
	return node, nil
}

func (tree *rbTree[V]) Remove(val V) error {
	tree.warn("rbtree remove is not supported", zap.Any("value", val))
	return infra.WrapErrorStackWithMessage(ErrRemoveUnsupported, "rbtree remove")
}

func (tree *rbTree[V]) paint(node *Node[V], color RBColor) {
	if node.color == color {
		return
	}
	node.color = color
	tree.stats.IncreaseRecolorCount()
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: X is the root, or X's parent P is black, or X is black.
Nothing to fix.

im2: Both the parent P and the uncle U are red. (red-violation)
Repaint P and U into black. If the grandpa G is the root, it stays
black and the fix-up stops. Otherwise G is repainted red and may be
still red-violation. Continue with G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: The parent P is red but the uncle U is black or absent.
Rotate G by the shape of G -> P -> X, the promoted node swaps
its color with G. The promoted node becomes the root if G was
the root. Continue with the promoted node.

left-left:

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]

left-right, X is lifted into P's slot first:

	  [G]                 [G]                [X]
	  / \    lift(P)      / \   rotate(G)    / \
	<P> [U]  ========>  <X> [U] ========>  <P> <G>
	  \                 /                        \
	  <X>             <P>                        [U]

right-right and right-left are the mirrors.
*/
func (tree *rbTree[V]) balance(x *Node[V]) {
	// Unlike the recursive form, a black promoted node stops the loop.
	for /* im1 */ !x.IsRoot() && isRed[V](x) && isRed[V](x.parent) {
		gp := x.Grandpa()
		if gp == nil {
			// The red parent is the root, repaint it.
			tree.paint(x.parent, Black)
			return
		}

		if /* im2 */ uncle := x.Uncle(); isRed[V](uncle) {
			tree.paint(uncle, Black)
			tree.paint(x.parent, Black)
			if gp.IsRoot() {
				return
			}
			tree.paint(gp, Red)
			x = gp
			continue
		}

		var promoted *Node[V]
		if /* im3 */ x.parent.Direction() == Left {
			if x.Direction() == Left {
				promoted = tree.leftLeftRotation(gp)
			} else {
				promoted = tree.leftRightRotation(gp)
			}
		} else {
			if x.Direction() == Right {
				promoted = tree.rightRightRotation(gp)
			} else {
				promoted = tree.rightLeftRotation(gp)
			}
		}

		if promoted.IsRoot() {
			tree.root = promoted
			tree.paint(promoted, Black)
		}
		x = promoted
	}
}

func (tree *rbTree[V]) leftLeftRotation(gp *Node[V]) *Node[V] {
	p := tree.rotateRight(gp)
	tree.swapColors(p, gp)
	tree.stats.IncreaseRotationCount(RotationLeftLeft)
	tree.debug("rbtree rotate", zap.String("rotation", string(RotationLeftLeft)),
		zap.Any("pivot", gp.value), zap.Any("promoted", p.value))
	return p
}

func (tree *rbTree[V]) leftRightRotation(gp *Node[V]) *Node[V] {
	tree.liftLeftRight(gp)
	c := tree.rotateRight(gp)
	tree.swapColors(c, gp)
	tree.stats.IncreaseRotationCount(RotationLeftRight)
	tree.debug("rbtree rotate", zap.String("rotation", string(RotationLeftRight)),
		zap.Any("pivot", gp.value), zap.Any("promoted", c.value))
	return c
}

func (tree *rbTree[V]) rightRightRotation(gp *Node[V]) *Node[V] {
	p := tree.rotateLeft(gp)
	tree.swapColors(p, gp)
	tree.stats.IncreaseRotationCount(RotationRightRight)
	tree.debug("rbtree rotate", zap.String("rotation", string(RotationRightRight)),
		zap.Any("pivot", gp.value), zap.Any("promoted", p.value))
	return p
}

func (tree *rbTree[V]) rightLeftRotation(gp *Node[V]) *Node[V] {
	tree.liftRightLeft(gp)
	c := tree.rotateLeft(gp)
	tree.swapColors(c, gp)
	tree.stats.IncreaseRotationCount(RotationRightLeft)
	tree.debug("rbtree rotate", zap.String("rotation", string(RotationRightLeft)),
		zap.Any("pivot", gp.value), zap.Any("promoted", c.value))
	return c
}

func (tree *rbTree[V]) swapColors(n1, n2 *Node[V]) {
	c1, c2 := n1.color, n2.color
	tree.paint(n1, c2)
	tree.paint(n2, c1)
}
