package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

var (
	_ BinaryTree[int]  = (*bsTree[int])(nil)
	_ orderedTree[int] = (*bsTree[int])(nil)
)

// bsTree is the unbalanced binary search tree.
// The balancing strategies are built on its raw
// insert and remove primitives.
type bsTree[V infra.OrderedKey] struct {
	root   *Node[V]
	count  int64
	cmp    infra.OrderedKeyComparator[V]
	logger xlog.XLogger
	stats  *treeStats
}

func newBSTree[V infra.OrderedKey](kind string, opts ...TreeOption) *bsTree[V] {
	cfg := newTreeConfig(opts...)
	tree := &bsTree[V]{
		cmp: infra.AscOrderedKeyComparator[V](),
	}
	if cfg.isDesc {
		tree.cmp = infra.DescOrderedKeyComparator[V]()
	}
	if cfg.logger != nil {
		tree.logger = cfg.logger.Named(kind)
	}
	if cfg.isStatsEnabled {
		tree.stats = newTreeStats(cfg.meterProvider, kind, cfg.statsName)
	}
	return tree
}

func NewBST[V infra.OrderedKey](opts ...TreeOption) BinaryTree[V] {
	return newBSTree[V](kindBST, opts...)
}

func (tree *bsTree[V]) Len() int64 {
	return tree.count
}

func (tree *bsTree[V]) Root() *Node[V] {
	return tree.root
}

func (tree *bsTree[V]) comparator() infra.OrderedKeyComparator[V] {
	return tree.cmp
}

func (tree *bsTree[V]) debug(msg string, fields ...zap.Field) {
	if tree.logger == nil {
		return
	}
	tree.logger.Debug(msg, fields...)
}

func (tree *bsTree[V]) warn(msg string, fields ...zap.Field) {
	if tree.logger == nil {
		return
	}
	tree.logger.Warn(msg, fields...)
}

func (tree *bsTree[V]) errorStack(err error, msg string, fields ...zap.Field) {
	if tree.logger == nil {
		return
	}
	tree.logger.ErrorStack(err, msg, fields...)
}

// rawInsert places val as a new leaf. If val is present already,
// the existing node is returned and inserted is false.
func (tree *bsTree[V]) rawInsert(val V) (node *Node[V], inserted bool) {
	if tree.root == nil {
		tree.root = NewNode[V](val)
		tree.count++
		tree.stats.RecordNodeCount(1)
		return tree.root, true
	}

	var x, y *Node[V] = tree.root, nil
	res := int64(0)
	for x != nil {
		y = x
		if res = tree.cmp(val, x.value); /* equal */ res == 0 {
			return x, false
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	node = NewNode[V](val)
	if res < 0 {
		y.SetLeft(node)
	} else {
		y.SetRight(node)
	}
	tree.count++
	tree.stats.RecordNodeCount(1)
	return node, true
}

/*
rawRemove unlinks the node holding val and returns the deepest node
whose subtree shape changed, the rebalance starts from there.

r1: X is a leaf, cut it off from its parent.

r2: X has two children. Borrow the succ S value, then unlink S.
S has no left child, its right subtree takes its place.

	  |                    |
	  X                    S
	 / \                  / \
	L   R   copy(S, X)   L   R
	   /    =========>      /
	  P                    P
	 /                    /
	S                    Sr
	 \
	 Sr

r3: X has one child C. C takes X's place, if X is the root, C is
copied into X instead.
*/
func (tree *bsTree[V]) rawRemove(val V) (changed *Node[V], err error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "raw remove")
	}
	x := tree.Find(val)
	if x == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrValueNotFound, "raw remove")
	}

	p := x.parent
	switch {
	case /* r1 */ x.IsLeaf():
		if p == nil {
			tree.root = nil
		} else {
			p.RemoveChild(x)
		}
		changed = p
	case /* r2 */ x.left != nil && x.right != nil:
		s := x.right.Minimum()
		sr := s.right
		s.SetRight(nil)
		if s == x.right {
			x.SetRight(sr)
			changed = x
		} else {
			changed = s.parent
			changed.SetLeft(sr)
		}
		x.SetValue(s.value)
	default /* r3 */ :
		c := x.left
		if c == nil {
			c = x.right
		}
		if p == nil {
			CopyNode(c, x)
			c.left, c.right = nil, nil
			changed = x
		} else {
			x.RemoveChild(c)
			p.ReplaceChild(x, c)
			changed = p
		}
	}
	tree.count--
	tree.stats.RecordNodeCount(-1)
	return changed, nil
}

func (tree *bsTree[V]) Insert(val V) (*Node[V], error) {
	if /* NaN */ val != val {
		return nil, infra.WrapErrorStackWithMessage(ErrNaNValue, "insert")
	}
	node, _ := tree.rawInsert(val)
	return node, nil
}

func (tree *bsTree[V]) Remove(val V) error {
	if _, err := tree.rawRemove(val); err != nil {
		tree.errorStack(err, "bst remove failed", zap.Any("value", val))
		return err
	}
	return nil
}

func (tree *bsTree[V]) Find(val V) *Node[V] {
	for aux := tree.root; aux != nil; {
		res := tree.cmp(val, aux.value)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *bsTree[V]) Contains(val V) bool {
	return tree.Find(val) != nil
}

// Inorder traversal to implement the DFS.
func (tree *bsTree[V]) Foreach(action func(idx int64, node *Node[V]) bool) {
	aux := tree.root
	if tree.count <= 0 || aux == nil {
		return
	}

	stack := make([]*Node[V], 0, tree.count>>1+1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (tree *bsTree[V]) InOrder() []V {
	res := make([]V, 0, tree.count)
	tree.Foreach(func(_ int64, node *Node[V]) bool {
		res = append(res, node.value)
		return true
	})
	return res
}

func (tree *bsTree[V]) String() string {
	return joinValues(tree.InOrder())
}

// Release unlinks every node, the tree becomes empty.
func (tree *bsTree[V]) Release() {
	aux := tree.root
	tree.root = nil
	if aux == nil {
		tree.count = 0
		return
	}

	stack := make([]*Node[V], 0, tree.count>>1+1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		aux.parent, aux.left, aux.right = nil, nil, nil
	}
	tree.stats.RecordNodeCount(-tree.count)
	tree.count = 0
}

func (tree *bsTree[V]) transplant(p, old, replacement *Node[V]) {
	if p == nil {
		tree.root = replacement
		replacement.parent = nil
		return
	}
	if !p.ReplaceChild(old, replacement) {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] transplant into a parent that does not own the node")
	}
}

/*
rotateRight promotes X's left child L.

		 |                         |
		 X                         L
		/ \     rotateRight(X)    / \
	   L   R    ============>    Ll  X
	  / \                           / \
	Ll   Lr                       Lr   R
*/
func (tree *bsTree[V]) rotateRight(x *Node[V]) *Node[V] {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] right rotate node x is nil or x.left is nil")
	}

	p, l := x.parent, x.left
	x.SetLeft(nil)
	lr := l.right
	l.SetRight(nil)
	x.SetLeft(lr)
	tree.transplant(p, x, l)
	l.SetRight(x)
	return l
}

/*
rotateLeft promotes X's right child R.

		 |                         |
		 X                         R
		/ \     rotateLeft(X)     / \
	   L   R    ============>    X   Rr
		  / \                   / \
		Rl   Rr                L   Rl
*/
func (tree *bsTree[V]) rotateLeft(x *Node[V]) *Node[V] {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] left rotate node x is nil or x.right is nil")
	}

	p, r := x.parent, x.right
	x.SetRight(nil)
	rl := r.left
	r.SetLeft(nil)
	x.SetRight(rl)
	tree.transplant(p, x, r)
	r.SetLeft(x)
	return r
}

/*
liftLeftRight moves the grandchild C into X's left slot, the
left-right shape becomes a left-left one.

	    X               X
	   /               /
	  L      ====>    C
	   \             /
	    C           L
	   /             \
	 Cl              Cl
*/
func (tree *bsTree[V]) liftLeftRight(x *Node[V]) {
	l := x.left
	if l == nil || l.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] left-right shape without grandchild")
	}
	x.SetLeft(nil)
	c := l.right
	l.SetRight(nil)
	cl := c.left
	c.SetLeft(nil)
	l.SetRight(cl)
	c.SetLeft(l)
	x.SetLeft(c)
}

// liftRightLeft mirrors liftLeftRight.
func (tree *bsTree[V]) liftRightLeft(x *Node[V]) {
	r := x.right
	if r == nil || r.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] right-left shape without grandchild")
	}
	x.SetRight(nil)
	c := r.left
	r.SetLeft(nil)
	cr := c.right
	c.SetRight(nil)
	r.SetLeft(cr)
	c.SetRight(r)
	x.SetRight(c)
}
