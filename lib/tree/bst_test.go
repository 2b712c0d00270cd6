package tree

import (
	"errors"
	"math"
	randv2 "math/rand/v2"
	"sort"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/infra"
)

func structureValidate[V infra.OrderedKey](t *testing.T, tree BinaryTree[V]) {
	require.NoError(t, Validate[V](tree,
		OrderViolationValidate[V],
		ParentLinkValidate[V],
	))
}

func TestBSTInsertAndFind(t *testing.T) {
	tree := NewBST[int]()
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, tree.Root())
	require.Equal(t, "", tree.String())

	for _, v := range []int{50, 30, 70, 20, 40, 60, 80, 65} {
		node, err := tree.Insert(v)
		require.NoError(t, err)
		require.Equal(t, v, node.Value())
	}
	require.Equal(t, int64(8), tree.Len())
	require.Equal(t, 50, tree.Root().Value())
	require.Equal(t, []int{20, 30, 40, 50, 60, 65, 70, 80}, tree.InOrder())
	require.Equal(t, "20,30,40,50,60,65,70,80", tree.String())
	structureValidate[int](t, tree)

	require.True(t, tree.Contains(65))
	require.False(t, tree.Contains(66))
	require.Nil(t, tree.Find(66))
	node := tree.Find(65)
	require.NotNil(t, node)
	require.Equal(t, 60, node.Parent().Value())

	// Duplicates return the existing node.
	dup, err := tree.Insert(65)
	require.NoError(t, err)
	require.Same(t, node, dup)
	require.Equal(t, int64(8), tree.Len())

	_, err = NewBST[float64]().Insert(math.NaN())
	require.ErrorIs(t, err, ErrNaNValue)
}

func TestBSTRemove(t *testing.T) {
	tree := NewBST[int]()
	for _, v := range []int{50, 30, 70, 20, 40, 60, 80, 65} {
		_, err := tree.Insert(v)
		require.NoError(t, err)
	}

	// Two children, the succ is the right child.
	require.NoError(t, tree.Remove(70))
	require.Equal(t, []int{20, 30, 40, 50, 60, 65, 80}, tree.InOrder())
	require.Equal(t, 80, tree.Root().Right().Value())
	structureValidate[int](t, tree)

	// Two children, the succ is deeper.
	require.NoError(t, tree.Remove(50))
	require.Equal(t, 60, tree.Root().Value())
	require.Equal(t, []int{20, 30, 40, 60, 65, 80}, tree.InOrder())
	require.Equal(t, 65, tree.Root().Right().Left().Value())
	structureValidate[int](t, tree)

	// One child, not root.
	require.NoError(t, tree.Remove(80))
	require.Equal(t, 65, tree.Root().Right().Value())
	require.Same(t, tree.Root(), tree.Root().Right().Parent())
	structureValidate[int](t, tree)

	// Leaf.
	require.NoError(t, tree.Remove(20))
	require.Nil(t, tree.Find(30).Left())
	structureValidate[int](t, tree)

	require.Equal(t, int64(4), tree.Len())
	require.Equal(t, []int{30, 40, 60, 65}, tree.InOrder())

	err := tree.Remove(1000)
	require.ErrorIs(t, err, ErrValueNotFound)
	var es infra.ErrorStack
	require.True(t, errors.As(err, &es))
	require.Equal(t, int64(4), tree.Len())

	for _, v := range []int{30, 40, 60, 65} {
		require.NoError(t, tree.Remove(v))
	}
	require.Nil(t, tree.Root())
	require.Equal(t, int64(0), tree.Len())
	require.ErrorIs(t, tree.Remove(1), ErrEmptyTree)
}

func TestBSTRemoveRootWithOneChild(t *testing.T) {
	tree := NewBST[int]()
	for _, v := range []int{1, 2, 3} {
		_, err := tree.Insert(v)
		require.NoError(t, err)
	}
	root := tree.Root()
	require.NoError(t, tree.Remove(1))
	require.Same(t, root, tree.Root())
	require.Equal(t, 2, root.Value())
	require.Equal(t, 3, root.Right().Value())
	require.Nil(t, root.Left())
	require.Equal(t, []int{2, 3}, tree.InOrder())
	structureValidate[int](t, tree)

	// Single root leaf.
	require.NoError(t, tree.Remove(3))
	require.NoError(t, tree.Remove(2))
	require.Nil(t, tree.Root())
}

func TestBSTDesc(t *testing.T) {
	tree := NewBST[string](WithTreeDesc())
	for _, v := range []string{"m", "c", "x", "a", "e"} {
		_, err := tree.Insert(v)
		require.NoError(t, err)
	}
	require.Equal(t, []string{"x", "m", "e", "c", "a"}, tree.InOrder())
	require.Equal(t, "x,m,e,c,a", tree.String())
	require.True(t, tree.Contains("e"))
	require.NoError(t, tree.Remove("m"))
	require.Equal(t, []string{"x", "e", "c", "a"}, tree.InOrder())
	structureValidate[string](t, tree)
}

func TestBSTForeachAndRelease(t *testing.T) {
	tree := NewBST[int]()
	for _, v := range []int{4, 2, 6, 1, 3, 5, 7} {
		_, err := tree.Insert(v)
		require.NoError(t, err)
	}

	visited := make([]int, 0, 3)
	tree.Foreach(func(idx int64, node *Node[int]) bool {
		require.Equal(t, int64(len(visited)), idx)
		visited = append(visited, node.Value())
		return idx < 2
	})
	require.Equal(t, []int{1, 2, 3}, visited)

	root := tree.Root()
	left := root.Left()
	tree.Release()
	require.Nil(t, tree.Root())
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, root.Left())
	require.Nil(t, left.Parent())
	require.Empty(t, tree.InOrder())
	tree.Release()
}

func TestBSTRandomInsertAndRemove(t *testing.T) {
	tree := NewBST[int]()
	values := lo.Uniq(lo.Times(512, func(_ int) int {
		return randv2.IntN(4096)
	}))
	for _, v := range values {
		_, err := tree.Insert(v)
		require.NoError(t, err)
	}
	expected := append([]int(nil), values...)
	sort.Ints(expected)
	require.Equal(t, expected, tree.InOrder())
	structureValidate[int](t, tree)

	removed := lo.Shuffle(append([]int(nil), values...))[:len(values)/2]
	for _, v := range removed {
		require.NoError(t, tree.Remove(v))
		require.False(t, tree.Contains(v))
	}
	require.Equal(t, lo.Without(expected, removed...), tree.InOrder())
	structureValidate[int](t, tree)
}
