package tree

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

func elementsOf[E any](seq iter.Seq[Position[E]]) []E {
	out := make([]E, 0, 8)
	for p := range seq {
		out = append(out, p.Element())
	}
	return out
}

/*
	      a
	     / \
	    b   c
	   / \   \
	  d   e   f
*/
func buildSampleTree(t *testing.T) (*LinkedBinaryTree[string], map[string]Position[string]) {
	tree := NewLinkedBinaryTree[string]()
	positions := make(map[string]Position[string])

	var err error
	positions["a"], err = tree.AddRoot("a")
	require.NoError(t, err)
	positions["b"], err = tree.AddLeft(positions["a"], "b")
	require.NoError(t, err)
	positions["c"], err = tree.AddRight(positions["a"], "c")
	require.NoError(t, err)
	positions["d"], err = tree.AddLeft(positions["b"], "d")
	require.NoError(t, err)
	positions["e"], err = tree.AddRight(positions["b"], "e")
	require.NoError(t, err)
	positions["f"], err = tree.AddRight(positions["c"], "f")
	require.NoError(t, err)
	require.Equal(t, int64(6), tree.Len())
	return tree, positions
}

func TestLinkedBinaryTree_AddRoot(t *testing.T) {
	tree := NewLinkedBinaryTree[int]()
	require.True(t, tree.IsEmpty())
	require.True(t, tree.Root().IsNil())
	require.Equal(t, 0, tree.TreeHeight())

	p, err := tree.AddRoot(1)
	require.NoError(t, err)
	require.Equal(t, int64(1), tree.Len())
	require.Equal(t, p, tree.Root())

	_, err = tree.AddRoot(2)
	require.ErrorIs(t, err, ErrStructuralPrecondition)
	require.Equal(t, int64(1), tree.Len())
}

func TestLinkedBinaryTree_AddChildOccupied(t *testing.T) {
	tree, positions := buildSampleTree(t)

	_, err := tree.AddLeft(positions["a"], "x")
	require.ErrorIs(t, err, ErrStructuralPrecondition)
	_, err = tree.AddRight(positions["b"], "x")
	require.ErrorIs(t, err, ErrStructuralPrecondition)
	require.Equal(t, int64(6), tree.Len())

	p, err := tree.AddLeft(positions["c"], "g")
	require.NoError(t, err)
	parent, err := tree.Parent(p)
	require.NoError(t, err)
	require.Equal(t, positions["c"], parent)
}

func TestLinkedBinaryTree_Navigation(t *testing.T) {
	tree, positions := buildSampleTree(t)

	parent, err := tree.Parent(positions["a"])
	require.NoError(t, err)
	require.True(t, parent.IsNil())

	left, err := tree.Left(positions["b"])
	require.NoError(t, err)
	require.Equal(t, "d", left.Element())

	right, err := tree.Right(positions["c"])
	require.NoError(t, err)
	require.Equal(t, "f", right.Element())

	sibling, err := tree.Sibling(positions["b"])
	require.NoError(t, err)
	require.Equal(t, positions["c"], sibling)
	sibling, err = tree.Sibling(positions["f"])
	require.NoError(t, err)
	require.True(t, sibling.IsNil())
	sibling, err = tree.Sibling(positions["a"])
	require.NoError(t, err)
	require.True(t, sibling.IsNil())

	children, err := tree.Children(positions["b"])
	require.NoError(t, err)
	require.Equal(t, []Position[string]{positions["d"], positions["e"]}, children)
	children, err = tree.Children(positions["f"])
	require.NoError(t, err)
	require.Empty(t, children)

	num, err := tree.NumChildren(positions["c"])
	require.NoError(t, err)
	require.Equal(t, 1, num)

	isRoot, err := tree.IsRoot(positions["a"])
	require.NoError(t, err)
	require.True(t, isRoot)
	isLeaf, err := tree.IsLeaf(positions["e"])
	require.NoError(t, err)
	require.True(t, isLeaf)
	isLeaf, err = tree.IsLeaf(positions["c"])
	require.NoError(t, err)
	require.False(t, isLeaf)

	depth, err := tree.Depth(positions["d"])
	require.NoError(t, err)
	require.Equal(t, 2, depth)
	height, err := tree.Height(positions["a"])
	require.NoError(t, err)
	require.Equal(t, 2, height)
	height, err = tree.Height(positions["f"])
	require.NoError(t, err)
	require.Equal(t, 0, height)
	require.Equal(t, 2, tree.TreeHeight())

	e, err := tree.Element(positions["e"])
	require.NoError(t, err)
	require.Equal(t, "e", e)
}

func TestLinkedBinaryTree_Replace(t *testing.T) {
	tree, positions := buildSampleTree(t)
	old, err := tree.Replace(positions["e"], "E")
	require.NoError(t, err)
	require.Equal(t, "e", old)
	require.Equal(t, "E", positions["e"].Element())
	require.Equal(t, int64(6), tree.Len())
}

func TestLinkedBinaryTree_Delete(t *testing.T) {
	tree, positions := buildSampleTree(t)

	_, err := tree.Delete(positions["b"])
	require.ErrorIs(t, err, ErrStructuralPrecondition)

	// c has the single child f, f takes its place.
	e, err := tree.Delete(positions["c"])
	require.NoError(t, err)
	require.Equal(t, "c", e)
	require.Equal(t, int64(5), tree.Len())
	require.False(t, positions["c"].Valid())
	// A dead position reads as the zero value.
	require.Equal(t, "", positions["c"].Element())
	right, err := tree.Right(positions["a"])
	require.NoError(t, err)
	require.Equal(t, positions["f"], right)
	parent, err := tree.Parent(positions["f"])
	require.NoError(t, err)
	require.Equal(t, positions["a"], parent)

	// Using a deleted position fails fast.
	_, err = tree.Element(positions["c"])
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = tree.Delete(positions["c"])
	require.ErrorIs(t, err, ErrInvalidPosition)

	// Leaf removal.
	_, err = tree.Delete(positions["d"])
	require.NoError(t, err)
	left, err := tree.Left(positions["b"])
	require.NoError(t, err)
	require.True(t, left.IsNil())

	require.Equal(t, []string{"a", "b", "e", "f"}, elementsOf(tree.Preorder()))
}

func TestLinkedBinaryTree_DeleteRoot(t *testing.T) {
	tree := NewLinkedBinaryTree[int]()
	root, err := tree.AddRoot(1)
	require.NoError(t, err)
	child, err := tree.AddLeft(root, 2)
	require.NoError(t, err)

	_, err = tree.Delete(root)
	require.NoError(t, err)
	require.Equal(t, child, tree.Root())
	isRoot, err := tree.IsRoot(child)
	require.NoError(t, err)
	require.True(t, isRoot)

	_, err = tree.Delete(child)
	require.NoError(t, err)
	require.True(t, tree.IsEmpty())
	require.True(t, tree.Root().IsNil())
}

func TestLinkedBinaryTree_ForeignPosition(t *testing.T) {
	tree1, positions := buildSampleTree(t)
	tree2, _ := buildSampleTree(t)

	_, err := tree2.Element(positions["a"])
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = tree2.AddLeft(positions["f"], "x")
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = tree1.Parent(Position[string]{})
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.Equal(t, int64(6), tree2.Len())
}

func TestLinkedBinaryTree_Attach(t *testing.T) {
	tree := NewLinkedBinaryTree[string]()
	root, err := tree.AddRoot("r")
	require.NoError(t, err)

	leftTree := NewLinkedBinaryTree[string]()
	leftRoot, err := leftTree.AddRoot("l")
	require.NoError(t, err)
	leftLeaf, err := leftTree.AddLeft(leftRoot, "ll")
	require.NoError(t, err)

	rightTree := NewLinkedBinaryTree[string]()
	_, err = rightTree.AddRoot("rr")
	require.NoError(t, err)

	require.ErrorIs(t, tree.Attach(root, tree, rightTree), ErrStructuralPrecondition)
	require.ErrorIs(t, tree.Attach(root, leftTree, leftTree), ErrStructuralPrecondition)

	require.NoError(t, tree.Attach(root, leftTree, rightTree))
	require.Equal(t, int64(4), tree.Len())
	require.True(t, leftTree.IsEmpty())
	require.True(t, leftTree.Root().IsNil())
	require.True(t, rightTree.IsEmpty())
	require.Equal(t, []string{"ll", "l", "r", "rr"}, elementsOf(tree.Inorder()))

	// Positions issued by the donor are bound to the donor.
	_, err = tree.Element(leftRoot)
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.False(t, leftRoot.Valid())
	require.False(t, leftLeaf.Valid())

	// The emptied donor cannot reach the grafted nodes anymore.
	_, err = leftTree.Element(leftRoot)
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = leftTree.Delete(leftLeaf)
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = leftTree.AddRight(leftRoot, "lr")
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.Equal(t, int64(0), leftTree.Len())
	require.Equal(t, int64(4), tree.Len())
	require.Equal(t, []string{"ll", "l", "r", "rr"}, elementsOf(tree.Inorder()))

	// The receiver owns the grafted nodes.
	l, err := tree.Left(root)
	require.NoError(t, err)
	require.True(t, l.Valid())
	ll, err := tree.Left(l)
	require.NoError(t, err)
	e, err := tree.Delete(ll)
	require.NoError(t, err)
	require.Equal(t, "ll", e)
	require.Equal(t, int64(3), tree.Len())
	require.Equal(t, []string{"l", "r", "rr"}, elementsOf(tree.Inorder()))

	// Not a leaf anymore.
	require.ErrorIs(t, tree.Attach(root, nil, nil), ErrStructuralPrecondition)
}

func TestLinkedBinaryTree_Rotate(t *testing.T) {
	/*
		     y              x
		    / \            / \
		   x   C   ==>    A   y
		  / \                / \
		 A   B              B   C
	*/
	tree := NewLinkedBinaryTree[string]()
	y, _ := tree.AddRoot("y")
	x, _ := tree.AddLeft(y, "x")
	_, _ = tree.AddRight(y, "C")
	_, _ = tree.AddLeft(x, "A")
	_, _ = tree.AddRight(x, "B")

	require.ErrorIs(t, tree.Rotate(y), ErrStructuralPrecondition)
	require.NoError(t, tree.Rotate(x))
	require.Equal(t, x, tree.Root())
	require.Equal(t, []string{"x", "A", "y", "B", "C"}, elementsOf(tree.Preorder()))
	require.Equal(t, []string{"A", "x", "B", "y", "C"}, elementsOf(tree.Inorder()))

	// And back.
	require.NoError(t, tree.Rotate(y))
	require.Equal(t, []string{"y", "x", "A", "B", "C"}, elementsOf(tree.Preorder()))
}

func TestLinkedBinaryTree_Restructure(t *testing.T) {
	testcases := []struct {
		name     string
		build    func(tree *LinkedBinaryTree[int]) Position[int]
		expected []int
	}{
		{
			name: "left-left single rotation",
			build: func(tree *LinkedBinaryTree[int]) Position[int] {
				z, _ := tree.AddRoot(3)
				y, _ := tree.AddLeft(z, 2)
				x, _ := tree.AddLeft(y, 1)
				return x
			},
			expected: []int{2, 1, 3},
		},
		{
			name: "right-right single rotation",
			build: func(tree *LinkedBinaryTree[int]) Position[int] {
				z, _ := tree.AddRoot(1)
				y, _ := tree.AddRight(z, 2)
				x, _ := tree.AddRight(y, 3)
				return x
			},
			expected: []int{2, 1, 3},
		},
		{
			name: "left-right double rotation",
			build: func(tree *LinkedBinaryTree[int]) Position[int] {
				z, _ := tree.AddRoot(3)
				y, _ := tree.AddLeft(z, 1)
				x, _ := tree.AddRight(y, 2)
				return x
			},
			expected: []int{2, 1, 3},
		},
		{
			name: "right-left double rotation",
			build: func(tree *LinkedBinaryTree[int]) Position[int] {
				z, _ := tree.AddRoot(1)
				y, _ := tree.AddRight(z, 3)
				x, _ := tree.AddLeft(y, 2)
				return x
			},
			expected: []int{2, 1, 3},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewLinkedBinaryTree[int]()
			x := tc.build(tree)
			middle, err := tree.Restructure(x)
			require.NoError(tt, err)
			require.Equal(tt, tree.Root(), middle)
			require.Equal(tt, 2, middle.Element())
			require.Equal(tt, tc.expected, elementsOf(tree.Preorder()))
			require.Equal(tt, []int{1, 2, 3}, elementsOf(tree.Inorder()))
		})
	}

	tree := NewLinkedBinaryTree[int]()
	root, _ := tree.AddRoot(1)
	child, _ := tree.AddLeft(root, 0)
	_, err := tree.Restructure(child)
	require.ErrorIs(t, err, ErrStructuralPrecondition)
}

func TestLinkedBinaryTree_Clear(t *testing.T) {
	tree, positions := buildSampleTree(t)
	tree.Clear()
	require.True(t, tree.IsEmpty())
	require.True(t, tree.Root().IsNil())
	for _, p := range positions {
		require.False(t, p.Valid())
	}
	_, err := tree.AddRoot("new")
	require.NoError(t, err)
}

func TestPosition_Identity(t *testing.T) {
	tree := NewLinkedBinaryTree[int]()
	root, _ := tree.AddRoot(7)
	left, _ := tree.AddLeft(root, 7)

	// Same element, different nodes.
	require.NotEqual(t, root, left)
	again, err := tree.Parent(left)
	require.NoError(t, err)
	require.True(t, root == again)

	var nilPos Position[int]
	require.True(t, nilPos.IsNil())
	require.False(t, nilPos.Valid())
	require.Equal(t, 0, nilPos.Element())
}
