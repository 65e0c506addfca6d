package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraversals(t *testing.T) {
	tree, _ := buildSampleTree(t)

	testcases := []struct {
		name     string
		got      []string
		expected []string
	}{
		{"preorder", elementsOf(tree.Preorder()), []string{"a", "b", "d", "e", "c", "f"}},
		{"postorder", elementsOf(tree.Postorder()), []string{"d", "e", "b", "f", "c", "a"}},
		{"inorder", elementsOf(tree.Inorder()), []string{"d", "b", "e", "a", "c", "f"}},
		{"breadth first", elementsOf(tree.BreadthFirst()), []string{"a", "b", "c", "d", "e", "f"}},
		{"positions", elementsOf(tree.Positions()), []string{"a", "b", "d", "e", "c", "f"}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.expected, tc.got)
		})
	}

	elements := make([]string, 0, 6)
	for e := range tree.Elements() {
		elements = append(elements, e)
	}
	require.Equal(t, []string{"a", "b", "d", "e", "c", "f"}, elements)
}

func TestTraversals_EarlyStop(t *testing.T) {
	tree, _ := buildSampleTree(t)

	seqs := map[string]func() []string{
		"preorder": func() []string {
			out := []string{}
			for p := range tree.Preorder() {
				out = append(out, p.Element())
				if len(out) == 2 {
					break
				}
			}
			return out
		},
		"postorder": func() []string {
			out := []string{}
			for p := range tree.Postorder() {
				out = append(out, p.Element())
				if len(out) == 2 {
					break
				}
			}
			return out
		},
		"inorder": func() []string {
			out := []string{}
			for p := range tree.Inorder() {
				out = append(out, p.Element())
				if len(out) == 2 {
					break
				}
			}
			return out
		},
		"breadth first": func() []string {
			out := []string{}
			for p := range tree.BreadthFirst() {
				out = append(out, p.Element())
				if len(out) == 2 {
					break
				}
			}
			return out
		},
	}
	expected := map[string][]string{
		"preorder":      {"a", "b"},
		"postorder":     {"d", "e"},
		"inorder":       {"d", "b"},
		"breadth first": {"a", "b"},
	}
	for name, seq := range seqs {
		require.Equal(t, expected[name], seq(), name)
	}
}

func TestTraversals_Empty(t *testing.T) {
	tree := NewLinkedBinaryTree[int]()
	require.Empty(t, elementsOf(tree.Preorder()))
	require.Empty(t, elementsOf(tree.Postorder()))
	require.Empty(t, elementsOf(tree.Inorder()))
	require.Empty(t, elementsOf(tree.BreadthFirst()))
}

func TestTraversals_Skewed(t *testing.T) {
	// A right spine exercises the explicit stacks.
	tree := NewLinkedBinaryTree[int]()
	p, _ := tree.AddRoot(0)
	expected := []int{0}
	for i := 1; i < 1000; i++ {
		p, _ = tree.AddRight(p, i)
		expected = append(expected, i)
	}
	require.Equal(t, expected, elementsOf(tree.Inorder()))
	require.Equal(t, expected, elementsOf(tree.Preorder()))
	require.Equal(t, expected, elementsOf(tree.BreadthFirst()))
	post := elementsOf(tree.Postorder())
	require.Equal(t, 999, post[0])
	require.Equal(t, 0, post[len(post)-1])
	require.Equal(t, 999, tree.TreeHeight())
}
