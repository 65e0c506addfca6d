package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xalgo/lib/infra"
)

// NewAVLTreeMap returns a map kept height balanced: the heights of the two
// subtrees of every node differ by at most one.
func NewAVLTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOpt[K, V]) *TreeMap[K, V] {
	return newTreeMap[K, V](AVLStrategy[Item[K, V]]{}, opts...)
}

// AVLStrategy rebalances on structural changes only, plain lookups never
// move nodes.
type AVLStrategy[E any] struct{}

func (AVLStrategy[E]) Name() string { return "avl" }

func (s AVLStrategy[E]) OnInsert(tree *LinkedBinaryTree[E], p Position[E]) {
	s.rebalance(tree, p.node)
}

func (s AVLStrategy[E]) OnDelete(tree *LinkedBinaryTree[E], p Position[E]) {
	s.rebalance(tree, p.node)
}

func (AVLStrategy[E]) OnAccess(*LinkedBinaryTree[E], Position[E]) {}

// A missing child has height 0, a leaf has height 1.
func avlHeight[E any](n *node[E]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func recomputeHeight[E any](n *node[E]) {
	n.height = 1 + max(avlHeight(n.left), avlHeight(n.right))
}

func isAVLBalanced[E any](n *node[E]) bool {
	diff := avlHeight(n.left) - avlHeight(n.right)
	return -1 <= diff && diff <= 1
}

// tallChild returns the child with the greater height, the favored side wins
// a tie.
func tallChild[E any](n *node[E], favorLeft bool) *node[E] {
	bias := 0
	if favorLeft {
		bias = 1
	}
	if avlHeight(n.left)+bias > avlHeight(n.right) {
		return n.left
	}
	return n.right
}

// tallGrandchild prefers the grandchild aligned with the tall child, so a
// single rotation is enough whenever possible.
func tallGrandchild[E any](n *node[E]) *node[E] {
	child := tallChild(n, false)
	return tallChild(child, child == n.left)
}

/*
Walk upward from n. At the first unbalanced node Z, restructure around
its tall grandchild X, then fix the heights bottom-up.

	      Z                    Y
	     / \                 /   \
	    Y   T3   ======>    X     Z
	   / \                 / \   / \
	  X   T2              T0 T1 T2  T3
	 / \
	T0  T1

Stop as soon as a node keeps its old height, no ancestor can change.
*/
func (AVLStrategy[E]) rebalance(tree *LinkedBinaryTree[E], n *node[E]) {
	for n != nil {
		// trivially 0 for a new leaf
		oldHeight := n.height
		if !isAVLBalanced(n) {
			n = tree.restructure(tallGrandchild(n))
			recomputeHeight(n.left)
			recomputeHeight(n.right)
			tree.debug("avl restructure", zap.Any("root", n.element))
		}
		recomputeHeight(n)
		if n.height == oldHeight {
			return
		}
		n = n.parent
	}
}
