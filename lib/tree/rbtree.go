package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xalgo/lib/infra"
)

// NewRedBlackTreeMap returns a map balanced by node colors.
func NewRedBlackTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOpt[K, V]) *TreeMap[K, V] {
	return newTreeMap[K, V](RedBlackStrategy[Item[K, V]]{}, opts...)
}

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red leaf,
//   because otherwise its NIL child would sit at a different black depth.

type RedBlackStrategy[E any] struct{}

func (RedBlackStrategy[E]) Name() string { return "rbtree" }

func (s RedBlackStrategy[E]) OnInsert(tree *LinkedBinaryTree[E], p Position[E]) {
	s.resolveRed(tree, p.node)
}

func (RedBlackStrategy[E]) OnAccess(*LinkedBinaryTree[E], Position[E]) {}

func isRed[E any](n *node[E]) bool {
	return n != nil && n.color == Red
}

func isBlack[E any](n *node[E]) bool {
	return !isRed(n)
}

func isRedLeaf[E any](n *node[E]) bool {
	return isRed(n) && n.left == nil && n.right == nil
}

// redChild returns a red child of n in either position, nil if none.
func redChild[E any](n *node[E]) *node[E] {
	if isRed(n.left) {
		return n.left
	}
	if isRed(n.right) {
		return n.right
	}
	return nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: X is the root, repaint it black.

im2: X's parent P is black, nothing to do.

im3: P is red and the uncle U is black or NIL (misshapen 4-node).
Trinode restructure X, P, G. The middle one becomes black, the other two red.

	    [G]                 [P]
	    / \   restructure   / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]

im4: P and U are both red (overfull 5-node).
Repaint G red and its children black, then continue at G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>
*/
func (RedBlackStrategy[E]) resolveRed(tree *LinkedBinaryTree[E], x *node[E]) {
	for x != nil {
		if /* im1 */ x.parent == nil {
			x.color = Black
			return
		}
		parent := x.parent
		if /* im2 */ isBlack(parent) {
			return
		}
		if /* im3 */ uncle := parent.sibling(); isBlack(uncle) {
			middle := tree.restructure(x)
			middle.color = Black
			middle.left.color = Red
			middle.right.color = Red
			tree.debug("rbtree resolve red restructure", zap.Any("root", middle.element))
			return
		}
		/* im4 */
		grand := parent.parent
		grand.color = Red
		grand.left.color = Black
		grand.right.color = Black
		x = grand
	}
}

/*
p is the parent of the removed node (the pivot).

rm1: Only one node is left, it must be black.

rm2: p has exactly one child C left. The removed node was a leaf.
If C is a red leaf, the removed leaf was red, nothing is lost.
Otherwise the removed leaf was black and p's empty side is one black
short of C's side, fix the deficit.

rm3: p has two children. The removed node was black with a single red
leaf child, which took its place. Repaint that child black.
*/
func (s RedBlackStrategy[E]) OnDelete(tree *LinkedBinaryTree[E], p Position[E]) {
	if /* rm1 */ tree.count == 1 {
		tree.root.color = Black
		return
	}
	z := p.node
	if z == nil {
		// The root was removed, its single red child was promoted.
		if tree.root != nil {
			tree.root.color = Black
		}
		return
	}

	switch z.numChildren() {
	case /* rm2 */ 1:
		c := z.left
		if c == nil {
			c = z.right
		}
		if !isRedLeaf(c) {
			s.fixDeficit(tree, z, c)
		}
	case /* rm3 */ 2:
		if isRedLeaf(z.left) {
			z.left.color = Black
		} else if isRedLeaf(z.right) {
			z.right.color = Black
		}
	default:
	}
}

/*
Resolve the black deficit at Z, where Y is the root of Z's heavier subtree.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

fd1 (transfer): Y is black and has a red child X.
Restructure X, the middle node takes Z's old color, its children turn black.

	    {Z}                    {Y}
	    / \     restructure    / \
	  [Y]  ..   ==========>  [X] [Z]
	  /                            \
	<X>                             ..

fd2 (fusion): Y is black without red child.
Repaint Y red. A red Z turns black and absorbs the deficit, a black Z
pushes the deficit up to its parent.

	    {Z}             [Z]
	    / \             / \
	  [Y]  ..  ====>  <Y>  ..

fd3: Y is red. Rotate Y above Z, swap their colors, then Z's new heavier
child is black and fd1 or fd2 applies at the same level.

	    [Z]                 [Y]
	    / \    rotate(Y)    / \
	  <Y>  ..  ========>  ..  <Z>
	  / \                     / \
	..   [S]                [S]  ..
*/
func (RedBlackStrategy[E]) fixDeficit(tree *LinkedBinaryTree[E], z, y *node[E]) {
	for {
		if y == nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] black deficit without heavier sibling")
		}
		if isRed(y) {
			/* fd3 */
			tree.rotate(y)
			y.color = Black
			z.color = Red
			if z == y.right {
				y = z.left
			} else {
				y = z.right
			}
			continue
		}

		if /* fd1 */ x := redChild(y); x != nil {
			oldColor := z.color
			middle := tree.restructure(x)
			middle.color = oldColor
			middle.left.color = Black
			middle.right.color = Black
			tree.debug("rbtree fix deficit transfer", zap.Any("root", middle.element))
			return
		}

		/* fd2 */
		y.color = Red
		if isRed(z) {
			z.color = Black
			return
		}
		if z.parent == nil {
			return
		}
		z, y = z.parent, z.sibling()
		tree.debug("rbtree fix deficit fusion", zap.Any("pivot", z.element))
	}
}
