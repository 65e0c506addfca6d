package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xalgo/lib/infra"
)

// NewSplayTreeMap returns a map that moves every accessed, inserted or
// delete pivot node to the root, which gives amortized O(log n) operations.
func NewSplayTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOpt[K, V]) *TreeMap[K, V] {
	return newTreeMap[K, V](SplayStrategy[Item[K, V]]{}, opts...)
}

type SplayStrategy[E any] struct{}

func (SplayStrategy[E]) Name() string { return "splay" }

func (s SplayStrategy[E]) OnInsert(tree *LinkedBinaryTree[E], p Position[E]) {
	s.splay(tree, p.node)
}

func (s SplayStrategy[E]) OnDelete(tree *LinkedBinaryTree[E], p Position[E]) {
	s.splay(tree, p.node)
}

func (s SplayStrategy[E]) OnAccess(tree *LinkedBinaryTree[E], p Position[E]) {
	s.splay(tree, p.node)
}

/*
zig: parent P is the root.

	    P            X
	   /     ==>      \
	  X                P

zig-zig: X and P lean to the same side, rotate P then X.

	      G          X
	     /            \
	    P      ==>     P
	   /                \
	  X                  G

zig-zag: X and P lean to opposite sides, rotate X twice.

	    G
	   /            X
	  P      ==>   / \
	   \          P   G
	    X
*/
func (SplayStrategy[E]) splay(tree *LinkedBinaryTree[E], x *node[E]) {
	if x == nil {
		return
	}
	steps := 0
	for x.parent != nil {
		parent := x.parent
		grand := parent.parent
		if /* zig */ grand == nil {
			tree.rotate(x)
		} else if /* zig-zig */ (parent == grand.left) == (x == parent.left) {
			tree.rotate(parent)
			tree.rotate(x)
		} else /* zig-zag */ {
			tree.rotate(x)
			tree.rotate(x)
		}
		steps++
	}
	if steps > 0 {
		tree.debug("splay", zap.Any("root", x.element), zap.Int("steps", steps))
	}
}
