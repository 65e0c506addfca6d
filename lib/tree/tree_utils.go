package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xalgo/lib/infra"
)

// Tree rule validation utilities.
// Each validator walks the whole tree and reports every violation it finds,
// combined into a single error.

// BSTViolationValidate checks that in-order keys are strictly ascending and
// that every child links back to its parent.
func BSTViolationValidate[K infra.OrderedKey, V any](m *TreeMap[K, V]) error {
	var err error
	if m.tree.root != nil && m.tree.root.parent != nil {
		err = multierr.Append(err, fmt.Errorf("[tree] root %v has a parent", m.tree.root.element.Key))
	}

	var prev *node[Item[K, V]]
	m.tree.inorder(func(n *node[Item[K, V]]) bool {
		if prev != nil && m.cmp(prev.element.Key, n.element.Key) >= 0 {
			err = multierr.Append(err, fmt.Errorf("[tree] bst violation, key %v is not after %v",
				n.element.Key, prev.element.Key))
		}
		if n.left != nil && n.left.parent != n {
			err = multierr.Append(err, fmt.Errorf("[tree] broken parent link under %v", n.element.Key))
		}
		if n.right != nil && n.right.parent != n {
			err = multierr.Append(err, fmt.Errorf("[tree] broken parent link under %v", n.element.Key))
		}
		prev = n
		return true
	})
	return err
}

// SizeViolationValidate checks that Len matches the number of reachable nodes.
func SizeViolationValidate[K infra.OrderedKey, V any](m *TreeMap[K, V]) error {
	count := int64(0)
	m.tree.inorder(func(*node[Item[K, V]]) bool {
		count++
		return true
	})
	if count != m.Len() {
		return fmt.Errorf("[tree] size violation, len %d but %d nodes reachable", m.Len(), count)
	}
	return nil
}

// AVLViolationValidate checks the balance of every node and that the cached
// heights are accurate.
func AVLViolationValidate[K infra.OrderedKey, V any](m *TreeMap[K, V]) error {
	var err error
	var walk func(n *node[Item[K, V]]) int
	walk = func(n *node[Item[K, V]]) int {
		if n == nil {
			return 0
		}
		lh, rh := walk(n.left), walk(n.right)
		h := 1 + max(lh, rh)
		if lh-rh > 1 || rh-lh > 1 {
			err = multierr.Append(err, fmt.Errorf("[avl] balance violation at %v, left %d right %d",
				n.element.Key, lh, rh))
		}
		if n.height != h {
			err = multierr.Append(err, fmt.Errorf("[avl] stale height at %v, cached %d actual %d",
				n.element.Key, n.height, h))
		}
		return h
	}
	walk(m.tree.root)
	return err
}

// RedViolationValidate checks that the root is black and no red node has a
// red child.
func RedViolationValidate[K infra.OrderedKey, V any](m *TreeMap[K, V]) error {
	var err error
	if isRed(m.tree.root) {
		err = multierr.Append(err, fmt.Errorf("[rbtree] red root %v", m.tree.root.element.Key))
	}
	m.tree.inorder(func(n *node[Item[K, V]]) bool {
		if isRed(n) && (isRed(n.left) || isRed(n.right)) {
			err = multierr.Append(err, fmt.Errorf("[rbtree] red violation at %v", n.element.Key))
		}
		return true
	})
	return err
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
	<1>            [16]

Each NIL leaf to root node black depth are equal.
*/
func BlackViolationValidate[K infra.OrderedKey, V any](m *TreeMap[K, V]) error {
	var err error
	// walk returns the black height of n, NIL counts as one black node.
	var walk func(n *node[Item[K, V]]) int
	walk = func(n *node[Item[K, V]]) int {
		if n == nil {
			return 1
		}
		lh, rh := walk(n.left), walk(n.right)
		if lh != rh {
			err = multierr.Append(err, fmt.Errorf("[rbtree] black violation at %v, left %d right %d",
				n.element.Key, lh, rh))
		}
		if isBlack(n) {
			return max(lh, rh) + 1
		}
		return max(lh, rh)
	}
	walk(m.tree.root)
	return err
}

// ViolationValidate runs the validators that apply to the strategy of m.
func ViolationValidate[K infra.OrderedKey, V any](m *TreeMap[K, V]) error {
	err := multierr.Combine(
		BSTViolationValidate(m),
		SizeViolationValidate(m),
	)
	switch m.strategy.(type) {
	case AVLStrategy[Item[K, V]]:
		err = multierr.Append(err, AVLViolationValidate(m))
	case RedBlackStrategy[Item[K, V]]:
		err = multierr.Append(err,
			multierr.Combine(RedViolationValidate(m), BlackViolationValidate(m)))
	default:
	}
	return err
}
