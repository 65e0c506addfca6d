package tree

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/benz9527/xalgo/lib/infra"
)

var _ SortedMap[int, int] = (*TreeMap[int, int])(nil)

// TreeMap is an ordered map laid out as a binary search tree on top of a
// LinkedBinaryTree. The balancing behavior is delegated to its
// RebalanceStrategy hooks.
// It is not thread safe.
type TreeMap[K infra.OrderedKey, V any] struct {
	tree     *LinkedBinaryTree[Item[K, V]]
	strategy RebalanceStrategy[Item[K, V]]
	cmp      infra.OrderedKeyComparator[K]
}

func newTreeMap[K infra.OrderedKey, V any](
	strategy RebalanceStrategy[Item[K, V]],
	opts ...TreeMapOpt[K, V],
) *TreeMap[K, V] {
	cfg := &treeMapCfg[K, V]{
		cmp:      infra.NaturalOrder[K],
		strategy: strategy,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.isDesc {
		cfg.cmp = infra.ReverseOrder(cfg.cmp)
	}

	m := &TreeMap[K, V]{
		tree:     NewLinkedBinaryTree[Item[K, V]](),
		strategy: cfg.strategy,
		cmp:      cfg.cmp,
	}
	if cfg.logger != nil {
		m.tree.logger = cfg.logger.Named("tree." + m.strategy.Name())
	}
	if cfg.statsEnabled {
		m.tree.stats = newTreeStats(cfg.statsProvider, cfg.statsName, m.strategy.Name())
	}
	return m
}

// NewTreeMap returns an unbalanced binary search tree map.
func NewTreeMap[K infra.OrderedKey, V any](opts ...TreeMapOpt[K, V]) *TreeMap[K, V] {
	return newTreeMap[K, V](NopStrategy[Item[K, V]]{}, opts...)
}

func (m *TreeMap[K, V]) Strategy() string {
	return m.strategy.Name()
}

func (m *TreeMap[K, V]) Len() int64 {
	return m.tree.Len()
}

func (m *TreeMap[K, V]) IsEmpty() bool {
	return m.tree.IsEmpty()
}

func (m *TreeMap[K, V]) rebalanceInsert(n *node[Item[K, V]]) {
	m.tree.stats.IncreaseInsertCount()
	m.strategy.OnInsert(m.tree, m.tree.makePosition(n))
}

func (m *TreeMap[K, V]) rebalanceDelete(n *node[Item[K, V]]) {
	m.tree.stats.IncreaseDeleteCount()
	m.strategy.OnDelete(m.tree, m.tree.makePosition(n))
}

func (m *TreeMap[K, V]) rebalanceAccess(n *node[Item[K, V]]) {
	m.tree.stats.IncreaseAccessCount()
	m.strategy.OnAccess(m.tree, m.tree.makePosition(n))
}

// subtreeSearch returns the node holding key, or the last node visited.
func (m *TreeMap[K, V]) subtreeSearch(n *node[Item[K, V]], key K) *node[Item[K, V]] {
	for {
		res := m.cmp(key, n.element.Key)
		if /* equal */ res == 0 {
			return n
		} else /* less */ if res < 0 {
			if n.left == nil {
				return n
			}
			n = n.left
		} else /* greater */ {
			if n.right == nil {
				return n
			}
			n = n.right
		}
	}
}

// locate searches key from the root and runs the access hook on the node it
// stopped at. It returns nil on an empty tree.
func (m *TreeMap[K, V]) locate(key K) (n *node[Item[K, V]], found bool) {
	if m.tree.root == nil {
		return nil, false
	}
	n = m.subtreeSearch(m.tree.root, key)
	found = m.cmp(key, n.element.Key) == 0
	m.rebalanceAccess(n)
	return n, found
}

func (m *TreeMap[K, V]) Contains(key K) bool {
	_, found := m.locate(key)
	return found
}

func (m *TreeMap[K, V]) Get(key K) (val V, err error) {
	n, found := m.locate(key)
	if !found {
		return val, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return n.element.Val, nil
}

// Set overwrites the value of key, or inserts a new item. It returns the
// position of the item.
func (m *TreeMap[K, V]) Set(key K, val V) Position[Item[K, V]] {
	item := Item[K, V]{Key: key, Val: val}
	var leaf *node[Item[K, V]]
	if /* empty */ m.tree.root == nil {
		leaf = m.tree.addRoot(item)
	} else {
		n := m.subtreeSearch(m.tree.root, key)
		res := m.cmp(key, n.element.Key)
		if /* equal */ res == 0 {
			n.element.Val = val
			m.rebalanceAccess(n)
			return m.tree.makePosition(n)
		} else /* less */ if res < 0 {
			leaf = m.tree.addLeft(n, item)
		} else /* greater */ {
			leaf = m.tree.addRight(n, item)
		}
	}
	m.rebalanceInsert(leaf)
	return m.tree.makePosition(leaf)
}

/*
A node with two children is reduced to the single child case first.
The pred L is the rightmost node of X's left subtree, so it has no right
child. Its element is copied into X and L is removed instead.

	    |                    |
	    X                    L
	   / \                  / \
	  A   R   copy(L, X)   A   R
	   \      =========>    \
	    L                   (L removed)
*/
func (m *TreeMap[K, V]) deleteNode(n *node[Item[K, V]]) Item[K, V] {
	removed := n.element
	if n.left != nil && n.right != nil {
		pred := n.left.maximum()
		n.element = pred.element
		n = pred
	}
	// Pivot of the rebalance, nil if the root was removed.
	parent := n.parent
	m.tree.deleteNode(n)
	m.rebalanceDelete(parent)
	return removed
}

// DeletePosition removes the item at p.
// If p had two children, p stays valid and now holds the item of its
// in-order predecessor, whose position becomes invalid.
func (m *TreeMap[K, V]) DeletePosition(p Position[Item[K, V]]) (item Item[K, V], err error) {
	n, err := m.tree.validate(p)
	if err != nil {
		if m.tree.logger != nil {
			m.tree.logger.Warn("reject position", zap.Error(err))
		}
		return item, err
	}
	return m.deleteNode(n), nil
}

func (m *TreeMap[K, V]) Delete(key K) (val V, err error) {
	if m.tree.root != nil {
		n := m.subtreeSearch(m.tree.root, key)
		if m.cmp(key, n.element.Key) == 0 {
			return m.deleteNode(n).Val, nil
		}
		m.rebalanceAccess(n)
	}
	return val, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}

// FindPosition returns the position of key, or of the last visited
// neighbor if key is absent. The nil position is returned on an empty map.
func (m *TreeMap[K, V]) FindPosition(key K) Position[Item[K, V]] {
	n, _ := m.locate(key)
	return m.tree.makePosition(n)
}

func (m *TreeMap[K, V]) First() Position[Item[K, V]] {
	return m.tree.makePosition(m.tree.root.minimum())
}

func (m *TreeMap[K, V]) Last() Position[Item[K, V]] {
	return m.tree.makePosition(m.tree.root.maximum())
}

// Before returns the position just before p in key order, the nil position
// if p is the first.
func (m *TreeMap[K, V]) Before(p Position[Item[K, V]]) (Position[Item[K, V]], error) {
	n, err := m.tree.validate(p)
	if err != nil {
		return Position[Item[K, V]]{}, err
	}
	return m.tree.makePosition(n.pred()), nil
}

// After returns the position just after p in key order, the nil position
// if p is the last.
func (m *TreeMap[K, V]) After(p Position[Item[K, V]]) (Position[Item[K, V]], error) {
	n, err := m.tree.validate(p)
	if err != nil {
		return Position[Item[K, V]]{}, err
	}
	return m.tree.makePosition(n.succ()), nil
}

func itemOf[K infra.OrderedKey, V any](n *node[Item[K, V]]) (item Item[K, V], ok bool) {
	if n == nil {
		return item, false
	}
	return n.element, true
}

func (m *TreeMap[K, V]) FindMin() (Item[K, V], bool) {
	return itemOf(m.tree.root.minimum())
}

func (m *TreeMap[K, V]) FindMax() (Item[K, V], bool) {
	return itemOf(m.tree.root.maximum())
}

// FindGE returns the item with the least key greater than or equal to key.
func (m *TreeMap[K, V]) FindGE(key K) (Item[K, V], bool) {
	n, _ := m.locate(key)
	if n != nil && m.cmp(n.element.Key, key) < 0 {
		n = n.succ()
	}
	return itemOf(n)
}

// FindGT returns the item with the least key strictly greater than key.
func (m *TreeMap[K, V]) FindGT(key K) (Item[K, V], bool) {
	n, _ := m.locate(key)
	if n != nil && m.cmp(n.element.Key, key) <= 0 {
		n = n.succ()
	}
	return itemOf(n)
}

// FindLE returns the item with the greatest key less than or equal to key.
func (m *TreeMap[K, V]) FindLE(key K) (Item[K, V], bool) {
	n, _ := m.locate(key)
	if n != nil && m.cmp(n.element.Key, key) > 0 {
		n = n.pred()
	}
	return itemOf(n)
}

// FindLT returns the item with the greatest key strictly less than key.
func (m *TreeMap[K, V]) FindLT(key K) (Item[K, V], bool) {
	n, _ := m.locate(key)
	if n != nil && m.cmp(n.element.Key, key) >= 0 {
		n = n.pred()
	}
	return itemOf(n)
}

func (m *TreeMap[K, V]) FindRange(start, stop *K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var n *node[Item[K, V]]
		if start == nil {
			n = m.tree.root.minimum()
		} else if n, _ = m.locate(*start); n != nil && m.cmp(n.element.Key, *start) < 0 {
			n = n.succ()
		}
		for ; n != nil && (stop == nil || m.cmp(n.element.Key, *stop) < 0); n = n.succ() {
			if !yield(n.element.Key, n.element.Val) {
				return
			}
		}
	}
}

func (m *TreeMap[K, V]) PopMin() (item Item[K, V], err error) {
	if m.tree.root == nil {
		return item, fmt.Errorf("%w: empty map", ErrKeyNotFound)
	}
	return m.deleteNode(m.tree.root.minimum()), nil
}

func (m *TreeMap[K, V]) PopMax() (item Item[K, V], err error) {
	if m.tree.root == nil {
		return item, fmt.Errorf("%w: empty map", ErrKeyNotFound)
	}
	return m.deleteNode(m.tree.root.maximum()), nil
}

// All iterates the items in key order.
func (m *TreeMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.tree.inorder(func(n *node[Item[K, V]]) bool {
			return yield(n.element.Key, n.element.Val)
		})
	}
}

func (m *TreeMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.tree.inorder(func(n *node[Item[K, V]]) bool {
			return yield(n.element.Key)
		})
	}
}

func (m *TreeMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.tree.inorder(func(n *node[Item[K, V]]) bool {
			return yield(n.element.Val)
		})
	}
}

// Foreach walks the items in key order until action returns false.
func (m *TreeMap[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	idx := int64(0)
	m.tree.inorder(func(n *node[Item[K, V]]) bool {
		ok := action(idx, n.element.Key, n.element.Val)
		idx++
		return ok
	})
}

func (m *TreeMap[K, V]) Clear() {
	m.tree.Clear()
}

// Read-only navigation. The structural mutators of the underlying tree are
// not exposed, they would break the search tree order.

func (m *TreeMap[K, V]) Root() Position[Item[K, V]] {
	return m.tree.Root()
}

func (m *TreeMap[K, V]) Parent(p Position[Item[K, V]]) (Position[Item[K, V]], error) {
	return m.tree.Parent(p)
}

func (m *TreeMap[K, V]) Left(p Position[Item[K, V]]) (Position[Item[K, V]], error) {
	return m.tree.Left(p)
}

func (m *TreeMap[K, V]) Right(p Position[Item[K, V]]) (Position[Item[K, V]], error) {
	return m.tree.Right(p)
}

func (m *TreeMap[K, V]) Children(p Position[Item[K, V]]) ([]Position[Item[K, V]], error) {
	return m.tree.Children(p)
}

func (m *TreeMap[K, V]) IsRoot(p Position[Item[K, V]]) (bool, error) {
	return m.tree.IsRoot(p)
}

func (m *TreeMap[K, V]) IsLeaf(p Position[Item[K, V]]) (bool, error) {
	return m.tree.IsLeaf(p)
}

func (m *TreeMap[K, V]) Depth(p Position[Item[K, V]]) (int, error) {
	return m.tree.Depth(p)
}

func (m *TreeMap[K, V]) Height(p Position[Item[K, V]]) (int, error) {
	return m.tree.Height(p)
}

func (m *TreeMap[K, V]) TreeHeight() int {
	return m.tree.TreeHeight()
}

func (m *TreeMap[K, V]) Preorder() iter.Seq[Position[Item[K, V]]] {
	return m.tree.Preorder()
}

func (m *TreeMap[K, V]) Postorder() iter.Seq[Position[Item[K, V]]] {
	return m.tree.Postorder()
}

func (m *TreeMap[K, V]) Inorder() iter.Seq[Position[Item[K, V]]] {
	return m.tree.Inorder()
}

func (m *TreeMap[K, V]) BreadthFirst() iter.Seq[Position[Item[K, V]]] {
	return m.tree.BreadthFirst()
}

// NopStrategy leaves the tree unbalanced, a plain binary search tree.
type NopStrategy[E any] struct{}

func (NopStrategy[E]) Name() string { return "bst" }
func (NopStrategy[E]) OnInsert(*LinkedBinaryTree[E], Position[E]) {}
func (NopStrategy[E]) OnDelete(*LinkedBinaryTree[E], Position[E]) {}
func (NopStrategy[E]) OnAccess(*LinkedBinaryTree[E], Position[E]) {}
