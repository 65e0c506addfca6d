package tree

import (
	"errors"
	"iter"

	"github.com/benz9527/xalgo/lib/infra"
)

var (
	ErrKeyNotFound            = errors.New("[tree] key not found")
	ErrInvalidPosition        = errors.New("[tree] invalid position")
	ErrStructuralPrecondition = errors.New("[tree] structural precondition violated")
)

type RBColor uint8

// Red is the zero value, so every new node starts red.
const (
	Red RBColor = iota
	Black
)

func (c RBColor) String() string {
	switch c {
	case Red:
		return "Red"
	case Black:
		return "Black"
	default:
	}
	return "Unknown"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

func (d RBDirection) String() string {
	switch d {
	case Left:
		return "Left"
	case Root:
		return "Root"
	case Right:
		return "Right"
	default:
	}
	return "Unknown"
}

// Item is the element stored by map trees.
// Two items are ordered by their keys only.
type Item[K infra.OrderedKey, V any] struct {
	Key K
	Val V
}

// BinaryTree is the read-only, position based view of a binary tree.
// Every method taking a Position returns ErrInvalidPosition if the position
// was issued by another tree or its node has been deleted.
type BinaryTree[E any] interface {
	Len() int64
	IsEmpty() bool
	Root() Position[E]
	Element(p Position[E]) (E, error)
	Parent(p Position[E]) (Position[E], error)
	Left(p Position[E]) (Position[E], error)
	Right(p Position[E]) (Position[E], error)
	Sibling(p Position[E]) (Position[E], error)
	Children(p Position[E]) ([]Position[E], error)
	NumChildren(p Position[E]) (int, error)
	IsRoot(p Position[E]) (bool, error)
	IsLeaf(p Position[E]) (bool, error)
	Depth(p Position[E]) (int, error)
	Height(p Position[E]) (int, error)
	TreeHeight() int

	Preorder() iter.Seq[Position[E]]
	Postorder() iter.Seq[Position[E]]
	Inorder() iter.Seq[Position[E]]
	BreadthFirst() iter.Seq[Position[E]]
}

// RebalanceStrategy is the set of hooks a TreeMap calls after it changed
// or visited the tree. The hooks must only use rotation and recoloring, so
// the in-order sequence of elements never changes.
type RebalanceStrategy[E any] interface {
	Name() string
	// OnInsert is called with the freshly attached leaf.
	OnInsert(tree *LinkedBinaryTree[E], p Position[E])
	// OnDelete is called with the parent of the removed node. p is the nil
	// position if the removed node was the root.
	OnDelete(tree *LinkedBinaryTree[E], p Position[E])
	// OnAccess is called with the located node of a lookup or an overwrite.
	OnAccess(tree *LinkedBinaryTree[E], p Position[E])
}

// SortedMap is the ordered map capability exposed to other components.
// Implementations are not thread safe.
type SortedMap[K infra.OrderedKey, V any] interface {
	Len() int64
	IsEmpty() bool
	Contains(key K) bool
	Get(key K) (V, error)
	Set(key K, val V) Position[Item[K, V]]
	Delete(key K) (V, error)
	DeletePosition(p Position[Item[K, V]]) (Item[K, V], error)

	FindPosition(key K) Position[Item[K, V]]
	First() Position[Item[K, V]]
	Last() Position[Item[K, V]]
	Before(p Position[Item[K, V]]) (Position[Item[K, V]], error)
	After(p Position[Item[K, V]]) (Position[Item[K, V]], error)

	FindMin() (Item[K, V], bool)
	FindMax() (Item[K, V], bool)
	FindGE(key K) (Item[K, V], bool)
	FindGT(key K) (Item[K, V], bool)
	FindLE(key K) (Item[K, V], bool)
	FindLT(key K) (Item[K, V], bool)
	// FindRange iterates the items with start <= key < stop in ascending
	// order. A nil bound is unbounded on that side.
	FindRange(start, stop *K) iter.Seq2[K, V]
	PopMin() (Item[K, V], error)
	PopMax() (Item[K, V], error)

	All() iter.Seq2[K, V]
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	Foreach(action func(idx int64, key K, val V) bool)
	Clear()
}
