package list

import (
	"errors"
)

var _ LinkedList[struct{}] = (*doublyLinkedList[struct{}])(nil)

var errEmptyList = errors.New("[doubly-linked-list] empty")

type doublyLinkedList[T comparable] struct {
	// root is the sentinel. root.next is the front and root.prev the back.
	root *NodeElement[T]
	len  int64
}

func NewLinkedList[T comparable]() LinkedList[T] {
	return new(doublyLinkedList[T]).init()
}

func (l *doublyLinkedList[T]) init() *doublyLinkedList[T] {
	l.root = &NodeElement[T]{listRef: l}
	l.root.next = l.root
	l.root.prev = l.root
	l.len = 0
	return l
}

func (l *doublyLinkedList[T]) Len() int64 {
	return l.len
}

func (l *doublyLinkedList[T]) contains(e *NodeElement[T]) bool {
	return e != nil && e != l.root && e.listRef == l && e.prev != nil && e.next != nil
}

// link places e between at and at.next.
func (l *doublyLinkedList[T]) link(e, at *NodeElement[T]) *NodeElement[T] {
	e.listRef = l
	e.prev = at
	e.next = at.next
	at.next.prev = e
	at.next = e
	l.len++
	return e
}

func (l *doublyLinkedList[T]) Front() *NodeElement[T] {
	if l == nil || l.root == nil || l.len == 0 {
		return nil
	}
	return l.root.next
}

func (l *doublyLinkedList[T]) Back() *NodeElement[T] {
	if l == nil || l.root == nil || l.len == 0 {
		return nil
	}
	return l.root.prev
}

func (l *doublyLinkedList[T]) PushFront(v T) *NodeElement[T] {
	if l == nil || l.root == nil {
		return nil
	}
	return l.link(&NodeElement[T]{Value: v}, l.root)
}

func (l *doublyLinkedList[T]) PushBack(v T) *NodeElement[T] {
	if l == nil || l.root == nil {
		return nil
	}
	return l.link(&NodeElement[T]{Value: v}, l.root.prev)
}

func (l *doublyLinkedList[T]) AppendValue(values ...T) []*NodeElement[T] {
	if l == nil || l.root == nil || len(values) == 0 {
		return nil
	}
	elements := make([]*NodeElement[T], 0, len(values))
	for _, v := range values {
		elements = append(elements, l.PushBack(v))
	}
	return elements
}

func (l *doublyLinkedList[T]) InsertAfter(v T, dstE *NodeElement[T]) *NodeElement[T] {
	if l == nil || !l.contains(dstE) {
		return nil
	}
	return l.link(&NodeElement[T]{Value: v}, dstE)
}

func (l *doublyLinkedList[T]) Remove(targetE *NodeElement[T]) *NodeElement[T] {
	if l == nil || l.root == nil || l.len == 0 || !l.contains(targetE) {
		return nil
	}
	targetE.prev.next = targetE.next
	targetE.next.prev = targetE.prev
	// avoid memory leaks
	targetE.next = nil
	targetE.prev = nil
	targetE.listRef = nil
	l.len--
	return targetE
}

func (l *doublyLinkedList[T]) Foreach(fn func(idx int64, e *NodeElement[T]) error) error {
	if l == nil || l.root == nil || fn == nil || l.len == 0 {
		return errEmptyList
	}
	var idx int64
	for iterator := l.root.next; iterator != l.root; idx++ {
		// fn may remove iterator.
		n := iterator.next
		if err := fn(idx, iterator); err != nil {
			return err
		}
		iterator = n
	}
	return nil
}

func (l *doublyLinkedList[T]) FindFirst(v T, compareFn ...func(e *NodeElement[T]) bool) (*NodeElement[T], bool) {
	if l == nil || l.root == nil || l.len == 0 {
		return nil, false
	}
	match := func(e *NodeElement[T]) bool {
		return e.Value == v
	}
	if len(compareFn) > 0 && compareFn[0] != nil {
		match = compareFn[0]
	}
	for iterator := l.root.next; iterator != l.root; iterator = iterator.next {
		if match(iterator) {
			return iterator, true
		}
	}
	return nil, false
}

func (l *doublyLinkedList[T]) Clear() {
	if l == nil || l.root == nil {
		return
	}
	for iterator := l.root.next; iterator != l.root; {
		n := iterator.next
		iterator.prev, iterator.next, iterator.listRef = nil, nil, nil
		iterator = n
	}
	l.init()
}
