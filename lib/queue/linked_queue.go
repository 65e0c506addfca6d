package queue

import (
	"github.com/benz9527/xalgo/lib/list"
)

// linkedQueue pushes at the back of the list and pops from its front.
// It is not thread safe.
type linkedQueue[E comparable] struct {
	l list.LinkedList[E]
}

func (q *linkedQueue[E]) Len() int64 {
	return q.l.Len()
}

func (q *linkedQueue[E]) IsEmpty() bool {
	return q.l.Len() == 0
}

func (q *linkedQueue[E]) Enqueue(e E) {
	q.l.PushBack(e)
}

func (q *linkedQueue[E]) Dequeue() (e E, ok bool) {
	front := q.l.Front()
	if front == nil {
		return e, false
	}
	return q.l.Remove(front).Value, true
}

func (q *linkedQueue[E]) Peek() (e E, ok bool) {
	front := q.l.Front()
	if front == nil {
		return e, false
	}
	return front.Value, true
}

func (q *linkedQueue[E]) Release() {
	q.l.Clear()
}

func NewLinkedQueue[E comparable]() LinkedQueue[E] {
	return &linkedQueue[E]{l: list.NewLinkedList[E]()}
}
