package queue

// LinkedQueue is a FIFO queue backed by the doubly linked list.
// It is the fringe of breadth-first walks over trees.
type LinkedQueue[E comparable] interface {
	Len() int64
	IsEmpty() bool
	// Enqueue appends e to the back of the queue.
	Enqueue(e E)
	// Dequeue removes and returns the front element.
	// ok is false if the queue is empty.
	Dequeue() (e E, ok bool)
	// Peek returns the front element without removing it.
	Peek() (e E, ok bool)
	Release()
}
