package list

// LinkedList is a doubly linked list over a sentinel ring.
// It is not thread safe.
type LinkedList[T comparable] interface {
	Len() int64
	// Front returns the first element or nil if the list is empty.
	Front() *NodeElement[T]
	// Back returns the last element or nil if the list is empty.
	Back() *NodeElement[T]
	// PushFront inserts v at the front of the list and returns its element.
	PushFront(v T) *NodeElement[T]
	// PushBack inserts v at the back of the list and returns its element.
	PushBack(v T) *NodeElement[T]
	// AppendValue pushes the values to the back in order.
	AppendValue(values ...T) []*NodeElement[T]
	// InsertAfter inserts v immediately after dstE and returns the new element.
	// If dstE is not an element of the list, nothing is inserted and nil is returned.
	InsertAfter(v T, dstE *NodeElement[T]) *NodeElement[T]
	// Remove unlinks targetE if it belongs to the list and returns it, nil otherwise.
	Remove(targetE *NodeElement[T]) *NodeElement[T]
	// Foreach visits the elements front to back. Removing the visited
	// element inside fn is allowed. A non-nil error stops the walk.
	Foreach(fn func(idx int64, e *NodeElement[T]) error) error
	// FindFirst returns the first element whose value equals v, or the first
	// one satisfying compareFn when provided.
	FindFirst(v T, compareFn ...func(e *NodeElement[T]) bool) (*NodeElement[T], bool)
	// Clear unlinks every element.
	Clear()
}
