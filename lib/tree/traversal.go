package tree

import (
	"iter"

	"github.com/benz9527/xalgo/lib/queue"
)

// The traversals below are lazy single passes over the current structure.
// Mutating the tree while one of them is being consumed is undefined.

// Positions iterates all positions in preorder.
func (t *LinkedBinaryTree[E]) Positions() iter.Seq[Position[E]] {
	return t.Preorder()
}

// Elements iterates all elements in preorder.
func (t *LinkedBinaryTree[E]) Elements() iter.Seq[E] {
	return func(yield func(E) bool) {
		for p := range t.Preorder() {
			if !yield(p.node.element) {
				return
			}
		}
	}
}

func (t *LinkedBinaryTree[E]) Preorder() iter.Seq[Position[E]] {
	return func(yield func(Position[E]) bool) {
		if t.root == nil {
			return
		}
		stack := make([]*node[E], 0, 32)
		stack = append(stack, t.root)
		for size := len(stack); size > 0; size = len(stack) {
			aux := stack[size-1]
			stack = stack[:size-1]
			if !yield(t.makePosition(aux)) {
				return
			}
			// Right first, so the left subtree pops first.
			if aux.right != nil {
				stack = append(stack, aux.right)
			}
			if aux.left != nil {
				stack = append(stack, aux.left)
			}
		}
	}
}

func (t *LinkedBinaryTree[E]) Postorder() iter.Seq[Position[E]] {
	return func(yield func(Position[E]) bool) {
		if t.root == nil {
			return
		}
		var lastVisited *node[E]
		stack := make([]*node[E], 0, 32)
		for aux := t.root; aux != nil || len(stack) > 0; {
			if aux != nil {
				stack = append(stack, aux)
				aux = aux.left
				continue
			}
			top := stack[len(stack)-1]
			if top.right != nil && top.right != lastVisited {
				aux = top.right
				continue
			}
			if !yield(t.makePosition(top)) {
				return
			}
			lastVisited = top
			stack = stack[:len(stack)-1]
		}
	}
}

// Inorder visits left subtree, then the node, then the right subtree.
func (t *LinkedBinaryTree[E]) Inorder() iter.Seq[Position[E]] {
	return func(yield func(Position[E]) bool) {
		t.inorder(func(n *node[E]) bool {
			return yield(t.makePosition(n))
		})
	}
}

func (t *LinkedBinaryTree[E]) inorder(action func(n *node[E]) bool) {
	aux := t.root
	if aux == nil {
		return
	}

	stack := make([]*node[E], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if !action(aux) {
			return
		}
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (t *LinkedBinaryTree[E]) BreadthFirst() iter.Seq[Position[E]] {
	return func(yield func(Position[E]) bool) {
		if t.root == nil {
			return
		}
		fringe := queue.NewLinkedQueue[*node[E]]()
		defer fringe.Release()
		fringe.Enqueue(t.root)
		for !fringe.IsEmpty() {
			aux, _ := fringe.Dequeue()
			if !yield(t.makePosition(aux)) {
				return
			}
			if aux.left != nil {
				fringe.Enqueue(aux.left)
			}
			if aux.right != nil {
				fringe.Enqueue(aux.right)
			}
		}
	}
}
