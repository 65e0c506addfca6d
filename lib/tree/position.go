package tree

type node[E any] struct {
	parent  *node[E]
	left    *node[E]
	right   *node[E]
	// owner is the tree currently holding the node. Attach moves it.
	owner   *LinkedBinaryTree[E]
	element E
	// Balancing metadata, only the owning strategy reads them.
	height  int
	color   RBColor
	deleted bool
}

func (n *node[E]) direction() RBDirection {
	if n.parent == nil {
		return Root
	}
	if n == n.parent.left {
		return Left
	}
	return Right
}

func (n *node[E]) numChildren() int {
	count := 0
	if n.left != nil {
		count++
	}
	if n.right != nil {
		count++
	}
	return count
}

func (n *node[E]) sibling() *node[E] {
	switch n.direction() {
	case Left:
		return n.parent.right
	case Right:
		return n.parent.left
	default:
	}
	return nil
}

func (n *node[E]) minimum() *node[E] {
	aux := n
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (n *node[E]) maximum() *node[E] {
	aux := n
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
func (n *node[E]) pred() *node[E] {
	if n == nil {
		return nil
	}
	if n.left != nil {
		return n.left.maximum()
	}
	x, aux := n, n.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (n *node[E]) succ() *node[E] {
	if n == nil {
		return nil
	}
	if n.right != nil {
		return n.right.minimum()
	}
	x, aux := n, n.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// Position is an opaque handle to the location of an element.
// Positions compare by identity: p == q iff both refer to the same node of
// the same tree. The zero value is the nil position.
type Position[E any] struct {
	container *LinkedBinaryTree[E]
	node      *node[E]
}

func (p Position[E]) IsNil() bool {
	return p.node == nil
}

// Valid reports whether the node behind p is still alive and held by the
// tree that issued p. Positions handed out by a donor tree stop being valid
// once the donor is grafted by Attach.
func (p Position[E]) Valid() bool {
	return p.node != nil && !p.node.deleted && p.node.owner == p.container
}

// Element returns the element stored at p without validating it.
// The zero value is returned for the nil position and for a position whose
// node has been deleted, so check Valid before relying on the result.
func (p Position[E]) Element() (e E) {
	if p.node == nil {
		return e
	}
	return p.node.element
}
