package tree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/benz9527/xalgo/lib/xlog"
)

var _ BinaryTree[int] = (*LinkedBinaryTree[int])(nil)

// LinkedBinaryTree owns linked nodes and implements the structural
// primitives every tree in this package is built on.
// It is not thread safe.
type LinkedBinaryTree[E any] struct {
	root   *node[E]
	count  int64
	stats  *treeStats
	logger xlog.XLogger
}

func NewLinkedBinaryTree[E any]() *LinkedBinaryTree[E] {
	return &LinkedBinaryTree[E]{}
}

func (t *LinkedBinaryTree[E]) debug(msg string, fields ...zap.Field) {
	if t.logger == nil {
		return
	}
	t.logger.Debug(msg, fields...)
}

func (t *LinkedBinaryTree[E]) validate(p Position[E]) (*node[E], error) {
	if p.node == nil {
		return nil, fmt.Errorf("%w: nil position", ErrInvalidPosition)
	}
	if p.container != t {
		return nil, fmt.Errorf("%w: position does not belong to this tree", ErrInvalidPosition)
	}
	if p.node.deleted {
		return nil, fmt.Errorf("%w: position is no longer valid", ErrInvalidPosition)
	}
	if p.node.owner != t {
		return nil, fmt.Errorf("%w: node has been moved to another tree", ErrInvalidPosition)
	}
	return p.node, nil
}

func (t *LinkedBinaryTree[E]) makePosition(n *node[E]) Position[E] {
	if n == nil {
		return Position[E]{}
	}
	return Position[E]{container: t, node: n}
}

func (t *LinkedBinaryTree[E]) Len() int64 {
	return t.count
}

func (t *LinkedBinaryTree[E]) IsEmpty() bool {
	return t.count == 0
}

func (t *LinkedBinaryTree[E]) Root() Position[E] {
	return t.makePosition(t.root)
}

func (t *LinkedBinaryTree[E]) Element(p Position[E]) (e E, err error) {
	n, err := t.validate(p)
	if err != nil {
		return e, err
	}
	return n.element, nil
}

func (t *LinkedBinaryTree[E]) Parent(p Position[E]) (Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	return t.makePosition(n.parent), nil
}

func (t *LinkedBinaryTree[E]) Left(p Position[E]) (Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	return t.makePosition(n.left), nil
}

func (t *LinkedBinaryTree[E]) Right(p Position[E]) (Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	return t.makePosition(n.right), nil
}

func (t *LinkedBinaryTree[E]) Sibling(p Position[E]) (Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	return t.makePosition(n.sibling()), nil
}

// Children returns the left child then the right child, skipping absent ones.
func (t *LinkedBinaryTree[E]) Children(p Position[E]) ([]Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return nil, err
	}
	children := make([]Position[E], 0, 2)
	if n.left != nil {
		children = append(children, t.makePosition(n.left))
	}
	if n.right != nil {
		children = append(children, t.makePosition(n.right))
	}
	return children, nil
}

func (t *LinkedBinaryTree[E]) NumChildren(p Position[E]) (int, error) {
	n, err := t.validate(p)
	if err != nil {
		return 0, err
	}
	return n.numChildren(), nil
}

func (t *LinkedBinaryTree[E]) IsRoot(p Position[E]) (bool, error) {
	n, err := t.validate(p)
	if err != nil {
		return false, err
	}
	return n == t.root, nil
}

func (t *LinkedBinaryTree[E]) IsLeaf(p Position[E]) (bool, error) {
	n, err := t.validate(p)
	if err != nil {
		return false, err
	}
	return n.left == nil && n.right == nil, nil
}

// Depth is the number of edges between p and the root.
func (t *LinkedBinaryTree[E]) Depth(p Position[E]) (int, error) {
	n, err := t.validate(p)
	if err != nil {
		return 0, err
	}
	depth := 0
	for aux := n.parent; aux != nil; aux = aux.parent {
		depth++
	}
	return depth, nil
}

// Height is the number of edges on the longest downward path from p to a
// leaf. A leaf has height 0.
func (t *LinkedBinaryTree[E]) Height(p Position[E]) (int, error) {
	n, err := t.validate(p)
	if err != nil {
		return 0, err
	}
	return subtreeHeight(n), nil
}

// TreeHeight returns the height of the root, 0 for an empty tree.
func (t *LinkedBinaryTree[E]) TreeHeight() int {
	if t.root == nil {
		return 0
	}
	return subtreeHeight(t.root)
}

func subtreeHeight[E any](n *node[E]) int {
	if n.left == nil && n.right == nil {
		return 0
	}
	h := 0
	if n.left != nil {
		h = max(h, subtreeHeight(n.left))
	}
	if n.right != nil {
		h = max(h, subtreeHeight(n.right))
	}
	return h + 1
}

// AddRoot places e at the root of an empty tree.
func (t *LinkedBinaryTree[E]) AddRoot(e E) (Position[E], error) {
	if t.root != nil {
		return Position[E]{}, fmt.Errorf("%w: root exists", ErrStructuralPrecondition)
	}
	return t.makePosition(t.addRoot(e)), nil
}

func (t *LinkedBinaryTree[E]) addRoot(e E) *node[E] {
	t.root = &node[E]{element: e, owner: t}
	t.count = 1
	return t.root
}

// AddLeft creates a new left child of p storing e.
func (t *LinkedBinaryTree[E]) AddLeft(p Position[E], e E) (Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	if n.left != nil {
		return Position[E]{}, fmt.Errorf("%w: left child exists", ErrStructuralPrecondition)
	}
	return t.makePosition(t.addLeft(n, e)), nil
}

func (t *LinkedBinaryTree[E]) addLeft(n *node[E], e E) *node[E] {
	n.left = &node[E]{element: e, parent: n, owner: t}
	t.count++
	return n.left
}

// AddRight creates a new right child of p storing e.
func (t *LinkedBinaryTree[E]) AddRight(p Position[E], e E) (Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	if n.right != nil {
		return Position[E]{}, fmt.Errorf("%w: right child exists", ErrStructuralPrecondition)
	}
	return t.makePosition(t.addRight(n, e)), nil
}

func (t *LinkedBinaryTree[E]) addRight(n *node[E], e E) *node[E] {
	n.right = &node[E]{element: e, parent: n, owner: t}
	t.count++
	return n.right
}

// Replace stores e at p and returns the previous element.
func (t *LinkedBinaryTree[E]) Replace(p Position[E], e E) (old E, err error) {
	n, err := t.validate(p)
	if err != nil {
		return old, err
	}
	old, n.element = n.element, e
	return old, nil
}

// Delete removes the node at p and splices its only child (if any) into
// its place. The element stored at p is returned and p becomes invalid.
func (t *LinkedBinaryTree[E]) Delete(p Position[E]) (e E, err error) {
	n, err := t.validate(p)
	if err != nil {
		return e, err
	}
	if n.left != nil && n.right != nil {
		return e, fmt.Errorf("%w: position has two children", ErrStructuralPrecondition)
	}
	return t.deleteNode(n), nil
}

func (t *LinkedBinaryTree[E]) deleteNode(n *node[E]) E {
	if n.left != nil && n.right != nil {
		// impossible run to here
		panic( /* debug assertion */ "[tree] delete a node with two children")
	}

	child := n.left
	if child == nil {
		child = n.right
	}
	if child != nil {
		child.parent = n.parent
	}
	switch n.direction() {
	case Root:
		t.root = child
	case Left:
		n.parent.left = child
	case Right:
		n.parent.right = child
	default:
	}
	t.count--
	return t.invalidate(n)
}

// invalidate marks n deleted and drops every link it holds.
func (t *LinkedBinaryTree[E]) invalidate(n *node[E]) E {
	var zero E
	e := n.element
	n.element = zero
	n.parent, n.left, n.right = nil, nil, nil
	n.owner = nil
	n.deleted = true
	return e
}

// Attach grafts left and right as the subtrees of the leaf p.
// Both donor trees are emptied and every grafted node is re-owned by t, so
// positions the donors issued are rejected by the donors and by t alike.
// It costs O(size of the donors).
func (t *LinkedBinaryTree[E]) Attach(p Position[E], left, right *LinkedBinaryTree[E]) error {
	n, err := t.validate(p)
	if err != nil {
		return err
	}
	if n.left != nil || n.right != nil {
		return fmt.Errorf("%w: position must be a leaf", ErrStructuralPrecondition)
	}
	if left == t || right == t || (left != nil && left == right) {
		return fmt.Errorf("%w: donor trees must be distinct from the receiver", ErrStructuralPrecondition)
	}

	if left != nil && left.root != nil {
		t.adopt(left.root)
		left.root.parent = n
		n.left = left.root
		t.count += left.count
		left.root, left.count = nil, 0
	}
	if right != nil && right.root != nil {
		t.adopt(right.root)
		right.root.parent = n
		n.right = right.root
		t.count += right.count
		right.root, right.count = nil, 0
	}
	return nil
}

// adopt re-owns the whole subtree rooted at sub.
func (t *LinkedBinaryTree[E]) adopt(sub *node[E]) {
	stack := make([]*node[E], 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, sub)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		aux.owner = t
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
	}
}

// Clear releases every node. All positions issued so far become invalid.
func (t *LinkedBinaryTree[E]) Clear() {
	aux := t.root
	t.root = nil
	if aux == nil {
		return
	}

	stack := make([]*node[E], 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		t.invalidate(aux)
		t.count--
	}
}

func (t *LinkedBinaryTree[E]) relink(parent, child *node[E], makeLeft bool) {
	if makeLeft {
		parent.left = child
	} else {
		parent.right = child
	}
	if child != nil {
		child.parent = parent
	}
}

// Rotate promotes p above its parent. The in-order sequence is unchanged.
func (t *LinkedBinaryTree[E]) Rotate(p Position[E]) error {
	n, err := t.validate(p)
	if err != nil {
		return err
	}
	if n.parent == nil {
		return fmt.Errorf("%w: unable to rotate the root", ErrStructuralPrecondition)
	}
	t.rotate(n)
	return nil
}

/*
Right rotation of X (X is the left child of Y), left rotation mirrors it.

		 |                         |
		 Y                         X
		/ \      rotate(X)        / \
	   X   C    ============>    A   Y
	  / \                           / \
	 A   B                         B   C
*/
func (t *LinkedBinaryTree[E]) rotate(x *node[E]) {
	y := x.parent
	if y == nil {
		// impossible run to here
		panic( /* debug assertion */ "[tree] rotate the root node")
	}

	if z := y.parent; z == nil {
		t.root = x
		x.parent = nil
	} else {
		t.relink(z, x, y == z.left)
	}
	if x == y.left {
		t.relink(y, x.right, true)
		t.relink(x, y, false)
	} else {
		t.relink(y, x.left, false)
		t.relink(x, y, true)
	}
	t.stats.IncreaseRotationCount()
}

// Restructure performs the trinode restructuring of p with its parent and
// grandparent and returns the new root of the three.
func (t *LinkedBinaryTree[E]) Restructure(p Position[E]) (Position[E], error) {
	n, err := t.validate(p)
	if err != nil {
		return Position[E]{}, err
	}
	if n.parent == nil || n.parent.parent == nil {
		return Position[E]{}, fmt.Errorf("%w: restructure requires a grandparent", ErrStructuralPrecondition)
	}
	return t.makePosition(t.restructure(n)), nil
}

/*
Matching alignment, single rotation of Y:

	    Z                 Y
	   /                 / \
	  Y      ====>      X   Z
	 /
	X

Opposite alignment, double rotation of X:

	  Z                   X
	 /                   / \
	Y        ====>      Y   Z
	 \
	  X
*/
func (t *LinkedBinaryTree[E]) restructure(x *node[E]) *node[E] {
	y := x.parent
	z := y.parent
	t.stats.IncreaseRestructureCount()
	if (x == y.right) == (y == z.right) {
		t.rotate(y)
		return y
	}
	t.rotate(x)
	t.rotate(x)
	return x
}
