package navtree

// Navigator owns the authoritative navigation state: the current tree and
// the snapshot it replaced. The engine only reads the two snapshots and
// calls Commit on gesture completion or an explicit back action; everything
// else about how trees change is up to the host application.
type Navigator struct {
	current  *Node
	previous *Node
}

// NewNavigator creates a navigator rooted at the given tree.
func NewNavigator(root *Node) *Navigator {
	return &Navigator{current: root}
}

// Current returns the authoritative current tree.
func (n *Navigator) Current() *Node {
	return n.current
}

// Previous returns the snapshot the current tree replaced, or nil before
// the first Commit.
func (n *Navigator) Previous() *Node {
	return n.previous
}

// CanGoBack reports whether popping the root stack is possible.
func (n *Navigator) CanGoBack() bool {
	if n.current == nil || n.current.Kind != KindStack {
		return false
	}
	return len(n.current.Children) > 1
}

// Commit replaces the current tree, retaining the old one as the previous
// snapshot for back detection and transition resolution.
func (n *Navigator) Commit(next *Node) {
	n.previous = n.current
	n.current = next
}
