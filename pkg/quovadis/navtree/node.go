package navtree

import (
	"github.com/google/uuid"
)

// Kind identifies which variant of the navigation node union a Node is.
type Kind int

const (
	KindScreen Kind = iota
	KindStack
	KindTab
	KindPane
)

func (k Kind) String() string {
	switch k {
	case KindScreen:
		return "screen"
	case KindStack:
		return "stack"
	case KindTab:
		return "tab"
	case KindPane:
		return "pane"
	}
	return "unknown"
}

// Role tags a Pane child with its layout slot.
type Role int

const (
	RolePrimary Role = iota
	RoleSecondary
	RoleExtra
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	case RoleExtra:
		return "extra"
	}
	return "unknown"
}

// Node is a tagged union over the four navigation node kinds.
// Which fields are meaningful depends on Kind; the zero values of the
// others are ignored. Nodes are immutable: every operation returns a copy.
type Node struct {
	Kind Kind
	Key  string // unique within one tree; stable across renders

	// Screen
	Destination any // opaque to the engine; consumed by the ContentResolver

	// Stack, Tab, Pane
	Children []*Node

	// Tab
	Active int // index of the active child stack

	// Pane
	Roles    []Role // parallel to Children
	Expanded bool   // externally supplied; true = all panes visible side by side
	Focused  Role   // active role while not expanded
}

// PaneSlot pairs a child node with its pane role for NewPane.
type PaneSlot struct {
	Role Role
	Node *Node
}

// NewScreen creates a leaf node carrying an opaque destination.
// An empty key is replaced with a generated one; callers that want cache
// reuse across process restarts should supply stable keys themselves.
func NewScreen(key string, destination any) *Node {
	return &Node{Kind: KindScreen, Key: orGenerated(key), Destination: destination}
}

// NewStack creates a stack node. The last child is the active one.
func NewStack(key string, children ...*Node) *Node {
	return &Node{Kind: KindStack, Key: orGenerated(key), Children: children}
}

// NewTab creates a tab node over per-tab stacks with the given active index.
func NewTab(key string, active int, stacks ...*Node) *Node {
	return &Node{Kind: KindTab, Key: orGenerated(key), Active: active, Children: stacks}
}

// NewPane creates a pane node. Focused selects the visible role while the
// pane is not expanded; expanded panes show every slot at once.
func NewPane(key string, focused Role, expanded bool, slots ...PaneSlot) *Node {
	node := &Node{Kind: KindPane, Key: orGenerated(key), Focused: focused, Expanded: expanded}
	for _, slot := range slots {
		node.Children = append(node.Children, slot.Node)
		node.Roles = append(node.Roles, slot.Role)
	}
	return node
}

func orGenerated(key string) string {
	if key != "" {
		return key
	}
	return uuid.NewString()
}

// ActiveChild returns the child that is currently on screen for this node,
// or nil when there is none (empty stack, tab index out of bounds, pane
// focused on a role it does not contain). A nil result is a transient
// empty state, not a fault.
func (n *Node) ActiveChild() *Node {
	switch n.Kind {
	case KindStack:
		if len(n.Children) == 0 {
			return nil
		}
		return n.Children[len(n.Children)-1]
	case KindTab:
		if n.Active < 0 || n.Active >= len(n.Children) {
			return nil
		}
		return n.Children[n.Active]
	case KindPane:
		if n.Expanded {
			return nil
		}
		for i, role := range n.Roles {
			if role == n.Focused {
				return n.Children[i]
			}
		}
		return nil
	}
	return nil
}

// Pushed returns a copy of a stack with child appended as the new active
// element. Calling it on a non-stack node returns the node unchanged.
func (n *Node) Pushed(child *Node) *Node {
	if n.Kind != KindStack {
		return n
	}
	out := n.shallowCopy()
	out.Children = append(append([]*Node(nil), n.Children...), child)
	return out
}

// PoppedOne returns a copy of a stack with its last child removed. The
// second result is false when nothing can be popped (fewer than two
// children); the predictive-back gesture uses that to reject a start.
func (n *Node) PoppedOne() (*Node, bool) {
	if n.Kind != KindStack || len(n.Children) < 2 {
		return n, false
	}
	out := n.shallowCopy()
	out.Children = append([]*Node(nil), n.Children[:len(n.Children)-1]...)
	return out, true
}

// PoppedTo returns a copy of a stack truncated so that the child with the
// given key becomes active (multi-pop). False when the key is absent or
// already active.
func (n *Node) PoppedTo(key string) (*Node, bool) {
	if n.Kind != KindStack {
		return n, false
	}
	for i, child := range n.Children {
		if child.Key == key {
			if i == len(n.Children)-1 {
				return n, false
			}
			out := n.shallowCopy()
			out.Children = append([]*Node(nil), n.Children[:i+1]...)
			return out, true
		}
	}
	return n, false
}

// WithActive returns a copy of a tab node with the active index changed.
func (n *Node) WithActive(index int) *Node {
	if n.Kind != KindTab {
		return n
	}
	out := n.shallowCopy()
	out.Active = index
	return out
}

// WithExpanded returns a copy of a pane node with the expanded flag set.
// The flag is an input from the host's window-size classification; the
// engine only consumes it.
func (n *Node) WithExpanded(expanded bool) *Node {
	if n.Kind != KindPane {
		return n
	}
	out := n.shallowCopy()
	out.Expanded = expanded
	return out
}

// WithFocused returns a copy of a pane node focused on the given role.
func (n *Node) WithFocused(role Role) *Node {
	if n.Kind != KindPane {
		return n
	}
	out := n.shallowCopy()
	out.Focused = role
	return out
}

// RoleOf returns the role of the i-th pane child.
func (n *Node) RoleOf(i int) Role {
	if n.Kind != KindPane || i < 0 || i >= len(n.Roles) {
		return RolePrimary
	}
	return n.Roles[i]
}

func (n *Node) shallowCopy() *Node {
	out := *n
	return &out
}
