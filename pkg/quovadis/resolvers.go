package quovadis

import (
	"log/slog"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

// Navigator is the external owner of authoritative navigation state. The
// engine only reads the current and previous snapshots and calls Commit on
// gesture completion or an explicit back action. navtree.Navigator is the
// default in-memory implementation.
type Navigator interface {
	Current() *navtree.Node
	Previous() *navtree.Node
	CanGoBack() bool
	Commit(next *navtree.Node)
}

// NodeContext is handed to a screen's render function. It carries the
// navigation and logging handles the content may need; the content itself
// lives in the subtree cache and survives re-renders by key.
type NodeContext struct {
	Key         string
	Destination any
	Navigator   Navigator
	Logger      *slog.Logger
}

// RenderFn builds the renderable content for one screen. It runs once per
// cache entry; the returned value is preserved across re-renders and is
// opaque to the engine.
type RenderFn func(ctx NodeContext) any

// ContentResolver maps a destination value to its render function. It must
// be a pure function of the destination identity; an unknown destination
// is a configuration error.
type ContentResolver interface {
	Resolve(destination any) (RenderFn, error)
}

// FuncContentResolver is a map-backed ContentResolver keyed by
// DestinationID.
type FuncContentResolver map[string]RenderFn

func (f FuncContentResolver) Resolve(destination any) (RenderFn, error) {
	fn, ok := f[DestinationID(destination)]
	if !ok {
		return nil, ErrUnknownDestination{ID: DestinationID(destination)}
	}
	return fn, nil
}

// ErrUnknownDestination is returned by resolvers that have no render
// function for a destination.
type ErrUnknownDestination struct {
	ID string
}

func (e ErrUnknownDestination) Error() string {
	return "no content registered for destination " + e.ID
}

// WrapperContext is handed to a user-supplied wrapper layout. For tab
// wrappers Content is the single animated content slot; for pane wrappers
// Slots holds one surface per configured role along with visibility and
// focus metadata.
type WrapperContext struct {
	Key      string
	Content  *Surface
	Slots    map[navtree.Role]*Surface
	Visible  map[navtree.Role]bool
	Focused  navtree.Role
	Expanded bool
}

// WrapperFn lays out a container's chrome around its content slots and
// returns the combined surface. The wrapper must place the slot surfaces
// it was given; it never re-renders them.
type WrapperFn func(ctx WrapperContext) *Surface

// WrapperResolver maps Tab and Pane node keys to user-supplied wrapper
// layouts. A miss is never an error: an unmapped Tab renders its content
// directly, an unmapped Pane gets the built-in side-by-side layout.
type WrapperResolver interface {
	TabWrapper(nodeKey string) (WrapperFn, bool)
	PaneWrapper(nodeKey string) (WrapperFn, bool)
}

// NoWrappers is the empty WrapperResolver.
type NoWrappers struct{}

func (NoWrappers) TabWrapper(string) (WrapperFn, bool)  { return nil, false }
func (NoWrappers) PaneWrapper(string) (WrapperFn, bool) { return nil, false }

// MapWrapperResolver resolves wrappers from two key-indexed maps.
type MapWrapperResolver struct {
	Tabs  map[string]WrapperFn
	Panes map[string]WrapperFn
}

func (m MapWrapperResolver) TabWrapper(nodeKey string) (WrapperFn, bool) {
	fn, ok := m.Tabs[nodeKey]
	return fn, ok
}

func (m MapWrapperResolver) PaneWrapper(nodeKey string) (WrapperFn, bool) {
	fn, ok := m.Panes[nodeKey]
	return fn, ok
}

// paneRoleOrder fixes slot ordering for the default pane layout.
var paneRoleOrder = []navtree.Role{navtree.RolePrimary, navtree.RoleSecondary, navtree.RoleExtra}

// defaultPaneWrapper is the built-in layout for unmapped pane nodes: in
// expanded mode the visible slots share the width side by side, otherwise
// the focused slot fills the container.
func defaultPaneWrapper(ctx WrapperContext) *Surface {
	root := newSurface(ctx.Key)

	if !ctx.Expanded {
		if slot := ctx.Slots[ctx.Focused]; slot != nil {
			root.Children = append(root.Children, slot)
		}
		return root
	}

	var visible []*Surface
	for _, role := range paneRoleOrder {
		if slot := ctx.Slots[role]; slot != nil && ctx.Visible[role] {
			visible = append(visible, slot)
		}
	}
	n := len(visible)
	if n == 0 {
		return root
	}
	for i, slot := range visible {
		slot.Transform.TranslateX = float64(i) / float64(n)
		slot.Transform.ScaleX = 1 / float64(n)
		root.Children = append(root.Children, slot)
	}
	return root
}
