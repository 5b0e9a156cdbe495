package navtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stackOf(keys ...string) *Node {
	children := make([]*Node, len(keys))
	for i, key := range keys {
		children[i] = NewScreen(key, key)
	}
	return NewStack("root", children...)
}

func TestActiveChild(t *testing.T) {
	stack := stackOf("home", "detail")
	require.NotNil(t, stack.ActiveChild())
	assert.Equal(t, "detail", stack.ActiveChild().Key)

	tab := NewTab("tabs", 1, stackOf("a"), NewStack("s2", NewScreen("b", nil)))
	require.NotNil(t, tab.ActiveChild())
	assert.Equal(t, "s2", tab.ActiveChild().Key)

	pane := NewPane("pane", RoleSecondary, false,
		PaneSlot{Role: RolePrimary, Node: NewScreen("p", nil)},
		PaneSlot{Role: RoleSecondary, Node: NewScreen("s", nil)},
	)
	require.NotNil(t, pane.ActiveChild())
	assert.Equal(t, "s", pane.ActiveChild().Key)
}

func TestActiveChildTransientEmptyStates(t *testing.T) {
	assert.Nil(t, NewStack("empty").ActiveChild())
	assert.Nil(t, NewTab("tabs", 5, stackOf("a")).ActiveChild())
	assert.Nil(t, NewTab("tabs", -1, stackOf("a")).ActiveChild())

	pane := NewPane("pane", RoleExtra, false,
		PaneSlot{Role: RolePrimary, Node: NewScreen("p", nil)},
	)
	assert.Nil(t, pane.ActiveChild())
}

func TestPoppedOne(t *testing.T) {
	stack := stackOf("home", "list", "detail")

	popped, ok := stack.PoppedOne()
	require.True(t, ok)
	assert.Equal(t, "list", popped.ActiveChild().Key)
	assert.Len(t, popped.Children, 2)

	// Original untouched.
	assert.Len(t, stack.Children, 3)

	single := stackOf("home")
	_, ok = single.PoppedOne()
	assert.False(t, ok)
}

func TestPoppedTo(t *testing.T) {
	stack := stackOf("home", "list", "detail")

	popped, ok := stack.PoppedTo("home")
	require.True(t, ok)
	assert.Equal(t, "home", popped.ActiveChild().Key)
	assert.Len(t, popped.Children, 1)

	_, ok = stack.PoppedTo("detail")
	assert.False(t, ok, "popping to the active child is a no-op")

	_, ok = stack.PoppedTo("missing")
	assert.False(t, ok)
}

func TestPushedIsImmutable(t *testing.T) {
	stack := stackOf("home")
	grown := stack.Pushed(NewScreen("next", nil))

	assert.Len(t, stack.Children, 1)
	assert.Len(t, grown.Children, 2)
	assert.Equal(t, "next", grown.ActiveChild().Key)
}

func TestGeneratedKeysAreUnique(t *testing.T) {
	a := NewScreen("", nil)
	b := NewScreen("", nil)
	assert.NotEmpty(t, a.Key)
	assert.NotEmpty(t, b.Key)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestValidateDuplicateKey(t *testing.T) {
	tree := NewStack("root", NewScreen("dup", nil), NewScreen("dup", nil))

	err := Validate(tree)
	require.Error(t, err)
	assert.True(t, IsStructureError(err))
	assert.Contains(t, err.Error(), "dup")
}

func TestValidateCycle(t *testing.T) {
	inner := NewStack("inner")
	outer := NewStack("outer", inner)
	inner.Children = []*Node{outer} // deliberately corrupt

	err := Validate(outer)
	require.Error(t, err)
	assert.True(t, IsStructureError(err))
}

func TestValidateOK(t *testing.T) {
	tree := NewStack("root",
		NewTab("tabs", 0,
			NewStack("s1", NewScreen("a", nil)),
			NewStack("s2", NewScreen("b", nil)),
		),
		NewPane("pane", RolePrimary, true,
			PaneSlot{Role: RolePrimary, Node: NewScreen("p", nil)},
			PaneSlot{Role: RoleSecondary, Node: NewScreen("q", nil)},
		),
	)
	assert.NoError(t, Validate(tree))
	assert.NoError(t, Validate(nil))
}

func TestIsBackOnShrink(t *testing.T) {
	previous := stackOf("home", "list", "detail")
	current := stackOf("home", "list")

	assert.True(t, IsBack(previous, current))
	assert.False(t, IsBack(current, previous))
}

func TestIsBackOnJumpToEarlierChild(t *testing.T) {
	previous := stackOf("home", "list", "detail")

	// Same length but the active child moved to an earlier position:
	// still back navigation (e.g. a replace-at-top that resurfaces home).
	current := NewStack("root",
		NewScreen("x", nil), NewScreen("y", nil), NewScreen("home", "home"),
	)
	assert.True(t, IsBack(previous, current))
}

func TestIsBackMismatchedOrNil(t *testing.T) {
	current := stackOf("home")
	assert.False(t, IsBack(nil, current))
	assert.False(t, IsBack(NewStack("other", NewScreen("z", nil)), current))
}

func TestNavigator(t *testing.T) {
	root := stackOf("home", "detail")
	nav := NewNavigator(root)

	assert.Same(t, root, nav.Current())
	assert.Nil(t, nav.Previous())
	assert.True(t, nav.CanGoBack())

	popped, ok := root.PoppedOne()
	require.True(t, ok)
	nav.Commit(popped)

	assert.Same(t, popped, nav.Current())
	assert.Same(t, root, nav.Previous())
	assert.False(t, nav.CanGoBack())
}
