// Package navtree models navigation state as an immutable tree of nodes.
//
// A tree is built from four node kinds: Screen (a leaf carrying an opaque
// destination), Stack (ordered history, active = last child), Tab (parallel
// stacks with an active index), and Pane (role-tagged children for
// multi-pane layouts). Every node carries a stable string key; re-rendering
// a node with the same key means the same logical identity, which is what
// makes subtree-cache reuse safe.
//
// # Immutability
//
// Nodes are never mutated in place. All navigation operations (Pushed,
// PoppedOne, WithActive, ...) return a new tree sharing unchanged subtrees
// with the old one. The Navigator holds the authoritative current and
// previous snapshots and is the only place a "current tree" changes.
//
// # Basic Usage
//
//	root := navtree.NewStack("root",
//	    navtree.NewScreen("home", HomeDestination{}),
//	    navtree.NewScreen("detail", DetailDestination{ID: 42}),
//	)
//
//	nav := navtree.NewNavigator(root)
//
//	if popped, ok := nav.Current().PoppedOne(); ok {
//	    nav.Commit(popped)
//	}
//
// # Validation
//
// Validate walks a tree once per render pass and rejects structural faults:
// duplicate keys within the same tree and cycles (a node reachable through
// itself). These are the only fatal conditions in the engine; everything
// else degrades gracefully.
package navtree
