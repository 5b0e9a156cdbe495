package navtree_test

import (
	"fmt"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

// Destination values are opaque to the engine; applications define their
// own types and resolve them to content elsewhere.
type ArticleDestination struct {
	ID int
}

// Example demonstrates building a tree, navigating forward, and popping
// back through the navigator.
func Example() {
	root := navtree.NewStack("root",
		navtree.NewScreen("feed", ArticleDestination{ID: 0}),
	)
	nav := navtree.NewNavigator(root)

	// Forward: push a detail screen.
	nav.Commit(nav.Current().Pushed(
		navtree.NewScreen("article-7", ArticleDestination{ID: 7}),
	))
	fmt.Println("active:", nav.Current().ActiveChild().Key)
	fmt.Println("can go back:", nav.CanGoBack())

	// Back: pop one level.
	if popped, ok := nav.Current().PoppedOne(); ok {
		nav.Commit(popped)
	}
	fmt.Println("active:", nav.Current().ActiveChild().Key)
	fmt.Println("was back:", navtree.IsBack(nav.Previous(), nav.Current()))

	// Output:
	// active: article-7
	// can go back: true
	// active: feed
	// was back: true
}

// Example_speculativePop shows the predictive-back primitive: computing
// the result of a pop without committing it.
func Example_speculativePop() {
	root := navtree.NewStack("root",
		navtree.NewScreen("home", nil),
		navtree.NewScreen("settings", nil),
	)
	nav := navtree.NewNavigator(root)

	speculative, ok := nav.Current().PoppedOne()
	fmt.Println("would land on:", speculative.ActiveChild().Key, ok)

	// Authoritative state is untouched until the gesture commits.
	fmt.Println("still on:", nav.Current().ActiveChild().Key)

	// Output:
	// would land on: home true
	// still on: settings
}
