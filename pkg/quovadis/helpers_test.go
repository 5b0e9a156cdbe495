package quovadis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

// echoContent resolves every destination to a content value recording it.
type echoContent struct{}

func (echoContent) Resolve(destination any) (RenderFn, error) {
	return func(ctx NodeContext) any {
		return fmt.Sprintf("content[%s]=%v", ctx.Key, destination)
	}, nil
}

func screenStack(stackKey string, keys ...string) *navtree.Node {
	children := make([]*navtree.Node, len(keys))
	for i, key := range keys {
		children[i] = navtree.NewScreen(key, dest(key))
	}
	return navtree.NewStack(stackKey, children...)
}

func newTestEngine(t *testing.T, root *navtree.Node) (*Engine, *navtree.Navigator) {
	t.Helper()
	nav := navtree.NewNavigator(root)
	engine, err := New(Options{
		Navigator: nav,
		Content:   echoContent{},
	})
	require.NoError(t, err)
	return engine, nav
}

// pumpUntilIdle drives frames until no animation or gesture remains, with
// a hard bound so a broken state machine fails instead of hanging.
func pumpUntilIdle(t *testing.T, engine *Engine) *Surface {
	t.Helper()
	now := time.Now()
	var surface *Surface
	var err error
	for i := 0; i < 2000; i++ {
		surface, err = engine.Frame(now)
		require.NoError(t, err)
		if !engine.Dirty() {
			return surface
		}
		now = now.Add(time.Second / timelineFPS)
	}
	t.Fatal("engine never settled")
	return nil
}
