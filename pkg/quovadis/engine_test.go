package quovadis

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

func TestNewRequiresNavigator(t *testing.T) {
	_, err := New(Options{Content: echoContent{}})
	assert.ErrorIs(t, err, ErrNoNavigator)
}

func TestNewRequiresContentResolver(t *testing.T) {
	nav := navtree.NewNavigator(screenStack("root", "home"))
	_, err := New(Options{Navigator: nav})
	assert.ErrorIs(t, err, ErrNoContentResolver)
}

func TestNewRejectsMissingTransitionConfig(t *testing.T) {
	nav := navtree.NewNavigator(screenStack("root", "home"))
	_, err := New(Options{
		Navigator:            nav,
		Content:              echoContent{},
		TransitionConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
	})
	assert.Error(t, err)
}

func TestFrameAnimatesPushToCompletion(t *testing.T) {
	engine, nav := newTestEngine(t, screenStack("root", "home"))
	pumpUntilIdle(t, engine)

	nav.Commit(nav.Current().Pushed(navtree.NewScreen("detail", dest("detail"))))

	surface, err := engine.Frame(time.Now())
	require.NoError(t, err)
	require.NotNil(t, surface.Transition)
	assert.True(t, engine.Dirty())

	last := surface.Transition.Progress()
	now := time.Now()
	for i := 0; i < 5; i++ {
		now = now.Add(time.Second / timelineFPS)
		surface, err = engine.Frame(now)
		require.NoError(t, err)
		require.NotNil(t, surface.Transition)
		p := surface.Transition.Progress()
		assert.Greater(t, p, last, "progress advances monotonically")
		last = p
	}

	settled := pumpUntilIdle(t, engine)
	assert.Nil(t, settled.Transition)
	assert.False(t, engine.Dirty())
	assert.NotNil(t, settled.FindKey("detail"))
}

func TestBack(t *testing.T) {
	engine, nav := newTestEngine(t, screenStack("root", "home", "detail"))
	pumpUntilIdle(t, engine)

	assert.True(t, engine.Back())
	assert.Equal(t, "home", nav.Current().ActiveChild().Key)
	assert.NotNil(t, nav.Previous())

	surface := pumpUntilIdle(t, engine)
	assert.NotNil(t, surface.FindKey("home"))
	assert.Nil(t, surface.FindKey("detail"))

	// Nothing left to pop.
	assert.False(t, engine.Back())
}

func TestBackTo(t *testing.T) {
	engine, nav := newTestEngine(t, screenStack("root", "home", "list", "detail"))
	pumpUntilIdle(t, engine)

	assert.False(t, engine.BackTo("missing"))
	assert.False(t, engine.BackTo("detail"), "already active")

	assert.True(t, engine.BackTo("home"))
	assert.Equal(t, "home", nav.Current().ActiveChild().Key)
	assert.Len(t, nav.Current().Children, 1)

	// Multi-level back still animates as one normal pop transition.
	surface, err := engine.Frame(time.Now())
	require.NoError(t, err)
	require.NotNil(t, surface.Transition)
	assert.True(t, surface.Transition.IsBack)
	assert.Equal(t, "detail", surface.Transition.FromKey)
	assert.Equal(t, "home", surface.Transition.ToKey)
	pumpUntilIdle(t, engine)
}

func TestGestureCommitDoesNotReplayAsTransition(t *testing.T) {
	engine, nav := newTestEngine(t, screenStack("root", "home", "detail"))
	pumpUntilIdle(t, engine)

	g := engine.Gesture()
	require.NoError(t, g.Start())
	g.Progress(0.6)
	g.Commit()

	surface := pumpUntilIdle(t, engine)

	// The preview already played the pop; the committed state renders
	// settled instead of starting a second pop animation.
	assert.Equal(t, "home", nav.Current().ActiveChild().Key)
	assert.Nil(t, surface.Transition)
	assert.False(t, surface.GesturePreview)
	assert.False(t, engine.Dirty())
}

func TestRuntimeTransitionOverride(t *testing.T) {
	engine, nav := newTestEngine(t, screenStack("root", "home"))
	pumpUntilIdle(t, engine)

	custom := Spec{
		Enter:    Anim{Kind: AnimSlide, Edge: EdgeTop, Duration: 120 * time.Millisecond},
		Exit:     Anim{Kind: AnimFade, Duration: 120 * time.Millisecond},
		PopEnter: Anim{Kind: AnimFade, Duration: 120 * time.Millisecond},
		PopExit:  Anim{Kind: AnimSlide, Edge: EdgeTop, Duration: 120 * time.Millisecond},
	}
	engine.Transitions().Override("detail", custom)

	nav.Commit(nav.Current().Pushed(navtree.NewScreen("detail", dest("detail"))))
	surface, err := engine.Frame(time.Now())
	require.NoError(t, err)
	require.NotNil(t, surface.Transition)
	assert.Equal(t, custom, surface.Transition.Spec)
	pumpUntilIdle(t, engine)
}

func TestCacheLenGrowsWithDistinctScreens(t *testing.T) {
	engine, nav := newTestEngine(t, screenStack("root", "home"))
	pumpUntilIdle(t, engine)
	assert.Equal(t, 1, engine.CacheLen())

	nav.Commit(nav.Current().Pushed(navtree.NewScreen("detail", dest("detail"))))
	pumpUntilIdle(t, engine)
	assert.Equal(t, 2, engine.CacheLen())
}
