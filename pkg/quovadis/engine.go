package quovadis

import (
	"log/slog"
	"time"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/internal"
)

// Engine ties the renderer, subtree cache, transition resolver and gesture
// coordinator to one navigator. The host drives it from a single logical
// UI thread: call Frame once per frame whenever navigator state, gesture
// progress, or an animation may have changed, and composite the returned
// surface tree with a platform backend.
type Engine struct {
	nav         Navigator
	cache       *internal.SubtreeCache
	transitions *Resolver
	gesture     *GestureCoordinator
	renderer    *Renderer
	timelines   *timelineSet
	log         *slog.Logger

	lastFrame time.Time
}

// New creates an engine from the given options. Navigator and Content are
// required; everything else has defaults.
func New(opts Options) (*Engine, error) {
	if opts.LogPath != "" {
		internal.SetLogPath(opts.LogPath)
	}
	if opts.LogLevel != "" {
		internal.SetRawLogLevel(opts.LogLevel)
	}

	if opts.Navigator == nil {
		return nil, ErrNoNavigator
	}
	if opts.Content == nil {
		return nil, ErrNoContentResolver
	}

	cache := internal.NewSubtreeCacheWithSize(opts.CacheSize)

	transitions := opts.Transitions
	if transitions == nil {
		transitions = NewResolver()
	}
	if opts.TransitionConfigPath != "" {
		if err := transitions.LoadOverrides(opts.TransitionConfigPath); err != nil {
			return nil, err
		}
	}

	wrappers := opts.Wrappers
	if wrappers == nil {
		wrappers = NoWrappers{}
	}

	gesture := NewGestureCoordinator(opts.Navigator, cache)
	timelines := newTimelineSet(cache)

	engine := &Engine{
		nav:         opts.Navigator,
		cache:       cache,
		transitions: transitions,
		gesture:     gesture,
		timelines:   timelines,
		log:         internal.GetInternalLogger(),
	}
	engine.renderer = &Renderer{
		cache:       cache,
		content:     opts.Content,
		wrappers:    wrappers,
		transitions: transitions,
		gesture:     gesture,
		nav:         opts.Navigator,
		timelines:   timelines,
	}
	return engine, nil
}

// Frame advances one cooperative tick: gesture springs, transition
// timelines, then a fresh render of the current snapshot. Re-rendering is
// cheap and re-entrant; hosts may call Frame on every vsync or only when
// Dirty reports pending motion.
func (e *Engine) Frame(now time.Time) (*Surface, error) {
	e.lastFrame = now

	wasCommitting := e.gesture.Phase() == PhaseCommitting
	e.gesture.Step()
	if wasCommitting && e.gesture.Phase() == PhaseIdle {
		// The preview already played the pop; the authoritative change it
		// just committed must not run a second transition.
		if current := e.nav.Current(); current != nil {
			e.timelines.markSettled(current.Key, keyOf(current.ActiveChild()))
		}
	}

	e.timelines.step()
	return e.renderer.Render(e.nav.Current(), e.nav.Previous())
}

// Dirty reports whether anything is still animating, so a host with an
// event-driven loop knows to keep scheduling frames.
func (e *Engine) Dirty() bool {
	return e.gesture.Active() || e.timelines.busy()
}

// Back performs an explicit (non-gesture) one-level back action on the
// root stack. It commits immediately; the pop transition animates over the
// following frames.
func (e *Engine) Back() bool {
	current := e.nav.Current()
	if current == nil {
		return false
	}
	popped, ok := current.PoppedOne()
	if !ok {
		return false
	}
	e.nav.Commit(popped)
	e.log.Debug("explicit back", "active", keyOf(popped.ActiveChild()))
	return true
}

// BackTo pops the root stack to the child with the given key (multi-pop).
// Multi-level back is never gesture-driven; it always runs as an immediate
// commit with a normal pop transition.
func (e *Engine) BackTo(key string) bool {
	current := e.nav.Current()
	if current == nil {
		return false
	}
	popped, ok := current.PoppedTo(key)
	if !ok {
		return false
	}
	e.nav.Commit(popped)
	e.log.Debug("explicit back_to", "key", key)
	return true
}

// Gesture returns the predictive-back coordinator; platform gesture
// sources feed it through the GestureHandler interface.
func (e *Engine) Gesture() *GestureCoordinator {
	return e.gesture
}

// Transitions returns the transition resolver for registering overrides at
// runtime.
func (e *Engine) Transitions() *Resolver {
	return e.transitions
}

// CacheLen reports how many subtrees are currently cached. Mainly for
// diagnostics.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}
