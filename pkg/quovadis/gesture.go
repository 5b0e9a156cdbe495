package quovadis

import (
	"log/slog"
	"math"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/atomic"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/internal"
	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

// GesturePhase is the predictive-back state machine phase.
type GesturePhase int

const (
	PhaseIdle GesturePhase = iota
	PhaseTracking
	PhaseCommitting
	PhaseCancelling
)

func (p GesturePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTracking:
		return "tracking"
	case PhaseCommitting:
		return "committing"
	case PhaseCancelling:
		return "cancelling"
	}
	return "unknown"
}

// VisualProgressCeiling clamps the displacement applied while tracking.
// The platform back-preview convention caps visual movement well below the
// full travel; the unclamped raw progress is kept for completion checks.
const VisualProgressCeiling = 0.25

// Spring tuning for the two terminal animations: commit snaps to 1.0 with
// no bounce, cancel returns to 0.0 softly with a light bounce.
const (
	commitFrequency = 14.0
	commitDamping   = 1.0
	cancelFrequency = 7.0
	cancelDamping   = 0.8
)

// GestureHandler is the callback surface a gesture source drives. The
// coordinator implements it; platform sources (edge-swipe detectors, back
// keys) only see this interface.
type GestureHandler interface {
	Start() error
	Progress(p float64)
	Commit()
	Cancel()
}

// GestureCoordinator runs the predictive-back state machine. It consumes
// an ordered stream of progress events plus terminal commit/cancel signals
// from an external source, computes the speculative result of popping the
// root stack, and exposes the state the renderer needs for its two-surface
// preview mode.
//
// All mutation happens on the engine's single logical UI thread; the
// progress values are additionally published through atomics so a platform
// backend polling from a different goroutine reads consistent floats.
type GestureCoordinator struct {
	nav   Navigator
	cache *internal.SubtreeCache
	log   *slog.Logger

	phase       GesturePhase
	speculative *navtree.Node
	exitKey     string // active child being swiped away
	enterKey    string // speculative newly exposed child

	visual *atomic.Float64 // clamped, drives preview transforms
	raw    *atomic.Float64 // unclamped, for completion-likelihood checks

	velocity float64
	spring   harmonica.Spring
}

// NewGestureCoordinator creates an idle coordinator bound to a navigator
// and the shared subtree cache.
func NewGestureCoordinator(nav Navigator, cache *internal.SubtreeCache) *GestureCoordinator {
	return &GestureCoordinator{
		nav:    nav,
		cache:  cache,
		log:    internal.GetInternalLogger(),
		visual: atomic.NewFloat64(0),
		raw:    atomic.NewFloat64(0),
	}
}

// Phase returns the current state machine phase.
func (g *GestureCoordinator) Phase() GesturePhase {
	return g.phase
}

// Active reports whether the renderer should be in two-surface preview
// mode. True for the whole Tracking/Committing/Cancelling lifecycle.
func (g *GestureCoordinator) Active() bool {
	return g.phase != PhaseIdle
}

// Speculative returns the precomputed result of the pending pop, or nil
// while idle.
func (g *GestureCoordinator) Speculative() *navtree.Node {
	return g.speculative
}

// VisualProgress is the clamped progress driving preview transforms. It
// exceeds the tracking ceiling only during the commit animation, which
// runs it to 1.0.
func (g *GestureCoordinator) VisualProgress() float64 {
	return g.visual.Load()
}

// RawProgress is the unclamped gesture progress as reported by the source.
func (g *GestureCoordinator) RawProgress() float64 {
	return g.raw.Load()
}

// Start begins a gesture: it computes the speculative result of popping
// the current root stack without mutating authoritative state, and locks
// the cache entries for both preview surfaces. A root stack with nothing
// to pop rejects the gesture; a re-trigger while not idle is ignored.
func (g *GestureCoordinator) Start() error {
	if g.phase != PhaseIdle {
		return ErrGestureBusy
	}
	current := g.nav.Current()
	if current == nil || current.Kind != navtree.KindStack {
		return ErrGestureRejected
	}
	popped, ok := current.PoppedOne()
	if !ok {
		return ErrGestureRejected
	}

	exit := current.ActiveChild()
	enter := popped.ActiveChild()
	if exit == nil || enter == nil {
		return ErrGestureRejected
	}

	g.phase = PhaseTracking
	g.speculative = popped
	g.exitKey = exit.Key
	g.enterKey = enter.Key
	g.visual.Store(0)
	g.raw.Store(0)
	g.velocity = 0

	g.cache.Lock(g.exitKey)
	g.cache.Lock(g.enterKey)

	g.log.Debug("gesture tracking", "exit", g.exitKey, "enter", g.enterKey)
	return nil
}

// Progress feeds one gesture progress event in [0, 1]. Events outside the
// Tracking phase are dropped; the visual value is clamped to the ceiling
// while the raw value is stored as-is.
func (g *GestureCoordinator) Progress(p float64) {
	if g.phase != PhaseTracking {
		return
	}
	p = math.Max(0, math.Min(1, p))
	g.raw.Store(p)
	g.visual.Store(math.Min(p, VisualProgressCeiling))
}

// Commit reacts to the source's gesture-complete signal: the preview
// animates to full displacement and the speculative result becomes the
// authoritative state once the spring settles.
func (g *GestureCoordinator) Commit() {
	if g.phase != PhaseTracking {
		return
	}
	g.phase = PhaseCommitting
	g.spring = harmonica.NewSpring(harmonica.FPS(timelineFPS), commitFrequency, commitDamping)
	g.velocity = 0
}

// Cancel reacts to the source's cancel signal, including abrupt
// interruption: the preview animates back to rest and the speculative
// result is discarded. Safe to call from any non-idle phase; the
// Cancelling path runs exactly once.
func (g *GestureCoordinator) Cancel() {
	if g.phase != PhaseTracking && g.phase != PhaseCommitting {
		return
	}
	g.phase = PhaseCancelling
	g.spring = harmonica.NewSpring(harmonica.FPS(timelineFPS), cancelFrequency, cancelDamping)
	g.velocity = 0
}

// Step advances the terminal animation by one frame. The engine calls it
// from Frame; it is a no-op while idle or tracking. Settling the commit
// spring performs the single authoritative commit and unlock; settling the
// cancel spring restores progress to exactly zero.
func (g *GestureCoordinator) Step() {
	switch g.phase {
	case PhaseCommitting:
		if g.stepToward(1) {
			g.nav.Commit(g.speculative)
			g.finish(1)
			g.log.Debug("gesture committed")
		}
	case PhaseCancelling:
		if g.stepToward(0) {
			g.finish(0)
			g.log.Debug("gesture cancelled")
		}
	}
}

// stepToward advances the visual progress spring and reports settlement.
func (g *GestureCoordinator) stepToward(target float64) bool {
	pos := g.visual.Load()
	pos, g.velocity = g.spring.Update(pos, g.velocity, target)
	if math.Abs(target-pos) < settleEpsilon && math.Abs(g.velocity) < settleEpsilon {
		g.visual.Store(target)
		return true
	}
	g.visual.Store(pos)
	return false
}

// finish unlocks both preview surfaces and returns to idle. It runs
// exactly once per gesture, from whichever terminal path settled.
func (g *GestureCoordinator) finish(final float64) {
	g.cache.Unlock(g.exitKey)
	g.cache.Unlock(g.enterKey)
	g.phase = PhaseIdle
	g.speculative = nil
	g.exitKey = ""
	g.enterKey = ""
	g.visual.Store(final)
	g.raw.Store(final)
	g.velocity = 0
}

// ExitKey returns the key of the surface being swiped away ("" when idle).
func (g *GestureCoordinator) ExitKey() string { return g.exitKey }

// EnterKey returns the key of the speculative surface beneath ("" when
// idle).
func (g *GestureCoordinator) EnterKey() string { return g.enterKey }
