package quovadis

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/internal"
)

// timelineFPS is the cooperative frame rate the engine's springs assume.
// Frame is expected to be called about this often; the springs only care
// about step count, so an uneven host loop degrades smoothness, not
// correctness.
const timelineFPS = 60

const settleEpsilon = 1e-3

func springFor(duration time.Duration, damping float64) harmonica.Spring {
	secs := duration.Seconds()
	if secs <= 0 {
		secs = globalDuration.Seconds()
	}
	// Angular frequency chosen so the spring settles in roughly the
	// authored duration at critical damping.
	freq := 2 * math.Pi / secs
	return harmonica.NewSpring(harmonica.FPS(timelineFPS), freq, damping)
}

// ActiveTransition is one in-flight animated navigation change within a
// single container. Each Stack/Tab/Pane owns at most one; timelines are
// independent across containers but all honor the cache lock protocol.
type ActiveTransition struct {
	Spec    Spec
	FromKey string
	ToKey   string
	IsBack  bool

	progress float64
	velocity float64
	spring   harmonica.Spring
	done     bool
}

// Progress is the animation progress in [0, 1].
func (t *ActiveTransition) Progress() float64 {
	return t.progress
}

// Done reports whether the transition has settled.
func (t *ActiveTransition) Done() bool {
	return t.done
}

func (t *ActiveTransition) step() {
	if t.done {
		return
	}
	t.progress, t.velocity = t.spring.Update(t.progress, t.velocity, 1)
	if math.Abs(1-t.progress) < settleEpsilon && math.Abs(t.velocity) < settleEpsilon {
		t.progress = 1
		t.velocity = 0
		t.done = true
	}
}

// timelineSet tracks the per-container animation timelines and the cache
// locks that keep both sides of each animation resolvable.
type timelineSet struct {
	cache   *internal.SubtreeCache
	active  map[string]*ActiveTransition
	settled map[string]string // container key -> last settled active-child key
}

func newTimelineSet(cache *internal.SubtreeCache) *timelineSet {
	return &timelineSet{
		cache:   cache,
		active:  make(map[string]*ActiveTransition),
		settled: make(map[string]string),
	}
}

// observe is called by the renderer every pass with the container's
// previous and current active-child keys. It starts a timeline when the
// active child changed, continues the in-flight one while it runs, and
// returns nil once settled (or when the change has nothing to animate).
func (s *timelineSet) observe(containerKey, fromKey, toKey string, spec Spec, isBack bool) *ActiveTransition {
	if cur, ok := s.active[containerKey]; ok {
		if cur.ToKey == toKey {
			return cur
		}
		// A navigation event arrived mid-animation. The old timeline is
		// abandoned; its locks drop and the new one starts from the top.
		s.finish(containerKey, cur)
	}

	if s.settled[containerKey] == toKey {
		return nil
	}
	if fromKey == "" || fromKey == toKey || spec.isStatic(false) {
		// First appearance or a static change: nothing to animate.
		s.settled[containerKey] = toKey
		return nil
	}

	t := &ActiveTransition{
		Spec:    spec,
		FromKey: fromKey,
		ToKey:   toKey,
		IsBack:  isBack,
		spring:  springFor(spec.Enter.Duration, 1.0),
	}
	s.cache.Lock(fromKey)
	s.cache.Lock(toKey)
	s.active[containerKey] = t
	return t
}

// step advances every timeline by one frame, releasing locks as they
// settle.
func (s *timelineSet) step() {
	for key, t := range s.active {
		t.step()
		if t.done {
			s.finish(key, t)
		}
	}
}

func (s *timelineSet) finish(containerKey string, t *ActiveTransition) {
	s.cache.Unlock(t.FromKey)
	s.cache.Unlock(t.ToKey)
	s.settled[containerKey] = t.ToKey
	delete(s.active, containerKey)
}

// markSettled records a change as already on screen without animating it.
// The engine uses it after a gesture commit: the preview has already
// played the pop, so the authoritative state change must not trigger a
// second transition.
func (s *timelineSet) markSettled(containerKey, toKey string) {
	if cur, ok := s.active[containerKey]; ok {
		s.finish(containerKey, cur)
	}
	s.settled[containerKey] = toKey
}

// busy reports whether any timeline is still running.
func (s *timelineSet) busy() bool {
	return len(s.active) > 0
}
