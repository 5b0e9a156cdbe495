package quovadis

import (
	"fmt"
	"time"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

// AnimKind selects the animation applied to one side of a transition.
type AnimKind int

const (
	AnimNone AnimKind = iota
	AnimSlide
	AnimFade
	AnimSlideFade
)

func (k AnimKind) String() string {
	switch k {
	case AnimNone:
		return "none"
	case AnimSlide:
		return "slide"
	case AnimFade:
		return "fade"
	case AnimSlideFade:
		return "slide_fade"
	}
	return "unknown"
}

// Edge is the screen edge a sliding surface enters from or exits toward.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeStart:
		return "start"
	case EdgeEnd:
		return "end"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

// Anim describes the animation of a single surface during a transition.
type Anim struct {
	Kind     AnimKind
	Edge     Edge
	Duration time.Duration
}

// IsNone reports whether this side animates at all.
func (a Anim) IsNone() bool {
	return a.Kind == AnimNone
}

// Spec is the full enter/exit animation description for one navigation
// change. It is an immutable value resolved fresh per transition; specs
// are never stored on nodes. For forward navigation the Enter/Exit pair
// applies; back navigation uses PopEnter/PopExit.
type Spec struct {
	Enter    Anim
	Exit     Anim
	PopEnter Anim
	PopExit  Anim
}

// Reversed derives the opposite-direction spec by swapping the forward
// pair with the pop pair, so only one direction needs authoring per custom
// transition.
func (s Spec) Reversed() Spec {
	return Spec{
		Enter:    s.PopEnter,
		Exit:     s.PopExit,
		PopEnter: s.Enter,
		PopExit:  s.Exit,
	}
}

// pair returns the animations to run, honoring direction.
func (s Spec) pair(isBack bool) (enter, exit Anim) {
	if isBack {
		return s.PopEnter, s.PopExit
	}
	return s.Enter, s.Exit
}

// isStatic reports whether the spec animates nothing in the given direction.
func (s Spec) isStatic(isBack bool) bool {
	enter, exit := s.pair(isBack)
	return enter.IsNone() && exit.IsNone()
}

const (
	stackDuration  = 300 * time.Millisecond
	tabDuration    = 250 * time.Millisecond
	globalDuration = 200 * time.Millisecond
)

// DefaultStackSpec is the push/pop slide used for stack navigation when no
// override applies.
func DefaultStackSpec() Spec {
	return Spec{
		Enter:    Anim{Kind: AnimSlide, Edge: EdgeEnd, Duration: stackDuration},
		Exit:     Anim{Kind: AnimFade, Duration: stackDuration},
		PopEnter: Anim{Kind: AnimFade, Duration: stackDuration},
		PopExit:  Anim{Kind: AnimSlide, Edge: EdgeEnd, Duration: stackDuration},
	}
}

// DefaultTabSpec is the fade/slide used when switching tabs. Forward
// switches (increasing index) run the Enter/Exit pair; backward switches
// run the pop pair, which slides the opposite way.
func DefaultTabSpec() Spec {
	return Spec{
		Enter:    Anim{Kind: AnimSlideFade, Edge: EdgeEnd, Duration: tabDuration},
		Exit:     Anim{Kind: AnimSlideFade, Edge: EdgeStart, Duration: tabDuration},
		PopEnter: Anim{Kind: AnimSlideFade, Edge: EdgeStart, Duration: tabDuration},
		PopExit:  Anim{Kind: AnimSlideFade, Edge: EdgeEnd, Duration: tabDuration},
	}
}

// DefaultPaneSpec is the pane-switch default: no animation. Panes within
// one container never animate independently of one another.
func DefaultPaneSpec() Spec {
	return Spec{}
}

// DefaultGlobalSpec is the last-resort fade.
func DefaultGlobalSpec() Spec {
	return Spec{
		Enter:    Anim{Kind: AnimFade, Duration: globalDuration},
		Exit:     Anim{Kind: AnimFade, Duration: globalDuration},
		PopEnter: Anim{Kind: AnimFade, Duration: globalDuration},
		PopExit:  Anim{Kind: AnimFade, Duration: globalDuration},
	}
}

// Identifiable lets a destination value supply its own stable identity for
// transition-override lookup.
type Identifiable interface {
	DestinationID() string
}

// DestinationID derives the override-lookup identity of a destination:
// the value's own ID when it implements Identifiable, otherwise its
// dynamic type name.
func DestinationID(destination any) string {
	if destination == nil {
		return ""
	}
	if ident, ok := destination.(Identifiable); ok {
		return ident.DestinationID()
	}
	return fmt.Sprintf("%T", destination)
}

// Resolver resolves the transition spec for a navigation change. Resolution
// order: a per-destination override, then the container-kind default, then
// the global default. Resolution is pure: equal inputs always yield equal
// specs, and nothing is memoized on nodes.
type Resolver struct {
	overrides map[string]Spec
	global    Spec
}

// NewResolver creates a resolver with the built-in defaults and no
// overrides.
func NewResolver() *Resolver {
	return &Resolver{
		overrides: make(map[string]Spec),
		global:    DefaultGlobalSpec(),
	}
}

// Override registers a custom spec for a destination identity. Declarative
// override metadata (see LoadOverrides) funnels through here too.
func (r *Resolver) Override(destinationID string, spec Spec) {
	r.overrides[destinationID] = spec
}

// SetGlobal replaces the last-resort spec.
func (r *Resolver) SetGlobal(spec Spec) {
	r.global = spec
}

// Resolve returns the spec for moving from one stack child to another.
// When isBack is true the returned spec has the pop pair swapped into the
// forward position, so callers always run Enter/Exit.
func (r *Resolver) Resolve(from, to *navtree.Node, isBack bool) Spec {
	return r.ResolveIn(navtree.KindStack, from, to, isBack)
}

// ResolveIn resolves within a specific container kind, which selects the
// kind default when no destination override applies.
func (r *Resolver) ResolveIn(container navtree.Kind, from, to *navtree.Node, isBack bool) Spec {
	spec, ok := r.overrideFor(to)
	if !ok {
		spec, ok = r.overrideFor(from)
	}
	if !ok {
		switch container {
		case navtree.KindStack:
			spec = DefaultStackSpec()
		case navtree.KindTab:
			spec = DefaultTabSpec()
		case navtree.KindPane:
			spec = DefaultPaneSpec()
		default:
			spec = r.global
		}
	}
	if isBack {
		spec = spec.Reversed()
	}
	return spec
}

func (r *Resolver) overrideFor(n *navtree.Node) (Spec, bool) {
	if n == nil || n.Kind != navtree.KindScreen {
		return Spec{}, false
	}
	spec, ok := r.overrides[DestinationID(n.Destination)]
	return spec, ok
}
