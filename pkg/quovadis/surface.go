package quovadis

import (
	"github.com/jermeyyy/quo-vadis/pkg/quovadis/navtree"
)

// Transform is the compositing transform applied to a surface. Translations
// are fractions of the parent surface's size, so the core stays free of
// pixel geometry; scale factors of 1 and alpha 1 are the identity.
type Transform struct {
	TranslateX float64
	TranslateY float64
	ScaleX     float64
	ScaleY     float64
	Alpha      float64
}

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Alpha: 1}
}

// IsIdentity reports whether the transform changes nothing.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Surface is one layer of rendered output. The renderer produces a tree of
// surfaces mirroring the visible part of the navigation tree; a platform
// backend composites it. Content is whatever the ContentResolver's render
// function returned, opaque to the core.
type Surface struct {
	Key     string
	Content any

	Transform  Transform
	Transition *ActiveTransition // in-flight animation for this layer, nil when settled

	// Pane metadata, meaningful when this surface is a pane slot.
	Role    navtree.Role
	Focused bool
	Visible bool

	// GesturePreview marks the two-surface predictive-back composition:
	// Children[0] is the entering (speculative previous) surface beneath,
	// Children[1] the exiting current surface on top.
	GesturePreview bool

	Children []*Surface
}

// newSurface returns a surface with identity transform.
func newSurface(key string) *Surface {
	return &Surface{Key: key, Transform: Identity(), Visible: true}
}

// FindKey returns the surface with the given key in this subtree, or nil.
func (s *Surface) FindKey(key string) *Surface {
	if s == nil {
		return nil
	}
	if s.Key == key {
		return s
	}
	for _, child := range s.Children {
		if found := child.FindKey(key); found != nil {
			return found
		}
	}
	return nil
}

// Predictive-back preview geometry. The exiting surface translates toward
// the trailing edge and shrinks slightly as visual progress grows; the
// entering surface sits beneath it with a parallax translate at 30% of the
// exiting displacement and ramps up from partial opacity.
const (
	gestureParallaxFactor = 0.3
	gestureScalePerUnit   = 0.1
	gestureEnterBaseAlpha = 0.4
)

// gestureExitTransform positions the current (exiting) surface for a given
// visual progress.
func gestureExitTransform(progress float64) Transform {
	return Transform{
		TranslateX: progress,
		ScaleX:     1 - gestureScalePerUnit*progress,
		ScaleY:     1 - gestureScalePerUnit*progress,
		Alpha:      1,
	}
}

// gestureEnterTransform positions the speculative-previous (entering)
// surface beneath the exiting one.
func gestureEnterTransform(progress float64) Transform {
	return Transform{
		TranslateX: -gestureParallaxFactor * (1 - progress),
		ScaleX:     1,
		ScaleY:     1,
		Alpha:      gestureEnterBaseAlpha + (1-gestureEnterBaseAlpha)*progress,
	}
}
