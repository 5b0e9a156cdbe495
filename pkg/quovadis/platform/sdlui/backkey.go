package sdlui

import (
	"errors"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis"
)

const backKeyRamp = 400 * time.Millisecond

// BackKeySource is the OS back-button fallback gesture source: holding the
// back key tracks a synthetic gesture whose progress ramps with hold time,
// releasing it commits, and losing keyboard focus mid-hold cancels. Feed
// it the SDL events the host loop polls.
type BackKeySource struct {
	handler  quovadis.GestureHandler
	key      sdl.Keycode
	tracking bool
	heldFrom time.Time
}

// NewBackKeySource creates a source bound to the given handler, triggered
// by Escape.
func NewBackKeySource(handler quovadis.GestureHandler) *BackKeySource {
	return &BackKeySource{handler: handler, key: sdl.K_ESCAPE}
}

// HandleEvent consumes one SDL event. Returns true when the event was a
// back-key event the source acted on.
func (b *BackKeySource) HandleEvent(event sdl.Event) bool {
	switch ev := event.(type) {
	case *sdl.KeyboardEvent:
		if ev.Keysym.Sym != b.key {
			return false
		}
		if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
			err := b.handler.Start()
			if err == nil {
				b.tracking = true
				b.heldFrom = time.Now()
			} else if !errors.Is(err, quovadis.ErrGestureRejected) && !errors.Is(err, quovadis.ErrGestureBusy) {
				return false
			}
			return true
		}
		if ev.Type == sdl.KEYUP && b.tracking {
			b.tracking = false
			b.handler.Commit()
			return true
		}
	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_FOCUS_LOST && b.tracking {
			// Abrupt interruption: the cancel path must still run.
			b.tracking = false
			b.handler.Cancel()
		}
	}
	return false
}

// Update advances the synthetic progress while the key is held. Call once
// per frame.
func (b *BackKeySource) Update(now time.Time) {
	if !b.tracking {
		return
	}
	progress := float64(now.Sub(b.heldFrom)) / float64(backKeyRamp)
	if progress > 1 {
		progress = 1
	}
	b.handler.Progress(progress)
}
