// Package edge reads a touchscreen input device and turns edge swipes into
// predictive-back gesture events. It is the platform-specific half of the
// gesture pipeline: the engine's coordinator only ever sees the ordered
// Start/Progress/Commit/Cancel stream this package emits.
package edge

import (
	"context"
	"errors"
	"log/slog"

	"github.com/holoplot/go-evdev"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis"
)

// Options configures the edge-swipe detector.
type Options struct {
	DevicePath      string  // evdev device, e.g. /dev/input/event4
	EdgeFraction    float64 // how close to the left edge a touch must start; default 0.05
	CommitThreshold float64 // raw progress at which lift-off commits; default 0.3
}

const (
	defaultEdgeFraction    = 0.05
	defaultCommitThreshold = 0.3
)

// Source streams gesture events from one touchscreen device into a
// handler. Run it on its own goroutine; the handler (the engine's gesture
// coordinator) serializes delivery into the UI thread's event order.
type Source struct {
	dev     *evdev.InputDevice
	handler quovadis.GestureHandler
	opts    Options
	log     *slog.Logger

	axisMin float64
	axisMax float64

	touching bool
	tracking bool
	havePos  bool // startX/lastX hold a real coordinate for this touch
	startX   float64
	lastX    float64
}

// Open opens the input device and prepares the swipe detector.
func Open(opts Options, handler quovadis.GestureHandler) (*Source, error) {
	if opts.EdgeFraction <= 0 {
		opts.EdgeFraction = defaultEdgeFraction
	}
	if opts.CommitThreshold <= 0 {
		opts.CommitThreshold = defaultCommitThreshold
	}

	dev, err := evdev.Open(opts.DevicePath)
	if err != nil {
		return nil, err
	}

	source := &Source{
		dev:     dev,
		handler: handler,
		opts:    opts,
		log:     quovadis.GetLogger(),
		axisMax: 1,
	}

	if infos, err := dev.AbsInfos(); err == nil {
		if info, ok := infos[evdev.ABS_MT_POSITION_X]; ok {
			source.axisMin = float64(info.Minimum)
			source.axisMax = float64(info.Maximum)
		} else if info, ok := infos[evdev.ABS_X]; ok {
			source.axisMin = float64(info.Minimum)
			source.axisMax = float64(info.Maximum)
		}
	}
	if source.axisMax <= source.axisMin {
		dev.Close()
		return nil, errors.New("edge: device reports no usable X axis range")
	}

	return source, nil
}

// Run blocks reading device events until the context is cancelled or the
// device fails. A tracked gesture interrupted by shutdown is cancelled,
// never left dangling.
func (s *Source) Run(ctx context.Context) error {
	defer s.dev.Close()

	for {
		select {
		case <-ctx.Done():
			s.abort()
			return ctx.Err()
		default:
		}

		event, err := s.dev.ReadOne()
		if err != nil {
			s.abort()
			return err
		}
		if err := s.handle(event); err != nil {
			return err
		}
	}
}

// handle consumes one device event and advances the swipe detector.
func (s *Source) handle(event *evdev.InputEvent) error {
	switch event.Type {
	case evdev.EV_KEY:
		if event.Code != evdev.BTN_TOUCH {
			return nil
		}
		if event.Value == 1 {
			s.touching = true
			// The touch position arrives with the following ABS event.
			s.havePos = false
			return nil
		}
		s.touching = false
		if !s.tracking {
			return nil
		}
		s.tracking = false
		if s.progressOf(s.startX, s.lastX) >= s.opts.CommitThreshold {
			s.handler.Commit()
		} else {
			s.handler.Cancel()
		}

	case evdev.EV_ABS:
		if event.Code != evdev.ABS_MT_POSITION_X && event.Code != evdev.ABS_X {
			return nil
		}
		x := float64(event.Value)
		if s.touching && !s.havePos {
			s.havePos = true
			s.startX = x
			s.lastX = x
			if s.withinEdge(x) {
				if err := s.handler.Start(); err == nil {
					s.tracking = true
				} else if !errors.Is(err, quovadis.ErrGestureRejected) && !errors.Is(err, quovadis.ErrGestureBusy) {
					return err
				}
			}
			return nil
		}
		s.lastX = x
		if s.tracking {
			s.handler.Progress(s.progressOf(s.startX, s.lastX))
		}
	}
	return nil
}

func (s *Source) abort() {
	if s.tracking {
		s.tracking = false
		s.handler.Cancel()
	}
}

func (s *Source) withinEdge(x float64) bool {
	span := s.axisMax - s.axisMin
	return x-s.axisMin <= span*s.opts.EdgeFraction
}

func (s *Source) progressOf(startX, x float64) float64 {
	span := s.axisMax - s.axisMin
	if span <= 0 {
		return 0
	}
	progress := (x - startX) / span
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
