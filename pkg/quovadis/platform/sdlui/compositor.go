// Package sdlui composites the engine's surface trees through SDL2. It is
// one possible platform backend: the core produces backend-neutral
// surfaces, this package turns them into textures, applies transition and
// gesture transforms, and presents frames. It also provides a back-key
// gesture source as the OS back-button fallback.
package sdlui

import (
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jermeyyy/quo-vadis/pkg/quovadis"
)

// Drawable is implemented by content values that know how to draw
// themselves with SDL. Screen render functions returning anything else
// produce an empty (but correctly placed) surface.
type Drawable interface {
	Draw(renderer *sdl.Renderer, dst sdl.Rect) error
}

// Options configures the SDL window.
type Options struct {
	Title      string
	Width      int32 // 0 means current display mode width
	Height     int32 // 0 means current display mode height
	Borderless bool
	Fullscreen bool
}

// Compositor owns the SDL window and renderer and draws surface trees.
type Compositor struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	textures *textureCache
	width    int32
	height   int32
	log      *slog.Logger
}

// New initializes SDL video and creates the window and renderer.
func New(opts Options) (*Compositor, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		mode, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			sdl.Quit()
			return nil, err
		}
		width, height = mode.W, mode.H
	}

	var flags uint32 = sdl.WINDOW_SHOWN
	if opts.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if opts.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	window, err := sdl.CreateWindow(opts.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, flags)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		// Some targets have no accelerated driver; software still works.
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			window.Destroy()
			sdl.Quit()
			return nil, err
		}
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	return &Compositor{
		window:   window,
		renderer: renderer,
		textures: newTextureCache(),
		width:    width,
		height:   height,
		log:      quovadis.GetLogger(),
	}, nil
}

// Composite draws one surface tree and presents the frame. A nil root
// presents an empty frame; transient empty states stay visually quiet.
func (c *Compositor) Composite(root *quovadis.Surface) error {
	c.renderer.SetDrawColor(0, 0, 0, 255)
	c.renderer.Clear()

	if root != nil {
		full := sdl.Rect{X: 0, Y: 0, W: c.width, H: c.height}
		if err := c.draw(root, full, 1.0); err != nil {
			return err
		}
	}

	c.renderer.Present()
	return nil
}

func (c *Compositor) draw(s *quovadis.Surface, parent sdl.Rect, alpha float64) error {
	rect := applyTransform(s.Transform, parent)
	alpha *= s.Transform.Alpha

	if s.Transition != nil {
		return c.drawTransition(s, rect, alpha)
	}

	if err := c.drawContent(s, rect, alpha); err != nil {
		return err
	}

	for _, child := range s.Children {
		if err := c.draw(child, rect, alpha); err != nil {
			return err
		}
	}
	return nil
}

// drawTransition composites one animated layer: the exiting side is drawn
// from its last cached texture with the spec's exit animation, the
// entering side renders fresh with the enter animation. The subtree cache
// locks guarantee both keys stay resolvable until the spring settles.
func (c *Compositor) drawTransition(s *quovadis.Surface, rect sdl.Rect, alpha float64) error {
	t := s.Transition
	progress := t.Progress()
	enterAnim, exitAnim := t.Spec.Enter, t.Spec.Exit

	if old := c.textures.peek(t.FromKey); old != nil {
		dst, layerAlpha := animatedRect(exitAnim, progress, false, rect)
		old.SetAlphaMod(uint8(clamp01(alpha*layerAlpha) * 255))
		if err := c.renderer.Copy(old, nil, &dst); err != nil {
			return err
		}
	}

	dst, layerAlpha := animatedRect(enterAnim, progress, true, rect)
	for _, child := range s.Children {
		if err := c.draw(child, dst, alpha*layerAlpha); err != nil {
			return err
		}
	}
	return nil
}

// drawContent renders a drawable into its cached target texture and copies
// it with the accumulated alpha. Rendering through a texture keeps alpha
// uniform over the whole surface and gives transitions an exit image to
// reuse.
func (c *Compositor) drawContent(s *quovadis.Surface, rect sdl.Rect, alpha float64) error {
	drawable, ok := s.Content.(Drawable)
	if !ok {
		return nil
	}

	texture, err := c.textures.get(c.renderer, s.Key, rect.W, rect.H)
	if err != nil {
		return err
	}

	prev := c.renderer.GetRenderTarget()
	if err := c.renderer.SetRenderTarget(texture); err != nil {
		return err
	}
	c.renderer.SetDrawColor(0, 0, 0, 0)
	c.renderer.Clear()
	drawErr := drawable.Draw(c.renderer, sdl.Rect{X: 0, Y: 0, W: rect.W, H: rect.H})
	c.renderer.SetRenderTarget(prev)
	if drawErr != nil {
		return drawErr
	}

	texture.SetAlphaMod(uint8(clamp01(alpha) * 255))
	return c.renderer.Copy(texture, nil, &rect)
}

// Close releases the renderer, window and SDL video.
func (c *Compositor) Close() {
	c.textures.destroy()
	if c.renderer != nil {
		c.renderer.Destroy()
	}
	if c.window != nil {
		c.window.Destroy()
	}
	sdl.Quit()
}

func applyTransform(t quovadis.Transform, parent sdl.Rect) sdl.Rect {
	w := float64(parent.W) * t.ScaleX
	h := float64(parent.H) * t.ScaleY
	x := float64(parent.X) + float64(parent.W)*t.TranslateX + (float64(parent.W)-w)/2
	y := float64(parent.Y) + float64(parent.H)*t.TranslateY + (float64(parent.H)-h)/2
	return sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}
}

// animatedRect offsets a layer's rect for the given animation at the given
// progress. Entering layers travel from their edge toward rest; exiting
// layers travel from rest toward their edge.
func animatedRect(anim quovadis.Anim, progress float64, entering bool, rect sdl.Rect) (sdl.Rect, float64) {
	remaining := 1 - progress
	layerAlpha := 1.0

	switch anim.Kind {
	case quovadis.AnimNone:
		if !entering {
			// A none-exit disappears as soon as the enter settles.
			layerAlpha = remaining
		}
		return rect, layerAlpha
	case quovadis.AnimFade:
		if entering {
			return rect, progress
		}
		return rect, remaining
	}

	// Slide and SlideFade share displacement; SlideFade adds the ramp.
	travel := remaining
	if !entering {
		travel = progress
	}
	dx, dy := edgeVector(anim.Edge, rect)
	out := rect
	out.X += int32(float64(dx) * travel)
	out.Y += int32(float64(dy) * travel)

	if anim.Kind == quovadis.AnimSlideFade {
		if entering {
			layerAlpha = progress
		} else {
			layerAlpha = remaining
		}
	}
	return out, layerAlpha
}

func edgeVector(edge quovadis.Edge, rect sdl.Rect) (int32, int32) {
	switch edge {
	case quovadis.EdgeStart:
		return -rect.W, 0
	case quovadis.EdgeEnd:
		return rect.W, 0
	case quovadis.EdgeTop:
		return 0, -rect.H
	case quovadis.EdgeBottom:
		return 0, rect.H
	}
	return 0, 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
