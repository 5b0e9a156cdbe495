package sdlui

import "github.com/veandco/go-sdl2/sdl"

const defaultMaxTextures = 12

type targetTexture struct {
	texture *sdl.Texture
	w, h    int32
}

// textureCache reuses render-target textures across frames, keyed by the
// surface key they belong to. Reuse keeps per-frame allocations near zero
// while surfaces keep their identity; a texture is recreated only when its
// surface changes size.
type textureCache struct {
	textures map[string]*targetTexture
	order    []string // tracks access order for LRU eviction
	maxSize  int
}

func newTextureCache() *textureCache {
	return &textureCache{
		textures: make(map[string]*targetTexture),
		order:    make([]string, 0, defaultMaxTextures),
		maxSize:  defaultMaxTextures,
	}
}

func (c *textureCache) get(renderer *sdl.Renderer, key string, w, h int32) (*sdl.Texture, error) {
	if entry, exists := c.textures[key]; exists {
		if entry.w == w && entry.h == h {
			c.moveToEnd(key)
			return entry.texture, nil
		}
		entry.texture.Destroy()
		delete(c.textures, key)
		c.remove(key)
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_TARGET, w, h)
	if err != nil {
		return nil, err
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)

	c.textures[key] = &targetTexture{texture: texture, w: w, h: h}
	c.order = append(c.order, key)
	return texture, nil
}

// peek returns the cached texture without creating one; used to draw the
// exiting side of a transition from the last frame it was rendered.
func (c *textureCache) peek(key string) *sdl.Texture {
	if entry, exists := c.textures[key]; exists {
		return entry.texture
	}
	return nil
}

func (c *textureCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *textureCache) remove(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *textureCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]

	if entry, exists := c.textures[oldest]; exists {
		entry.texture.Destroy()
		delete(c.textures, oldest)
	}
}

func (c *textureCache) destroy() {
	for _, entry := range c.textures {
		entry.texture.Destroy()
	}
	c.textures = make(map[string]*targetTexture)
	c.order = c.order[:0]
}
