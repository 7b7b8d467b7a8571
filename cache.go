package main

import (
	"image"
	"log"
	"slices"
)

// frameKey identifies a rendered frame.
type frameKey struct {
	view      Viewport
	pixelSize float64
	detail    int
}

// CachedRenderer keeps the most recently used frames of another
// Renderer. Repainting an unchanged state, e.g. after toggling the
// info line or a resize back and forth, does not render again.
// Frames returned by Render must not be modified.
type CachedRenderer struct {
	renderer Renderer
	size     int
	recent   []frameKey // least recently used first
	frames   map[frameKey]*image.RGBA

	hits, misses int
}

var _ Renderer = (*CachedRenderer)(nil)

// NewCachedRenderer returns a cache of size frames in front of r.
func NewCachedRenderer(r Renderer, size int) *CachedRenderer {
	return &CachedRenderer{
		renderer: r,
		size:     max(size, 1),
		frames:   make(map[frameKey]*image.RGBA),
	}
}

func (c *CachedRenderer) Render(v Viewport, pixelSize float64, detail int) *image.RGBA {
	key := frameKey{v, pixelSize, detail}
	if frame, ok := c.frames[key]; ok {
		c.hits++
		c.touch(key)
		return frame
	}

	c.misses++
	frame := c.renderer.Render(v, pixelSize, detail)
	if len(c.recent) == c.size {
		evicted := c.recent[0]
		c.recent = slices.Delete(c.recent, 0, 1)
		delete(c.frames, evicted)
		if *verbose {
			log.Printf("cache: evicted %v detail %d", evicted.view, evicted.detail)
		}
	}
	c.recent = append(c.recent, key)
	c.frames[key] = frame
	if *verbose {
		log.Printf("cache: %d frames, %d hits, %d misses", len(c.recent), c.hits, c.misses)
	}
	return frame
}

// touch marks key as the most recently used.
func (c *CachedRenderer) touch(key frameKey) {
	if i := slices.Index(c.recent, key); i >= 0 {
		c.recent = append(slices.Delete(c.recent, i, i+1), key)
	}
}

// Len returns the number of cached frames.
func (c *CachedRenderer) Len() int {
	return len(c.recent)
}
