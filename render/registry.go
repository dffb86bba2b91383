// Package render holds the drawing helpers shared by the scene: the image
// cache, sprite sheet animations and tweens.
package render

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/trainride/assets"
)

// LoadFunc loads one image by asset path.
type LoadFunc func(path string) (*ebiten.Image, error)

// Images caches loaded images by asset path. Failed loads are remembered so
// a missing file is reported once and then simply not drawn.
type Images struct {
	load   LoadFunc
	images map[string]*ebiten.Image
	failed map[string]bool
}

func NewImages(load LoadFunc) *Images {
	if load == nil {
		load = assets.LoadImage
	}
	return &Images{
		load:   load,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]bool),
	}
}

// Get returns the image for key, loading it on first use. It returns nil if
// the image cannot be loaded.
func (c *Images) Get(key string) *ebiten.Image {
	if c == nil || key == "" {
		return nil
	}
	if img, ok := c.images[key]; ok {
		return img
	}
	if c.failed[key] {
		return nil
	}
	img, err := c.load(key)
	if err != nil || img == nil {
		log.Printf("render: load image %s: %v", key, err)
		c.failed[key] = true
		return nil
	}
	c.images[key] = img
	return img
}

// Reset drops every cached image and failure so the next Get of each key
// loads it again.
func (c *Images) Reset() {
	if c == nil {
		return
	}
	for _, img := range c.images {
		img.Deallocate()
	}
	c.images = make(map[string]*ebiten.Image)
	c.failed = make(map[string]bool)
}

// CheckWidth warns when an image's decoded width differs from the width the
// layout assumes. Tiled layers seam visibly when the two disagree.
func CheckWidth(key string, img *ebiten.Image, want float64) bool {
	if img == nil {
		return false
	}
	if got := img.Bounds().Dx(); float64(got) != want {
		log.Printf("render: %s is %dpx wide, layout expects %vpx", key, got, want)
		return false
	}
	return true
}
