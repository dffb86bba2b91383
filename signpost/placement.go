// Package signpost places the repeating signposts along the ground strip and
// maps each one to its slide range.
package signpost

import (
	"math"

	"github.com/milk9111/trainride/common"
)

const (
	// BaseCount is the number of distinct signposts before the strip repeats.
	BaseCount = 9
	// BufferCount is how many signposts are placed around the viewport.
	BufferCount = 10
	// LeadCount is how many of the buffered signposts sit behind the nearest one.
	LeadCount = 3
)

// Placement is one signpost occurrence on screen.
type Placement struct {
	WorldIndex    int
	ID            int
	DisplayNumber int
	ScreenX       float64
	Grass         int
}

// ID maps an occurrence index along the strip to its content identity.
func ID(worldIndex, baseCount int) int {
	return common.WrapInt(worldIndex, baseCount)
}

// Gap is the spacing between consecutive signposts for a viewport width.
func Gap(viewportWidth float64) float64 {
	return viewportWidth / 3
}

// Place returns bufferCount consecutive signposts around the ground offset,
// ordered by world index.
func Place(ground, gap float64, baseCount, bufferCount int) []Placement {
	if gap <= 0 || baseCount <= 0 || bufferCount <= 0 {
		return nil
	}
	first := int(math.Floor(ground/gap)) - LeadCount
	out := make([]Placement, 0, bufferCount)
	for i := 0; i < bufferCount; i++ {
		w := first + i
		id := ID(w, baseCount)
		out = append(out, Placement{
			WorldIndex:    w,
			ID:            id,
			DisplayNumber: id + 1,
			ScreenX:       -ground + float64(w)*gap,
			Grass:         GrassVariant(id),
		})
	}
	return out
}

// Box is a signpost's clickable area relative to its anchor. The anchor is
// the bottom centre of the box; Bottom is the anchor's distance from the
// bottom of the screen.
type Box struct {
	Width, Height float64
	Bottom        float64
}

// Rect returns the screen rectangle of a placement for a screen height.
func (b Box) Rect(p Placement, screenHeight float64) (x0, y0, x1, y1 float64) {
	x0 = p.ScreenX - b.Width/2
	x1 = x0 + b.Width
	y1 = screenHeight - b.Bottom
	y0 = y1 - b.Height
	return x0, y0, x1, y1
}

// HitTest returns the placement under (x, y). Later placements are drawn on
// top, so they win overlaps.
func HitTest(ps []Placement, b Box, screenHeight, x, y float64) (Placement, bool) {
	for i := len(ps) - 1; i >= 0; i-- {
		x0, y0, x1, y1 := b.Rect(ps[i], screenHeight)
		if x >= x0 && x < x1 && y >= y0 && y < y1 {
			return ps[i], true
		}
	}
	return Placement{}, false
}

const grassPool = 32

var grassExcluded = map[int]bool{1: true, 19: true}

var grassVariants = func() []int {
	out := make([]int, 0, grassPool)
	for v := 1; v <= grassPool; v++ {
		if !grassExcluded[v] {
			out = append(out, v)
		}
	}
	return out
}()

// GrassVariant picks the decorative grass image number for a signpost id.
func GrassVariant(id int) int {
	return grassVariants[common.WrapInt(id, len(grassVariants))]
}
