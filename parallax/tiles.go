package parallax

import (
	"math"

	"github.com/milk9111/trainride/common"
)

// TileCount is the number of copies drawn per background layer.
const TileCount = 3

// Tiles returns the x positions of the three copies of a layer image. The
// middle copy sits at the offset, the outer two cover the wrap seam.
func Tiles(offset, width float64) [TileCount]float64 {
	var xs [TileCount]float64
	for i := range xs {
		k := float64(i - 1)
		xs[i] = offset + k*width
	}
	return xs
}

// RailTiles returns the x positions of rail tiles covering the viewport for
// the given ground offset. Rails scroll against the ground offset, the same
// way signposts do.
func RailTiles(ground, tileWidth, viewportWidth float64) []float64 {
	if tileWidth <= 0 {
		return nil
	}
	start := -common.Wrap(ground, tileWidth)
	n := int(math.Ceil(viewportWidth/tileWidth)) + 2
	xs := make([]float64, 0, n)
	for k := -1; k < n-1; k++ {
		xs = append(xs, start+float64(k)*tileWidth)
	}
	return xs
}
