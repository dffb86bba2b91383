package parallax

import (
	"sort"
	"testing"
)

func TestTilesCoverViewport(t *testing.T) {
	const viewport = 1920.0
	for offset := 0.0; offset < ImageWidth; offset += 37.5 {
		xs := Tiles(offset, ImageWidth)
		if xs[1] != offset || xs[0] != offset-ImageWidth || xs[2] != offset+ImageWidth {
			t.Fatalf("offset %v: unexpected tiles %v", offset, xs)
		}
		if !covers(xs[:], ImageWidth, 0, viewport) {
			t.Fatalf("offset %v: tiles %v leave a gap", offset, xs)
		}
	}
}

func TestRailTilesCoverViewport(t *testing.T) {
	const (
		viewport = 1920.0
		railW    = 80.0
	)
	for _, ground := range []float64{0, 6, -6, 79.5, -24000, 123456, -0.25} {
		xs := RailTiles(ground, railW, viewport)
		if !covers(xs, railW, 0, viewport) {
			t.Fatalf("ground %v: rails %v leave a gap", ground, xs)
		}
	}
}

func TestRailTilesMoveAgainstGround(t *testing.T) {
	a := RailTiles(0, 80, 1920)
	b := RailTiles(6, 80, 1920)
	// first tile of b is 6px left of the matching tile in a, mod one tile.
	if b[1] != a[1]-6+80 && b[1] != a[1]-6 {
		t.Fatalf("expected rails to shift left by 6, got %v vs %v", b[1], a[1])
	}
}

func TestRailTilesZeroWidth(t *testing.T) {
	if xs := RailTiles(10, 0, 1920); xs != nil {
		t.Fatalf("expected nil for zero tile width, got %v", xs)
	}
}

func covers(xs []float64, w, from, to float64) bool {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	reach := from
	for _, x := range sorted {
		if x > reach {
			return false
		}
		if x+w > reach {
			reach = x + w
		}
	}
	return reach >= to
}
