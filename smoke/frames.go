package smoke

import (
	"image"

	"github.com/milk9111/trainride/common"
)

// Sheet layout of the smoke sprite: a 5x5 grid of 64x64 cells, read row by
// row, one frame per cell.
const (
	FrameCount   = 25
	SheetColumns = 5
	CellSize     = 64
	// ViewSize is the on-screen size of one frame. The sheet is authored at
	// 320px and displayed at 400px.
	ViewSize = 80
)

// FrameDurationMillis is how long each frame is shown.
const FrameDurationMillis = 100

// Phase frame ranges, inclusive.
const (
	FadeInStart  = 0
	FadeInEnd    = 4
	IdleStart    = 5
	IdleEnd      = 16
	FadeOutStart = 17
	FadeOutEnd   = 24
)

// Scale is the ratio between rendered and authored sheet pixels.
func Scale() float64 {
	return float64(ViewSize) / float64(CellSize)
}

// SourceRect returns the sheet cell for a frame index. Out of range indices
// are clamped.
func SourceRect(frame int) image.Rectangle {
	frame = clampFrame(frame)
	x := (frame % SheetColumns) * CellSize
	y := (frame / SheetColumns) * CellSize
	return image.Rect(x, y, x+CellSize, y+CellSize)
}

func clampFrame(frame int) int {
	return common.ClampInt(frame, 0, FrameCount-1)
}
