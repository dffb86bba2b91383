package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationDef describes a run of frames on a sprite sheet.
type AnimationDef struct {
	Row        int
	ColStart   int
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

// SheetAnimation steps through an AnimationDef at the game's tick rate.
// Frames are read left-to-right, wrapping onto following rows.
type SheetAnimation struct {
	Def     AnimationDef
	Cols    int
	Playing bool

	frame       int
	tick        int
	ticksPerFrm int
}

// NewSheetAnimation builds an animation for a sheet sheetW pixels wide.
func NewSheetAnimation(def AnimationDef, sheetW, tps int) *SheetAnimation {
	if def.FPS <= 0 {
		def.FPS = 12
	}
	if tps <= 0 {
		tps = 60
	}
	cols := 1
	if def.FrameW > 0 && sheetW >= def.FrameW {
		cols = sheetW / def.FrameW
	}
	if def.FrameCount <= 0 {
		def.FrameCount = 1
	}
	return &SheetAnimation{
		Def:         def,
		Cols:        cols,
		Playing:     true,
		ticksPerFrm: int(math.Max(1, math.Round(float64(tps)/def.FPS))),
	}
}

func (a *SheetAnimation) Frame() int {
	return a.frame
}

// Reset rewinds to the first frame and resumes playing.
func (a *SheetAnimation) Reset() {
	a.frame = 0
	a.tick = 0
	a.Playing = true
}

// Update advances one game tick.
func (a *SheetAnimation) Update() {
	if a == nil || !a.Playing {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return
	}
	a.tick = 0
	a.frame++
	if a.frame >= a.Def.FrameCount {
		if a.Def.Loop {
			a.frame = 0
		} else {
			a.frame = a.Def.FrameCount - 1
			a.Playing = false
		}
	}
}

// Rect is the sheet rectangle of the current frame.
func (a *SheetAnimation) Rect() image.Rectangle {
	idx := a.Def.ColStart + a.frame
	col := idx % a.Cols
	row := a.Def.Row + idx/a.Cols
	x := col * a.Def.FrameW
	y := row * a.Def.FrameH
	return image.Rect(x, y, x+a.Def.FrameW, y+a.Def.FrameH)
}

// Image returns the current frame cut from sheet.
func (a *SheetAnimation) Image(sheet *ebiten.Image) *ebiten.Image {
	if sheet == nil {
		return nil
	}
	r := a.Rect()
	if !r.In(sheet.Bounds()) {
		return nil
	}
	return sheet.SubImage(r).(*ebiten.Image)
}
