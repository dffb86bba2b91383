package main

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/trainride/parallax"
	"github.com/milk9111/trainride/render"
	"github.com/milk9111/trainride/scene"
	"github.com/milk9111/trainride/signpost"
	"github.com/milk9111/trainride/smoke"
	"golang.org/x/image/colornames"
)

const labelScale = 3

// drawImageRect draws img stretched into the rectangle (x, y, w, h).
func drawImageRect(dst, img *ebiten.Image, x, y, w, h float64, flip bool, alpha float32) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	sx, sy := w/float64(b.Dx()), h/float64(b.Dy())
	if flip {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(x+w, y)
	} else {
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(x, y)
	}
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func (g *Game) drawLayer(screen *ebiten.Image, layer int, offset float64) {
	sp := g.settings.Scene
	key := sp.Layers.Images[layer]
	img := g.images.Get(key)
	if img == nil {
		return
	}
	if !g.widthChecked[layer] {
		render.CheckWidth(key, img, sp.Layers.ImageWidth)
		g.widthChecked[layer] = true
	}
	h := float64(sp.Viewport.Height)
	for _, x := range parallax.Tiles(offset, sp.Layers.ImageWidth) {
		drawImageRect(screen, img, x, 0, sp.Layers.ImageWidth, h, false, 1)
	}
}

func (g *Game) drawSignposts(screen *ebiten.Image, snap scene.Snapshot) {
	sp := g.settings.Scene
	box := g.settings.signpostBox()
	screenH := float64(sp.Viewport.Height)
	post := g.images.Get(sp.Signposts.Image)
	label := sp.Signposts.LabelColor.Or(colornames.Black)

	for _, p := range snap.Signposts {
		x0, y0, _, y1 := box.Rect(p, screenH)
		lift := hoverLift(p, g.hovered, g.hovering, float64(g.hover.Value()))
		y0 -= lift
		y1 -= lift
		if post != nil {
			drawImageRect(screen, post, x0, y0, box.Width, box.Height, false, 1)
		} else {
			vector.FillRect(screen, float32(x0), float32(y0), float32(box.Width), float32(box.Height), colornames.Sienna, false)
		}

		if grass := g.images.Get(grassPath(sp.Signposts.GrassDir, p.Grass)); grass != nil {
			gb := grass.Bounds()
			gw, gh := float64(gb.Dx()), float64(gb.Dy())
			drawImageRect(screen, grass, p.ScreenX-gw/2, y1-gh, gw, gh, false, 1)
		}

		g.drawText(screen, strconv.Itoa(p.DisplayNumber), p.ScreenX, y0+box.Height*0.22, labelScale, label)
	}
}

func grassPath(dir string, variant int) string {
	return fmt.Sprintf("%s/%d.png", dir, variant)
}

func (g *Game) drawRails(screen *ebiten.Image, ground float64) {
	sp := g.settings.Scene
	img := g.images.Get(sp.Rails.Image)
	if img == nil {
		return
	}
	screenH := float64(sp.Viewport.Height)
	y := screenH - sp.Rails.Bottom*screenH - sp.Rails.TileHeight
	for _, x := range parallax.RailTiles(ground, sp.Rails.TileWidth, float64(sp.Viewport.Width)) {
		drawImageRect(screen, img, x, y, sp.Rails.TileWidth, sp.Rails.TileHeight, false, 1)
	}
}

func (g *Game) trainRect() (x, y, w, h float64) {
	sp := g.settings.Scene
	screenH := float64(sp.Viewport.Height)
	w, h = sp.Train.Width, sp.Train.Height
	x = (float64(sp.Viewport.Width) - w) / 2
	y = screenH - sp.Train.Bottom*screenH - h
	return x, y, w, h
}

func (g *Game) drawTrain(screen *ebiten.Image, snap scene.Snapshot) {
	sp := g.settings.Scene
	x, y, w, h := g.trainRect()
	flip := (snap.Direction == parallax.Left) != sp.Train.FacesLeft

	var img *ebiten.Image
	if snap.Moving && g.train != nil {
		img = g.train.Image(g.images.Get(sp.Train.Moving.Sheet))
	}
	if img == nil {
		img = g.images.Get(sp.Train.Image)
	}
	drawImageRect(screen, img, x, y, w, h, flip, 1)

	if snap.SmokePhase == smoke.Stopped {
		return
	}
	sheet := g.images.Get(sp.Smoke.Sheet)
	if sheet == nil {
		return
	}
	frame := sheet.SubImage(smoke.SourceRect(snap.SmokeFrame)).(*ebiten.Image)
	size := smoke.CellSize * smoke.Scale()
	sx := x + sp.Smoke.OffsetX
	if flip {
		sx = x + w - sp.Smoke.OffsetX - size
	}
	drawImageRect(screen, frame, sx, y+sp.Smoke.OffsetY, size, size, flip, 1)
}

// slideRect is where the current slide is drawn, centred on screen.
func (g *Game) slideRect() (x, y, w, h float64) {
	sp := g.settings.Scene
	w, h = sp.Slideshow.Width, sp.Slideshow.Height
	x = (float64(sp.Viewport.Width) - w) / 2
	y = (float64(sp.Viewport.Height) - h) / 2
	return x, y, w, h
}

func (g *Game) drawSlideshow(screen *ebiten.Image, s scene.SlideshowState) {
	sp := g.settings.Scene
	backdrop := sp.Slideshow.Backdrop.Or(color.NRGBA{A: 0xe6})
	vector.FillRect(screen, 0, 0, float32(sp.Viewport.Width), float32(sp.Viewport.Height), backdrop, false)

	x, y, w, h := g.slideRect()
	img := g.slideImage(s.Current)
	if img == nil {
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, colornames.Dimgray, false)
		g.drawText(screen, loadingLabel(s.Current, g.preloader), x+w/2, y+h/2, 2, colornames.Lightgray)
		return
	}
	drawImageRect(screen, img, x, y, w, h, false, g.fade.Value())
}

func (g *Game) drawText(screen *ebiten.Image, s string, cx, cy, scale float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.PrimaryAlign = ebtext.AlignCenter
	op.SecondaryAlign = ebtext.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) drawDebug(screen *ebiten.Image, snap scene.Snapshot) {
	msg := fmt.Sprintf("FPS: %.1f  ground: %.0f  layers: %.0f/%.0f/%.0f/%.0f  %dx  moving: %v  smoke: %s %d",
		ebiten.ActualFPS(), snap.Offsets.Ground,
		snap.Offsets.Layers[0], snap.Offsets.Layers[1], snap.Offsets.Layers[2], snap.Offsets.Layers[3],
		int(snap.Multiplier), snap.Moving, snap.SmokePhase, snap.SmokeFrame)
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(16, float64(g.settings.Scene.Viewport.Height)-24)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, msg, g.face, op)
}

// hoveredSignpost returns the placement under the cursor.
func (g *Game) hoveredSignpost(snap scene.Snapshot) (signpost.Placement, bool) {
	box := g.settings.signpostBox()
	return signpost.HitTest(snap.Signposts, box, float64(g.settings.Scene.Viewport.Height), g.input.MouseX, g.input.MouseY)
}

// hoverLift is how far p is raised. Only the hovered occurrence lifts.
func hoverLift(p, hovered signpost.Placement, hovering bool, lift float64) float64 {
	if !hovering || p.WorldIndex != hovered.WorldIndex {
		return 0
	}
	return lift
}
