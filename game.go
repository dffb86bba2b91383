package main

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/trainride/assets"
	"github.com/milk9111/trainride/parallax"
	"github.com/milk9111/trainride/prefabs"
	"github.com/milk9111/trainride/render"
	"github.com/milk9111/trainride/scene"
	"github.com/milk9111/trainride/signpost"
	"github.com/milk9111/trainride/slideshow"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	tps      = 60
	tickTime = time.Second / tps
	tickSecs = float32(1.0 / tps)
	hoverSec = 0.12
)

type Game struct {
	debug bool

	settings *Settings
	composer *scene.Composer
	input    *Input
	ui       *SceneUI
	face     ebtext.Face
	watcher  *prefabs.Watcher

	images       *render.Images
	widthChecked [parallax.LayerCount]bool
	train        *render.SheetAnimation

	preloader     *slideshow.Preloader
	cancelPreload context.CancelFunc
	slides        map[int]*ebiten.Image
	fade          *render.Tween

	hover    *render.Tween
	hovered  signpost.Placement
	hovering bool
}

func NewGame(settings *Settings, watcher *prefabs.Watcher, debug bool) (*Game, error) {
	cfg, err := settings.sceneConfig()
	if err != nil {
		return nil, err
	}
	composer, err := scene.NewComposer(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:    debug,
		settings: settings,
		composer: composer,
		input:    NewInput(settings.Scene.Input.RepeatDelay, settings.Scene.Input.RepeatInterval),
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		watcher:  watcher,
		images:   render.NewImages(assets.LoadImage),
		slides:   make(map[int]*ebiten.Image),
		fade:     render.NewTween(1),
		hover:    render.NewTween(0),
	}
	g.ui = NewSceneUI(g.composer.Dispatch)
	g.preloader = newPreloader(settings)
	g.buildTrain()
	return g, nil
}

func (g *Game) buildTrain() {
	sp := g.settings.Scene
	sheet := g.images.Get(sp.Train.Moving.Sheet)
	if sheet == nil {
		g.train = nil
		return
	}
	g.train = render.NewSheetAnimation(g.settings.trainAnimation(), sheet.Bounds().Dx(), tps)
}

// newPreloader decodes slides from the directory configured at the time it
// is built. Its loader runs on preloader goroutines.
func newPreloader(settings *Settings) *slideshow.Preloader {
	dir := settings.Scene.Slideshow.Dir
	return slideshow.NewPreloader(func(n int) (image.Image, error) {
		return assets.DecodeImage(assets.SlidePath(dir, n))
	}, settings.batchSize())
}

func (g *Game) Update() error {
	g.input.Update()
	for _, k := range g.input.Keys {
		g.composer.HandleKey(k)
	}
	g.ui.UI.Update()
	g.handleMouse()
	g.handleEvents()
	g.reload()

	g.composer.Update(tickTime)
	snap := g.composer.Snapshot()
	if snap.Moving && g.train != nil {
		g.train.Update()
	} else if g.train != nil {
		g.train.Reset()
	}
	g.fade.Update(tickSecs)
	g.hover.Update(tickSecs)
	g.ui.SetSpeed(snap.Multiplier)
	g.ui.Refresh(snap.Slideshow)
	return nil
}

// handleMouse routes clicks: on the slide image while the slideshow is open,
// otherwise on the signposts. Clicks over the UI chrome belong to ebitenui.
func (g *Game) handleMouse() {
	if g.ui.Covers(g.input.MouseX, g.input.MouseY) {
		g.setHover(signpost.Placement{}, false)
		return
	}
	snap := g.composer.Snapshot()
	if snap.Slideshow.Open {
		g.setHover(signpost.Placement{}, false)
		if g.input.RightClicked {
			g.composer.Dispatch(scene.Action{Kind: scene.ActionSlidePrev})
			return
		}
		if !g.input.LeftClicked {
			return
		}
		x, y, w, h := g.slideRect()
		mx, my := g.input.MouseX, g.input.MouseY
		if mx >= x && mx < x+w && my >= y && my < y+h {
			g.composer.ClickSlide(mx-x, w)
		}
		return
	}

	p, ok := g.hoveredSignpost(snap)
	g.setHover(p, ok)
	if ok && g.input.LeftClicked {
		g.composer.Dispatch(scene.Action{Kind: scene.ActionOpenSignpost, N: p.ID})
	}
}

// setHover tracks the placement under the cursor by world index, since
// several on-screen placements can share a signpost id.
func (g *Game) setHover(p signpost.Placement, ok bool) {
	if ok == g.hovering && (!ok || p.WorldIndex == g.hovered.WorldIndex) {
		return
	}
	g.hovered, g.hovering = p, ok
	if !ok {
		g.hover.StartFrom(0, 0, 0, nil)
		return
	}
	g.hover.StartFrom(0, float32(g.settings.Scene.Signposts.HoverLift), hoverSec, ease.OutQuad)
}

func (g *Game) handleEvents() {
	for _, ev := range g.composer.Events().Drain() {
		switch ev.Type {
		case scene.EventSignpostOpened:
			g.startPreload()
			g.startFade()
		case scene.EventSlideChanged:
			g.startFade()
		case scene.EventSlideshowClosed:
			g.stopPreload()
		case scene.EventSpeedChanged:
			if g.debug {
				log.Printf("speed: %vx", ev.Data)
			}
		}
	}
}

func (g *Game) startFade() {
	g.fade.StartFrom(0, 1, g.settings.fadeSeconds(), ease.InOutQuad)
}

// startPreload decodes every slide of the open range in the background,
// current slide first.
func (g *Game) startPreload() {
	g.stopPreload()
	s := g.composer.Snapshot().Slideshow
	order := make([]int, 0, s.Range.Len())
	order = append(order, s.Current)
	for n := s.Range.Start; n <= s.Range.End; n++ {
		if n != s.Current {
			order = append(order, n)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancelPreload = cancel
	p := g.preloader
	go p.Preload(ctx, order)
}

func (g *Game) stopPreload() {
	if g.cancelPreload != nil {
		g.cancelPreload()
		g.cancelPreload = nil
	}
	g.preloader.Reset()
	for n, img := range g.slides {
		img.Deallocate()
		delete(g.slides, n)
	}
}

// slideImage returns the GPU image for a slide once the preloader has
// decoded it. Images are created here, on the game goroutine.
func (g *Game) slideImage(n int) *ebiten.Image {
	if img, ok := g.slides[n]; ok {
		return img
	}
	src, ok := g.preloader.Image(n)
	if !ok || src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	g.slides[n] = img
	return img
}

// reload applies edited prefab files. Bad edits are logged and the running
// scene is left alone.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("watch: %v", err)
		}
	default:
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}

	settings, err := loadSettings()
	if err != nil {
		log.Printf("reload %v: %v", changed, err)
		return
	}
	cfg, err := settings.sceneConfig()
	if err != nil {
		log.Printf("reload %v: %v", changed, err)
		return
	}
	if err := g.composer.Reconfigure(cfg); err != nil {
		log.Printf("reload %v: %v", changed, err)
		return
	}
	if g.composer.Snapshot().Slideshow.Open {
		g.composer.CloseSlideshow()
		g.handleEvents()
	}
	g.settings = settings
	g.input.RepeatDelay = settings.Scene.Input.RepeatDelay
	g.input.RepeatInterval = settings.Scene.Input.RepeatInterval
	g.widthChecked = [parallax.LayerCount]bool{}
	g.images.Reset()
	g.preloader = newPreloader(settings)
	g.buildTrain()
	log.Printf("reloaded %v", changed)
}

func (g *Game) Draw(screen *ebiten.Image) {
	sp := g.settings.Scene
	screen.Fill(sp.Background.Or(colornames.Skyblue))

	snap := g.composer.Snapshot()
	// Back to front: layers 1, 2 and 4, then the ground objects, then 3.
	g.drawLayer(screen, 0, snap.Offsets.Layers[0])
	g.drawLayer(screen, 1, snap.Offsets.Layers[1])
	g.drawLayer(screen, 3, snap.Offsets.Layers[3])
	g.drawSignposts(screen, snap)
	g.drawRails(screen, snap.Offsets.Ground)
	g.drawTrain(screen, snap)
	g.drawLayer(screen, 2, snap.Offsets.Layers[2])

	if snap.Slideshow.Open {
		g.drawSlideshow(screen, snap.Slideshow)
	}
	g.ui.UI.Draw(screen)

	if g.debug {
		g.drawDebug(screen, snap)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.settings.Scene.Viewport.Width), float64(g.settings.Scene.Viewport.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops background work.
func (g *Game) Close() {
	g.stopPreload()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: %v", err)
		}
	}
}
