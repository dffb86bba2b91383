// Package scene composes the diorama: it owns the scroll offsets, the
// movement signal, the smoke animation and the slideshow session, and hands
// the renderer a read-only snapshot each frame.
package scene

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/trainride/common"
	"github.com/milk9111/trainride/parallax"
	"github.com/milk9111/trainride/signpost"
	"github.com/milk9111/trainride/slideshow"
	"github.com/milk9111/trainride/smoke"
	"github.com/milk9111/trainride/timer"
)

// SettleDelay is how long the train keeps moving after the last input.
const SettleDelay = 300 * time.Millisecond

type Config struct {
	Speeds        parallax.Speeds
	ImageWidth    float64
	ViewportWidth float64
	SettleDelay   time.Duration
	FramePeriod   time.Duration
	BaseCount     int
	BufferCount   int
	Slides        signpost.Table
	TotalSlides   int
}

func DefaultConfig() Config {
	return Config{
		Speeds:        parallax.DefaultSpeeds,
		ImageWidth:    parallax.ImageWidth,
		ViewportWidth: common.BaseWidth,
		SettleDelay:   SettleDelay,
		FramePeriod:   smoke.FrameDurationMillis * time.Millisecond,
		BaseCount:     signpost.BaseCount,
		BufferCount:   signpost.BufferCount,
		Slides:        signpost.DefaultTable,
		TotalSlides:   signpost.TotalSlides,
	}
}

func (cfg Config) validate() error {
	if err := cfg.Speeds.Validate(); err != nil {
		return err
	}
	if cfg.ImageWidth <= 0 || cfg.ViewportWidth <= 0 {
		return fmt.Errorf("scene: image width %v and viewport width %v must be positive", cfg.ImageWidth, cfg.ViewportWidth)
	}
	if cfg.BaseCount <= 0 || cfg.BufferCount <= 0 {
		return fmt.Errorf("scene: signpost counts %d/%d must be positive", cfg.BaseCount, cfg.BufferCount)
	}
	return nil
}

func (cfg Config) checkSlides() {
	total := cfg.TotalSlides
	if total <= 0 {
		total = signpost.TotalSlides
	}
	if !cfg.Slides.Validate(total) {
		log.Printf("scene: slide table does not cover 1-%d exactly once", total)
	}
}

// Composer owns the scene state. It is not safe for concurrent use; the game
// loop is its only caller.
type Composer struct {
	cfg     Config
	offsets parallax.Offsets
	dir     parallax.Direction
	mult    parallax.Multiplier
	moving  bool
	settle  timer.Timeout
	smoke   *smoke.Animation
	slides  *slideshow.Session
	events  EventQueue
}

func NewComposer(cfg Config) (*Composer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.checkSlides()
	return &Composer{
		cfg:    cfg,
		dir:    parallax.Right,
		mult:   1,
		smoke:  smoke.New(cfg.FramePeriod),
		slides: slideshow.NewSession(),
	}, nil
}

// Reconfigure swaps in a new configuration and keeps the current position.
func (c *Composer) Reconfigure(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	cfg.checkSlides()
	if cfg.ImageWidth != c.cfg.ImageWidth {
		for i := range c.offsets.Layers {
			c.offsets.Layers[i] = common.Wrap(c.offsets.Layers[i], cfg.ImageWidth)
		}
	}
	c.cfg = cfg
	return nil
}

// Move scrolls the scene one step. It is ignored while the slideshow is open.
func (c *Composer) Move(dir parallax.Direction) bool {
	if c.slides.IsOpen() {
		return false
	}
	c.offsets = parallax.Advance(c.offsets, c.cfg.Speeds, dir, c.mult, c.cfg.ImageWidth)
	c.dir = dir
	c.moving = true
	c.settle.Start(c.cfg.SettleDelay)
	return true
}

// SetSpeed selects the speed multiplier.
func (c *Composer) SetSpeed(v int) error {
	m, err := parallax.ParseMultiplier(v)
	if err != nil {
		return err
	}
	if m != c.mult {
		c.mult = m
		c.events.Push(Event{Type: EventSpeedChanged, Data: int(m)})
	}
	return nil
}

// Update advances the settle timer and the smoke animation by dt.
func (c *Composer) Update(dt time.Duration) {
	if c.settle.Advance(dt) {
		c.moving = false
	}
	c.smoke.SetActive(c.moving)
	c.smoke.Update(dt)
}

// OpenSignpost opens the slideshow for a signpost id. Ids without slides are
// logged and ignored.
func (c *Composer) OpenSignpost(id int) bool {
	r, ok := c.cfg.Slides.Lookup(id)
	if !ok {
		log.Printf("scene: no slide configuration for signpost %d", id)
		return false
	}
	c.slides.Open(r)
	c.events.Push(Event{Type: EventSignpostOpened, Data: c.slideEvent()})
	return true
}

func (c *Composer) CloseSlideshow() {
	if !c.slides.IsOpen() {
		return
	}
	c.slides.Close()
	c.events.Push(Event{Type: EventSlideshowClosed, Data: c.slideEvent()})
}

func (c *Composer) NextSlide() bool {
	return c.slideChanged(c.slides.Next())
}

func (c *Composer) PrevSlide() bool {
	return c.slideChanged(c.slides.Prev())
}

func (c *Composer) GoToSlide(n int) bool {
	return c.slideChanged(c.slides.GoTo(n))
}

func (c *Composer) DigitSlide(n int) bool {
	return c.slideChanged(c.slides.Digit(n))
}

// ClickSlide handles a click at x on a slide image of the given width.
func (c *Composer) ClickSlide(x, width float64) bool {
	if !c.slides.IsOpen() {
		return false
	}
	return c.slideChanged(c.slides.Click(x, width))
}

func (c *Composer) slideChanged(changed bool) bool {
	if changed {
		c.events.Push(Event{Type: EventSlideChanged, Data: c.slideEvent()})
	}
	return changed
}

func (c *Composer) slideEvent() SlideEvent {
	return SlideEvent{SignpostID: c.slides.SignpostID(), Slide: c.slides.Current()}
}

func (c *Composer) Events() *EventQueue {
	return &c.events
}

// Placements returns the signposts around the current ground offset.
func (c *Composer) Placements() []signpost.Placement {
	return signpost.Place(c.offsets.Ground, signpost.Gap(c.cfg.ViewportWidth), c.cfg.BaseCount, c.cfg.BufferCount)
}

// SlideshowState is the part of the snapshot the slideshow view reads.
type SlideshowState struct {
	Open       bool
	Range      signpost.SlideRange
	Current    int
	Index      int
	Total      int
	Indicators []int
	More       int
}

// Snapshot is a copy of everything needed to draw one frame.
type Snapshot struct {
	Offsets    parallax.Offsets
	Direction  parallax.Direction
	Multiplier parallax.Multiplier
	Moving     bool
	SmokePhase smoke.Phase
	SmokeFrame int
	Signposts  []signpost.Placement
	Slideshow  SlideshowState
}

func (c *Composer) Snapshot() Snapshot {
	s := Snapshot{
		Offsets:    c.offsets,
		Direction:  c.dir,
		Multiplier: c.mult,
		Moving:     c.moving,
		SmokePhase: c.smoke.Phase(),
		SmokeFrame: c.smoke.Frame(),
		Signposts:  c.Placements(),
	}
	if c.slides.IsOpen() {
		idx, total := c.slides.Position()
		dots, more := c.slides.Indicators()
		s.Slideshow = SlideshowState{
			Open:       true,
			Range:      c.slides.Range(),
			Current:    c.slides.Current(),
			Index:      idx,
			Total:      total,
			Indicators: dots,
			More:       more,
		}
	}
	return s
}
