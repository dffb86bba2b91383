package scene

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/trainride/common"
	"github.com/milk9111/trainride/parallax"
	"github.com/milk9111/trainride/signpost"
	"github.com/milk9111/trainride/smoke"
)

const tick = time.Second / 60

func newComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	return c
}

func TestRightPressAtFourTimes(t *testing.T) {
	c := newComposer(t)
	if err := c.SetSpeed(4); err != nil {
		t.Fatalf("SetSpeed: %v", err)
	}
	c.HandleKey(KeyD)
	s := c.Snapshot()
	if s.Offsets.Ground != -24 {
		t.Fatalf("expected ground -24, got %v", s.Offsets.Ground)
	}
	if s.Direction != parallax.Right || !s.Moving {
		t.Fatalf("expected moving right, got %v moving=%v", s.Direction, s.Moving)
	}
}

func TestKeyBindings(t *testing.T) {
	cases := []struct {
		key  Key
		want float64
	}{
		{KeyA, 6},
		{KeyArrowLeft, 6},
		{KeyD, -6},
		{KeyArrowRight, -6},
		{KeySpace, 0},
		{KeyDigit3, 0},
	}
	for _, tc := range cases {
		c := newComposer(t)
		c.HandleKey(tc.key)
		if got := c.Snapshot().Offsets.Ground; got != tc.want {
			t.Fatalf("key %v: expected ground %v, got %v", tc.key, tc.want, got)
		}
	}
}

func TestSetSpeedRejectsInvalid(t *testing.T) {
	c := newComposer(t)
	if err := c.SetSpeed(3); !errors.Is(err, parallax.ErrInvalidMultiplier) {
		t.Fatalf("expected ErrInvalidMultiplier, got %v", err)
	}
	if c.Snapshot().Multiplier != 1 {
		t.Fatalf("multiplier changed after invalid SetSpeed")
	}
	if err := c.SetSpeed(8); err != nil {
		t.Fatalf("SetSpeed(8): %v", err)
	}
	evts := c.Events().Drain()
	if len(evts) != 1 || evts[0].Type != EventSpeedChanged || evts[0].Data.(int) != 8 {
		t.Fatalf("expected one speed event, got %+v", evts)
	}
}

func TestSettleDelay(t *testing.T) {
	c := newComposer(t)
	c.HandleKey(KeyA)
	elapsed := time.Duration(0)
	for c.Snapshot().Moving {
		c.Update(tick)
		elapsed += tick
		if elapsed > time.Second {
			t.Fatalf("movement never settled")
		}
	}
	if elapsed < SettleDelay || elapsed > SettleDelay+tick {
		t.Fatalf("expected settle after %v, took %v", SettleDelay, elapsed)
	}
}

func TestRepeatedInputKeepsMoving(t *testing.T) {
	c := newComposer(t)
	for i := 0; i < 60; i++ {
		if i%10 == 0 {
			c.HandleKey(KeyD)
		}
		c.Update(tick)
		if !c.Snapshot().Moving {
			t.Fatalf("tick %d: movement settled while keys kept arriving", i)
		}
	}
}

func TestSmokeFollowsMovement(t *testing.T) {
	c := newComposer(t)
	c.HandleKey(KeyD)
	c.Update(tick)
	if c.Snapshot().SmokePhase != smoke.FadeIn {
		t.Fatalf("expected smoke fading in, got %v", c.Snapshot().SmokePhase)
	}
	for i := 0; i < 60; i++ {
		c.Update(tick)
	}
	s := c.Snapshot()
	if s.Moving {
		t.Fatalf("expected movement to settle")
	}
	if s.SmokePhase != smoke.FadeOut && s.SmokePhase != smoke.Stopped {
		t.Fatalf("expected smoke to fade out once settled, got %v", s.SmokePhase)
	}
	for i := 0; i < 120; i++ {
		c.Update(tick)
	}
	if c.Snapshot().SmokePhase != smoke.Stopped {
		t.Fatalf("expected smoke stopped, got %v", c.Snapshot().SmokePhase)
	}
}

func TestSlideshowSuppressesScrolling(t *testing.T) {
	c := newComposer(t)
	if !c.OpenSignpost(2) {
		t.Fatalf("expected signpost 2 to open")
	}
	before := c.Snapshot().Offsets
	c.HandleKey(KeyA)
	c.HandleKey(KeyD)
	if c.Move(parallax.Left) {
		t.Fatalf("Move should be refused while the slideshow is open")
	}
	if c.Snapshot().Offsets != before {
		t.Fatalf("offsets changed while slideshow open")
	}
	if c.Snapshot().Moving {
		t.Fatalf("movement signal set while slideshow open")
	}
}

func TestSlideshowKeys(t *testing.T) {
	c := newComposer(t)
	c.OpenSignpost(1) // slides 6-11
	c.HandleKey(KeyArrowRight)
	c.HandleKey(KeySpace)
	if got := c.Snapshot().Slideshow.Current; got != 8 {
		t.Fatalf("expected slide 8, got %d", got)
	}
	c.HandleKey(KeyArrowLeft)
	if got := c.Snapshot().Slideshow.Current; got != 7 {
		t.Fatalf("expected slide 7, got %d", got)
	}
	c.HandleKey(KeyDigit5)
	if got := c.Snapshot().Slideshow.Current; got != 10 {
		t.Fatalf("expected slide 10, got %d", got)
	}
	c.HandleKey(KeyDigit9)
	if got := c.Snapshot().Slideshow.Current; got != 10 {
		t.Fatalf("digit past the range should be ignored, got %d", got)
	}
	c.HandleKey(KeyEscape)
	if c.Snapshot().Slideshow.Open {
		t.Fatalf("escape should close the slideshow")
	}
	c.HandleKey(KeyA)
	if c.Snapshot().Offsets.Ground != 6 {
		t.Fatalf("scrolling should resume after close")
	}
}

func TestReopenShowsLastViewedSlide(t *testing.T) {
	c := newComposer(t)
	c.OpenSignpost(4) // slides 17-20
	if got := c.Snapshot().Slideshow.Current; got != 17 {
		t.Fatalf("first visit should start at 17, got %d", got)
	}
	c.GoToSlide(19)
	c.CloseSlideshow()
	c.OpenSignpost(4)
	s := c.Snapshot().Slideshow
	if s.Current != 19 || s.Index != 3 || s.Total != 4 {
		t.Fatalf("expected to resume at 19 (3 of 4), got %+v", s)
	}
}

func TestOpenUnknownSignpost(t *testing.T) {
	c := newComposer(t)
	if c.OpenSignpost(42) {
		t.Fatalf("signpost without slides should not open")
	}
	if c.Snapshot().Slideshow.Open || c.Events().Len() != 0 {
		t.Fatalf("unknown signpost changed state")
	}
}

func TestSlideshowEvents(t *testing.T) {
	c := newComposer(t)
	c.OpenSignpost(0)
	c.NextSlide()
	c.ClickSlide(10, 1200)
	c.CloseSlideshow()
	c.CloseSlideshow()

	want := []EventType{EventSignpostOpened, EventSlideChanged, EventSlideChanged, EventSlideshowClosed}
	evts := c.Events().Drain()
	if len(evts) != len(want) {
		t.Fatalf("expected %d events, got %+v", len(want), evts)
	}
	for i, e := range evts {
		if e.Type != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], e.Type)
		}
	}
	if last := evts[2].Data.(SlideEvent); last.SignpostID != 0 || last.Slide != 1 {
		t.Fatalf("unexpected click payload %+v", last)
	}
	if c.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func TestSnapshotSignposts(t *testing.T) {
	c := newComposer(t)
	ps := c.Snapshot().Signposts
	if len(ps) != signpost.BufferCount {
		t.Fatalf("expected %d signposts, got %d", signpost.BufferCount, len(ps))
	}
	for i := 0; i < 200; i++ {
		c.HandleKey(KeyA)
	}
	ps = c.Snapshot().Signposts
	if ps[0].WorldIndex != int(1200/signpost.Gap(parallax.ImageWidth))-signpost.LeadCount {
		t.Fatalf("unexpected first world index %d", ps[0].WorldIndex)
	}
}

func TestNewComposerRejectsBadSpeeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speeds.Layers[2] = 1
	if _, err := NewComposer(cfg); !errors.Is(err, parallax.ErrSpeedOrder) {
		t.Fatalf("expected ErrSpeedOrder, got %v", err)
	}
}

func TestReconfigureKeepsPosition(t *testing.T) {
	c := newComposer(t)
	for i := 0; i < 10; i++ {
		c.HandleKey(KeyA)
	}
	cfg := DefaultConfig()
	cfg.ImageWidth = 50
	if err := c.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	s := c.Snapshot()
	if s.Offsets.Ground != 60 {
		t.Fatalf("ground should survive reconfigure, got %v", s.Offsets.Ground)
	}
	for i, v := range s.Offsets.Layers {
		if v < 0 || v >= 50 {
			t.Fatalf("layer %d offset %v not rewrapped", i+1, v)
		}
	}
	bad := DefaultConfig()
	bad.BaseCount = 0
	if err := c.Reconfigure(bad); err == nil {
		t.Fatalf("expected error for zero base count")
	}
}

func TestDispatch(t *testing.T) {
	c := newComposer(t)

	if !c.Dispatch(Action{Kind: ActionSetSpeed, N: 2}) {
		t.Fatalf("expected speed change to apply")
	}
	if c.Dispatch(Action{Kind: ActionSetSpeed, N: 3}) {
		t.Fatalf("expected 3x to be rejected")
	}
	if c.Snapshot().Multiplier != 2 {
		t.Fatalf("expected multiplier 2, got %v", c.Snapshot().Multiplier)
	}

	if !c.Dispatch(Action{Kind: ActionMoveLeft}) {
		t.Fatalf("expected move to apply")
	}
	if got := c.Snapshot().Offsets.Ground; got != 12 {
		t.Fatalf("expected ground 12 after left at 2x, got %v", got)
	}

	if !c.Dispatch(Action{Kind: ActionOpenSignpost, N: 2}) {
		t.Fatalf("expected signpost 2 to open")
	}
	if c.Dispatch(Action{Kind: ActionMoveRight}) {
		t.Fatalf("expected movement to be ignored while open")
	}
	start := c.Snapshot().Slideshow.Range.Start
	if !c.Dispatch(Action{Kind: ActionSlideGoTo, N: start + 1}) {
		t.Fatalf("expected goto within range to apply")
	}
	if c.Dispatch(Action{Kind: ActionSlideGoTo, N: 1000}) {
		t.Fatalf("expected goto outside range to be ignored")
	}
	if !c.Dispatch(Action{Kind: ActionSlideClose}) {
		t.Fatalf("expected close to apply")
	}
	if c.Dispatch(Action{Kind: ActionSlideClose}) {
		t.Fatalf("expected second close to be a no-op")
	}
}

func TestKeyActionWhileOpen(t *testing.T) {
	c := newComposer(t)
	cases := []struct {
		key  Key
		open bool
		want Action
	}{
		{KeyArrowLeft, false, Action{Kind: ActionMoveLeft}},
		{KeyD, false, Action{Kind: ActionMoveRight}},
		{KeySpace, false, Action{}},
		{KeyArrowLeft, true, Action{Kind: ActionSlidePrev}},
		{KeyArrowRight, true, Action{Kind: ActionSlideNext}},
		{KeySpace, true, Action{Kind: ActionSlideNext}},
		{KeyEscape, true, Action{Kind: ActionSlideClose}},
		{KeyDigit3, true, Action{Kind: ActionSlideDigit, N: 3}},
		{KeyA, true, Action{}},
	}
	for _, tc := range cases {
		if tc.open {
			c.OpenSignpost(1)
		} else {
			c.CloseSlideshow()
		}
		if got := c.KeyAction(tc.key); got != tc.want {
			t.Fatalf("key %d open=%v: expected %+v, got %+v", tc.key, tc.open, tc.want, got)
		}
	}
}

func TestDefaultConfigUsesBaseViewport(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ViewportWidth != common.BaseWidth {
		t.Fatalf("expected viewport %d, got %v", common.BaseWidth, cfg.ViewportWidth)
	}
	if got := signpost.Gap(cfg.ViewportWidth); got != 640 {
		t.Fatalf("expected 640px signpost gap, got %v", got)
	}
}
