package scene

import (
	"log"

	"github.com/milk9111/trainride/parallax"
)

// Key is a device-independent key the scene reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyD
	KeyArrowLeft
	KeyArrowRight
	KeySpace
	KeyEscape
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
)

// Digit returns the number on a digit key.
func (k Key) Digit() (int, bool) {
	if k >= KeyDigit1 && k <= KeyDigit9 {
		return int(k-KeyDigit1) + 1, true
	}
	return 0, false
}

// Repeats reports whether holding the key should keep firing it.
func (k Key) Repeats() bool {
	switch k {
	case KeyA, KeyD, KeyArrowLeft, KeyArrowRight, KeySpace:
		return true
	}
	return false
}

// ActionKind names something the scene can be asked to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMoveLeft
	ActionMoveRight
	ActionSlideNext
	ActionSlidePrev
	ActionSlideClose
	ActionSlideDigit
	ActionSlideGoTo
	ActionSetSpeed
	ActionOpenSignpost
)

// Action is one request from the keyboard, mouse or UI. N carries the digit,
// slide number, multiplier or signpost id.
type Action struct {
	Kind ActionKind
	N    int
}

// KeyAction maps a key to an action. While the slideshow is open it owns the
// keyboard and the scene does not scroll.
func (c *Composer) KeyAction(k Key) Action {
	if c.slides.IsOpen() {
		switch k {
		case KeyArrowRight, KeySpace:
			return Action{Kind: ActionSlideNext}
		case KeyArrowLeft:
			return Action{Kind: ActionSlidePrev}
		case KeyEscape:
			return Action{Kind: ActionSlideClose}
		}
		if n, ok := k.Digit(); ok {
			return Action{Kind: ActionSlideDigit, N: n}
		}
		return Action{}
	}
	switch k {
	case KeyA, KeyArrowLeft:
		return Action{Kind: ActionMoveLeft}
	case KeyD, KeyArrowRight:
		return Action{Kind: ActionMoveRight}
	}
	return Action{}
}

// HandleKey routes a key press.
func (c *Composer) HandleKey(k Key) bool {
	return c.Dispatch(c.KeyAction(k))
}

// Dispatch applies an action and reports whether it changed anything.
func (c *Composer) Dispatch(a Action) bool {
	switch a.Kind {
	case ActionMoveLeft:
		return c.Move(parallax.Left)
	case ActionMoveRight:
		return c.Move(parallax.Right)
	case ActionSlideNext:
		return c.NextSlide()
	case ActionSlidePrev:
		return c.PrevSlide()
	case ActionSlideClose:
		open := c.slides.IsOpen()
		c.CloseSlideshow()
		return open
	case ActionSlideDigit:
		return c.DigitSlide(a.N)
	case ActionSlideGoTo:
		return c.GoToSlide(a.N)
	case ActionSetSpeed:
		if err := c.SetSpeed(a.N); err != nil {
			log.Printf("scene: %v", err)
			return false
		}
		return true
	case ActionOpenSignpost:
		return c.OpenSignpost(a.N)
	}
	return false
}
