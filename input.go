package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/trainride/scene"
)

const stickDeadzone = 0.3

var keyBindings = []struct {
	ebiten ebiten.Key
	key    scene.Key
}{
	{ebiten.KeyA, scene.KeyA},
	{ebiten.KeyD, scene.KeyD},
	{ebiten.KeyArrowLeft, scene.KeyArrowLeft},
	{ebiten.KeyArrowRight, scene.KeyArrowRight},
	{ebiten.KeySpace, scene.KeySpace},
	{ebiten.KeyEscape, scene.KeyEscape},
	{ebiten.KeyDigit1, scene.KeyDigit1},
	{ebiten.KeyDigit2, scene.KeyDigit2},
	{ebiten.KeyDigit3, scene.KeyDigit3},
	{ebiten.KeyDigit4, scene.KeyDigit4},
	{ebiten.KeyDigit5, scene.KeyDigit5},
	{ebiten.KeyDigit6, scene.KeyDigit6},
	{ebiten.KeyDigit7, scene.KeyDigit7},
	{ebiten.KeyDigit8, scene.KeyDigit8},
	{ebiten.KeyDigit9, scene.KeyDigit9},
	{ebiten.KeyNumpad1, scene.KeyDigit1},
	{ebiten.KeyNumpad2, scene.KeyDigit2},
	{ebiten.KeyNumpad3, scene.KeyDigit3},
	{ebiten.KeyNumpad4, scene.KeyDigit4},
	{ebiten.KeyNumpad5, scene.KeyDigit5},
	{ebiten.KeyNumpad6, scene.KeyDigit6},
	{ebiten.KeyNumpad7, scene.KeyDigit7},
	{ebiten.KeyNumpad8, scene.KeyDigit8},
	{ebiten.KeyNumpad9, scene.KeyDigit9},
}

// Input holds the key presses and mouse state for one tick.
type Input struct {
	// Keys are the presses to handle this tick, including auto-repeats.
	Keys []scene.Key
	// MouseX/Y are the cursor position in layout coordinates.
	MouseX float64
	MouseY float64
	// LeftClicked and RightClicked are true on the tick the button went down.
	LeftClicked  bool
	RightClicked bool

	// RepeatDelay and RepeatInterval are in ticks. Zero disables repeat.
	RepeatDelay    int
	RepeatInterval int

	stickTicks int
	stickKey   scene.Key
}

func NewInput(delay, interval int) *Input {
	return &Input{RepeatDelay: delay, RepeatInterval: interval}
}

// Update polls the keyboard, mouse and first gamepad.
func (i *Input) Update() {
	i.Keys = i.Keys[:0]
	for _, b := range keyBindings {
		d := inpututil.KeyPressDuration(b.ebiten)
		if d == 0 {
			continue
		}
		if d == 1 || (b.key.Repeats() && repeatFires(d, i.RepeatDelay, i.RepeatInterval)) {
			i.Keys = append(i.Keys, b.key)
		}
	}

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		i.pollGamepad(ids[0])
	}

	mx, my := ebiten.CursorPosition()
	i.MouseX = float64(mx)
	i.MouseY = float64(my)
	i.LeftClicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.RightClicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

// pollGamepad maps the left stick to the arrow keys and the face buttons to
// space and escape. The stick repeats like a held key.
func (i *Input) pollGamepad(id ebiten.GamepadID) {
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	key := scene.KeyNone
	switch {
	case x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft):
		key = scene.KeyArrowLeft
	case x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight):
		key = scene.KeyArrowRight
	}
	if key != i.stickKey {
		i.stickKey = key
		i.stickTicks = 0
	}
	if key != scene.KeyNone {
		i.stickTicks++
		if repeatFires(i.stickTicks, i.RepeatDelay, i.RepeatInterval) {
			i.Keys = append(i.Keys, key)
		}
	}

	if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
		i.Keys = append(i.Keys, scene.KeySpace)
	}
	if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight) {
		i.Keys = append(i.Keys, scene.KeyEscape)
	}
}

// repeatFires reports whether a key held for d ticks fires this tick. It
// fires on the first tick, then every interval ticks once delay has passed.
func repeatFires(d, delay, interval int) bool {
	if d == 1 {
		return true
	}
	if d <= 1 || delay <= 0 || interval <= 0 {
		return false
	}
	return d > delay && (d-1-delay)%interval == 0
}
