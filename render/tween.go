package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates one float toward a target. The zero value holds 0 and is
// finished.
type Tween struct {
	tween *gween.Tween
	value float32
	to    float32
}

// NewTween returns a finished tween resting at v.
func NewTween(v float32) *Tween {
	return &Tween{value: v, to: v}
}

// StartFrom animates from `from` to `to` over duration seconds.
func (t *Tween) StartFrom(from, to, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	t.to = to
	if duration <= 0 {
		t.tween = nil
		t.value = to
		return
	}
	t.value = from
	t.tween = gween.New(from, to, duration, fn)
}

// Update advances by dt seconds and returns the current value.
func (t *Tween) Update(dt float32) float32 {
	if t.tween == nil {
		return t.value
	}
	v, done := t.tween.Update(dt)
	t.value = v
	if done {
		t.value = t.to
		t.tween = nil
	}
	return t.value
}

func (t *Tween) Value() float32 {
	return t.value
}
