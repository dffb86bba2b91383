// Package parallax holds the scroll offsets of the scene's layers and the
// tiling math that keeps looping backgrounds seamless.
package parallax

import (
	"errors"
	"fmt"

	"github.com/milk9111/trainride/common"
)

// LayerCount is the number of wrapped background layers.
const LayerCount = 4

// ImageWidth is the authored pixel width of every background layer image.
const ImageWidth = 1920

var (
	ErrInvalidMultiplier = errors.New("parallax: invalid speed multiplier")
	ErrSpeedOrder        = errors.New("parallax: layer speeds out of depth order")
)

type Direction int

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// sign is the direction the world scrolls relative to the train: moving
// left pushes the scenery right and vice versa.
func (d Direction) sign() float64 {
	if d == Left {
		return 1
	}
	return -1
}

// Multiplier scales every layer speed uniformly.
type Multiplier int

// Multipliers lists the selectable speed multipliers in button order.
var Multipliers = []Multiplier{1, 2, 4, 8}

func (m Multiplier) Valid() bool {
	for _, v := range Multipliers {
		if m == v {
			return true
		}
	}
	return false
}

// ParseMultiplier validates a raw multiplier value.
func ParseMultiplier(v int) (Multiplier, error) {
	m := Multiplier(v)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMultiplier, v)
	}
	return m, nil
}

// Speeds are pixels per input event, before the multiplier.
// Layers are indexed by layer number minus one.
type Speeds struct {
	Layers [LayerCount]float64
	Ground float64
}

// DefaultSpeeds are the authored scroll rates of the scene.
var DefaultSpeeds = Speeds{
	Layers: [LayerCount]float64{2, 4, 12, 6},
	Ground: 6,
}

// DepthOrder lists layer indices back to front. Layer 3 is the foreground
// and is drawn above the train.
var DepthOrder = [LayerCount]int{0, 1, 3, 2}

// GroundLayer is the background layer the rails and signposts move with.
const GroundLayer = 3

// Validate checks that speeds grow from background to foreground and that the
// ground matches the layer it sits on.
func (s Speeds) Validate() error {
	prev := 0.0
	for i, idx := range DepthOrder {
		v := s.Layers[idx]
		if v <= 0 {
			return fmt.Errorf("%w: layer %d speed %v must be positive", ErrSpeedOrder, idx+1, v)
		}
		if i > 0 && v <= prev {
			return fmt.Errorf("%w: layer %d speed %v not faster than %v", ErrSpeedOrder, idx+1, v, prev)
		}
		prev = v
	}
	if s.Ground != s.Layers[GroundLayer] {
		return fmt.Errorf("%w: ground speed %v differs from layer %d speed %v", ErrSpeedOrder, s.Ground, GroundLayer+1, s.Layers[GroundLayer])
	}
	return nil
}

// Offsets are the current horizontal scroll positions in pixels. Layer
// offsets stay in [0, width); Ground is never wrapped so that signpost world
// indices move monotonically with travel.
type Offsets struct {
	Layers [LayerCount]float64
	Ground float64
}

// Advance returns the offsets after one input event in dir.
func Advance(o Offsets, s Speeds, dir Direction, m Multiplier, width float64) Offsets {
	step := dir.sign() * float64(m)
	next := o
	for i := range next.Layers {
		next.Layers[i] = common.Wrap(o.Layers[i]+step*s.Layers[i], width)
	}
	next.Ground = o.Ground + step*s.Ground
	return next
}
