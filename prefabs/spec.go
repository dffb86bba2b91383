package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/trainride/common"
	"github.com/milk9111/trainride/parallax"
	"github.com/milk9111/trainride/signpost"
	"gopkg.in/yaml.v3"
)

const (
	SceneFile  = "scene.yaml"
	SlidesFile = "slides.yaml"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes the layout, assets and timings of the diorama.
type SceneSpec struct {
	Name       string        `yaml:"name"`
	Viewport   ViewportSpec  `yaml:"viewport"`
	Background *YAMLColor    `yaml:"background"`
	Layers     LayersSpec    `yaml:"layers"`
	Rails      RailsSpec     `yaml:"rails"`
	Train      TrainSpec     `yaml:"train"`
	Smoke      SmokeSpec     `yaml:"smoke"`
	Signposts  SignpostsSpec `yaml:"signposts"`
	Slideshow  SlideshowSpec `yaml:"slideshow"`
	Input      InputSpec     `yaml:"input"`
	Motion     MotionSpec    `yaml:"motion"`
}

type ViewportSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LayersSpec lists the four background layers by layer number.
type LayersSpec struct {
	ImageWidth  float64   `yaml:"image_width"`
	Images      []string  `yaml:"images"`
	Speeds      []float64 `yaml:"speeds"`
	GroundSpeed float64   `yaml:"ground_speed"`
}

type RailsSpec struct {
	Image      string  `yaml:"image"`
	TileWidth  float64 `yaml:"tile_width"`
	TileHeight float64 `yaml:"tile_height"`
	Bottom     float64 `yaml:"bottom"`
}

type TrainSpec struct {
	Image     string           `yaml:"image"`
	Width     float64          `yaml:"width"`
	Height    float64          `yaml:"height"`
	Bottom    float64          `yaml:"bottom"`
	FacesLeft bool             `yaml:"faces_left"`
	Moving    AnimationDefSpec `yaml:"moving"`
}

type SmokeSpec struct {
	Sheet   string  `yaml:"sheet"`
	FrameMS int     `yaml:"frame_ms"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type SignpostsSpec struct {
	Image       string     `yaml:"image"`
	GrassDir    string     `yaml:"grass_dir"`
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	Bottom      float64    `yaml:"bottom"`
	BaseCount   int        `yaml:"base_count"`
	BufferCount int        `yaml:"buffer_count"`
	LabelColor  *YAMLColor `yaml:"label_color"`
	HoverLift   float64    `yaml:"hover_lift"`
}

type SlideshowSpec struct {
	Dir       string     `yaml:"dir"`
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	FadeMS    int        `yaml:"fade_ms"`
	BatchSize int        `yaml:"batch_size"`
	Backdrop  *YAMLColor `yaml:"backdrop"`
}

// InputSpec configures key auto-repeat, in ticks.
type InputSpec struct {
	RepeatDelay    int `yaml:"repeat_delay"`
	RepeatInterval int `yaml:"repeat_interval"`
}

type MotionSpec struct {
	SettleMS int `yaml:"settle_ms"`
}

type AnimationDefSpec struct {
	Sheet      string  `yaml:"sheet"`
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// applyDefaults fills a missing viewport with the base resolution.
func (s *SceneSpec) applyDefaults() {
	if s.Viewport.Width == 0 && s.Viewport.Height == 0 {
		s.Viewport.Width = common.BaseWidth
		s.Viewport.Height = common.BaseHeight
	}
}

// Speeds converts the layer speeds into the parallax model's form.
func (s *SceneSpec) Speeds() parallax.Speeds {
	var sp parallax.Speeds
	copy(sp.Layers[:], s.Layers.Speeds)
	sp.Ground = s.Layers.GroundSpeed
	return sp
}

func (s *SceneSpec) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidSpec, s.Viewport.Width, s.Viewport.Height)
	}
	if s.Layers.ImageWidth <= 0 {
		return fmt.Errorf("%w: layer image width %v", ErrInvalidSpec, s.Layers.ImageWidth)
	}
	if float64(s.Viewport.Width) > s.Layers.ImageWidth {
		return fmt.Errorf("%w: viewport width %d wider than layer images %v", ErrInvalidSpec, s.Viewport.Width, s.Layers.ImageWidth)
	}
	if len(s.Layers.Images) != parallax.LayerCount || len(s.Layers.Speeds) != parallax.LayerCount {
		return fmt.Errorf("%w: need %d layer images and speeds, got %d and %d", ErrInvalidSpec, parallax.LayerCount, len(s.Layers.Images), len(s.Layers.Speeds))
	}
	if err := s.Speeds().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if s.Signposts.BaseCount <= 0 || s.Signposts.BufferCount <= 0 {
		return fmt.Errorf("%w: signpost counts %d/%d", ErrInvalidSpec, s.Signposts.BaseCount, s.Signposts.BufferCount)
	}
	if s.Rails.TileWidth <= 0 {
		return fmt.Errorf("%w: rail tile width %v", ErrInvalidSpec, s.Rails.TileWidth)
	}
	return nil
}

// SlidesSpec is the signpost to slide range table.
type SlidesSpec struct {
	Total  int                   `yaml:"total"`
	Slides []signpost.SlideRange `yaml:"slides"`
}

// LoadSlideTable loads the slide table, falling back to the built-in one
// when the file is missing or empty.
func LoadSlideTable() (signpost.Table, int, error) {
	spec, err := LoadSpec[SlidesSpec](SlidesFile)
	if err != nil {
		return nil, 0, err
	}
	if len(spec.Slides) == 0 {
		return signpost.DefaultTable, signpost.TotalSlides, nil
	}
	total := spec.Total
	if total <= 0 {
		total = signpost.TotalSlides
	}
	return signpost.Table(spec.Slides), total, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the color, or def when unset.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
