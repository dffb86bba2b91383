package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/trainride/common"
	"github.com/milk9111/trainride/parallax"
	"github.com/milk9111/trainride/signpost"
	"gopkg.in/yaml.v3"
)

// useDir points disk overrides at dir for the duration of a test.
func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir()
	SetDir(dir)
	t.Cleanup(func() { SetDir(prev) })
}

func TestLoadEmbeddedSceneSpec(t *testing.T) {
	useDir(t, t.TempDir())
	spec, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if spec.Speeds() != parallax.DefaultSpeeds {
		t.Fatalf("expected default speeds, got %+v", spec.Speeds())
	}
	if spec.Layers.ImageWidth != parallax.ImageWidth {
		t.Fatalf("expected image width %v, got %v", parallax.ImageWidth, spec.Layers.ImageWidth)
	}
	if spec.Signposts.BaseCount != signpost.BaseCount || spec.Signposts.BufferCount != signpost.BufferCount {
		t.Fatalf("unexpected signpost counts %+v", spec.Signposts)
	}
	if spec.Smoke.FrameMS != 100 || spec.Motion.SettleMS != 300 {
		t.Fatalf("unexpected timings smoke=%d settle=%d", spec.Smoke.FrameMS, spec.Motion.SettleMS)
	}
	if spec.Train.Moving.FrameCount <= 0 || spec.Train.Moving.FPS <= 0 {
		t.Fatalf("train moving animation not configured: %+v", spec.Train.Moving)
	}
}

func TestLoadEmbeddedSlideTable(t *testing.T) {
	useDir(t, t.TempDir())
	table, total, err := LoadSlideTable()
	if err != nil {
		t.Fatalf("LoadSlideTable: %v", err)
	}
	if total != signpost.TotalSlides || len(table) != len(signpost.DefaultTable) {
		t.Fatalf("unexpected table size %d/%d", len(table), total)
	}
	for i, r := range table {
		if r != signpost.DefaultTable[i] {
			t.Fatalf("range %d: %+v differs from built-in %+v", i, r, signpost.DefaultTable[i])
		}
	}
	if !table.Validate(total) {
		t.Fatalf("embedded slide table should validate")
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	override := "total: 4\nslides:\n  - { id: 0, start: 1, end: 4, title: Only }\n"
	if err := os.WriteFile(filepath.Join(dir, SlidesFile), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	table, total, err := LoadSlideTable()
	if err != nil {
		t.Fatalf("LoadSlideTable: %v", err)
	}
	if total != 4 || len(table) != 1 || table[0].Title != "Only" {
		t.Fatalf("override not used: %+v total=%d", table, total)
	}
}

func TestEmptySlideTableFallsBack(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, SlidesFile), []byte("slides: []\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	table, total, err := LoadSlideTable()
	if err != nil {
		t.Fatalf("LoadSlideTable: %v", err)
	}
	if total != signpost.TotalSlides || len(table) != len(signpost.DefaultTable) {
		t.Fatalf("expected built-in table, got %d ranges", len(table))
	}
}

func TestSceneSpecValidate(t *testing.T) {
	useDir(t, t.TempDir())
	base, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(s *SceneSpec)
	}{
		{"speed_order", func(s *SceneSpec) { s.Layers.Speeds = []float64{12, 4, 2, 6} }},
		{"ground_mismatch", func(s *SceneSpec) { s.Layers.GroundSpeed = 7 }},
		{"missing_layer", func(s *SceneSpec) { s.Layers.Images = s.Layers.Images[:3] }},
		{"viewport_wider_than_images", func(s *SceneSpec) { s.Viewport.Width = 2560 }},
		{"zero_rail_width", func(s *SceneSpec) { s.Rails.TileWidth = 0 }},
		{"zero_base_count", func(s *SceneSpec) { s.Signposts.BaseCount = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := base
			spec.Layers.Images = append([]string(nil), base.Layers.Images...)
			spec.Layers.Speeds = append([]float64(nil), base.Layers.Speeds...)
			c.mutate(&spec)
			if err := spec.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		A *YAMLColor `yaml:"a"`
		B *YAMLColor `yaml:"b"`
		C *YAMLColor `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("a: \"#ff8000\"\nb: \"#00000080\"\n"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.A.Color != (color.NRGBA{R: 0xff, G: 0x80, A: 0xff}) {
		t.Fatalf("unexpected color a %v", out.A.Color)
	}
	if out.B.Color != (color.NRGBA{A: 0x80}) {
		t.Fatalf("unexpected color b %v", out.B.Color)
	}
	if out.C.Or(color.White) != color.White {
		t.Fatalf("unset color should fall back")
	}
	if err := yaml.Unmarshal([]byte("a: \"#12\"\n"), &out); err == nil {
		t.Fatalf("expected error for short color")
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SceneFile), []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != SceneFile {
			t.Fatalf("expected %s event, got %s", SceneFile, name)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}

func TestWatcherPollDeduplicates(t *testing.T) {
	w := &Watcher{Events: make(chan string, 4)}
	w.Events <- "/tmp/a/scene.yaml"
	w.Events <- "/tmp/a/scene.yaml"
	w.Events <- "/tmp/a/slides.yaml"
	names := w.Poll()
	if len(names) != 2 || names[0] != SceneFile || names[1] != SlidesFile {
		t.Fatalf("unexpected poll result %v", names)
	}
	if w.Poll() != nil {
		t.Fatalf("expected nothing left to poll")
	}
}

func TestMissingViewportUsesBaseResolution(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	data, err := PrefabsFS.ReadFile(SceneFile)
	if err != nil {
		t.Fatalf("read embedded scene: %v", err)
	}
	stripped := strings.Replace(string(data), "viewport:\n  width: 1920\n  height: 1080\n", "", 1)
	if stripped == string(data) {
		t.Fatalf("embedded scene has no viewport block to strip")
	}
	if err := os.WriteFile(filepath.Join(dir, SceneFile), []byte(stripped), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	spec, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if spec.Viewport.Width != common.BaseWidth || spec.Viewport.Height != common.BaseHeight {
		t.Fatalf("expected base viewport, got %+v", spec.Viewport)
	}
}
