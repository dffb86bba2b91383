package main

import (
	"fmt"
	"time"

	"github.com/milk9111/trainride/prefabs"
	"github.com/milk9111/trainride/render"
	"github.com/milk9111/trainride/scene"
	"github.com/milk9111/trainride/signpost"
	"github.com/milk9111/trainride/slideshow"
	"github.com/milk9111/trainride/smoke"
)

// Settings is everything loaded from the prefabs directory.
type Settings struct {
	Scene  *prefabs.SceneSpec
	Slides signpost.Table
	Total  int
}

func loadSettings() (*Settings, error) {
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, err
	}
	table, total, err := prefabs.LoadSlideTable()
	if err != nil {
		return nil, err
	}
	return &Settings{Scene: spec, Slides: table, Total: total}, nil
}

func millis(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Settings) sceneConfig() (scene.Config, error) {
	if s == nil || s.Scene == nil {
		return scene.Config{}, fmt.Errorf("settings: no scene loaded")
	}
	sp := s.Scene
	cfg := scene.DefaultConfig()
	cfg.Speeds = sp.Speeds()
	cfg.ImageWidth = sp.Layers.ImageWidth
	cfg.ViewportWidth = float64(sp.Viewport.Width)
	cfg.SettleDelay = millis(sp.Motion.SettleMS, scene.SettleDelay)
	cfg.FramePeriod = millis(sp.Smoke.FrameMS, smoke.FrameDurationMillis*time.Millisecond)
	cfg.BaseCount = sp.Signposts.BaseCount
	cfg.BufferCount = sp.Signposts.BufferCount
	if len(s.Slides) > 0 {
		cfg.Slides = s.Slides
		cfg.TotalSlides = s.Total
	}
	return cfg, nil
}

func (s *Settings) signpostBox() signpost.Box {
	sp := s.Scene.Signposts
	return signpost.Box{
		Width:  sp.Width,
		Height: sp.Height,
		Bottom: sp.Bottom * float64(s.Scene.Viewport.Height),
	}
}

func (s *Settings) trainAnimation() render.AnimationDef {
	m := s.Scene.Train.Moving
	return render.AnimationDef{
		Row:        m.Row,
		ColStart:   m.ColStart,
		FrameCount: m.FrameCount,
		FrameW:     m.FrameW,
		FrameH:     m.FrameH,
		FPS:        m.FPS,
		Loop:       m.Loop,
	}
}

func (s *Settings) fadeSeconds() float32 {
	return float32(millis(s.Scene.Slideshow.FadeMS, 300*time.Millisecond).Seconds())
}

func (s *Settings) batchSize() int {
	if n := s.Scene.Slideshow.BatchSize; n > 0 {
		return n
	}
	return slideshow.BatchSize
}
