package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/trainride/parallax"
	"github.com/milk9111/trainride/scene"
	"github.com/milk9111/trainride/slideshow"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	textColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	hoverColor  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
)

// SceneUI is the ebitenui chrome drawn over the scene: the speed buttons and
// the slideshow header and navigation.
type SceneUI struct {
	UI *ebitenui.UI

	face     ebtext.Face
	dispatch func(scene.Action) bool

	speedBar     *widget.Container
	speedGroup   *widget.RadioGroup
	speedButtons []*widget.Button
	speed        parallax.Multiplier

	header   *widget.Container
	title    *widget.Text
	position *widget.Text
	nav      *widget.Container
	dots     *widget.Container
	dotItems []widget.PreferredSizeLocateableWidget
	shown    scene.SlideshowState
}

func newButtonImage(idle color.Color) *widget.ButtonImage {
	img := imageui.NewNineSliceColor(idle)
	return &widget.ButtonImage{
		Idle:    img,
		Hover:   imageui.NewNineSliceColor(hoverColor),
		Pressed: imageui.NewNineSliceColor(colornames.Darkgoldenrod),
	}
}

// NewSceneUI builds the chrome. dispatch is called for every button press.
func NewSceneUI(dispatch func(scene.Action) bool) *SceneUI {
	u := &SceneUI{
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		dispatch: dispatch,
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(u.buildSpeedBar())
	root.AddChild(u.buildHeader())
	root.AddChild(u.buildNav())

	u.UI = &ebitenui.UI{Container: root}
	return u
}

func (u *SceneUI) buildSpeedBar() *widget.Container {
	btnTextColor := &widget.ButtonTextColor{
		Idle:    textColor,
		Hover:   textColor,
		Pressed: colornames.Gold,
	}
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	var elements []widget.RadioGroupElement
	for _, m := range parallax.Multipliers {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(newButtonImage(buttonColor)),
			widget.ButtonOpts.Text(fmt.Sprintf("%dx", int(m)), &u.face, btnTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 36)),
		)
		u.speedButtons = append(u.speedButtons, btn)
		elements = append(elements, btn)
		bar.AddChild(btn)
	}

	u.speedGroup = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for i, b := range u.speedButtons {
				if args.Active == b {
					u.speed = parallax.Multipliers[i]
					u.dispatch(scene.Action{Kind: scene.ActionSetSpeed, N: int(parallax.Multipliers[i])})
					return
				}
			}
		}),
	)
	u.speed = parallax.Multipliers[0]
	u.speedGroup.SetActive(u.speedButtons[0])
	u.speedBar = bar
	return bar
}

func (u *SceneUI) buildHeader() *widget.Container {
	u.header = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	center := widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}))
	u.title = widget.NewText(widget.TextOpts.Text("", &u.face, textColor), center)
	u.position = widget.NewText(widget.TextOpts.Text("", &u.face, colornames.Lightgray), center)
	u.header.AddChild(u.title)
	u.header.AddChild(u.position)
	u.header.GetWidget().Visibility = widget.Visibility_Hide
	return u.header
}

func (u *SceneUI) buildNav() *widget.Container {
	u.nav = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	u.nav.AddChild(u.navButton("< Prev", scene.Action{Kind: scene.ActionSlidePrev}))
	u.dots = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
	)
	u.nav.AddChild(u.dots)
	u.nav.AddChild(u.navButton("Next >", scene.Action{Kind: scene.ActionSlideNext}))
	u.nav.AddChild(u.navButton("Close", scene.Action{Kind: scene.ActionSlideClose}))
	u.nav.GetWidget().Visibility = widget.Visibility_Hide
	return u.nav
}

func (u *SceneUI) navButton(label string, a scene.Action) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(newButtonImage(buttonColor)),
		widget.ButtonOpts.Text(label, &u.face, &widget.ButtonTextColor{Idle: textColor, Hover: textColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(72, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			u.dispatch(a)
		}),
	)
}

// Covers reports whether (x, y) is over visible chrome. Clicks there are
// handled by ebitenui and must not reach the scene.
func (u *SceneUI) Covers(x, y float64) bool {
	return widgetsCover(int(x), int(y), u.speedBar.GetWidget(), u.header.GetWidget(), u.nav.GetWidget())
}

func widgetsCover(x, y int, ws ...*widget.Widget) bool {
	pt := image.Pt(x, y)
	for _, w := range ws {
		if w == nil || w.Visibility != widget.Visibility_Show {
			continue
		}
		if pt.In(w.Rect) {
			return true
		}
	}
	return false
}

// SetSpeed marks the button for m as selected.
func (u *SceneUI) SetSpeed(m parallax.Multiplier) {
	if m == u.speed {
		return
	}
	for i, v := range parallax.Multipliers {
		if v == m {
			u.speed = m
			u.speedGroup.SetActive(u.speedButtons[i])
		}
	}
}

// Refresh brings the slideshow chrome in line with the scene. The indicator
// row is rebuilt only when the slide or range changed.
func (u *SceneUI) Refresh(s scene.SlideshowState) {
	if !s.Open {
		u.header.GetWidget().Visibility = widget.Visibility_Hide
		u.nav.GetWidget().Visibility = widget.Visibility_Hide
		u.shown = scene.SlideshowState{}
		return
	}
	u.header.GetWidget().Visibility = widget.Visibility_Show
	u.nav.GetWidget().Visibility = widget.Visibility_Show
	if s.Current == u.shown.Current && s.Range == u.shown.Range && u.shown.Open {
		return
	}
	u.shown = s

	u.title.Label = s.Range.DisplayTitle()
	u.position.Label = positionLabel(s)

	for _, w := range u.dotItems {
		u.dots.RemoveChild(w)
	}
	u.dotItems = u.dotItems[:0]
	for _, n := range s.Indicators {
		img := newButtonImage(buttonColor)
		if n == s.Current {
			img.Idle = imageui.NewNineSliceColor(colornames.Gold)
		}
		slide := n
		u.dotItems = append(u.dotItems, widget.NewButton(
			widget.ButtonOpts.Image(img),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(16, 16)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				u.dispatch(scene.Action{Kind: scene.ActionSlideGoTo, N: slide})
			}),
		))
	}
	if s.More > 0 {
		u.dotItems = append(u.dotItems, widget.NewText(widget.TextOpts.Text(fmt.Sprintf("+%d more", s.More), &u.face, colornames.Lightgray)))
	}
	for _, w := range u.dotItems {
		u.dots.AddChild(w)
	}
}

func positionLabel(s scene.SlideshowState) string {
	return fmt.Sprintf("Slide %d of %d (#%d)", s.Index, s.Total, s.Current)
}

// loadingLabel is drawn in place of a slide that is still decoding.
func loadingLabel(slide int, p *slideshow.Preloader) string {
	if p != nil && p.Done(slide) {
		return fmt.Sprintf("Slide %d could not be loaded", slide)
	}
	return fmt.Sprintf("Loading slide %d...", slide)
}
