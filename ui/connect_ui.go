package ui

import (
	"bytes"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ConnectChoice is what the player picked on the menu.
type ConnectChoice struct {
	Address string
	Session string
	Side    string // "" lets the server pick
	Level   string
}

// ConnectUI is the start menu: play both sides locally or join a server.
type ConnectUI struct {
	UI *ebitenui.UI

	OnOffline func(choice ConnectChoice)
	OnOnline  func(choice ConnectChoice)

	defaults ConnectChoice
	sides    []string
	levels   []string
	sideIdx  int
	levelIdx int

	addressInput *widget.TextInput
	sessionInput *widget.TextInput
	sideBtn      *widget.Button
	levelBtn     *widget.Button
	onlineBtn    *widget.Button
	statusLabel  *widget.Label

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewConnectUI builds the menu. defaults fill empty fields and preselect the
// side and level; sides and levels are the cycle orders of those buttons.
func NewConnectUI(defaults ConnectChoice, sides, levels []string, onOffline, onOnline func(ConnectChoice)) *ConnectUI {
	ui := &ConnectUI{
		OnOffline: onOffline,
		OnOnline:  onOnline,
		defaults:  defaults,
		sides:     sides,
		levels:    levels,
		sideIdx:   indexOf(sides, defaults.Side),
		levelIdx:  indexOf(levels, defaults.Level),
	}
	ui.loadFonts()
	ui.buildUI()
	return ui
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}

func (ui *ConnectUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 18}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 10}
}

func (ui *ConnectUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	contentContainer.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("COMPOSITE", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	))

	ui.levelBtn = ui.cycleButton(ui.levelLabel(), func() {
		ui.levelIdx = (ui.levelIdx + 1) % max(len(ui.levels), 1)
		ui.levelBtn.Text().Label = ui.levelLabel()
	})
	contentContainer.AddChild(ui.row("Level:    ", ui.levelBtn))

	contentContainer.AddChild(ui.actionButton("Play offline (both sides)", color.RGBA{60, 60, 120, 255}, func() {
		if ui.OnOffline != nil {
			ui.OnOffline(ui.Choice())
		}
	}))

	contentContainer.AddChild(ui.buildOnlinePanel())

	ui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 200, 100, 255},
		}),
	)
	contentContainer.AddChild(ui.statusLabel)

	rootContainer.AddChild(contentContainer)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *ConnectUI) buildOnlinePanel() *widget.Container {
	padding := widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{30, 30, 45, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	ui.addressInput = ui.textInput(ui.defaults.Address, 160)
	panel.AddChild(ui.row("Address:", ui.addressInput))

	sessionHint := ui.defaults.Session
	if sessionHint == "" {
		sessionHint = "any open session"
	}
	ui.sessionInput = ui.textInput(sessionHint, 120)
	panel.AddChild(ui.row("Session: ", ui.sessionInput))

	ui.sideBtn = ui.cycleButton(ui.sideLabel(), func() {
		ui.sideIdx = (ui.sideIdx + 1) % max(len(ui.sides), 1)
		ui.sideBtn.Text().Label = ui.sideLabel()
	})
	panel.AddChild(ui.row("Side:     ", ui.sideBtn))

	ui.onlineBtn = ui.actionButton("Join online", color.RGBA{40, 100, 40, 255}, func() {
		if ui.OnOnline != nil {
			ui.OnOnline(ui.Choice())
		}
	})
	panel.AddChild(ui.onlineBtn)

	return panel
}

func (ui *ConnectUI) row(label string, child widget.PreferredSizeLocateableWidget) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(label, &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))
	row.AddChild(child)
	return row
}

func (ui *ConnectUI) textInput(placeholder string, width int) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&ui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
}

func (ui *ConnectUI) cycleButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 22)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
			Hover:   image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
			Pressed: image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
		}),
		widget.ButtonOpts.Text(label, &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{200, 220, 255, 255},
			Pressed: color.RGBA{150, 170, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (ui *ConnectUI) actionButton(label string, base color.RGBA, onClick func()) *widget.Button {
	hover := color.RGBA{lighten(base.R, 20), lighten(base.G, 40), lighten(base.B, 20), 255}
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 26)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(base),
			Hover:    image.NewNineSliceColor(hover),
			Pressed:  image.NewNineSliceColor(color.RGBA{base.R / 2, base.G / 2, base.B / 2, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 50, 40, 255}),
		}),
		widget.ButtonOpts.Text(label, &ui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{200, 255, 200, 255},
			Pressed:  color.RGBA{150, 200, 150, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func lighten(c uint8, by int) uint8 {
	return uint8(min(int(c)+by, 255))
}

func (ui *ConnectUI) sideLabel() string {
	if len(ui.sides) == 0 || ui.sides[ui.sideIdx] == "" {
		return "Any"
	}
	return ui.sides[ui.sideIdx]
}

func (ui *ConnectUI) levelLabel() string {
	if len(ui.levels) == 0 {
		return ui.defaults.Level
	}
	return strings.ReplaceAll(ui.levels[ui.levelIdx], "_", " ")
}

// Choice reads the form; empty fields fall back to the defaults.
func (ui *ConnectUI) Choice() ConnectChoice {
	choice := ui.defaults
	if addr := strings.TrimSpace(ui.addressInput.GetText()); addr != "" {
		choice.Address = addr
	}
	if code := strings.TrimSpace(ui.sessionInput.GetText()); code != "" {
		choice.Session = strings.ToUpper(code)
	}
	if len(ui.sides) > 0 {
		choice.Side = ui.sides[ui.sideIdx]
	}
	if len(ui.levels) > 0 {
		choice.Level = ui.levels[ui.levelIdx]
	}
	return choice
}

func (ui *ConnectUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *ConnectUI) SetConnecting(connecting bool) {
	if ui.onlineBtn != nil {
		ui.onlineBtn.GetWidget().Disabled = connecting
	}
}

func (ui *ConnectUI) Update() {
	ui.UI.Update()
}
