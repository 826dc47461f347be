package display

import (
	"image/color"
	"strings"
	"sync"
	"sync/atomic"

	"kiosk/internal/core/model"
	"kiosk/internal/core/refresh"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	DefaultTitle       = "The Pi Academy Kiosk"
	DefaultPlaceholder = "Initializing Time..."
	DefaultTextSize    = float32(32)
)

// DefaultBackground is shown until the first tick renders.
var DefaultBackground = color.NRGBA{R: 0, G: 0, B: 255, A: 255}

var foreground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Config defines the kiosk window visuals.
type Config struct {
	Title       string
	Placeholder string
	TextSize    float32
	Fullscreen  bool
}

// Window is the full-screen presentation surface.
type Window struct {
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	lines      *fyne.Container

	mu       sync.Mutex
	text     string
	closed   atomic.Bool
	onClosed func()
}

// New creates the kiosk window showing the placeholder text.
func New(app fyne.App, config Config) *Window {
	if config.Title == "" {
		config.Title = DefaultTitle
	}
	if config.Placeholder == "" {
		config.Placeholder = DefaultPlaceholder
	}
	if config.TextSize <= 0 {
		config.TextSize = DefaultTextSize
	}

	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(DefaultBackground)
	lines := container.New(&centeredLinesLayout{lineHeight: config.TextSize * 1.25})
	window.SetContent(container.NewStack(background, lines))

	kiosk := &Window{
		window:     window,
		config:     config,
		background: background,
		lines:      lines,
	}
	window.SetOnClosed(func() {
		kiosk.closed.Store(true)
		kiosk.mu.Lock()
		handler := kiosk.onClosed
		kiosk.mu.Unlock()
		if handler != nil {
			handler()
		}
	})

	kiosk.setTextUnsafe(config.Placeholder)
	kiosk.applyWindowMode()
	return kiosk
}

// Render pushes a tick to the screen. The label and the window share one
// background rectangle so their colors cannot diverge.
func (kiosk *Window) Render(state model.DisplayState) error {
	if kiosk.closed.Load() {
		return refresh.ErrSurfaceUnavailable
	}
	fyne.Do(func() {
		if kiosk.closed.Load() {
			return
		}
		kiosk.setTextUnsafe(state.Text)
		kiosk.setBackgroundUnsafe(state.Color.NRGBA())
	})
	return nil
}

// SetOnClosed registers a handler run after the window has been closed.
func (kiosk *Window) SetOnClosed(handler func()) {
	kiosk.mu.Lock()
	defer kiosk.mu.Unlock()
	kiosk.onClosed = handler
}

// ShowAndRun shows the window and runs the application event loop.
func (kiosk *Window) ShowAndRun() {
	kiosk.window.ShowAndRun()
}

// Close destroys the window. Later renders report ErrSurfaceUnavailable.
func (kiosk *Window) Close() {
	kiosk.window.Close()
}

// Text returns the text currently on screen.
func (kiosk *Window) Text() string {
	kiosk.mu.Lock()
	defer kiosk.mu.Unlock()
	return kiosk.text
}

// Background returns the current window background color.
func (kiosk *Window) Background() color.Color {
	return kiosk.background.FillColor
}

// Lines returns the rendered text objects, one per line.
func (kiosk *Window) Lines() []*canvas.Text {
	texts := make([]*canvas.Text, 0, len(kiosk.lines.Objects))
	for _, object := range kiosk.lines.Objects {
		if text, ok := object.(*canvas.Text); ok {
			texts = append(texts, text)
		}
	}
	return texts
}

// Canvas exposes the window canvas.
func (kiosk *Window) Canvas() fyne.Canvas {
	return kiosk.window.Canvas()
}

func (kiosk *Window) setTextUnsafe(text string) {
	kiosk.mu.Lock()
	kiosk.text = text
	kiosk.mu.Unlock()

	rows := strings.Split(text, "\n")
	if len(rows) != len(kiosk.lines.Objects) {
		objects := make([]fyne.CanvasObject, len(rows))
		for i := range rows {
			objects[i] = kiosk.newLine()
		}
		kiosk.lines.Objects = objects
	}
	for i, row := range rows {
		line := kiosk.lines.Objects[i].(*canvas.Text)
		line.Text = row
		line.Refresh()
	}
	kiosk.lines.Refresh()
}

func (kiosk *Window) setBackgroundUnsafe(fill color.Color) {
	kiosk.background.FillColor = fill
	canvas.Refresh(kiosk.background)
}

func (kiosk *Window) newLine() *canvas.Text {
	line := canvas.NewText("", foreground)
	line.Alignment = fyne.TextAlignCenter
	line.TextSize = kiosk.config.TextSize
	return line
}

func (kiosk *Window) applyWindowMode() {
	kiosk.window.SetFullScreen(kiosk.config.Fullscreen)
	if !kiosk.config.Fullscreen {
		kiosk.window.Resize(fyne.NewSize(defaultWindowWidth, defaultWindowHeight))
		kiosk.window.CenterOnScreen()
	}
}
