package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"glitchpad/internal/logger"
	"glitchpad/internal/util"
	"glitchpad/pkg/config"
)

// ErrNoPath is returned by Save when the document was never opened from
// or saved to a file.
var ErrNoPath = errors.New("document has no file path")

// Key is an editing key the editor reacts to.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyBackspace
	KeyEnter
	KeyTab
)

var defaultView = image.Pt(10, 10)

// Editor is the text surface: a document, the view onto it and the
// renderer drawing both onto a canvas each frame.
type Editor struct {
	log   *logger.Logger
	doc   *Document
	path  string
	fonts *FontBank

	fontName  string
	fontSize  int
	textColor color.RGBA

	view       image.Point
	dragging   bool
	dragStart  image.Point
	dragOrigin image.Point

	blink      int
	background *Background
}

// New creates an editor with an empty document. A background that fails
// to load is logged and skipped.
func New(cfg config.EditorConfig, log *logger.Logger) (*Editor, error) {
	fonts, err := NewFontBank()
	if err != nil {
		return nil, err
	}
	name := cfg.Font
	if name == "" {
		name = "bold"
	}
	size := util.ClampInt(cfg.FontSize, 1, MaxFontSize)
	if _, err := fonts.Face(name, size); err != nil {
		return nil, err
	}

	e := &Editor{
		log:       log.Named("editor"),
		doc:       NewDocument(""),
		fonts:     fonts,
		fontName:  name,
		fontSize:  size,
		textColor: color.RGBA{255, 255, 255, 255},
		view:      defaultView,
	}
	if cfg.Background != "" {
		bg, err := LoadBackground(cfg.Background)
		if err != nil {
			e.log.Warnf("no background: %v", err)
		} else {
			e.SetBackground(bg)
		}
	}
	return e, nil
}

// Close releases font faces.
func (e *Editor) Close() {
	e.fonts.Close()
}

// Document returns the edited document.
func (e *Editor) Document() *Document {
	return e.doc
}

// Path is the file the document was loaded from, if any.
func (e *Editor) Path() string {
	return e.path
}

// Open replaces the document with the contents of path.
func (e *Editor) Open(path string) error {
	doc, err := LoadDocument(path)
	if err != nil {
		return err
	}
	e.doc = doc
	e.path = path
	e.log.Infof("opened %s (%d lines)", path, doc.LineCount())
	return nil
}

// Save writes the document back to its path.
func (e *Editor) Save() error {
	if e.path == "" {
		return ErrNoPath
	}
	if err := e.doc.Save(e.path); err != nil {
		return err
	}
	e.log.Infof("saved %s", e.path)
	return nil
}

// SaveAs writes the document to path and adopts it.
func (e *Editor) SaveAs(path string) error {
	e.path = path
	return e.Save()
}

// SetBackground installs bg and picks a readable text color for it. A nil
// bg restores the plain backdrop and white text.
func (e *Editor) SetBackground(bg *Background) {
	e.background = bg
	if bg == nil {
		e.textColor = color.RGBA{255, 255, 255, 255}
		return
	}
	e.textColor = bg.TextColor()
}

// TextColor is the color used for glyphs and the caret.
func (e *Editor) TextColor() color.RGBA {
	return e.textColor
}

// HandleKey applies an editing key to the document.
func (e *Editor) HandleKey(k Key) {
	switch k {
	case KeyUp:
		e.doc.MoveUp()
	case KeyDown:
		e.doc.MoveDown()
	case KeyLeft:
		e.doc.MoveLeft()
	case KeyRight:
		e.doc.MoveRight()
	case KeyBackspace:
		e.doc.Backspace()
	case KeyEnter:
		e.doc.Return()
	case KeyTab:
		e.doc.Tab()
	}
}

// HandleChar inserts a typed rune. Non-printable runes are ignored.
func (e *Editor) HandleChar(r rune) {
	if unicode.IsPrint(r) {
		e.doc.InsertRune(r)
	}
}

// Paste inserts text at the cursor.
func (e *Editor) Paste(text string) {
	e.doc.InsertText(text)
}

// FontSize is the current line height in pixels.
func (e *Editor) FontSize() int {
	return e.fontSize
}

// Zoom changes the font size by FontSizeStep per wheel notch.
func (e *Editor) Zoom(notches int) {
	size := util.ClampInt(e.fontSize+notches*FontSizeStep, MinFontSize, MaxFontSize)
	if size == e.fontSize {
		return
	}
	e.fontSize = size
	e.log.Debugf("font size %d", size)
}

// View is the canvas position of the document's top-left corner.
func (e *Editor) View() image.Point {
	return e.view
}

// ResetView scrolls back to the origin and puts the cursor at the start.
func (e *Editor) ResetView() {
	e.view = defaultView
	e.doc.SetCursor(Cursor{})
}

// BeginDrag starts panning from the pointer position p.
func (e *Editor) BeginDrag(p image.Point) {
	e.dragging = true
	e.dragStart = p
	e.dragOrigin = e.view
}

// DragTo pans the view while a drag is active.
func (e *Editor) DragTo(p image.Point) {
	if e.dragging {
		e.view = e.dragOrigin.Add(p.Sub(e.dragStart))
	}
}

// EndDrag stops panning.
func (e *Editor) EndDrag() {
	e.dragging = false
}

// Dragging reports whether a pan is in progress.
func (e *Editor) Dragging() bool {
	return e.dragging
}

// Render draws the backdrop, the visible lines and the caret onto canvas.
// With rotate set every glyph is turned by degrees about its own center.
func (e *Editor) Render(canvas *image.RGBA, degrees float64, rotate bool) error {
	face, err := e.fonts.Face(e.fontName, e.fontSize)
	if err != nil {
		return fmt.Errorf("error rendering text: %w", err)
	}

	b := canvas.Bounds()
	draw.Draw(canvas, b, image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	if e.background != nil {
		draw.Draw(canvas, b, e.background.Scaled(b.Size()), image.Point{}, draw.Over)
	}

	if !rotate {
		degrees = 0
	}
	lh := e.fontSize
	painter := newGlyphPainter(face, e.textColor, lh)
	start, end := visibleLines(e.doc.LineCount(), lh, e.view.Y, b.Dy())
	y := b.Min.Y + e.view.Y + start*lh
	for i := start; i < end; i++ {
		x := b.Min.X + e.view.X
		for _, r := range e.doc.Line(i) {
			adv := glyphAdvance(face, r, e.fontSize)
			if x+adv < b.Min.X {
				x += adv
				continue
			}
			if x > b.Max.X {
				break
			}
			painter.paint(canvas, r, x, y, adv, degrees)
			x += adv
		}
		y += lh
	}

	e.drawCaret(canvas, face)
	return nil
}

func (e *Editor) drawCaret(canvas *image.RGBA, face font.Face) {
	e.blink = (e.blink + 1) % blinkPeriod
	if e.blink >= blinkPeriod/2 {
		return
	}
	c := e.doc.Cursor()
	b := canvas.Bounds()
	x := b.Min.X + e.view.X + lineWidth(face, e.doc.Line(c.Line), c.Col, e.fontSize)
	y := b.Min.Y + e.view.Y + c.Line*e.fontSize
	r := image.Rect(x, y, x+CursorWidth, y+e.fontSize)
	draw.Draw(canvas, r, image.NewUniform(e.textColor), image.Point{}, draw.Src)
}
