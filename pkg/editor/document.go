// Package editor holds the text document, its cursor and view, and the
// glyph renderer that draws them onto the effect canvas.
package editor

import (
	"fmt"
	"os"
	"strings"
)

// TabWidth is the number of spaces a tab key inserts.
const TabWidth = 5

// Cursor is a position in the document, counted in runes.
type Cursor struct {
	Line int
	Col  int
}

// Document is a list of lines with a single cursor. It always holds at
// least one (possibly empty) line.
type Document struct {
	lines  [][]rune
	cursor Cursor
}

// NewDocument splits text on newlines and puts the cursor at the start.
func NewDocument(text string) *Document {
	d := &Document{}
	d.SetText(text)
	return d
}

// LoadDocument reads a UTF-8 text file. CRLF line endings are normalized.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	return NewDocument(strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	if err := os.WriteFile(path, []byte(d.Text()), 0644); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	return nil
}

// SetText replaces the whole content and resets the cursor.
func (d *Document) SetText(text string) {
	parts := strings.Split(text, "\n")
	d.lines = make([][]rune, len(parts))
	for i, p := range parts {
		d.lines[i] = []rune(p)
	}
	d.cursor = Cursor{}
}

// Text joins the lines back with newlines.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns line i without copying. Callers must not modify it.
func (d *Document) Line(i int) []rune {
	return d.lines[i]
}

// Cursor returns the cursor position.
func (d *Document) Cursor() Cursor {
	return d.cursor
}

// SetCursor moves the cursor, clamping it into the document.
func (d *Document) SetCursor(c Cursor) {
	c.Line = max(0, min(c.Line, len(d.lines)-1))
	c.Col = max(0, min(c.Col, len(d.lines[c.Line])))
	d.cursor = c
}

// InsertRune inserts r at the cursor. A newline splits the line.
func (d *Document) InsertRune(r rune) {
	if r == '\n' {
		d.Return()
		return
	}
	c := &d.cursor
	line := d.lines[c.Line]
	line = append(line, 0)
	copy(line[c.Col+1:], line[c.Col:])
	line[c.Col] = r
	d.lines[c.Line] = line
	c.Col++
}

// InsertText inserts s rune by rune. Carriage returns are dropped.
func (d *Document) InsertText(s string) {
	for _, r := range s {
		if r == '\r' {
			continue
		}
		d.InsertRune(r)
	}
}

// Tab inserts TabWidth spaces.
func (d *Document) Tab() {
	for i := 0; i < TabWidth; i++ {
		d.InsertRune(' ')
	}
}

// Backspace deletes the rune before the cursor, joining with the previous
// line at column 0.
func (d *Document) Backspace() {
	c := &d.cursor
	switch {
	case c.Col > 0:
		line := d.lines[c.Line]
		d.lines[c.Line] = append(line[:c.Col-1], line[c.Col:]...)
		c.Col--
	case c.Line > 0:
		prev := d.lines[c.Line-1]
		col := len(prev)
		d.lines[c.Line-1] = append(prev, d.lines[c.Line]...)
		d.lines = append(d.lines[:c.Line], d.lines[c.Line+1:]...)
		c.Line--
		c.Col = col
	}
}

// Return splits the current line at the cursor.
func (d *Document) Return() {
	c := &d.cursor
	line := d.lines[c.Line]
	after := append([]rune(nil), line[c.Col:]...)
	d.lines[c.Line] = line[:c.Col:c.Col]

	d.lines = append(d.lines, nil)
	copy(d.lines[c.Line+2:], d.lines[c.Line+1:])
	d.lines[c.Line+1] = after
	c.Line++
	c.Col = 0
}

// MoveUp moves the cursor one line up, keeping the column when it fits.
func (d *Document) MoveUp() {
	if d.cursor.Line > 0 {
		d.cursor.Line--
	}
	d.clampCol()
}

// MoveDown moves the cursor one line down.
func (d *Document) MoveDown() {
	if d.cursor.Line < len(d.lines)-1 {
		d.cursor.Line++
	}
	d.clampCol()
}

// MoveLeft moves one rune left, wrapping to the end of the previous line.
func (d *Document) MoveLeft() {
	c := &d.cursor
	switch {
	case c.Col > 0:
		c.Col--
	case c.Line > 0:
		c.Line--
		c.Col = len(d.lines[c.Line])
	}
}

// MoveRight moves one rune right, wrapping to the start of the next line.
func (d *Document) MoveRight() {
	c := &d.cursor
	switch {
	case c.Col < len(d.lines[c.Line]):
		c.Col++
	case c.Line < len(d.lines)-1:
		c.Line++
		c.Col = 0
	}
}

func (d *Document) clampCol() {
	d.cursor.Col = min(d.cursor.Col, len(d.lines[d.cursor.Line]))
}
