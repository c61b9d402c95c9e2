package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDocumentEditing(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     Cursor
		edit       func(d *Document)
		wantText   string
		wantCursor Cursor
	}{
		{
			name:       "insert in middle",
			text:       "helo",
			cursor:     Cursor{0, 3},
			edit:       func(d *Document) { d.InsertRune('l') },
			wantText:   "hello",
			wantCursor: Cursor{0, 4},
		},
		{
			name:       "insert newline splits",
			text:       "ab",
			cursor:     Cursor{0, 1},
			edit:       func(d *Document) { d.InsertRune('\n') },
			wantText:   "a\nb",
			wantCursor: Cursor{1, 0},
		},
		{
			name:       "backspace in line",
			text:       "abc",
			cursor:     Cursor{0, 2},
			edit:       func(d *Document) { d.Backspace() },
			wantText:   "ac",
			wantCursor: Cursor{0, 1},
		},
		{
			name:       "backspace joins lines",
			text:       "ab\ncd",
			cursor:     Cursor{1, 0},
			edit:       func(d *Document) { d.Backspace() },
			wantText:   "abcd",
			wantCursor: Cursor{0, 2},
		},
		{
			name:       "backspace at start is a no-op",
			text:       "ab",
			cursor:     Cursor{0, 0},
			edit:       func(d *Document) { d.Backspace() },
			wantText:   "ab",
			wantCursor: Cursor{0, 0},
		},
		{
			name:       "return at end of line",
			text:       "ab\ncd",
			cursor:     Cursor{0, 2},
			edit:       func(d *Document) { d.Return() },
			wantText:   "ab\n\ncd",
			wantCursor: Cursor{1, 0},
		},
		{
			name:       "tab inserts five spaces",
			text:       "x",
			cursor:     Cursor{0, 0},
			edit:       func(d *Document) { d.Tab() },
			wantText:   "     x",
			wantCursor: Cursor{0, 5},
		},
		{
			name:       "insert text with CRLF",
			text:       "",
			cursor:     Cursor{},
			edit:       func(d *Document) { d.InsertText("é1\r\n2") },
			wantText:   "é1\n2",
			wantCursor: Cursor{1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(tt.text)
			d.SetCursor(tt.cursor)
			tt.edit(d)
			if got := d.Text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if got := d.Cursor(); got != tt.wantCursor {
				t.Errorf("cursor = %+v, want %+v", got, tt.wantCursor)
			}
		})
	}
}

func TestReturnThenBackspaceRestores(t *testing.T) {
	d := NewDocument("first\nsecond line\nthird")
	d.SetCursor(Cursor{1, 6})
	d.Return()
	d.InsertText("xy")
	d.Backspace()
	d.Backspace()
	d.Backspace()
	if got := d.Text(); got != "first\nsecond line\nthird" {
		t.Fatalf("text = %q", got)
	}
	if got := d.Cursor(); got != (Cursor{1, 6}) {
		t.Fatalf("cursor = %+v", got)
	}
}

func TestCursorMovement(t *testing.T) {
	d := NewDocument("abcd\nx\nlonger")
	d.SetCursor(Cursor{0, 4})

	d.MoveDown()
	if got := d.Cursor(); got != (Cursor{1, 1}) {
		t.Fatalf("down onto short line: %+v", got)
	}
	d.MoveRight()
	if got := d.Cursor(); got != (Cursor{2, 0}) {
		t.Fatalf("right at end of line should wrap: %+v", got)
	}
	d.MoveLeft()
	if got := d.Cursor(); got != (Cursor{1, 1}) {
		t.Fatalf("left at start should wrap back: %+v", got)
	}
	d.MoveUp()
	d.MoveUp()
	if got := d.Cursor(); got != (Cursor{0, 1}) {
		t.Fatalf("up clamps at first line: %+v", got)
	}
	d.SetCursor(Cursor{2, 6})
	d.MoveDown()
	d.MoveRight()
	if got := d.Cursor(); got != (Cursor{2, 6}) {
		t.Fatalf("movement past the end: %+v", got)
	}
	d.SetCursor(Cursor{-3, 99})
	if got := d.Cursor(); got != (Cursor{0, 4}) {
		t.Fatalf("SetCursor did not clamp: %+v", got)
	}
}

func TestEmptyDocumentHasOneLine(t *testing.T) {
	d := NewDocument("")
	if d.LineCount() != 1 {
		t.Fatalf("LineCount() = %d", d.LineCount())
	}
	d.MoveLeft()
	d.MoveUp()
	d.Backspace()
	if d.Text() != "" || d.Cursor() != (Cursor{}) {
		t.Fatalf("edits on empty document changed it: %q %+v", d.Text(), d.Cursor())
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if d.LineCount() != 2 || string(d.Line(1)) != "two" {
		t.Fatalf("unexpected lines: %q", d.Text())
	}

	d.SetCursor(Cursor{1, 3})
	d.InsertText("!")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "one\ntwo!" {
		t.Fatalf("saved %q", data)
	}

	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
