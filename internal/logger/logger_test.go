package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" warn ", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"nonsense", INFO},
		{"", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("warn")
	l.EnableColors(false)
	l.SetOutput(&buf)

	l.Debug("hidden debug")
	l.Infof("hidden %s", "info")
	l.Warnf("shown %d", 1)
	l.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("messages below WARN leaked: %q", out)
	}
	if !strings.Contains(out, "shown 1") || !strings.Contains(out, "shown error") {
		t.Fatalf("expected warn and error lines, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected caller location in %q", out)
	}
}

func TestNamedSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger("debug")
	root.EnableColors(false)
	root.SetOutput(&buf)

	child := root.Named("effects").Named("gradient")
	child.Info("ready")

	if !strings.Contains(buf.String(), "<effects.gradient> ready") {
		t.Fatalf("component tag missing: %q", buf.String())
	}

	root.SetLevel("error")
	buf.Reset()
	child.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("child should follow parent level, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	l.Named("x").Warnf("%d", 1)
}
