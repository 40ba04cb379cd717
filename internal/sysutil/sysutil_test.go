package sysutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogLevel_AllVariants(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"  DeBuG  ", zerolog.DebugLevel}, // case + trim
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel}, // empty -> info
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel}, // alias
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel}, // default
	}

	for _, tc := range cases {
		SetLogLevel(tc.in)
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Fatalf("SetLogLevel(%q) -> %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewLogger_JSONToStdout(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	var buf bytes.Buffer
	l, closer := NewLogger(LogOptions{Level: "warn", Service: "svc", Stdout: &buf})
	defer closer.Close()

	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line at warn level, got %d: %q", len(lines), buf.String())
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if m["message"] != "kept" || m["service"] != "svc" || m["level"] != "warn" || m["time"] == nil {
		t.Fatalf("unexpected line: %v", m)
	}
}

func TestNewLogger_Pretty(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	var buf bytes.Buffer
	l, closer := NewLogger(LogOptions{Level: "info", Pretty: true, Stdout: &buf})
	defer closer.Close()

	l.Info().Msg("hello console")
	out := buf.String()
	if !strings.Contains(out, "hello console") || strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}

func TestNewLogger_FileSink(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	path := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	l, closer := NewLogger(LogOptions{Level: "info", File: path, Stdout: &buf})

	l.Info().Str("k", "v").Msg("to both")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"to both"`) {
		t.Fatalf("file missing line: %q", data)
	}
	if !strings.Contains(buf.String(), "to both") {
		t.Fatalf("stdout missing line: %q", buf.String())
	}
}
