package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{"DBG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"Warning", WarnLevel},
		{"error", ErrorLevel},
		{"err", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithFormat("warn", "text", &buf)

	log.Debug("hidden debug")
	log.Infof("hidden %s", "info")
	log.Warnf("shown %s", "warn")
	log.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestJSONFormatWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithFormat("info", "json", &buf).With("visitor", "v-1")

	log.Info("page rendered")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "page rendered" {
		t.Errorf("msg = %v, want %q", entry["msg"], "page rendered")
	}
	if entry["visitor"] != "v-1" {
		t.Errorf("visitor = %v, want %q", entry["visitor"], "v-1")
	}
}
