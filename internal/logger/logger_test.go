package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestProdLoggerWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("prod", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("route", "/list").Msg("listing personas")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["level"] != "info" || entry["message"] != "listing personas" || entry["route"] != "/list" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("expected timestamp in entry: %v", entry)
	}
}

func TestStagingLoggerKeepsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("staging", &buf)

	log.Debug().Msg("visible")

	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Fatalf("expected debug entry, got %q", buf.String())
	}
}

func TestDevLoggerIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("dev", &buf)

	log.Debug().Msg("starting personas-app")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console output, got JSON: %q", out)
	}
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, ": starting personas-app") {
		t.Fatalf("unexpected console output: %q", out)
	}
}
