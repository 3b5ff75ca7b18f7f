package logging_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"switchyard/internal/logging"
)

func TestConsoleHandlerFoldsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	component := logging.NewComponentLogger(logger, "compositor")
	component.Info("frame rendered", logging.Int("drawables", 2))

	line := buf.String()
	if !strings.Contains(line, "compositor: frame rendered") {
		t.Fatalf("expected component prefix in %q", line)
	}
	if !strings.Contains(line, "drawables=2") {
		t.Fatalf("expected attribute in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component attribute should be folded into prefix: %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
