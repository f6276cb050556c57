package applog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/outpost-tools/fac-resolve/internal/applog"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := applog.New(&buf, applog.LevelWarn)

	l.Infof("should not appear")
	l.Warnf("should appear: %d", 42)

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("info-level message leaked into warn-level output: %q", out)
	}
	if !strings.Contains(out, "should appear: 42") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("output missing level tag: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := applog.New(&buf, applog.LevelError)
	l.Warnf("suppressed")
	l.SetLevel(applog.LevelWarn)
	l.Warnf("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("message logged before SetLevel took effect: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("message missing after SetLevel: %q", out)
	}
}
