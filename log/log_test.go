// log/log_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNilLogger(t *testing.T) {
	var lg *Logger
	// None of these should crash.
	lg.Debug("debug")
	lg.Debugf("debug %d", 1)
	lg.Info("info")
	lg.Infof("info %d", 1)
	if lg.With("k", "v") != nil {
		t.Errorf("With on a nil Logger should return nil")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("warn", &buf)
	lg.Info("should be dropped")
	lg.Warn("should be kept")

	s := buf.String()
	if strings.Contains(s, "should be dropped") {
		t.Errorf("info message logged at warn level")
	}
	if !strings.Contains(s, "should be kept") {
		t.Errorf("warn message missing from log output")
	}
	if !strings.Contains(s, "callstack") {
		t.Errorf("expected callstack attribute in log output")
	}
}

func TestWithAttributes(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("debug", &buf).With("scenario", "arc-left")
	lg.Debugf("tick %d", 3)

	if s := buf.String(); !strings.Contains(s, `"scenario":"arc-left"`) || !strings.Contains(s, "tick 3") {
		t.Errorf("expected scenario attribute and message in %q", s)
	}
}
