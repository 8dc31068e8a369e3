// sim/trace_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmp/rollsteer/math"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

func TestTraceRoundTrip(t *testing.T) {
	s := legScenario()
	s.Duration = 30
	sim := runScenario(t, s)

	var buf bytes.Buffer
	if err := WriteTrace(&buf, &sim.Trace); err != nil {
		t.Fatalf("WriteTrace: %v", err)
	}

	tr, err := ReadTrace(&buf)
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if tr.Scenario != "leg" || len(tr.Frames) != len(sim.Trace.Frames) {
		t.Fatalf("got scenario %q with %d frames, expected %q with %d", tr.Scenario, len(tr.Frames),
			"leg", len(sim.Trace.Frames))
	}
	if tr.CaptureTime == nil || *tr.CaptureTime != *sim.Trace.CaptureTime {
		t.Errorf("capture time %v, expected %v", tr.CaptureTime, *sim.Trace.CaptureTime)
	}

	last, orig := tr.Frames[len(tr.Frames)-1], sim.Trace.Frames[len(sim.Trace.Frames)-1]
	if !last.Time.Equal(orig.Time) {
		t.Errorf("time %s, expected %s", last.Time, orig.Time)
	}
	if last.Aircraft != orig.Aircraft || last.State != orig.State || last.CommandedBank != orig.CommandedBank {
		t.Errorf("last frame %+v, expected %+v", last, orig)
	}
	if tr.Summarize() != sim.Trace.Summarize() {
		t.Errorf("summaries differ: %s vs %s", tr.Summarize(), sim.Trace.Summarize())
	}
}

func TestTraceFile(t *testing.T) {
	s := legScenario()
	s.Duration = 5
	s.Path = PathConfig{Type: "heading", Heading: 90}
	sim := runScenario(t, s)

	fn := filepath.Join(t.TempDir(), "heading.msgpack.zst")
	if err := WriteTraceFile(fn, &sim.Trace); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tr, err := ReadTrace(f)
	if err != nil {
		t.Fatal(err)
	}
	// Heading mode has no cross-track error.
	if !math.IsNaN(tr.Frames[0].CrossTrackError) {
		t.Errorf("cross-track error %f in heading mode", tr.Frames[0].CrossTrackError)
	}
}

func TestWriteEmptyTrace(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrace(&buf, &Trace{Scenario: "empty"}); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("expected ErrEmptyTrace, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written for an empty trace", buf.Len())
	}

	fn := filepath.Join(t.TempDir(), "empty.msgpack.zst")
	if err := WriteTraceFile(fn, &Trace{Scenario: "empty"}); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("expected ErrEmptyTrace, got %v", err)
	}
	if _, err := os.Stat(fn); !os.IsNotExist(err) {
		t.Errorf("empty trace file was created: %v", err)
	}
}

func TestReadEmptyTrace(t *testing.T) {
	// Encoded directly, since WriteTrace refuses to write it.
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := msgpack.NewEncoder(zw).Encode(&Trace{Scenario: "empty"}); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadTrace(&buf); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("expected ErrEmptyTrace, got %v", err)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := (&Trace{}).Summarize()
	if sum.Frames != 0 || sum.FinalState != "disengaged" || sum.CaptureTime != -1 {
		t.Errorf("unexpected summary %+v", sum)
	}
}
