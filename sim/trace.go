// sim/trace.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mmp/rollsteer/math"
	"github.com/mmp/rollsteer/steer"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame records the state after one tick.
type Frame struct {
	Time              time.Time
	Aircraft          AircraftState
	State             steer.State
	GuidanceAuthority bool
	CommandValid      bool
	// CrossTrackError is NaN for heading-mode commands.
	CrossTrackError float32
	// Error is the track or heading error, depending on the mode.
	Error         float32
	RollValid     bool
	CommandedBank float32
}

type Trace struct {
	Scenario       string
	SimRate        float32
	Frames         []Frame
	Disengagements int
	// Seconds into the run when the director first went active; nil if
	// it never did.
	CaptureTime *float32
}

type Summary struct {
	Frames         int
	FinalState     string
	CaptureTime    float32 // -1 if never captured
	Disengagements int
	// Largest |cross-track error| and |track/heading error| while active.
	MaxActiveXTK   float32
	MaxActiveError float32
	FinalXTK       float32
	FinalError     float32
}

func (t *Trace) Summarize() Summary {
	s := Summary{
		Frames:         len(t.Frames),
		FinalState:     steer.Disengaged.String(),
		CaptureTime:    -1,
		Disengagements: t.Disengagements,
		FinalXTK:       math.NaN(),
		FinalError:     math.NaN(),
	}
	if t.CaptureTime != nil {
		s.CaptureTime = *t.CaptureTime
	}

	for _, f := range t.Frames {
		if f.State != steer.Active {
			continue
		}
		if math.IsFinite(f.CrossTrackError) {
			s.MaxActiveXTK = max(s.MaxActiveXTK, math.Abs(f.CrossTrackError))
		}
		if math.IsFinite(f.Error) {
			s.MaxActiveError = max(s.MaxActiveError, math.Abs(f.Error))
		}
	}
	if n := len(t.Frames); n > 0 {
		last := t.Frames[n-1]
		s.FinalState = last.State.String()
		s.FinalXTK = last.CrossTrackError
		s.FinalError = last.Error
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d frames, final %s, capture %.1fs, %d disengagements, final xtk %.3fnm err %.1f",
		s.Frames, s.FinalState, s.CaptureTime, s.Disengagements, s.FinalXTK, s.FinalError)
}

// WriteTrace writes the trace to w as zstd-compressed msgpack. A trace
// with no frames gives ErrEmptyTrace and nothing is written.
func WriteTrace(w io.Writer, t *Trace) error {
	if len(t.Frames) == 0 {
		return ErrEmptyTrace
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(t); err != nil {
		zw.Close()
		return fmt.Errorf("msgpack encode: %w", err)
	}
	return zw.Close()
}

func ReadTrace(r io.Reader) (*Trace, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var t Trace
	if err := msgpack.NewDecoder(zr).Decode(&t); err != nil {
		return nil, fmt.Errorf("msgpack decode: %w", err)
	}
	if len(t.Frames) == 0 {
		return nil, ErrEmptyTrace
	}
	return &t, nil
}

// WriteTraceFile writes the trace to the named file; by convention it
// should have a .msgpack.zst suffix.
func WriteTraceFile(fn string, t *Trace) error {
	if len(t.Frames) == 0 {
		return ErrEmptyTrace
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := WriteTrace(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
