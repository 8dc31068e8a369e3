// sim/scenario.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"io"
	"os"

	"github.com/mmp/rollsteer/util"
)

// Scenario describes a closed-loop run of the director. It is loaded
// from JSON.
type Scenario struct {
	Name        string  `json:"name"`
	Duration    float32 `json:"duration"`     // seconds of sim time
	TickSeconds float32 `json:"tick_seconds"` // wall-clock seconds per tick
	SimRate     float32 `json:"sim_rate,omitempty"`
	MaxBank     float32 `json:"max_bank"`
	// BankRate is the director's roll rate limit in degrees per second;
	// zero leaves it to the aircraft's default roll rate.
	BankRate float32 `json:"bank_rate,omitempty"`
	// Rearm has the pilot re-arm the director whenever it disengages.
	Rearm bool `json:"rearm,omitempty"`

	Aircraft AircraftConfig `json:"aircraft"`
	Path     PathConfig     `json:"path"`
	Guards   GuardConfig    `json:"guards"`
	Outage   *OutageConfig  `json:"outage,omitempty"`
}

type AircraftConfig struct {
	Position [2]float32 `json:"position"`
	Heading  float32    `json:"heading"`
	TAS      float32    `json:"tas"`
	Wind     [2]float32 `json:"wind"`
	RollRate float32    `json:"roll_rate"`
}

type PathConfig struct {
	Type string `json:"type"` // "heading", "leg", or "arc"

	Heading float32 `json:"heading,omitempty"`

	From [2]float32 `json:"from,omitempty"`
	To   [2]float32 `json:"to,omitempty"`

	Center [2]float32 `json:"center,omitempty"`
	Radius float32    `json:"radius,omitempty"`
	Turn   string     `json:"turn,omitempty"` // "left" or "right"
}

type GuardConfig struct {
	RequireGPS bool `json:"require_gps,omitempty"`
	// If non-zero, the director stays armed until within this many nm
	// of the path and CaptureTrackError degrees of its track.
	CaptureXTK        float32 `json:"capture_xtk,omitempty"`
	CaptureTrackError float32 `json:"capture_track_error,omitempty"`
}

// OutageConfig makes the steering command invalid for Duration seconds
// starting Start seconds into the run.
type OutageConfig struct {
	Start    float32 `json:"start"`
	Duration float32 `json:"duration"`
}

// LoadScenario reads a JSON scenario from r, validates it, and fills in
// defaults. All errors returned wrap ErrInvalidScenario.
func LoadScenario(r io.Reader) (*Scenario, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := util.DecodeJSONStrict(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	var e util.ErrorLogger
	for _, dup := range util.FindDuplicateJSONKeys(b) {
		if dup.Path == "" {
			e.ErrorString("duplicate key %q", dup.Key)
		} else {
			e.ErrorString("duplicate key %q in %q", dup.Key, dup.Path)
		}
	}
	s.Validate(&e)
	if err := e.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return &s, nil
}

func LoadScenarioFile(fn string) (*Scenario, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := LoadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return s, nil
}

// Validate checks the scenario and fills in defaults for optional values.
func (s *Scenario) Validate(e *util.ErrorLogger) {
	e.Push("Scenario " + s.Name)
	defer e.Pop()

	if s.Name == "" {
		e.ErrorString("\"name\" must be specified")
	}
	if s.Duration <= 0 {
		e.ErrorString("\"duration\" must be positive")
	}
	if s.TickSeconds <= 0 {
		e.ErrorString("\"tick_seconds\" must be positive")
	}
	if s.SimRate == 0 {
		s.SimRate = 1
	} else if s.SimRate < 0 {
		e.ErrorString("\"sim_rate\" cannot be negative")
	}
	if s.MaxBank <= 0 || s.MaxBank > 60 {
		e.ErrorString("\"max_bank\" %.1f must be in (0, 60]", s.MaxBank)
	}
	if s.BankRate < 0 {
		e.ErrorString("\"bank_rate\" cannot be negative")
	}

	e.Push("aircraft")
	if s.Aircraft.TAS <= 0 {
		e.ErrorString("\"tas\" must be positive")
	}
	if s.Aircraft.RollRate <= 0 {
		e.ErrorString("\"roll_rate\" must be positive")
	}
	e.Pop()

	e.Push("path")
	switch s.Path.Type {
	case "heading":
	case "leg":
		if s.Path.From == s.Path.To {
			e.ErrorString("\"from\" and \"to\" must differ")
		}
	case "arc":
		if s.Path.Radius <= 0 {
			e.ErrorString("\"radius\" must be positive")
		}
		if s.Path.Turn != "left" && s.Path.Turn != "right" {
			e.ErrorString("\"turn\" must be \"left\" or \"right\"")
		}
	default:
		e.Error(fmt.Errorf("%w %q", ErrUnknownPathType, s.Path.Type))
	}
	e.Pop()

	if s.Guards.CaptureXTK < 0 || s.Guards.CaptureTrackError < 0 {
		e.Push("guards")
		e.ErrorString("capture limits cannot be negative")
		e.Pop()
	}

	if o := s.Outage; o != nil {
		e.Push("outage")
		if o.Start < 0 || o.Duration <= 0 {
			e.ErrorString("\"start\" must be non-negative and \"duration\" positive")
		}
		e.Pop()
	}
}
