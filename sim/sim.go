// sim/sim.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmp/rollsteer/log"
	"github.com/mmp/rollsteer/math"
	"github.com/mmp/rollsteer/steer"
)

// Sim flies an Aircraft under the control of a steer.Director for a
// Scenario. Like the director, it is single-threaded; run independent
// Sims concurrently if needed.
type Sim struct {
	Scenario    Scenario
	Aircraft    *Aircraft
	Annunciator *Annunciator
	Context     *steer.SharedContext
	Director    *steer.Director
	Source      steer.CommandSource

	SimTime   time.Time
	StartTime time.Time
	Trace     Trace

	lg *log.Logger
}

// NewSim returns a Sim for the given scenario, which should already have
// been validated. lg may be nil.
func NewSim(s *Scenario, lg *log.Logger) (*Sim, error) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sim := &Sim{
		Scenario: *s,
		Aircraft: &Aircraft{
			State: AircraftState{
				Position: s.Aircraft.Position,
				Heading:  math.NormalizeHeading(s.Aircraft.Heading),
				TAS:      s.Aircraft.TAS,
				Wind:     s.Aircraft.Wind,
			},
			DefaultRollRate: s.Aircraft.RollRate,
		},
		Annunciator: &Annunciator{},
		Context:     &steer.SharedContext{MaxBank: s.MaxBank, TimeScale: s.SimRate, Source: steer.NavSourceGPS},
		SimTime:     start,
		StartTime:   start,
		Trace:       Trace{Scenario: s.Name, SimRate: s.SimRate},
		lg:          lg.With(slog.String("scenario", s.Name)),
	}

	switch s.Path.Type {
	case "heading":
		sim.Source = &HeadingTarget{Aircraft: sim.Aircraft, Heading: s.Path.Heading}
	case "leg":
		sim.Source = &Leg{Aircraft: sim.Aircraft, From: s.Path.From, To: s.Path.To}
	case "arc":
		sim.Source = &Arc{
			Aircraft:  sim.Aircraft,
			Center:    s.Path.Center,
			Radius:    s.Path.Radius,
			Clockwise: s.Path.Turn == "right",
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPathType, s.Path.Type)
	}

	if o := s.Outage; o != nil {
		sim.Source = &Outage{
			Source: sim.Source,
			Start:  start.Add(secondsToDuration(o.Start)),
			End:    start.Add(secondsToDuration(o.Start + o.Duration)),
			Now:    func() time.Time { return sim.SimTime },
		}
	}

	cfg := steer.DirectorConfig{}
	if s.BankRate > 0 {
		cfg.BankRate = steer.ConstantRate(s.BankRate)
	}
	if s.Guards.RequireGPS {
		cfg.CanArm = steer.All(steer.CommandValid, steer.RequireNavSource(steer.NavSourceGPS))
	}
	if s.Guards.CaptureXTK > 0 || s.Guards.CaptureTrackError > 0 {
		xtk, tae := s.Guards.CaptureXTK, s.Guards.CaptureTrackError
		if xtk == 0 {
			xtk = math.Inf(1)
		}
		if tae == 0 {
			tae = 180
		}
		cfg.CanActivate = steer.All(steer.DefaultPolicy().CanActivate, steer.NoTransfer,
			steer.CaptureWithin(xtk, tae))
	}

	sim.Director = steer.NewDirector(sim.Context, sim.Source, steer.Avionics{
		Sensors:   sim.Aircraft,
		Bank:      sim.Aircraft,
		Indicator: sim.Annunciator,
	}, cfg, sim.lg)

	// The pilot levels the wings when the autopilot lets go.
	sim.Director.OnDeactivate = func() {
		sim.Aircraft.LevelWings()
		sim.Trace.Disengagements++
	}
	sim.Director.OnActivate = func() {
		if sim.Trace.CaptureTime == nil {
			d := float32(sim.SimTime.Sub(sim.StartTime).Seconds())
			sim.Trace.CaptureTime = &d
		}
	}

	return sim, nil
}

func secondsToDuration(s float32) time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// Step advances the sim by one tick: the aircraft moves, then the
// director runs with the new sim time.
func (s *Sim) Step() {
	dt := s.Scenario.TickSeconds
	rate := s.Context.SimRate()

	s.Aircraft.Update(dt, rate)
	s.SimTime = s.SimTime.Add(secondsToDuration(dt * rate))

	if s.Scenario.Rearm && s.Director.State() == steer.Disengaged {
		s.Director.Arm()
	}
	s.Director.Update(s.SimTime)

	s.Trace.Frames = append(s.Trace.Frames, s.frame())
}

func (s *Sim) frame() Frame {
	f := Frame{
		Time:              s.SimTime,
		Aircraft:          s.Aircraft.State,
		State:             s.Director.State(),
		GuidanceAuthority: s.Annunciator.GuidanceAuthority,
		CrossTrackError:   math.NaN(),
	}
	cmd := s.Source.SteerCommand()
	f.CommandValid = cmd.Valid
	if ts, ok := cmd.Track(); ok {
		f.CrossTrackError = ts.CrossTrackError
		f.Error = ts.TrackError
	} else if hs, ok := cmd.Heading(); ok {
		f.Error = hs.Error
	}
	if rc := s.Director.Roll().Command(); rc.Valid {
		f.RollValid = true
		f.CommandedBank = rc.BankAngle
	}
	return f
}

// Run arms the director and steps until the scenario's duration has
// elapsed, returning the recorded trace.
func (s *Sim) Run() *Trace {
	s.lg.Info("starting run", slog.Float64("sim_rate", float64(s.Context.SimRate())))
	s.Director.Arm()

	end := s.StartTime.Add(secondsToDuration(s.Scenario.Duration))
	for s.SimTime.Before(end) {
		s.Step()
	}

	sum := s.Trace.Summarize()
	s.lg.Info("finished run", slog.Any("summary", sum))
	return &s.Trace
}
