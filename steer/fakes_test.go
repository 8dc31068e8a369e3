// steer/fakes_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"time"
)

type fakeSensors struct {
	ew, ns, hdg float32
}

func (s *fakeSensors) VelocityEW() float32  { return s.ew }
func (s *fakeSensors) VelocityNS() float32  { return s.ns }
func (s *fakeSensors) TrueHeading() float32 { return s.hdg }

type driveCall struct {
	bank float32
	rate *float32
}

type fakeBank struct {
	calls []driveCall
}

func (b *fakeBank) DriveBank(bank float32, rate *float32) {
	b.calls = append(b.calls, driveCall{bank: bank, rate: rate})
}

type fakeIndicator struct {
	value bool
	sets  []bool
}

func (i *fakeIndicator) SetGuidanceAuthority(active bool) {
	i.value = active
	i.sets = append(i.sets, active)
}

type fakeSource struct {
	cmd   SteerCommand
	calls int
}

func (s *fakeSource) SteerCommand() SteerCommand {
	s.calls++
	return s.cmd
}

func trackCommand(xtk, tae float32) SteerCommand {
	return SteerCommand{
		Valid: true,
		Mode: TrackSteer{
			Course:          90,
			DesiredTrack:    90,
			TrackRadius:     GreatCircleRadius,
			CrossTrackError: xtk,
			TrackError:      tae,
		},
	}
}

func headingCommand(hdg, err float32) SteerCommand {
	return SteerCommand{Valid: true, Mode: HeadingSteer{Heading: hdg, Error: err}}
}

// testRig wires a Director to fakes flying east at 120 knots.
type testRig struct {
	ctx       *SharedContext
	sensors   *fakeSensors
	bank      *fakeBank
	indicator *fakeIndicator
	source    *fakeSource
	d         *Director

	arms, activates, deactivates int
	now                          time.Time
}

func newTestRig(cfg DirectorConfig) *testRig {
	r := &testRig{
		ctx:       &SharedContext{MaxBank: 25, TimeScale: 1},
		sensors:   &fakeSensors{ew: 120, ns: 0, hdg: 90},
		bank:      &fakeBank{},
		indicator: &fakeIndicator{},
		source:    &fakeSource{cmd: trackCommand(0, 0)},
		now:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	r.d = NewDirector(r.ctx, r.source, Avionics{
		Sensors:   r.sensors,
		Bank:      r.bank,
		Indicator: r.indicator,
	}, cfg, nil)
	r.d.OnArm = func() { r.arms++ }
	r.d.OnActivate = func() { r.activates++ }
	r.d.OnDeactivate = func() { r.deactivates++ }
	return r
}

func (r *testRig) tick() {
	r.now = r.now.Add(time.Second)
	r.d.Update(r.now)
}
