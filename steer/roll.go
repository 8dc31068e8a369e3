// steer/roll.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"time"

	"github.com/mmp/rollsteer/math"
)

const (
	Gravity              = 32.174 // ft/s^2
	FeetPerNM            = 6076.12
	KnotsToFeetPerSecond = FeetPerNM / 3600
	EarthRadiusNM        = 3440.065
	EarthRadiusFeet      = EarthRadiusNM * FeetPerNM
)

type RollSteerGains struct {
	// Degrees of bank per degree of heading error.
	HeadingGain float32
	// Degrees of bank per degree of track error, after the cross-track
	// intercept is applied.
	TrackGain float32
	// Degrees of intercept angle per nm of cross-track error.
	CrossTrackGain float32
	// Limit on the intercept angle flown to return to the path.
	MaxInterceptAngle float32
	// Time constant, in seconds, of the low-pass filter on the bank
	// command; zero disables filtering.
	SmoothingTau float32
}

func DefaultRollSteerGains() RollSteerGains {
	return RollSteerGains{
		HeadingGain:       2,
		TrackGain:         2.5,
		CrossTrackGain:    30,
		MaxInterceptAngle: 45,
		SmoothingTau:      0.5,
	}
}

// RollSteerComputer turns the current steering command and navigation
// snapshot into a bank command. The only state it carries across ticks is
// the bank filter, which Reset clears.
type RollSteerComputer struct {
	source  CommandSource
	nav     *NavigationDataProvider
	maxBank func() float32
	gains   RollSteerGains

	cmd RollCommand

	filtered     float32
	haveFiltered bool
	lastTime     time.Time
}

// NewRollSteerComputer returns a computer reading commands from source and
// navigation data from nav. maxBank is called every tick so that bank
// limits may change without rebuilding the computer.
func NewRollSteerComputer(source CommandSource, nav *NavigationDataProvider, maxBank func() float32,
	gains RollSteerGains) *RollSteerComputer {
	return &RollSteerComputer{
		source:  source,
		nav:     nav,
		maxBank: maxBank,
		gains:   gains,
		cmd:     RollCommand{BankAngle: math.NaN()},
	}
}

// Command returns the roll command computed by the last Update.
func (r *RollSteerComputer) Command() RollCommand {
	return r.cmd
}

func (r *RollSteerComputer) Reset() {
	r.filtered = 0
	r.haveFiltered = false
	r.lastTime = time.Time{}
}

func (r *RollSteerComputer) Update(simTime time.Time) {
	sc := r.source.SteerCommand()
	snap := r.nav.Snapshot()
	maxBank := r.maxBank()

	var bank float32
	valid := sc.Valid
	switch m := sc.Mode.(type) {
	case HeadingSteer:
		valid = valid && snap.HeadingValid()
		if valid {
			bank = r.headingBank(m, snap, maxBank)
		}
	case TrackSteer:
		valid = valid && snap.TrackValid()
		if valid {
			bank = r.trackBank(m, snap, maxBank)
		}
	default:
		valid = false
	}

	if !valid {
		r.cmd = RollCommand{BankAngle: math.NaN()}
		r.Reset()
		return
	}

	bank = math.Clamp(r.smooth(bank, simTime), -maxBank, maxBank)
	r.cmd = RollCommand{Valid: true, BankAngle: bank}
	SteerLog(simTime, SteerLogRoll, "%s -> bank %+.1f (max %.0f)", sc, bank, maxBank)
}

func (r *RollSteerComputer) headingBank(m HeadingSteer, snap NavigationSnapshot, maxBank float32) float32 {
	err := m.Error
	if !math.IsFinite(err) {
		err = math.HeadingSignedTurn(snap.Heading, m.Heading)
	}
	return math.Clamp(r.gains.HeadingGain*err, -maxBank, maxBank)
}

func (r *RollSteerComputer) trackBank(m TrackSteer, snap NavigationSnapshot, maxBank float32) float32 {
	// Fly an intercept angle proportional to how far off the path we
	// are; once established on it the track error is steered to zero.
	maxIntercept := r.gains.MaxInterceptAngle
	intercept := math.Clamp(m.CrossTrackError*r.gains.CrossTrackGain, -maxIntercept, maxIntercept)
	bank := r.gains.TrackGain * (m.TrackError - intercept)

	bank += curvatureBank(m.TrackRadius, snap.GroundSpeed)

	return math.Clamp(bank, -maxBank, maxBank)
}

// curvatureBank returns the bank angle for a coordinated turn along a
// path with the given great-arc radius at the given ground speed.
func curvatureBank(radius, gs float32) float32 {
	if radius == GreatCircleRadius {
		return 0
	}
	v := gs * KnotsToFeetPerSecond
	// Geodesic curvature of a small circle of angular radius |radius|,
	// in 1/ft; positive curves left.
	k := math.Cos(radius) / (math.Sin(radius) * EarthRadiusFeet)
	return -math.Degrees(math.Atan(v * v * k / Gravity))
}

func (r *RollSteerComputer) smooth(bank float32, simTime time.Time) float32 {
	if !math.IsFinite(bank) {
		r.Reset()
		return bank
	}

	dt := float32(simTime.Sub(r.lastTime).Seconds())
	if !r.haveFiltered || r.gains.SmoothingTau <= 0 || dt < 0 {
		r.filtered, r.haveFiltered = bank, true
	} else {
		alpha := 1 - math.Exp(-dt/r.gains.SmoothingTau)
		r.filtered += alpha * (bank - r.filtered)
	}
	r.lastTime = simTime
	return r.filtered
}
