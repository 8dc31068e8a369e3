// sim/aircraft.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/mmp/rollsteer/math"
	"github.com/mmp/rollsteer/steer"
)

// AircraftState is the kinematic state of a simulated aircraft on a flat
// earth. Positions are in nm east and north of an arbitrary origin.
type AircraftState struct {
	Position [2]float32
	Heading  float32 // true
	TAS      float32 // knots
	Bank     float32 // degrees, positive right
	// Wind is the velocity of the air mass in knots (east, north); i.e.,
	// the direction it's blowing toward.
	Wind [2]float32
}

// Aircraft is a point-mass aircraft flying coordinated turns. It serves
// as both the sensor source and the roll actuator for a steer.Director.
type Aircraft struct {
	State AircraftState
	// DefaultRollRate is used when the bank is driven without an
	// explicit rate, in degrees per second of sim time.
	DefaultRollRate float32
	// When SensorFailed is set, all sensor readings are NaN.
	SensorFailed bool

	targetBank float32
	rollRate   *float32
}

var (
	_ steer.Sensors       = (*Aircraft)(nil)
	_ steer.BankDriveSink = (*Aircraft)(nil)
)

func (ac *Aircraft) GroundVelocity() [2]float32 {
	air := math.Scale2f(math.HeadingVector(ac.State.Heading), ac.State.TAS)
	return math.Add2f(air, ac.State.Wind)
}

func (ac *Aircraft) GroundTrack() float32 {
	return math.VectorHeading(ac.GroundVelocity())
}

func (ac *Aircraft) VelocityEW() float32 {
	if ac.SensorFailed {
		return math.NaN()
	}
	return ac.GroundVelocity()[0]
}

func (ac *Aircraft) VelocityNS() float32 {
	if ac.SensorFailed {
		return math.NaN()
	}
	return ac.GroundVelocity()[1]
}

func (ac *Aircraft) TrueHeading() float32 {
	if ac.SensorFailed {
		return math.NaN()
	}
	return ac.State.Heading
}

// DriveBank sets the bank angle the aircraft rolls toward. A nil rate is
// taken to mean the default roll rate.
func (ac *Aircraft) DriveBank(bank float32, rate *float32) {
	ac.targetBank = bank
	if rate != nil {
		r := *rate
		ac.rollRate = &r
	} else {
		ac.rollRate = nil
	}
}

// LevelWings has the pilot roll wings level at the default roll rate.
func (ac *Aircraft) LevelWings() {
	ac.targetBank = 0
	ac.rollRate = nil
}

// Update advances the aircraft by dt seconds of wall-clock time, which
// corresponds to dt*simRate seconds of sim time. An explicit roll rate
// from DriveBank is taken to be already scaled for the sim rate.
func (ac *Aircraft) Update(dt float32, simRate float32) {
	simDt := dt * simRate

	var maxRoll float32
	if ac.rollRate != nil {
		maxRoll = *ac.rollRate * dt
	} else {
		maxRoll = ac.DefaultRollRate * simDt
	}
	delta := math.Clamp(ac.targetBank-ac.State.Bank, -maxRoll, maxRoll)
	ac.State.Bank += delta

	// Coordinated turn: omega = g tan(bank) / V.
	if v := ac.State.TAS * steer.KnotsToFeetPerSecond; v > 0 {
		omega := math.Degrees(steer.Gravity * math.Tan(math.Radians(ac.State.Bank)) / v)
		ac.State.Heading = math.NormalizeHeading(ac.State.Heading + omega*simDt)
	}

	ac.State.Position = math.Add2f(ac.State.Position, math.Scale2f(ac.GroundVelocity(), simDt/3600))
}

// Annunciator records the guidance-authority signal.
type Annunciator struct {
	GuidanceAuthority bool
	Changes           int
}

func (a *Annunciator) SetGuidanceAuthority(active bool) {
	a.GuidanceAuthority = active
	a.Changes++
}
