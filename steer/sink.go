// steer/sink.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

// CommandSource provides the current steering command. It should be
// cheap and free of side effects; it may be called more than once per
// tick.
type CommandSource interface {
	SteerCommand() SteerCommand
}

type CommandSourceFunc func() SteerCommand

func (f CommandSourceFunc) SteerCommand() SteerCommand { return f() }

// Sensors provides the raw readings the NavigationDataProvider works
// from. Readings that are unavailable are returned as NaN.
type Sensors interface {
	// VelocityEW returns the east-west ground velocity in knots,
	// positive east.
	VelocityEW() float32
	// VelocityNS returns the north-south ground velocity in knots,
	// positive north.
	VelocityNS() float32
	// TrueHeading returns the true heading in degrees.
	TrueHeading() float32
}

// BankDriveSink is the roll actuator. rate is the maximum roll rate in
// degrees per second; nil leaves it to the actuator's default.
type BankDriveSink interface {
	DriveBank(bank float32, rate *float32)
}

// GuidanceIndicatorSink receives the guidance-authority signal: true
// while the director is armed or active.
type GuidanceIndicatorSink interface {
	SetGuidanceAuthority(active bool)
}

// Avionics bundles the collaborators the director reads from and writes
// to. The director holds them but does not own them.
type Avionics struct {
	Sensors   Sensors
	Bank      BankDriveSink
	Indicator GuidanceIndicatorSink
}
