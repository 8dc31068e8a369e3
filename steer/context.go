// steer/context.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

type NavSource int

const (
	NavSourceGPS NavSource = iota
	NavSourceNav1
	NavSourceNav2
)

func (s NavSource) String() string {
	switch s {
	case NavSourceGPS:
		return "GPS"
	case NavSourceNav1:
		return "NAV1"
	case NavSourceNav2:
		return "NAV2"
	default:
		return "unknown"
	}
}

// Context gives read-only access to autopilot-wide values shared by the
// lateral directors. Guard functions are evaluated against it.
type Context interface {
	// MaxBankAngle returns the default bank limit, in degrees.
	MaxBankAngle() float32
	// SimRate is the simulation time acceleration factor; 1 is real time.
	SimRate() float32
	NavSource() NavSource
	// TransferInProgress reports whether a nav-to-nav transfer is
	// currently underway.
	TransferInProgress() bool
}

// SharedContext is a Context backed by plain values.
type SharedContext struct {
	MaxBank   float32
	TimeScale float32 // 0 is treated as 1
	Source    NavSource
	// Transferring may be nil if nav-to-nav transfers aren't modeled.
	Transferring func() bool
}

var _ Context = (*SharedContext)(nil)

func (c *SharedContext) MaxBankAngle() float32 { return c.MaxBank }

func (c *SharedContext) SimRate() float32 {
	if c.TimeScale == 0 {
		return 1
	}
	return c.TimeScale
}

func (c *SharedContext) NavSource() NavSource { return c.Source }

func (c *SharedContext) TransferInProgress() bool {
	return c.Transferring != nil && c.Transferring()
}
