// steer/command.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"fmt"
	gomath "math"
)

// GreatCircleRadius is the TrackSteer.TrackRadius of a straight
// (great-circle) path. Smaller values curve left and larger values curve
// right.
const GreatCircleRadius float32 = gomath.Pi / 2

// SteerCommand is the per-tick lateral steering target produced upstream
// of the director. Mode holds either a HeadingSteer or a TrackSteer; a
// nil Mode is treated the same as an invalid command.
type SteerCommand struct {
	Valid bool
	Mode  SteerMode
}

// SteerMode is implemented by HeadingSteer and TrackSteer.
type SteerMode interface {
	isSteerMode()
}

// HeadingSteer asks for a true heading. Error is the signed heading error
// in degrees, [-180,180), positive when a right turn is needed.
type HeadingSteer struct {
	Heading float32
	Error   float32
}

// TrackSteer asks to fly along a path. Course is the true course to
// steer; DesiredTrack is the path's ground track at the aircraft's
// abeam point. TrackRadius is the great-arc radius of the path in
// radians. CrossTrackError is in nm, positive when the aircraft is right
// of the path, and TrackError is desired minus current ground track, in
// degrees [-180,180).
type TrackSteer struct {
	Course          float32
	DesiredTrack    float32
	TrackRadius     float32
	CrossTrackError float32
	TrackError      float32
}

func (HeadingSteer) isSteerMode() {}
func (TrackSteer) isSteerMode()   {}

func (c SteerCommand) IsHeadingMode() bool {
	_, ok := c.Mode.(HeadingSteer)
	return ok
}

// Track returns the TrackSteer payload if the command is in track mode.
func (c SteerCommand) Track() (TrackSteer, bool) {
	ts, ok := c.Mode.(TrackSteer)
	return ts, ok
}

// Heading returns the HeadingSteer payload if the command is in heading
// mode.
func (c SteerCommand) Heading() (HeadingSteer, bool) {
	hs, ok := c.Mode.(HeadingSteer)
	return hs, ok
}

func (c SteerCommand) String() string {
	v := "invalid"
	if c.Valid {
		v = "valid"
	}
	switch m := c.Mode.(type) {
	case HeadingSteer:
		return fmt.Sprintf("%s hdg %03.0f err %+.1f", v, m.Heading, m.Error)
	case TrackSteer:
		return fmt.Sprintf("%s crs %03.0f dtk %03.0f xtk %+.2f tae %+.1f radius %.4f", v, m.Course,
			m.DesiredTrack, m.CrossTrackError, m.TrackError, m.TrackRadius)
	default:
		return v + " (no mode)"
	}
}

// RollCommand is the bank angle computed from a SteerCommand, in
// degrees, positive right.
type RollCommand struct {
	Valid     bool
	BankAngle float32
}
