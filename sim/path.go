// sim/path.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"time"

	"github.com/mmp/rollsteer/math"
	"github.com/mmp/rollsteer/steer"
)

// The command sources here stand in for the navigation system upstream of
// the director. They work from the aircraft's true state rather than its
// sensors so that a sensor failure shows up only in the director.

// HeadingTarget commands a fixed true heading.
type HeadingTarget struct {
	Aircraft *Aircraft
	Heading  float32
}

func (h *HeadingTarget) SteerCommand() steer.SteerCommand {
	hdg := h.Aircraft.State.Heading
	return steer.SteerCommand{
		Valid: true,
		Mode: steer.HeadingSteer{
			Heading: h.Heading,
			Error:   math.HeadingSignedTurn(hdg, h.Heading),
		},
	}
}

// Leg is a straight path from From to To.
type Leg struct {
	Aircraft *Aircraft
	From, To [2]float32
}

func (l *Leg) SteerCommand() steer.SteerCommand {
	dir := math.Normalize2f(math.Sub2f(l.To, l.From))
	dtk := math.VectorHeading(dir)
	// Cross is positive when the aircraft is left of the path.
	xtk := -math.Cross(dir, math.Sub2f(l.Aircraft.State.Position, l.From))

	return steer.SteerCommand{
		Valid: dir != [2]float32{},
		Mode: steer.TrackSteer{
			Course:          dtk,
			DesiredTrack:    dtk,
			TrackRadius:     steer.GreatCircleRadius,
			CrossTrackError: xtk,
			TrackError:      math.NormalizeAngleError(dtk - l.Aircraft.GroundTrack()),
		},
	}
}

// Arc is a constant-radius turn around Center.
type Arc struct {
	Aircraft  *Aircraft
	Center    [2]float32
	Radius    float32 // nm
	Clockwise bool
}

func (a *Arc) SteerCommand() steer.SteerCommand {
	rel := math.Sub2f(a.Aircraft.State.Position, a.Center)
	dist := math.Length2f(rel)
	radial := math.VectorHeading(rel)

	// The center is on the inside of the turn, so for a right turn being
	// outside the circle puts us left of the path and vice versa.
	var dtk, xtk, radius float32
	angular := a.Radius / steer.EarthRadiusNM
	if a.Clockwise {
		dtk = math.NormalizeHeading(radial + 90)
		xtk = a.Radius - dist
		radius = math.Pi() - angular
	} else {
		dtk = math.NormalizeHeading(radial - 90)
		xtk = dist - a.Radius
		radius = angular
	}

	return steer.SteerCommand{
		Valid: a.Radius > 0,
		Mode: steer.TrackSteer{
			Course:          dtk,
			DesiredTrack:    dtk,
			TrackRadius:     radius,
			CrossTrackError: xtk,
			TrackError:      math.NormalizeAngleError(dtk - a.Aircraft.GroundTrack()),
		},
	}
}

// Outage wraps a CommandSource and marks its commands invalid while the
// sim time is in [Start, End).
type Outage struct {
	Source     steer.CommandSource
	Start, End time.Time
	Now        func() time.Time
}

func (o *Outage) SteerCommand() steer.SteerCommand {
	cmd := o.Source.SteerCommand()
	if t := o.Now(); !t.Before(o.Start) && t.Before(o.End) {
		cmd.Valid = false
	}
	return cmd
}
