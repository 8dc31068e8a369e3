// steer/navdata.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"github.com/mmp/rollsteer/math"
)

// Below this ground speed, in knots, the ground track is too noisy to
// use and heading is used in its place.
const MinTrackGroundSpeed = 1

// NavigationSnapshot holds the values derived from the sensors for the
// current tick. Unavailable values are NaN.
type NavigationSnapshot struct {
	GroundSpeed float32 // knots
	GroundTrack float32 // degrees true
	Heading     float32 // degrees true
}

func (s NavigationSnapshot) TrackValid() bool {
	return math.IsFinite(s.GroundTrack)
}

func (s NavigationSnapshot) HeadingValid() bool {
	return math.IsFinite(s.Heading)
}

// NavigationDataProvider derives ground speed, ground track, and heading
// from the raw sensor readings. It does no validation; non-finite
// readings propagate through to the snapshot. In particular, a non-finite
// velocity gives a NaN ground track even if the heading is good.
type NavigationDataProvider struct {
	sensors Sensors
	snap    NavigationSnapshot
}

func NewNavigationDataProvider(s Sensors) *NavigationDataProvider {
	return &NavigationDataProvider{
		sensors: s,
		snap: NavigationSnapshot{
			GroundSpeed: math.NaN(),
			GroundTrack: math.NaN(),
			Heading:     math.NaN(),
		},
	}
}

func (p *NavigationDataProvider) Update() {
	ew, ns := p.sensors.VelocityEW(), p.sensors.VelocityNS()
	hdg := p.sensors.TrueHeading()

	p.snap.GroundSpeed = math.Hypot(ew, ns)
	switch {
	case !math.IsFinite(p.snap.GroundSpeed):
		// Bad velocity; the heading is no substitute for the track.
		p.snap.GroundTrack = math.NaN()
	case p.snap.GroundSpeed > MinTrackGroundSpeed:
		p.snap.GroundTrack = math.NormalizeHeading(math.Degrees(math.Atan2(ew, ns)))
	default:
		p.snap.GroundTrack = hdg
	}
	p.snap.Heading = hdg
}

func (p *NavigationDataProvider) Snapshot() NavigationSnapshot {
	return p.snap
}
