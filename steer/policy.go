// steer/policy.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"slices"

	"github.com/mmp/rollsteer/math"
)

// Snapshot is what guard functions see: the steering command and roll
// command from the current tick. Roll is nil when arming, since no roll
// command has been computed for the check.
type Snapshot struct {
	Command SteerCommand
	Roll    *RollCommand
}

// GuardFunc decides whether a state transition may be taken (or a state
// kept). It must not have side effects.
type GuardFunc func(ctx Context, snap Snapshot) bool

// GuardPolicy holds the four guards the director consults. All of its
// fields are non-nil once it's been handed to a Director.
type GuardPolicy struct {
	CanArm          GuardFunc
	CanRemainArmed  GuardFunc
	CanActivate     GuardFunc
	CanRemainActive GuardFunc
}

// DefaultPolicy returns guards that only check for valid commands: the
// steering command must be valid to arm and to stay engaged, and there
// must also be a valid roll command in order to go active.
func DefaultPolicy() GuardPolicy {
	return GuardPolicy{
		CanArm:          CommandValid,
		CanRemainArmed:  CommandValid,
		CanActivate:     All(CommandValid, RollValid),
		CanRemainActive: CommandValid,
	}
}

// Override returns a copy of p with any non-nil guards in o replacing p's.
func (p GuardPolicy) Override(o GuardPolicy) GuardPolicy {
	pick := func(g, def GuardFunc) GuardFunc {
		if g != nil {
			return g
		}
		return def
	}
	return GuardPolicy{
		CanArm:          pick(o.CanArm, p.CanArm),
		CanRemainArmed:  pick(o.CanRemainArmed, p.CanRemainArmed),
		CanActivate:     pick(o.CanActivate, p.CanActivate),
		CanRemainActive: pick(o.CanRemainActive, p.CanRemainActive),
	}
}

func CommandValid(ctx Context, snap Snapshot) bool {
	return snap.Command.Valid && snap.Command.Mode != nil
}

func RollValid(ctx Context, snap Snapshot) bool {
	return snap.Roll != nil && snap.Roll.Valid
}

// NoTransfer rejects while a nav-to-nav transfer is in progress.
func NoTransfer(ctx Context, snap Snapshot) bool {
	return !ctx.TransferInProgress()
}

func Always(ctx Context, snap Snapshot) bool { return true }

func Never(ctx Context, snap Snapshot) bool { return false }

// All returns a guard that passes only if every one of the given guards
// does. They are evaluated in order and evaluation stops at the first
// failure.
func All(guards ...GuardFunc) GuardFunc {
	return func(ctx Context, snap Snapshot) bool {
		for _, g := range guards {
			if !g(ctx, snap) {
				return false
			}
		}
		return true
	}
}

// Any returns a guard that passes if at least one of the given guards
// does.
func Any(guards ...GuardFunc) GuardFunc {
	return func(ctx Context, snap Snapshot) bool {
		for _, g := range guards {
			if g(ctx, snap) {
				return true
			}
		}
		return false
	}
}

func Not(g GuardFunc) GuardFunc {
	return func(ctx Context, snap Snapshot) bool {
		return !g(ctx, snap)
	}
}

// RequireNavSource passes only when the context's navigation source is
// one of the given ones.
func RequireNavSource(srcs ...NavSource) GuardFunc {
	return func(ctx Context, snap Snapshot) bool {
		return slices.Contains(srcs, ctx.NavSource())
	}
}

// CaptureWithin passes for track-mode commands once the aircraft is
// within maxXTK nm of the path with a track error of at most
// maxTrackError degrees. Heading-mode commands always pass.
func CaptureWithin(maxXTK, maxTrackError float32) GuardFunc {
	return func(ctx Context, snap Snapshot) bool {
		ts, ok := snap.Command.Track()
		if !ok {
			return snap.Command.IsHeadingMode()
		}
		// Written so that NaNs fail.
		return math.Abs(ts.CrossTrackError) <= maxXTK && math.Abs(ts.TrackError) <= maxTrackError
	}
}
