// steer/policy_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"testing"

	"github.com/mmp/rollsteer/math"
)

func TestDefaultPolicy(t *testing.T) {
	ctx := &SharedContext{MaxBank: 25}
	p := DefaultPolicy()
	valid := RollCommand{Valid: true, BankAngle: 3}
	invalid := RollCommand{BankAngle: math.NaN()}

	tests := []struct {
		name                             string
		snap                             Snapshot
		arm, remainArmed, act, remainAct bool
	}{
		{"all valid", Snapshot{Command: trackCommand(0, 0), Roll: &valid}, true, true, true, true},
		{"no roll", Snapshot{Command: trackCommand(0, 0)}, true, true, false, true},
		{"invalid roll", Snapshot{Command: headingCommand(90, 0), Roll: &invalid}, true, true, false, true},
		{"invalid command", Snapshot{Command: SteerCommand{Mode: HeadingSteer{}}, Roll: &valid}, false, false, false, false},
		{"no mode", Snapshot{Command: SteerCommand{Valid: true}, Roll: &valid}, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := p.CanArm(ctx, tt.snap); r != tt.arm {
				t.Errorf("CanArm = %v", r)
			}
			if r := p.CanRemainArmed(ctx, tt.snap); r != tt.remainArmed {
				t.Errorf("CanRemainArmed = %v", r)
			}
			if r := p.CanActivate(ctx, tt.snap); r != tt.act {
				t.Errorf("CanActivate = %v", r)
			}
			if r := p.CanRemainActive(ctx, tt.snap); r != tt.remainAct {
				t.Errorf("CanRemainActive = %v", r)
			}
		})
	}
}

func TestPolicyOverride(t *testing.T) {
	p := DefaultPolicy().Override(GuardPolicy{CanActivate: Never})
	if p.CanArm == nil || p.CanRemainArmed == nil || p.CanActivate == nil || p.CanRemainActive == nil {
		t.Fatalf("override left a nil guard")
	}
	snap := Snapshot{Command: trackCommand(0, 0), Roll: &RollCommand{Valid: true}}
	if p.CanActivate(&SharedContext{}, snap) {
		t.Errorf("override was not applied")
	}
	if !p.CanArm(&SharedContext{}, snap) {
		t.Errorf("default CanArm was lost")
	}
}

func TestGuardCombinators(t *testing.T) {
	ctx := &SharedContext{}
	snap := Snapshot{Command: trackCommand(0, 0)}

	calls := 0
	counting := func(v bool) GuardFunc {
		return func(Context, Snapshot) bool {
			calls++
			return v
		}
	}

	if !All()(ctx, snap) {
		t.Errorf("All() of nothing should pass")
	}
	if Any()(ctx, snap) {
		t.Errorf("Any() of nothing should fail")
	}
	if All(Always, Never)(ctx, snap) {
		t.Errorf("All(Always, Never) passed")
	}
	if !Any(Never, Always)(ctx, snap) {
		t.Errorf("Any(Never, Always) failed")
	}
	if Not(Always)(ctx, snap) || !Not(Never)(ctx, snap) {
		t.Errorf("Not is broken")
	}

	// Short-circuit evaluation.
	All(counting(false), counting(true))(ctx, snap)
	if calls != 1 {
		t.Errorf("All evaluated %d guards, expected 1", calls)
	}
	calls = 0
	Any(counting(true), counting(false))(ctx, snap)
	if calls != 1 {
		t.Errorf("Any evaluated %d guards, expected 1", calls)
	}
}

func TestContextGuards(t *testing.T) {
	transferring := false
	ctx := &SharedContext{Source: NavSourceNav1, Transferring: func() bool { return transferring }}
	snap := Snapshot{Command: trackCommand(0, 0)}

	if RequireNavSource(NavSourceGPS)(ctx, snap) {
		t.Errorf("NAV1 accepted as GPS")
	}
	if !RequireNavSource(NavSourceGPS, NavSourceNav1)(ctx, snap) {
		t.Errorf("NAV1 rejected")
	}

	if !NoTransfer(ctx, snap) {
		t.Errorf("NoTransfer failed with no transfer underway")
	}
	transferring = true
	if NoTransfer(ctx, snap) {
		t.Errorf("NoTransfer passed during a transfer")
	}

	// A context without a transfer predicate never reports one.
	if !NoTransfer(&SharedContext{}, snap) {
		t.Errorf("NoTransfer failed with no transfer predicate")
	}
}

func TestCaptureWithin(t *testing.T) {
	g := CaptureWithin(0.5, 20)
	ctx := &SharedContext{}

	tests := []struct {
		name string
		cmd  SteerCommand
		pass bool
	}{
		{"on course", trackCommand(0, 0), true},
		{"close left", trackCommand(-0.4, -15), true},
		{"too far", trackCommand(0.8, 0), false},
		{"too much track error", trackCommand(0.1, 35), false},
		{"NaN xtk", trackCommand(math.NaN(), 0), false},
		{"heading mode", headingCommand(270, 180), true},
		{"no mode", SteerCommand{Valid: true}, false},
	}
	for _, tt := range tests {
		if r := g(ctx, Snapshot{Command: tt.cmd}); r != tt.pass {
			t.Errorf("%s: got %v, expected %v", tt.name, r, tt.pass)
		}
	}
}

func TestCaptureGuardedActivation(t *testing.T) {
	r := newTestRig(DirectorConfig{
		CanArm:      All(CommandValid, RequireNavSource(NavSourceGPS)),
		CanActivate: All(CommandValid, RollValid, NoTransfer, CaptureWithin(0.5, 30)),
	})

	r.source.cmd = trackCommand(2, 45)
	r.d.Arm()
	for range 3 {
		r.tick()
	}
	if r.d.State() != Armed {
		t.Fatalf("state %s while outside the capture window, expected armed", r.d.State())
	}

	r.source.cmd = trackCommand(0.3, 10)
	r.tick()
	if r.d.State() != Active {
		t.Errorf("state %s inside the capture window, expected active", r.d.State())
	}

	// With NAV1 selected, arming is refused.
	r = newTestRig(DirectorConfig{CanArm: All(CommandValid, RequireNavSource(NavSourceGPS))})
	r.ctx.Source = NavSourceNav1
	r.d.Arm()
	if r.d.State() != Disengaged {
		t.Errorf("armed with NAV1 selected")
	}
}
