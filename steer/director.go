// steer/director.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"log/slog"
	"time"

	"github.com/mmp/rollsteer/log"
	"github.com/mmp/rollsteer/math"
)

type State int

const (
	Disengaged State = iota
	Armed
	Active
)

func (s State) String() string {
	switch s {
	case Disengaged:
		return "disengaged"
	case Armed:
		return "armed"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// DirectorConfig holds optional overrides for a Director; zero values
// take the defaults.
type DirectorConfig struct {
	// BankRate returns the roll rate limit in degrees per second of sim
	// time. If nil, the actuator's own default rate is used.
	BankRate func() float32
	// MaxBankAngle returns the bank limit in degrees; it defaults to the
	// context's MaxBankAngle.
	MaxBankAngle func() float32
	// Gains defaults to DefaultRollSteerGains().
	Gains *RollSteerGains

	// Guards that are nil fall back to DefaultPolicy().
	CanArm          GuardFunc
	CanRemainArmed  GuardFunc
	CanActivate     GuardFunc
	CanRemainActive GuardFunc
}

// ConstantRate returns a BankRate function that always gives r.
func ConstantRate(r float32) func() float32 {
	return func() float32 { return r }
}

// Director is the lateral steering director. It tracks the engagement
// state, consults its GuardPolicy each tick, and, while active, drives
// the bank actuator with the computed roll command.
//
// Directors are not safe for concurrent use; a single driver should call
// Update once per control cycle.
type Director struct {
	// Lifecycle callbacks; any may be nil.
	OnArm        func()
	OnActivate   func()
	OnDeactivate func()

	state    State
	ctx      Context
	source   CommandSource
	avionics Avionics
	policy   GuardPolicy
	bankRate func() float32

	nav  *NavigationDataProvider
	roll *RollSteerComputer

	snap Snapshot
	lg   *log.Logger
}

// NewDirector returns a disengaged Director. lg may be nil.
func NewDirector(ctx Context, source CommandSource, av Avionics, cfg DirectorConfig, lg *log.Logger) *Director {
	maxBank := cfg.MaxBankAngle
	if maxBank == nil {
		maxBank = ctx.MaxBankAngle
	}
	gains := DefaultRollSteerGains()
	if cfg.Gains != nil {
		gains = *cfg.Gains
	}

	d := &Director{
		state:    Disengaged,
		ctx:      ctx,
		source:   source,
		avionics: av,
		bankRate: cfg.BankRate,
		policy: DefaultPolicy().Override(GuardPolicy{
			CanArm:          cfg.CanArm,
			CanRemainArmed:  cfg.CanRemainArmed,
			CanActivate:     cfg.CanActivate,
			CanRemainActive: cfg.CanRemainActive,
		}),
		nav: NewNavigationDataProvider(av.Sensors),
		lg:  lg.With(slog.String("component", "steer")),
	}
	d.roll = NewRollSteerComputer(source, d.nav, maxBank, gains)

	return d
}

func (d *Director) State() State { return d.state }

func (d *Director) Policy() GuardPolicy { return d.policy }

// Roll returns the director's roll steering computer.
func (d *Director) Roll() *RollSteerComputer { return d.roll }

// Navigation returns the director's navigation data provider.
func (d *Director) Navigation() *NavigationDataProvider { return d.nav }

// Arm arms the director if it is disengaged and the CanArm guard passes;
// otherwise it does nothing.
func (d *Director) Arm() {
	if d.state != Disengaged {
		return
	}

	d.snap = Snapshot{Command: d.source.SteerCommand()}
	if !d.policy.CanArm(d.ctx, d.snap) {
		d.lg.Debug("arm rejected", slog.String("command", d.snap.Command.String()))
		return
	}

	d.state = Armed
	d.lg.Info("armed")
	if d.OnArm != nil {
		d.OnArm()
	}
	d.avionics.Indicator.SetGuidanceAuthority(true)
}

// Activate makes the director active regardless of its current state;
// callers are responsible for any preconditions.
func (d *Director) Activate() {
	d.state = Active
	d.lg.Info("activated")
	if d.OnActivate != nil {
		d.OnActivate()
	}
	d.avionics.Indicator.SetGuidanceAuthority(true)
}

// Deactivate disengages the director from any state. Each call runs the
// OnDeactivate callback and resets the roll computer, even if the director
// was already disengaged.
func (d *Director) Deactivate() {
	from := d.state
	d.state = Disengaged
	d.lg.Info("deactivated", slog.String("from", from.String()))
	if d.OnDeactivate != nil {
		d.OnDeactivate()
	}
	d.avionics.Indicator.SetGuidanceAuthority(false)
	d.roll.Reset()
}

// Update runs one control cycle. The order matters: sensors are read
// first, then the roll command is computed, and only then are the guards
// evaluated and the actuator driven, all from the same tick's data.
func (d *Director) Update(simTime time.Time) {
	d.nav.Update()
	d.roll.Update(simTime)

	roll := d.roll.Command()
	d.snap = Snapshot{Command: d.source.SteerCommand(), Roll: &roll}

	if from := d.state; SteerLogEnabled(SteerLogState) {
		defer func() {
			if d.state != from {
				SteerLog(simTime, SteerLogState, "%s -> %s", from, d.state)
			}
		}()
	}

	// An Armed director that activates goes on to the Active checks and
	// drives within the same tick.
	if d.state == Armed {
		if !d.policy.CanRemainArmed(d.ctx, d.snap) {
			SteerLog(simTime, SteerLogGuard, "can't remain armed: %s", d.snap.Command)
			d.Deactivate()
			return
		}
		if d.policy.CanActivate(d.ctx, d.snap) {
			d.Activate()
		}
	}

	if d.state == Active {
		if !d.policy.CanRemainActive(d.ctx, d.snap) {
			SteerLog(simTime, SteerLogGuard, "can't remain active: %s", d.snap.Command)
			d.Deactivate()
			return
		}
		d.drive(simTime, roll)
	}
}

func (d *Director) drive(simTime time.Time, roll RollCommand) {
	if !roll.Valid {
		return
	}
	if !math.IsFinite(roll.BankAngle) {
		d.lg.Debug("dropping non-finite bank command", slog.Float64("bank", float64(roll.BankAngle)))
		return
	}

	if d.bankRate == nil {
		SteerLog(simTime, SteerLogDrive, "bank %+.1f at default rate", roll.BankAngle)
		d.avionics.Bank.DriveBank(roll.BankAngle, nil)
		return
	}

	rate := d.bankRate() * d.ctx.SimRate()
	SteerLog(simTime, SteerLogDrive, "bank %+.1f rate %.1f", roll.BankAngle, rate)
	d.avionics.Bank.DriveBank(roll.BankAngle, &rate)
}
