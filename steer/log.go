// steer/log.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

// Available logging categories
const (
	SteerLogState = "state"
	SteerLogRoll  = "roll"
	SteerLogGuard = "guard"
	SteerLogDrive = "drive"
)
