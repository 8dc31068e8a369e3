//go:build !steerlog

// steer/log_release.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import "time"

// InitSteerLog is a no-op in release builds
func InitSteerLog(enabled bool, categories string) {}

// SteerLog is a no-op in release builds
func SteerLog(simTime time.Time, category string, format string, args ...interface{}) {}

// SteerLogEnabled always returns false in release builds
func SteerLogEnabled(category string) bool { return false }
