//go:build steerlog

// steer/log_debug.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package steer

import (
	"fmt"
	"strings"
	"time"
)

// Steering logging configuration
var (
	steerlogEnabled    bool
	steerlogCategories map[string]bool
)

// InitSteerLog initializes per-tick steering logging. categories is a
// comma-separated list; empty or "all" enables everything.
func InitSteerLog(enabled bool, categories string) {
	steerlogEnabled = enabled
	steerlogCategories = make(map[string]bool)

	if !enabled {
		return
	}

	if categories == "" || categories == "all" {
		for _, cat := range []string{SteerLogState, SteerLogRoll, SteerLogGuard, SteerLogDrive} {
			steerlogCategories[cat] = true
		}
	} else {
		for _, cat := range strings.Split(categories, ",") {
			steerlogCategories[strings.TrimSpace(cat)] = true
		}
	}
}

// SteerLog logs a message with timestamp and category
func SteerLog(simTime time.Time, category string, format string, args ...interface{}) {
	if !steerlogEnabled || !steerlogCategories[category] {
		return
	}

	// Format: [HH:MM:SS] [category] message
	fmt.Printf("[%s] [%s] %s\n", simTime.Format("15:04:05"), category, fmt.Sprintf(format, args...))
}

// SteerLogEnabled returns whether steering logging is enabled for a given category
func SteerLogEnabled(category string) bool {
	return steerlogEnabled && steerlogCategories[category]
}
