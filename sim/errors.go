// sim/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrInvalidScenario = errors.New("Invalid scenario")
	ErrUnknownPathType = errors.New("Unknown path type")
	ErrEmptyTrace      = errors.New("Trace has no frames")
)
