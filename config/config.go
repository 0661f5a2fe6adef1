// This file is part of spg290.
//
// spg290 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// spg290 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with spg290.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the engine's tunable constants from an optional
// TOML file. Nothing in the core requires a config file to exist --
// Load returns the built-in power-on defaults when path is empty or the
// file is missing, falling back to zero-value preferences the same
// way a preferences layer with nothing saved yet would.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every value the engine needs that a deployer might
// reasonably want to override without recompiling.
type Config struct {
	// CPUHz is the nominal clock rate of the S+core CPU.
	CPUHz uint64 `toml:"cpu_hz"`

	// FPS is the target display refresh rate.
	FPS uint64 `toml:"fps"`

	// CyclesPerSlice is how many CPU cycles the engine runs before
	// stopping to advance peripherals within a single frame.
	CyclesPerSlice uint64 `toml:"cycles_per_slice"`

	// SafetyBound is the negative cycles-remaining threshold at which
	// the engine aborts a pathological slice loop.
	SafetyBound int64 `toml:"safety_bound"`

	// TelemetryAddr, if non-empty, is the host:port the optional
	// statsview dashboard listens on. Empty disables it.
	TelemetryAddr string `toml:"telemetry_addr"`
}

// Default returns the power-on configuration: a 33.8688 MHz CPU clock,
// 60 FPS, and a 10,000-cycle slice granularity.
func Default() Config {
	return Config{
		CPUHz:          33_868_800,
		FPS:            60,
		CyclesPerSlice: 10_000,
		SafetyBound:    -10_000,
		TelemetryAddr:  "",
	}
}

// CyclesPerFrame derives the per-frame cycle budget from CPUHz and FPS.
func (c Config) CyclesPerFrame() uint64 {
	return c.CPUHz / c.FPS
}

// Load reads a TOML config file at path, overlaying it onto Default().
// An empty path, or a path that does not exist, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
