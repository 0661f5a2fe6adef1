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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Sharons5150/spg290/config"
	"github.com/Sharons5150/spg290/engine"
	"github.com/Sharons5150/spg290/engine/telemetry"
	"github.com/Sharons5150/spg290/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("spg290", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a TOML config file (defaults built in)")
	romPath := fs.String("rom", "", "path to a ROM image to load at startup")
	frames := fs.Int("frames", 0, "run exactly this many frames then exit (0 runs until interrupted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	e := engine.New(cfg, func(b byte) { os.Stdout.Write([]byte{b}) })

	telemetry.Launch(cfg.TelemetryAddr, os.Stdout)

	if *romPath != "" {
		data, err := os.ReadFile(*romPath)
		if err != nil {
			return fmt.Errorf("reading rom: %w", err)
		}
		if err := e.LoadRom(data); err != nil {
			return fmt.Errorf("loading rom: %w", err)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	e.Start()

	if *frames > 0 {
		return e.RunForFrameCount(*frames)
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			logger.Logf("main", "interrupted, stopping")
			return nil
		case <-ticker.C:
			if err := e.Run(); err != nil {
				return err
			}
			if status := e.GetStatus(); status.LastError != nil {
				return status.LastError
			}
		}
	}
}
