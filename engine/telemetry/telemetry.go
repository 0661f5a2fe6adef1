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

// Package telemetry launches an optional statsview dashboard on
// whatever address the engine's Config names. It is purely
// observational: nothing in the core reads it back, and a host that
// never calls Launch pays nothing for it.
package telemetry

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Launch starts the statsview dashboard goroutine listening on addr and
// writes a one-line notice of its URL to output. Launch is a no-op if
// addr is empty.
func Launch(addr string, output io.Writer) {
	if addr == "" {
		return
	}

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at %s/debug/statsview\n", addr)
}
