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

package debugger

import (
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/Sharons5150/spg290/cpu"
	"github.com/Sharons5150/spg290/engine"
	"github.com/Sharons5150/spg290/engine/govern"
	"github.com/Sharons5150/spg290/memory"
	"github.com/Sharons5150/spg290/peripherals/intc"
	"github.com/Sharons5150/spg290/peripherals/timer"
	"github.com/Sharons5150/spg290/peripherals/uart"
	"github.com/Sharons5150/spg290/peripherals/vdu"
)

// Snapshot is a plain, serializable copy of the whole machine at one
// instant: the CPU's registers, the MIU's unmapped-access counters, and
// every peripheral's own register snapshot. It exists so a debugger can
// look at a frozen copy instead of racing the engine's own slice loop.
type Snapshot struct {
	State  govern.State
	CPU    cpu.State
	Mem    memory.Stats
	Intc   intc.Snapshot
	Timer0 timer.Snapshot
	Timer1 timer.Snapshot
	Timer2 timer.Snapshot
	UART   uart.Snapshot
	VDU    vdu.Stats
}

// Capture builds a Snapshot from the engine's current state.
func Capture(e *engine.Engine) Snapshot {
	return Snapshot{
		State:  e.State(),
		CPU:    e.CPU().Snapshot(),
		Mem:    e.MIU().GetStats(),
		Intc:   e.Intc().Snapshot(),
		Timer0: e.Timer().Snapshot(0),
		Timer1: e.Timer().Snapshot(1),
		Timer2: e.Timer().Snapshot(2),
		UART:   e.UART().Snapshot(),
		VDU:    e.VDU().GetStats(),
	}
}

// WriteGraph renders the snapshot's memory layout as Graphviz DOT.
func (s Snapshot) WriteGraph(w io.Writer) error {
	memviz.Map(w, &s)
	return nil
}
