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

// Package engine is the single scheduler binding the CPU, the MIU, and
// the peripherals into a frame-quantized driver. Its Run and
// RunForFrameCount split a host-driven frame clock from a deterministic
// fixed-frame-count entry point.
package engine

import (
	"fmt"
	"time"

	"github.com/Sharons5150/spg290/config"
	"github.com/Sharons5150/spg290/cpu"
	"github.com/Sharons5150/spg290/curated"
	"github.com/Sharons5150/spg290/engine/govern"
	"github.com/Sharons5150/spg290/logger"
	"github.com/Sharons5150/spg290/memory"
	"github.com/Sharons5150/spg290/peripherals/intc"
	"github.com/Sharons5150/spg290/peripherals/timer"
	"github.com/Sharons5150/spg290/peripherals/uart"
	"github.com/Sharons5150/spg290/peripherals/vdu"
)

// Segment assignments within the MIU's 256-segment address space.
const (
	SegmentIO    = 0x08
	SegmentFlash = 0x9E
	SegmentDRAM  = 0xA0
)

const (
	flashSize = 8 * 1024 * 1024
	dramSize  = 16 * 1024 * 1024
	ioSize    = 256 * 1024
)

// FatalError is the {kind, PC, message} failure report the engine
// surfaces through its status observer before halting.
type FatalError struct {
	Kind    string
	PC      uint32
	Message string
}

func (e FatalError) Error() string {
	return fmt.Sprintf("%s at pc %#08x: %s", e.Kind, e.PC, e.Message)
}

// Status is a snapshot of the engine's own bookkeeping, returned by
// GetStatus for an attached UI or test harness.
type Status struct {
	State       govern.State
	FrameCount  uint64
	RealizedFPS float64
	LastError   *FatalError
}

// Breakpointer lets the engine consult an attached debugger without
// importing it directly, avoiding an import cycle (the debugger
// package imports engine's peripheral/CPU types to build snapshots).
type Breakpointer interface {
	Hit(pc uint32) bool
}

// Engine owns the CPU, the MIU, and every peripheral, and runs the
// cycle-budgeted slice loop that advances them together one frame at
// a time.
type Engine struct {
	cfg config.Config

	cpu   *cpu.CPU
	miu   *memory.MIU
	intc  *intc.Controller
	timer *timer.Block
	uart  *uart.UART
	vdu   *vdu.VDU

	flash *memory.ArrayRegion

	state       govern.State
	frameCount  uint64
	realizedFPS float64
	lastFrameAt time.Time
	lastError   *FatalError

	debugger Breakpointer
}

// New builds an engine with all peripherals wired into the MIU's I/O
// segment.
func New(cfg config.Config, txSink uart.Sink) *Engine {
	e := &Engine{cfg: cfg, state: govern.Stopped}

	e.miu = memory.NewMIU()
	e.cpu = cpu.New(e.miu)
	e.intc = intc.NewController()
	e.timer = timer.NewBlock()
	e.uart = uart.New(txSink)
	e.vdu = vdu.New(240, 160, vdu.FormatRGB565)

	e.flash = memory.NewArrayRegion(flashSize, true)
	dram := memory.NewArrayRegion(dramSize, false)
	io := e.buildIO()

	e.miu.SetRegion(SegmentFlash, e.flash, "flash")
	e.miu.SetRegion(SegmentDRAM, dram, "dram")
	e.miu.SetRegion(SegmentIO, io, "io")

	return e
}

// AttachDebugger lets the slice loop consult bp.Hit(pc) before each
// instruction. Passing nil detaches it.
func (e *Engine) AttachDebugger(bp Breakpointer) {
	e.debugger = bp
}

// CPU, MIU, Timer, UART, VDU, Intc expose the owned components for the
// debugger and for tests; the engine remains their sole owner.
func (e *Engine) CPU() *cpu.CPU            { return e.cpu }
func (e *Engine) MIU() *memory.MIU         { return e.miu }
func (e *Engine) Timer() *timer.Block      { return e.timer }
func (e *Engine) UART() *uart.UART         { return e.uart }
func (e *Engine) VDU() *vdu.VDU            { return e.vdu }
func (e *Engine) Intc() *intc.Controller   { return e.intc }
func (e *Engine) State() govern.State      { return e.state }

// Reset rebuilds hardware state and leaves the machine Paused.
func (e *Engine) Reset() {
	e.cpu.Reset()
	e.intc.Reset()
	e.timer.Reset()
	e.uart.Reset()
	e.vdu.Reset()
	e.frameCount = 0
	e.lastError = nil
	e.state = govern.Paused
}

func (e *Engine) transition(to govern.State) {
	logger.Logf("engine", "%s -> %s", e.state, to)
	e.state = to
}

// GetStatus returns a snapshot of the engine's own bookkeeping.
func (e *Engine) GetStatus() Status {
	return Status{
		State:       e.state,
		FrameCount:  e.frameCount,
		RealizedFPS: e.realizedFPS,
		LastError:   e.lastError,
	}
}

// IO segment offsets, relative to the base of SegmentIO. This module's
// own choice groups each peripheral's registers at a word-aligned base
// with room to spare for the timer's three channels.
const (
	ioIntcBase  = 0x0000
	ioTimerBase = 0x0010
	ioTimerSpan = 0x0010
	ioUARTBase  = 0x0100
	ioVDUBase   = 0x0200
)

// buildIO constructs the MMIO region backing SegmentIO, registering
// every peripheral's registers as handler words. Byte and halfword
// accesses from executeRIX/executeMem land on these same handlers via
// MmioRegion's read-modify-write merge.
func (e *Engine) buildIO() *memory.MmioRegion {
	io := memory.NewMmioRegion(ioSize)

	io.HandleWord(ioIntcBase+0x00, func() uint32 { return e.intc.ReadMask() }, e.intc.WriteMask)
	io.HandleWord(ioIntcBase+0x04, func() uint32 { return e.intc.ReadPrio() }, e.intc.WritePrio)
	io.HandleWord(ioIntcBase+0x08, func() uint32 { return e.intc.ReadStatus() }, e.intc.WriteStatus)
	io.HandleWord(ioIntcBase+0x0C, func() uint32 { return e.intc.ReadAck() }, e.intc.WriteAck)

	for ch := 0; ch < 3; ch++ {
		base := uint32(ioTimerBase + ch*ioTimerSpan)
		idx := ch
		io.HandleWord(base+0x00, func() uint32 { return e.timer.ReadCount(idx) }, func(v uint32) { e.timer.WriteCount(idx, v) })
		io.HandleWord(base+0x04, func() uint32 { return e.timer.ReadCtrl(idx) }, func(v uint32) { e.timer.WriteCtrl(idx, v) })
		io.HandleWord(base+0x08, func() uint32 { return e.timer.ReadCmp(idx) }, func(v uint32) { e.timer.WriteCmp(idx, v) })
		io.HandleWord(base+0x0C, func() uint32 { return e.timer.ReadStat(idx) }, func(v uint32) { e.timer.WriteStat(idx, v) })
	}

	io.HandleWord(ioUARTBase+0x00, func() uint32 { return e.uart.ReadTXRX() }, e.uart.WriteTXRX)
	io.HandleWord(ioUARTBase+0x08, func() uint32 { return e.uart.ReadCtrl() }, e.uart.WriteCtrl)
	io.HandleWord(ioUARTBase+0x0C, func() uint32 { return e.uart.ReadStatus() }, nil)
	io.HandleWord(ioUARTBase+0x10, func() uint32 { return e.uart.ReadBaud() }, e.uart.WriteBaud)

	io.HandleWord(ioVDUBase+0x00, func() uint32 { return uint32(e.vdu.ReadCtrl()) }, func(v uint32) { e.vdu.WriteCtrl(uint16(v)) })
	io.HandleWord(ioVDUBase+0x04, func() uint32 { return uint32(e.vdu.ReadStatus()) }, nil)
	io.HandleWord(ioVDUBase+0x08, func() uint32 { return uint32(e.vdu.ReadFBAddrHigh()) }, func(v uint32) { e.vdu.WriteFBAddrHigh(uint16(v)) })
	io.HandleWord(ioVDUBase+0x0C, func() uint32 { return uint32(e.vdu.ReadFBAddrLow()) }, func(v uint32) { e.vdu.WriteFBAddrLow(uint16(v)) })

	return io
}

// romMagic is the 4-byte marker locating the entry-point word within a
// loaded ROM image.
var romMagic = [4]byte{'a', 'M', '8', '2'}

// LoadRom copies data into flash, locates the aM82 magic header to
// determine the initial program counter, and leaves the engine Paused
// and ready to Run. It is accepted from any state govern.ValidTransition
// allows to move to Loading (Stopped, Paused, Error).
func (e *Engine) LoadRom(data []byte) error {
	if !govern.ValidTransition(e.state, govern.Loading) {
		return curated.Errorf("engine: LoadRom called from state %s", e.state)
	}
	e.transition(govern.Loading)

	if len(data) < 8 {
		err := &FatalError{Kind: "LoadError", Message: "rom image shorter than header"}
		e.lastError = err
		e.transition(govern.Error)
		return err
	}

	entry := uint32(0)
	found := false
	for i := 0; i+8 <= len(data); i++ {
		if data[i] == romMagic[0] && data[i+1] == romMagic[1] && data[i+2] == romMagic[2] && data[i+3] == romMagic[3] {
			entry = uint32(data[i+4]) | uint32(data[i+5])<<8 | uint32(data[i+6])<<16 | uint32(data[i+7])<<24
			found = true
			break
		}
	}
	if !found {
		err := &FatalError{Kind: "LoadError", Message: "aM82 header not found"}
		e.lastError = err
		e.transition(govern.Error)
		return err
	}

	e.Reset()
	e.flash.Load(0, data)
	e.cpu.SetPC(entry)
	e.transition(govern.Paused)
	return nil
}

// Start moves a Paused engine to Running; the host is expected to call
// Run once per host frame tick afterward.
func (e *Engine) Start() {
	if e.state == govern.Paused {
		e.transition(govern.Running)
	}
}

// Pause moves a Running engine back to Paused without losing state.
func (e *Engine) Pause() {
	if e.state == govern.Running {
		e.transition(govern.Paused)
	}
}

// Run executes exactly one frame's worth of work: CyclesPerSlice-sized
// slices of CPU stepping interleaved with peripheral advancement, until
// the frame's cycle budget is exhausted, then a VDU scan-out. It is a
// no-op unless the engine is Running.
func (e *Engine) Run() error {
	if e.state != govern.Running {
		return nil
	}

	e.vdu.ClearVblank()

	budget := int64(e.cfg.CyclesPerFrame())
	slice := e.cfg.CyclesPerSlice
	if slice == 0 {
		slice = uint64(budget)
	}

	for budget > 0 {
		sliceCycles := uint64(0)
		for sliceCycles < slice {
			if e.debugger != nil && e.debugger.Hit(e.cpu.PC()) {
				e.transition(govern.Paused)
				return nil
			}

			if _, err := e.cpu.Step(); err != nil {
				fail := &FatalError{Kind: "CPUFault", PC: e.cpu.PC(), Message: err.Error()}
				e.lastError = fail
				e.transition(govern.Error)
				return fail
			}
			sliceCycles += 4
			budget -= 4

			if budget <= e.cfg.SafetyBound {
				fail := &FatalError{Kind: "RunawaySlice", PC: e.cpu.PC(), Message: "cycle budget exceeded safety bound"}
				e.lastError = fail
				e.transition(govern.Error)
				return fail
			}
		}

		e.timer.Tick(sliceCycles, e.intc, e.cpu)
	}

	e.vdu.Render(e.miu, e.intc, e.cpu)
	e.frameCount++

	now := time.Now()
	if !e.lastFrameAt.IsZero() {
		if elapsed := now.Sub(e.lastFrameAt).Seconds(); elapsed > 0 {
			e.realizedFPS = 1 / elapsed
		}
	}
	e.lastFrameAt = now

	return nil
}

// RunForFrameCount drives n whole frames, starting the engine if it is
// Paused, without a host frame clock. The CLI's -frames flag uses it.
func (e *Engine) RunForFrameCount(n int) error {
	e.Start()
	for i := 0; i < n; i++ {
		if err := e.Run(); err != nil {
			return err
		}
		if e.state != govern.Running {
			break
		}
	}
	return nil
}
