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

package cpu

import (
	"github.com/Sharons5150/spg290/cpu/registers"
	"github.com/Sharons5150/spg290/curated"
	"github.com/Sharons5150/spg290/logger"
	"github.com/Sharons5150/spg290/memory"
)

// CU, the flags-update bit, lives in SP-form bit 5; decodeSP and
// decodeSPFields extract it as their cu result.
const cuBit = uint32(1) << 5

// CPU is the S+core interpreter. It owns the register file, flags,
// control/system register banks, and the multiply/divide accumulator;
// it borrows the MIU for every memory access, which is the only way a
// step reaches state outside the CPU.
type CPU struct {
	pc registers.ProgramCounter

	gpr [32]uint32
	cr  [32]uint32
	sr  [32]uint32

	flags registers.Flags

	cel, ceh uint32

	cycles       uint64
	instructions uint64
	halted       bool

	miu *memory.MIU
}

// New creates a CPU bound to miu, with the register file and PC at
// their zero power-on values.
func New(miu *memory.MIU) *CPU {
	return &CPU{miu: miu}
}

// Reset returns every register, the flags, and the accumulator to
// their power-on values. The bound MIU is unaffected.
func (c *CPU) Reset() {
	*c = CPU{miu: c.miu}
}

// PC returns the current program counter value.
func (c *CPU) PC() uint32 { return c.pc.Address() }

// SetPC overrides the program counter, used by ROM loading to select
// the initial entry point.
func (c *CPU) SetPC(addr uint32) { c.pc.Load(addr) }

// GPR returns the value of general-purpose register n (0-31).
func (c *CPU) GPR(n uint32) uint32 { return c.gpr[n&31] }

// SetGPR writes register n (0-31).
func (c *CPU) SetGPR(n, v uint32) { c.gpr[n&31] = v }

// CR returns the value of control register n (0-31).
func (c *CPU) CR(n uint32) uint32 { return c.cr[n&31] }

// SetCR writes control register n (0-31), used by boot/reset code to
// seed cr3 (the exception vector base) before interrupts are unmasked.
func (c *CPU) SetCR(n, v uint32) { c.cr[n&31] = v }

// Flags returns a copy of the condition flags.
func (c *CPU) Flags() registers.Flags { return c.flags }

// Halted reports whether the interpreter has halted.
func (c *CPU) Halted() bool { return c.halted }

// Cycles and Instructions report the monotonic counters.
func (c *CPU) Cycles() uint64       { return c.cycles }
func (c *CPU) Instructions() uint64 { return c.instructions }

// State is a copyable snapshot of the entire CPU, used by the
// debugger and by tests that want to compare whole-machine state
// rather than poke individual getters.
type State struct {
	PC           uint32
	GPR          [32]uint32
	CR           [32]uint32
	SR           [32]uint32
	Flags        registers.Flags
	CEL, CEH     uint32
	Cycles       uint64
	Instructions uint64
	Halted       bool
}

// Snapshot returns a copy of the CPU's complete state.
func (c *CPU) Snapshot() State {
	return State{
		PC:           c.pc.Address(),
		GPR:          c.gpr,
		CR:           c.cr,
		SR:           c.sr,
		Flags:        c.flags,
		CEL:          c.cel,
		CEH:          c.ceh,
		Cycles:       c.cycles,
		Instructions: c.instructions,
		Halted:       c.halted,
	}
}

// StepResult describes the instruction a single Step executed, for the
// debugger and for RunForFrameCount-style test helpers.
type StepResult struct {
	PC     uint32
	Word   uint32
	Bytes  int
	Cycles int
}

// stepOutcome distinguishes "decoded and executed" from "transferred
// control itself" so Step knows whether to advance PC by the
// instruction's width.
type stepOutcome struct {
	branched bool
	bytes    int
}

// Step fetches, decodes, and executes exactly one instruction. Every
// successful step charges a flat four cycles; an invalid opcode
// enters the exception flow rather than failing the caller, so Step's
// error return is reserved for host-level bugs, not architectural
// conditions.
func (c *CPU) Step() (StepResult, error) {
	if c.halted {
		return StepResult{}, curated.Errorf("cpu: step called while halted")
	}

	pc := c.pc.Address()
	word := c.miu.Read32(pc)
	op := opField(word)

	var out stepOutcome
	switch {
	case op == 0x00:
		out = c.executeSP(word)
	case op == 0x01 || op == 0x05:
		out = c.executeI(word, op)
	case op == 0x02:
		out = c.executeJ(word)
	case op == 0x03 || op == 0x07:
		out = c.executeRIX(word, op)
	case op == 0x04:
		out = c.executeB(word)
	case op == 0x06:
		out = c.executeCR(word)
	case op >= 0x08 && op <= 0x0F:
		out = c.executeADDRI(word, op)
	case op >= 0x10 && op <= 0x17:
		out = c.executeMem(word, op)
	case op >= 0x18 && op <= 0x1F:
		out = c.executeCompact(word)
	default:
		out = stepOutcome{bytes: 4}
		c.trap(causeInvalidOpcode)
		logger.Logf("cpu", "invalid opcode %#x at pc %#08x", op, pc)
	}

	if !out.branched {
		c.pc.Inc(uint32(out.bytes))
	}

	c.cycles += 4
	c.instructions++

	return StepResult{PC: pc, Word: word, Bytes: out.bytes, Cycles: 4}, nil
}

// Exception causes. invalid-instruction uses the conventional sdbbp
// trap vector; the remaining causes are the named IRQ lines, kept in
// the same numeric space so intc.Controller.Raise and EnterException
// share one cause domain.
const causeInvalidOpcode = 31

// EnterException implements the architectural exception-entry
// sequence. It satisfies intc.Exceptioner so peripherals can call it
// directly through the interrupt controller.
func (c *CPU) EnterException(cause uint32) {
	c.sr[0] = c.flags.Pack()
	c.cr[1] = c.sr[0]
	c.cr[2] = (c.cr[2] &^ (0x3F << 18)) | ((cause & 0x3F) << 18)
	c.cr[5] = c.pc.Address()
	c.cr[0] &^= 1
	c.pc.Load(c.cr[3] + cause*4)
}

// trap drives an architectural invalid-opcode condition through the
// same exception-entry path peripheral IRQs use. Unlike a peripheral
// IRQ, an invalid instruction is always routed — it is a fault, not a
// maskable interrupt.
func (c *CPU) trap(cause uint32) {
	c.EnterException(cause)
}

// rte implements "return from exception": sr0 <- cr1, unpack flags,
// PC <- cr5.
func (c *CPU) rte() {
	c.sr[0] = c.cr[1]
	c.flags.Unpack(c.sr[0])
	c.pc.Load(c.cr[5])
}
