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
	"testing"

	"github.com/stretchr/testify/assert"
)

func half16LdImmWord(rD, imm uint32, p0 bool) uint16 {
	w := uint16(half16LdImm<<13) | uint16(rD&0x1F)<<8 | uint16(imm&0xFF)
	if p0 {
		w |= 0x1000
	}
	return w
}

// A non-parallel compact fetch executes only the high half and must
// report bytes:2, not 4 — the low half is left for the next fetch.
// Step only advances PC by out.bytes (cpu.go), so a wrong bytes here
// is what re-fetches and re-executes the same slot forever.
func TestExecuteCompactNonParallelReportsTwoBytes(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU()
	hi := half16LdImmWord(1, 0x11, false)
	lo := half16LdImmWord(2, 0x22, false)
	word := uint32(hi)<<16 | uint32(lo)

	out := c.executeCompact(word)
	assert.False(out.branched)
	assert.Equal(2, out.bytes)
	assert.Equal(uint32(0x11), c.GPR(1))
	assert.Equal(uint32(0), c.GPR(2))
}

// Parallel mode (p0 set on the high half) executes both halves from a
// single fetch and must report bytes:4 so the caller's PC lands on the
// following word rather than re-executing the same two halves.
func TestExecuteCompactParallelReportsFourBytes(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU()
	hi := half16LdImmWord(1, 0x11, true)
	lo := half16LdImmWord(2, 0x22, false)
	word := uint32(hi)<<16 | uint32(lo)

	out := c.executeCompact(word)
	assert.False(out.branched)
	assert.Equal(4, out.bytes)
	assert.Equal(uint32(0x11), c.GPR(1))
	assert.Equal(uint32(0x22), c.GPR(2))
}

// If the high half of a parallel pair itself transfers control (an
// always-taken compact branch), the low half must not execute at all,
// and the outcome must report branched so Step leaves PC alone.
func TestExecuteCompactParallelSkipsLowHalfOnBranch(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU()
	const ccAlways = 0xF
	const disp = 0x10 // PC += disp*2 == +0x20
	hiBranch := uint16(half16Branch<<13) | 0x1000 | uint16(ccAlways<<8) | uint16(disp)
	lo := half16LdImmWord(2, 0x22, false)
	word := uint32(hiBranch)<<16 | uint32(lo)

	startPC := c.PC()
	out := c.executeCompact(word)
	assert.True(out.branched)
	assert.Equal(uint32(0), c.GPR(2))
	assert.Equal(startPC+uint32(disp)*2, c.PC())
}
