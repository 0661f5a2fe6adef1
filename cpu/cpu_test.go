package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sharons5150/spg290/memory"
)

func newTestCPU() (*CPU, *memory.ArrayRegion) {
	m := memory.NewMIU()
	flash := memory.NewArrayRegion(0x10000, false)
	m.SetRegion(0x9E, flash, "flash")
	c := New(m)
	c.SetPC(0x9E000000)
	return c, flash
}

// Smallest program: a single all-zero word (nop-equivalent add
// r0,r0,r0). One step advances PC by 4, charges 4 cycles, and leaves
// the flags untouched.
func TestSmallestProgram(t *testing.T) {
	assert := assert.New(t)

	c, flash := newTestCPU()
	flash.Write32(0, 0x00000000)

	before := c.Flags()
	res, err := c.Step()
	assert.NoError(err)
	assert.Equal(uint32(0x9E000000), res.PC)
	assert.Equal(uint32(0x9E000004), c.PC())
	assert.Equal(uint64(4), c.Cycles())
	assert.Equal(before, c.Flags())
}

// ldi then addi, encoded through this decoder's own I-form layout.
func TestLdiThenAddi(t *testing.T) {
	assert := assert.New(t)

	c, flash := newTestCPU()
	flash.Write32(0, encodeI(0x01, 22, iFnLdi, 0x21))
	flash.Write32(4, encodeI(0x01, 22, iFnAddi, 0x21))

	_, err := c.Step()
	assert.NoError(err)
	_, err = c.Step()
	assert.NoError(err)

	assert.Equal(uint32(0x42), c.GPR(22))
	assert.Equal(uint32(0x9E000008), c.PC())
}

// Conditional branch taken: cmp r5, r6 (equal) sets Z and C, then
// a taken beq advances PC by 0x10 from the branch instruction itself.
func TestConditionalBranchTaken(t *testing.T) {
	assert := assert.New(t)

	c, flash := newTestCPU()
	c.SetGPR(5, 7)
	c.SetGPR(6, 7)

	const ccAl = 0xF
	const ccEq = 0x4
	flash.Write32(0, encodeSP(ccAl, 5, 6, fnCmp, false))
	flash.Write32(4, encodeB(ccEq, false, 0x08))

	_, err := c.Step()
	assert.NoError(err)
	assert.True(c.Flags().Z)
	assert.True(c.Flags().C)

	_, err = c.Step()
	assert.NoError(err)
	assert.Equal(uint32(0x9E000004+0x10), c.PC())
}

func TestConditionalBranchNotTaken(t *testing.T) {
	assert := assert.New(t)

	c, flash := newTestCPU()
	c.SetGPR(5, 1)
	c.SetGPR(6, 2)

	const ccAl = 0xF
	const ccEq = 0x4
	flash.Write32(0, encodeSP(ccAl, 5, 6, fnCmp, false))
	flash.Write32(4, encodeB(ccEq, false, 0x08))

	_, _ = c.Step()
	assert.False(c.Flags().Z)

	_, _ = c.Step()
	assert.Equal(uint32(0x9E000008), c.PC())
}

func TestInvalidOpcodeEntersException(t *testing.T) {
	assert := assert.New(t)

	c, flash := newTestCPU()
	c.cr[3] = 0x9E001000

	flash.Write32(0, 0xFFFFFFFF) // op field 0x1F is the compact-form dispatch

	_, err := c.Step()
	assert.NoError(err)
	assert.Equal(uint32(0x9E001000+causeInvalidOpcode*4), c.PC())
	assert.Equal(uint32(0x9E000000), c.cr[5])
}

func TestEnterExceptionAndReturn(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU()
	c.flags.Z = true
	c.cr[3] = 0x9E002000

	c.EnterException(5)
	assert.Equal(uint32(0x9E002000+5*4), c.PC())
	assert.Equal(uint32(0x9E000000), c.cr[5])
	assert.Equal(uint32(0), c.cr[0]&1)

	c.rte()
	assert.Equal(uint32(0x9E000000), c.PC())
	assert.True(c.Flags().Z)
}
