package intc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCPU struct {
	entered []uint32
}

func (f *fakeCPU) EnterException(cause uint32) {
	f.entered = append(f.entered, cause)
}

func TestRaiseSetsStatusEvenWhenMasked(t *testing.T) {
	assert := assert.New(t)

	c := NewController()
	cpu := &fakeCPU{}

	c.Raise(cpu, LineTimer)
	assert.Equal(uint32(1<<LineTimer), c.ReadStatus())
	assert.Empty(cpu.entered)
}

func TestRaiseEntersExceptionWhenUnmasked(t *testing.T) {
	assert := assert.New(t)

	c := NewController()
	cpu := &fakeCPU{}
	c.WriteMask(1 << LineVblank)

	c.Raise(cpu, LineVblank)
	assert.Equal([]uint32{LineVblank}, cpu.entered)
}

func TestUnmaskAfterRaiseDoesNotReplayPendingLine(t *testing.T) {
	assert := assert.New(t)

	c := NewController()
	cpu := &fakeCPU{}

	c.Raise(cpu, LineUART)
	c.WriteMask(1 << LineUART)
	assert.Empty(cpu.entered)
}

func TestWriteAckClearsStatusBit(t *testing.T) {
	assert := assert.New(t)

	c := NewController()
	cpu := &fakeCPU{}
	c.Raise(cpu, LineAudio)
	assert.NotEqual(uint32(0), c.ReadStatus())

	c.WriteAck(1 << LineAudio)
	assert.Equal(uint32(0), c.ReadStatus())
}

func TestReadAckAlwaysZero(t *testing.T) {
	assert.Equal(t, uint32(0), NewController().ReadAck())
}
