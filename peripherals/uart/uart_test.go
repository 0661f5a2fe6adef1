package uart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTxrxCallsSinkSynchronously(t *testing.T) {
	assert := assert.New(t)

	var got []byte
	u := New(func(b byte) { got = append(got, b) })

	u.WriteTXRX(0x41)
	assert.Equal([]byte{0x41}, got)
	assert.NotEqual(uint32(0), u.ReadStatus()&StatusTXEmpty)
}

func TestEnqueueRxThenReadClearsRXReady(t *testing.T) {
	assert := assert.New(t)

	u := New(nil)
	u.EnqueueRx(0x41)
	assert.NotEqual(uint32(0), u.ReadStatus()&StatusRXReady)

	v := u.ReadTXRX()
	assert.Equal(uint32(0x41), v)
	assert.Equal(uint32(0), u.ReadStatus()&StatusRXReady)
}

func TestEnqueueRxQueuesMultipleBytesInOrder(t *testing.T) {
	assert := assert.New(t)

	u := New(nil)
	u.EnqueueRx('a')
	u.EnqueueRx('b')
	u.EnqueueRx('c')

	assert.Equal(uint32('a'), u.ReadTXRX())
	assert.Equal(uint32('b'), u.ReadTXRX())
	assert.Equal(uint32('c'), u.ReadTXRX())
}

func TestEnqueueRxOverrunWhenFifoFull(t *testing.T) {
	assert := assert.New(t)

	u := New(nil)
	for i := 0; i < rxFifoCapacity+4; i++ {
		u.EnqueueRx(byte(i))
	}

	assert.NotEqual(uint32(0), u.ReadStatus()&StatusOverrun)
}

func TestResetRestoresPowerOnStatus(t *testing.T) {
	assert := assert.New(t)

	u := New(nil)
	u.EnqueueRx(0x41)
	u.Reset()

	assert.Equal(uint32(StatusTXEmpty|StatusTXIdle), u.ReadStatus())
}
