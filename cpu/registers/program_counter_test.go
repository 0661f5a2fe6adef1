package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramCounterLoadAndInc(t *testing.T) {
	assert := assert.New(t)

	pc := NewProgramCounter(0x9E000000)
	assert.Equal(uint32(0x9E000000), pc.Address())

	pc.Inc(4)
	assert.Equal(uint32(0x9E000004), pc.Address())

	pc.Load(0xA0000000)
	assert.Equal(uint32(0xA0000000), pc.Address())
}
