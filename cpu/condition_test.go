package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sharons5150/spg290/cpu/registers"
)

func TestEvalConditionAlwaysTrue(t *testing.T) {
	assert.True(t, evalCondition(0xF, registers.Flags{}))
}

func TestEvalConditionEqual(t *testing.T) {
	assert := assert.New(t)
	assert.True(evalCondition(0x4, registers.Flags{Z: true}))
	assert.False(evalCondition(0x4, registers.Flags{Z: false}))
}

func TestEvalConditionGreaterThan(t *testing.T) {
	assert := assert.New(t)
	assert.True(evalCondition(0x6, registers.Flags{N: false, V: false, Z: false}))
	assert.False(evalCondition(0x6, registers.Flags{N: true, V: false, Z: false}))
	assert.False(evalCondition(0x6, registers.Flags{N: false, V: false, Z: true}))
}
