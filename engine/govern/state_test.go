package govern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransitionTable(t *testing.T) {
	assert := assert.New(t)

	assert.True(ValidTransition(Stopped, Loading))
	assert.False(ValidTransition(Stopped, Running))

	assert.True(ValidTransition(Paused, Running))
	assert.True(ValidTransition(Running, Paused))
	assert.True(ValidTransition(Running, Error))
	assert.False(ValidTransition(Running, Loading))

	assert.True(ValidTransition(Error, Loading))
	assert.False(ValidTransition(Error, Running))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Undefined", State(99).String())
}
