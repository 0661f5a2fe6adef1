package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpField(t *testing.T) {
	assert.Equal(t, uint32(0x1F), opField(0xFFFFFFFF))
	assert.Equal(t, uint32(0x00), opField(0x00000000))
}

func TestBitsExtraction(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint32(0x1F), bits(0xF8000000, 31, 27))
	assert.Equal(uint32(0), bits(0x00000000, 31, 27))
}

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0xFFFFFFFF), signExtend(0x1FF, 9))
	assert.Equal(uint32(0x000000FF), signExtend(0x0FF, 9))
}

func TestDecodeSPFields(t *testing.T) {
	assert := assert.New(t)

	word := encodeSP(5, 6, 7, 0x0C, true)
	rD, rA, rB, fn, cu := decodeSP(word)
	assert.Equal(uint32(5), rD)
	assert.Equal(uint32(6), rA)
	assert.Equal(uint32(7), rB)
	assert.Equal(uint32(0x0C), fn)
	assert.True(cu)
}

func TestDecodeBRoundTrip(t *testing.T) {
	assert := assert.New(t)

	word := encodeB(0x4, true, 0x08)
	cc, link, disp := decodeB(word)
	assert.Equal(uint32(0x4), cc)
	assert.True(link)
	assert.Equal(int32(0x08), disp)
}
