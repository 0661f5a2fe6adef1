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

package memory

// ArrayRegion is a flat backing-array region used for flash and DRAM.
// Its byte, halfword, and word accessors are overlapping views onto a
// single little-endian buffer.
type ArrayRegion struct {
	buf      []byte
	readOnly bool
}

// NewArrayRegion creates a zero-filled region of size bytes, rounded up
// to the next power of four so word-aligned wraparound masking works.
func NewArrayRegion(size uint32, readOnly bool) *ArrayRegion {
	return &ArrayRegion{
		buf:      make([]byte, roundUpPow4(size)),
		readOnly: readOnly,
	}
}

func roundUpPow4(n uint32) uint32 {
	if n == 0 {
		return 4
	}
	p := uint32(1)
	for p < n {
		p <<= 2
	}
	return p
}

// Size returns the region's buffer length.
func (a *ArrayRegion) Size() uint32 {
	return uint32(len(a.buf))
}

func (a *ArrayRegion) mask(offset uint32) uint32 {
	if len(a.buf) == 0 {
		return 0
	}
	return offset % uint32(len(a.buf))
}

// Read8 returns the byte at offset.
func (a *ArrayRegion) Read8(offset uint32) uint8 {
	return a.buf[a.mask(offset)]
}

// Read16 returns the little-endian halfword at offset, aligned down to 2.
func (a *ArrayRegion) Read16(offset uint32) uint16 {
	o := a.mask(offset) &^ 1
	return uint16(a.buf[o]) | uint16(a.buf[(o+1)%uint32(len(a.buf))])<<8
}

// Read32 returns the little-endian word at offset, aligned down to 4.
func (a *ArrayRegion) Read32(offset uint32) uint32 {
	o := a.mask(offset) &^ 3
	n := uint32(len(a.buf))
	return uint32(a.buf[o]) |
		uint32(a.buf[(o+1)%n])<<8 |
		uint32(a.buf[(o+2)%n])<<16 |
		uint32(a.buf[(o+3)%n])<<24
}

// Write8 stores v at offset, masked to 8 bits.
func (a *ArrayRegion) Write8(offset uint32, v uint8) {
	if a.readOnly {
		return
	}
	a.buf[a.mask(offset)] = v
}

// Write16 stores v at offset, aligned down to 2.
func (a *ArrayRegion) Write16(offset uint32, v uint16) {
	if a.readOnly {
		return
	}
	o := a.mask(offset) &^ 1
	n := uint32(len(a.buf))
	a.buf[o] = uint8(v)
	a.buf[(o+1)%n] = uint8(v >> 8)
}

// Write32 stores v at offset, aligned down to 4.
func (a *ArrayRegion) Write32(offset uint32, v uint32) {
	if a.readOnly {
		return
	}
	o := a.mask(offset) &^ 3
	n := uint32(len(a.buf))
	a.buf[o] = uint8(v)
	a.buf[(o+1)%n] = uint8(v >> 8)
	a.buf[(o+2)%n] = uint8(v >> 16)
	a.buf[(o+3)%n] = uint8(v >> 24)
}

// Load copies src into the buffer starting at offset, wrapping around
// the buffer the same way the byte accessors do. Used by ROM loading.
func (a *ArrayRegion) Load(offset uint32, src []byte) {
	for i, b := range src {
		a.buf[a.mask(offset+uint32(i))] = b
	}
}

// Bytes returns the underlying buffer itself, not a copy.
func (a *ArrayRegion) Bytes() []byte {
	return a.buf
}
