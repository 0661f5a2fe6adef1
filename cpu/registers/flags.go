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

package registers

// Flags holds the five condition flags as individual booleans. sr0 is
// their packed mirror (N at bit 31, Z at 30, C at 29, V at 28, T at bit
// 0); Pack/Unpack convert between the two representations so that mfsr
// sr0 and mtsr sr0 can round-trip through a plain uint32.
type Flags struct {
	N bool
	Z bool
	C bool
	V bool
	T bool
}

const (
	flagBitN = 31
	flagBitZ = 30
	flagBitC = 29
	flagBitV = 28
	flagBitT = 0
)

// Pack exports the flags into sr0's layout.
func (f Flags) Pack() uint32 {
	var v uint32
	if f.N {
		v |= 1 << flagBitN
	}
	if f.Z {
		v |= 1 << flagBitZ
	}
	if f.C {
		v |= 1 << flagBitC
	}
	if f.V {
		v |= 1 << flagBitV
	}
	if f.T {
		v |= 1 << flagBitT
	}
	return v
}

// Unpack replaces the flags from a packed sr0 value.
func (f *Flags) Unpack(v uint32) {
	f.N = v&(1<<flagBitN) != 0
	f.Z = v&(1<<flagBitZ) != 0
	f.C = v&(1<<flagBitC) != 0
	f.V = v&(1<<flagBitV) != 0
	f.T = v&(1<<flagBitT) != 0
}

// SetNZ derives N and Z from result, the common tail of every
// flag-updating ALU operation.
func (f *Flags) SetNZ(result uint32) {
	f.N = result&0x80000000 != 0
	f.Z = result == 0
}
