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

// Package memory implements the segmented memory-interface unit (MIU)
// and the two region shapes it dispatches to. Rather than a closed set
// of concrete types distinguished at the call site, this package
// exposes Region as a small capability interface so the MIU never
// needs to type-switch on what kind of storage a segment holds.
package memory

// Region is anything the MIU can dispatch a typed read or write to.
// Implementations normalize alignment themselves; the MIU never masks
// an offset before forwarding it.
type Region interface {
	Read8(offset uint32) uint8
	Read16(offset uint32) uint16
	Read32(offset uint32) uint32
	Write8(offset uint32, v uint8)
	Write16(offset uint32, v uint16)
	Write32(offset uint32, v uint32)

	// Size reports the region's addressable byte length, used by the
	// debugger and by VDU bounds checking.
	Size() uint32
}
