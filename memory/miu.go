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

// MIU is the segmented memory-interface unit. The top byte of a 32-bit
// address selects one of 256 segment slots; the low 24 bits are the
// in-segment offset. The MIU owns no storage of its own and borrows
// whatever region has been registered for a segment.
type MIU struct {
	segments [256]Region
	names    [256]string
	stats    Stats
}

// Stats tracks unmapped-access counters the MIU surfaces for
// debuggability, without ever failing the caller.
type Stats struct {
	UnmappedReads  uint64
	UnmappedWrites uint64
}

// NewMIU creates an MIU with every segment unmapped.
func NewMIU() *MIU {
	return &MIU{}
}

// SetRegion installs region at segment, recording name as the
// segment's display name returned by RegionAt.
func (m *MIU) SetRegion(segment byte, region Region, name string) {
	m.segments[segment] = region
	m.names[segment] = name
}

// RegionAt returns the region and display name installed at segment,
// or (nil, "") if the segment is unmapped.
func (m *MIU) RegionAt(segment byte) (Region, string) {
	return m.segments[segment], m.names[segment]
}

// GetStats returns a copy of the unmapped-access counters.
func (m *MIU) GetStats() Stats {
	return m.stats
}

func split(addr uint32) (segment byte, offset uint32) {
	return byte(addr >> 24), addr & 0x00FFFFFF
}

// Read8 reads one byte at addr. Unmapped segments return 0.
func (m *MIU) Read8(addr uint32) uint8 {
	seg, off := split(addr)
	r := m.segments[seg]
	if r == nil {
		m.stats.UnmappedReads++
		return 0
	}
	return r.Read8(off)
}

// Read16 reads one little-endian halfword at addr. Unmapped segments
// return 0.
func (m *MIU) Read16(addr uint32) uint16 {
	seg, off := split(addr)
	r := m.segments[seg]
	if r == nil {
		m.stats.UnmappedReads++
		return 0
	}
	return r.Read16(off)
}

// Read32 reads one little-endian word at addr. Unmapped segments
// return 0.
func (m *MIU) Read32(addr uint32) uint32 {
	seg, off := split(addr)
	r := m.segments[seg]
	if r == nil {
		m.stats.UnmappedReads++
		return 0
	}
	return r.Read32(off)
}

// Write8 writes one byte at addr. Unmapped segments discard the write.
func (m *MIU) Write8(addr uint32, v uint8) {
	seg, off := split(addr)
	r := m.segments[seg]
	if r == nil {
		m.stats.UnmappedWrites++
		return
	}
	r.Write8(off, v)
}

// Write16 writes one little-endian halfword at addr. Unmapped segments
// discard the write.
func (m *MIU) Write16(addr uint32, v uint16) {
	seg, off := split(addr)
	r := m.segments[seg]
	if r == nil {
		m.stats.UnmappedWrites++
		return
	}
	r.Write16(off, v)
}

// Write32 writes one little-endian word at addr. Unmapped segments
// discard the write.
func (m *MIU) Write32(addr uint32, v uint32) {
	seg, off := split(addr)
	r := m.segments[seg]
	if r == nil {
		m.stats.UnmappedWrites++
		return
	}
	r.Write32(off, v)
}
