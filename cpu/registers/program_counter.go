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

// ProgramCounter is the 32-bit instruction address register. Instructions
// are always 16-bit or 32-bit aligned, so the low bit is never set by
// normal control flow, but Load accepts any value verbatim so that a
// misaligned jump target can still be observed and reported rather than
// silently masked.
type ProgramCounter struct {
	address uint32
}

// NewProgramCounter creates a program counter initialised to addr.
func NewProgramCounter(addr uint32) *ProgramCounter {
	return &ProgramCounter{address: addr}
}

// Address returns the current program counter value.
func (pc ProgramCounter) Address() uint32 {
	return pc.address
}

// Load sets the program counter to addr.
func (pc *ProgramCounter) Load(addr uint32) {
	pc.address = addr
}

// Inc advances the program counter by n bytes (2 for a 16-bit compact
// instruction, 4 for a 32-bit instruction).
func (pc *ProgramCounter) Inc(n uint32) {
	pc.address += n
}
