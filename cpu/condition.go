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

package cpu

import "github.com/Sharons5150/spg290/cpu/registers"

// evalCondition evaluates the 4-bit condition code table against the
// current flags.
func evalCondition(cc uint32, f registers.Flags) bool {
	switch cc {
	case 0x0: // cs/hs
		return f.C
	case 0x1: // cc/lo
		return !f.C
	case 0x2: // hi
		return f.C && !f.Z
	case 0x3: // ls
		return !f.C || f.Z
	case 0x4: // eq
		return f.Z
	case 0x5: // ne
		return !f.Z
	case 0x6: // gt
		return f.N == f.V && !f.Z
	case 0x7: // le
		return f.N != f.V || f.Z
	case 0x8: // ge
		return f.N == f.V
	case 0x9: // lt
		return f.N != f.V
	case 0xA: // mi
		return f.N
	case 0xB: // pl
		return !f.N
	case 0xC: // vs
		return f.V
	case 0xD: // vc
		return !f.V
	case 0xE: // t
		return f.T
	case 0xF: // al
		return true
	}
	return false
}
