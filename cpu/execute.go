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

// SP-form function codes. Only CMP's value (0x0C) is architecturally
// fixed; the rest are this decoder's own assignment.
const (
	fnAdd    = 0x00
	fnAddc   = 0x01
	fnSub    = 0x02
	fnSubc   = 0x03
	fnAnd    = 0x04
	fnOr     = 0x05
	fnXor    = 0x06
	fnNot    = 0x07
	fnNeg    = 0x08
	fnSll    = 0x09
	fnSrl    = 0x0A
	fnSra    = 0x0B
	fnCmp    = 0x0C
	fnRor    = 0x0D
	fnRol    = 0x0E
	fnRorc   = 0x0F
	fnRolc   = 0x10
	fnBitclr = 0x11
	fnBitset = 0x12
	fnBittgl = 0x13
	fnBittst = 0x14
	fnExtsb  = 0x15
	fnExtsh  = 0x16
	fnExtzb  = 0x17
	fnExtzh  = 0x18
	fnMul    = 0x19
	fnMulu   = 0x1A
	fnDiv    = 0x1B
	fnDivu   = 0x1C
	fnMfce   = 0x1D
	fnMtce   = 0x1E
	fnMfsr   = 0x1F
	fnMtsr   = 0x20
	fnBr     = 0x21
	fnCmpz   = 0x22
)

func (c *CPU) writeSR(n uint32, v uint32) {
	c.sr[n&31] = v
	if n&31 == 0 {
		c.flags.Unpack(v)
	}
}

func (c *CPU) readSR(n uint32) uint32 {
	if n&31 == 0 {
		return c.flags.Pack()
	}
	return c.sr[n&31]
}

// executeSP executes an OP=0x00 SP-form instruction.
func (c *CPU) executeSP(word uint32) stepOutcome {
	rD, rA, rB, fn, cu := decodeSPFields(word)
	a := c.GPR(rA)
	b := c.GPR(rB)

	setFlags := func(result uint32, carry, overflow bool) {
		if !cu {
			return
		}
		c.flags.SetNZ(result)
		c.flags.C = carry
		c.flags.V = overflow
	}

	switch fn {
	case fnAdd:
		r, carry, ov := addFlags(a, b, false)
		c.SetGPR(rD, r)
		setFlags(r, carry, ov)
	case fnAddc:
		r, carry, ov := addFlags(a, b, c.flags.C)
		c.SetGPR(rD, r)
		setFlags(r, carry, ov)
	case fnSub:
		r, carry, ov := subFlags(a, b, true)
		c.SetGPR(rD, r)
		setFlags(r, carry, ov)
	case fnSubc:
		r, carry, ov := subFlags(a, b, c.flags.C)
		c.SetGPR(rD, r)
		setFlags(r, carry, ov)
	case fnNeg:
		r, carry, ov := subFlags(0, a, true)
		c.SetGPR(rD, r)
		setFlags(r, carry, ov)
	case fnAnd:
		r := a & b
		c.SetGPR(rD, r)
		setFlags(r, c.flags.C, c.flags.V)
	case fnOr:
		r := a | b
		c.SetGPR(rD, r)
		setFlags(r, c.flags.C, c.flags.V)
	case fnXor:
		r := a ^ b
		c.SetGPR(rD, r)
		setFlags(r, c.flags.C, c.flags.V)
	case fnNot:
		r := ^a
		c.SetGPR(rD, r)
		setFlags(r, c.flags.C, c.flags.V)
	case fnSll:
		n := b & 0x1F
		r := a << n
		carry := n > 0 && (a>>(32-n))&1 != 0
		c.SetGPR(rD, r)
		setFlags(r, carry, c.flags.V)
	case fnSrl:
		n := b & 0x1F
		r := a >> n
		carry := n > 0 && (a>>(n-1))&1 != 0
		c.SetGPR(rD, r)
		setFlags(r, carry, c.flags.V)
	case fnSra:
		n := b & 0x1F
		r := uint32(int32(a) >> n)
		carry := n > 0 && (a>>(n-1))&1 != 0
		c.SetGPR(rD, r)
		setFlags(r, carry, c.flags.V)
	case fnRor:
		n := b & 0x1F
		r := a
		if n != 0 {
			r = (a >> n) | (a << (32 - n))
		}
		c.SetGPR(rD, r)
		setFlags(r, c.flags.C, c.flags.V)
	case fnRol:
		n := b & 0x1F
		r := a
		if n != 0 {
			r = (a << n) | (a >> (32 - n))
		}
		c.SetGPR(rD, r)
		setFlags(r, c.flags.C, c.flags.V)
	case fnRorc:
		carry := a&1 != 0
		r := a >> 1
		if c.flags.C {
			r |= 0x80000000
		}
		c.SetGPR(rD, r)
		setFlags(r, carry, c.flags.V)
	case fnRolc:
		carry := a&0x80000000 != 0
		r := a << 1
		if c.flags.C {
			r |= 1
		}
		c.SetGPR(rD, r)
		setFlags(r, carry, c.flags.V)
	case fnCmp:
		// rD carries the condition code for CMP, not a destination
		// register.
		r, carry, ov := subFlags(a, b, true)
		c.flags.SetNZ(r)
		c.flags.C = carry
		c.flags.V = ov
		c.flags.T = evalCondition(rD, c.flags)
	case fnCmpz:
		r, carry, ov := subFlags(a, 0, true)
		c.flags.SetNZ(r)
		c.flags.C = carry
		c.flags.V = ov
		c.flags.T = evalCondition(rD, c.flags)
	case fnBitclr:
		r := a &^ (1 << (b & 0x1F))
		c.SetGPR(rD, r)
	case fnBitset:
		r := a | (1 << (b & 0x1F))
		c.SetGPR(rD, r)
	case fnBittgl:
		r := a ^ (1 << (b & 0x1F))
		c.SetGPR(rD, r)
	case fnBittst:
		mask := uint32(1) << (b & 0x1F)
		c.flags.T = a&mask != 0
		c.flags.Z = !c.flags.T
	case fnExtsb:
		c.SetGPR(rD, signExtend(a&0xFF, 8))
	case fnExtsh:
		c.SetGPR(rD, signExtend(a&0xFFFF, 16))
	case fnExtzb:
		c.SetGPR(rD, a&0xFF)
	case fnExtzh:
		c.SetGPR(rD, a&0xFFFF)
	case fnMul:
		r := int64(int32(a)) * int64(int32(b))
		c.cel = uint32(r)
		c.ceh = uint32(r >> 32)
	case fnMulu:
		r := uint64(a) * uint64(b)
		c.cel = uint32(r)
		c.ceh = uint32(r >> 32)
	case fnDiv:
		if b != 0 {
			c.cel = uint32(int32(a) / int32(b))
			c.ceh = uint32(int32(a) % int32(b))
		}
	case fnDivu:
		if b != 0 {
			c.cel = a / b
			c.ceh = a % b
		}
	case fnMfce:
		switch rB {
		case 1:
			c.SetGPR(rD, c.cel)
		case 2:
			c.SetGPR(rD, c.ceh)
		case 3:
			c.SetGPR(rD, c.cel)
			c.SetGPR(rD+1, c.ceh)
		}
	case fnMtce:
		switch rB {
		case 1:
			c.cel = a
		case 2:
			c.ceh = a
		case 3:
			c.cel = a
			c.ceh = c.GPR(rA + 1)
		}
	case fnMfsr:
		c.SetGPR(rD, c.readSR(rB))
	case fnMtsr:
		c.writeSR(rB, a)
	case fnBr:
		if evalCondition(rD, c.flags) {
			if rB != 0 {
				c.SetGPR(3, c.pc.Address()+4)
			}
			c.pc.Load(a)
			return stepOutcome{branched: true, bytes: 4}
		}
	default:
		c.trap(causeInvalidOpcode)
		return stepOutcome{branched: true, bytes: 4}
	}

	return stepOutcome{bytes: 4}
}

func decodeSPFields(word uint32) (rD, rA, rB, fn uint32, cu bool) {
	rD = bits(word, 26, 22)
	rA = bits(word, 21, 17)
	rB = bits(word, 16, 12)
	fn = bits(word, 11, 6)
	cu = bits(word, 5, 5) != 0
	return
}

// I-form function selectors (func3), this decoder's own assignment.
const (
	iFnAddi  = 0x0
	iFnAddis = 0x1
	iFnAndi  = 0x2
	iFnOrri  = 0x3
	iFnLdi   = 0x4
	iFnCmpi  = 0x5
)

// executeI executes an OP=0x01/0x05 I-form instruction. OP==0x05 left-
// shifts the immediate by 16 (used to build the upper half of a
// constant); OP==0x01 sign-extends it.
func (c *CPU) executeI(word uint32, op uint32) stepOutcome {
	rD, fn, raw := decodeI(word)
	var imm uint32
	if op == 0x05 {
		imm = raw << 16
	} else {
		imm = signExtend(raw, 16)
	}

	switch fn {
	case iFnAddi:
		r, _, _ := addFlags(c.GPR(rD), imm, false)
		c.SetGPR(rD, r)
	case iFnAddis:
		r, carry, ov := addFlags(c.GPR(rD), imm, false)
		c.SetGPR(rD, r)
		c.flags.SetNZ(r)
		c.flags.C = carry
		c.flags.V = ov
	case iFnAndi:
		c.SetGPR(rD, c.GPR(rD)&imm)
	case iFnOrri:
		c.SetGPR(rD, c.GPR(rD)|imm)
	case iFnLdi:
		c.SetGPR(rD, imm)
	case iFnCmpi:
		r, carry, ov := subFlags(c.GPR(rD), imm, true)
		c.flags.SetNZ(r)
		c.flags.C = carry
		c.flags.V = ov
	default:
		c.trap(causeInvalidOpcode)
		return stepOutcome{branched: true, bytes: 4}
	}
	return stepOutcome{bytes: 4}
}

// executeJ executes an OP=0x02 J-form direct jump.
func (c *CPU) executeJ(word uint32) stepOutcome {
	disp24, link := decodeJ(word)
	target := (c.pc.Address() & 0xFE000000) | (disp24 << 1)
	if link {
		c.SetGPR(3, c.pc.Address()+4)
	}
	c.pc.Load(target)
	return stepOutcome{branched: true, bytes: 4}
}

// RIX-form load/store width selectors (func3), this decoder's own
// assignment.
const (
	rixLB  = 0x0
	rixLBU = 0x1
	rixLH  = 0x2
	rixLHU = 0x3
	rixLW  = 0x4
	rixSB  = 0x5
	rixSH  = 0x6
	rixSW  = 0x7
)

// executeRIX executes an OP=0x03/0x07 RIX-form load/store. OP==0x03
// writes the effective address back into rA (pre-increment); OP==0x07
// does not.
func (c *CPU) executeRIX(word uint32, op uint32) stepOutcome {
	rD, rA, fn, disp := decodeRIX(word)
	addr := uint32(int32(c.GPR(rA)) + disp)

	switch fn {
	case rixLB:
		c.SetGPR(rD, signExtend(uint32(c.miu.Read8(addr)), 8))
	case rixLBU:
		c.SetGPR(rD, uint32(c.miu.Read8(addr)))
	case rixLH:
		c.SetGPR(rD, signExtend(uint32(c.miu.Read16(addr)), 16))
	case rixLHU:
		c.SetGPR(rD, uint32(c.miu.Read16(addr)))
	case rixLW:
		c.SetGPR(rD, c.miu.Read32(addr))
	case rixSB:
		c.miu.Write8(addr, uint8(c.GPR(rD)))
	case rixSH:
		c.miu.Write16(addr, uint16(c.GPR(rD)))
	case rixSW:
		c.miu.Write32(addr, c.GPR(rD))
	default:
		c.trap(causeInvalidOpcode)
		return stepOutcome{branched: true, bytes: 4}
	}

	if op == 0x03 {
		c.SetGPR(rA, addr)
	}
	return stepOutcome{bytes: 4}
}

// executeB executes an OP=0x04 B-form conditional branch.
func (c *CPU) executeB(word uint32) stepOutcome {
	cc, link, disp := decodeB(word)
	if !evalCondition(cc, c.flags) {
		return stepOutcome{bytes: 4}
	}
	if link {
		c.SetGPR(3, c.pc.Address()+4)
	}
	c.pc.Load(uint32(int32(c.pc.Address()) + (disp << 1)))
	return stepOutcome{branched: true, bytes: 4}
}

// executeCR executes an OP=0x06 CR-form instruction: mfcr, mtcr, or
// rte (sub-opcode 0x84).
func (c *CPU) executeCR(word uint32) stepOutcome {
	rD, crA, subop := decodeCR(word)
	switch subop {
	case crSubopMFCR:
		c.SetGPR(rD, c.cr[crA&31])
	case crSubopMTCR:
		c.cr[crA&31] = c.GPR(rD)
	case crSubopRTE:
		c.rte()
		return stepOutcome{branched: true, bytes: 4}
	default:
		c.trap(causeInvalidOpcode)
		return stepOutcome{branched: true, bytes: 4}
	}
	return stepOutcome{bytes: 4}
}

// ADDRI/ANDRI/ORRI-form sub-operations, selected by the low 3 bits of
// OP (0x08..0x0F), this decoder's own assignment.
const (
	addriAdd   = 0x0
	addriAdds  = 0x1
	addriAnd   = 0x2
	addriOr    = 0x3
	addriCmp   = 0x4
	addriCmps  = 0x5
)

func (c *CPU) executeADDRI(word uint32, op uint32) stepOutcome {
	rD, rA, imm := decodeADDRI(word)
	sub := op & 0x7
	a := c.GPR(rA)
	immU := uint32(imm)

	switch sub {
	case addriAdd:
		r, _, _ := addFlags(a, immU, false)
		c.SetGPR(rD, r)
	case addriAdds:
		r, carry, ov := addFlags(a, immU, false)
		c.SetGPR(rD, r)
		c.flags.SetNZ(r)
		c.flags.C = carry
		c.flags.V = ov
	case addriAnd:
		c.SetGPR(rD, a&immU)
	case addriOr:
		c.SetGPR(rD, a|immU)
	case addriCmp, addriCmps:
		r, carry, ov := subFlags(a, immU, true)
		c.flags.SetNZ(r)
		c.flags.C = carry
		c.flags.V = ov
	default:
		c.trap(causeInvalidOpcode)
		return stepOutcome{branched: true, bytes: 4}
	}
	return stepOutcome{bytes: 4}
}

func (c *CPU) executeMem(word uint32, op uint32) stepOutcome {
	rD, rA, imm := decodeMem(word)
	sub := op & 0x7
	addr := uint32(int32(c.GPR(rA)) + imm)

	switch sub {
	case rixLB:
		c.SetGPR(rD, signExtend(uint32(c.miu.Read8(addr)), 8))
	case rixLBU:
		c.SetGPR(rD, uint32(c.miu.Read8(addr)))
	case rixLH:
		c.SetGPR(rD, signExtend(uint32(c.miu.Read16(addr)), 16))
	case rixLHU:
		c.SetGPR(rD, uint32(c.miu.Read16(addr)))
	case rixLW:
		c.SetGPR(rD, c.miu.Read32(addr))
	case rixSB:
		c.miu.Write8(addr, uint8(c.GPR(rD)))
	case rixSH:
		c.miu.Write16(addr, uint16(c.GPR(rD)))
	case rixSW:
		c.miu.Write32(addr, c.GPR(rD))
	}
	return stepOutcome{bytes: 4}
}

// 16-bit compact format selectors (top 3 bits of a half), covering the
// subset of move/load-immediate/branch/jump semantics exercised by this
// module's own test programs. A half whose format is not one of these
// traps as an invalid opcode rather than silently misexecuting.
const (
	half16Move   = 0x0
	half16Jump   = 0x3
	half16Branch = 0x4
	half16LdImm  = 0x5
)

// executeCompact executes an OP=0x18..0x1F 16-bit-compact fetch slot.
// The slot is re-fetched as two independent 16-bit halves per the
// resolution recorded in decode.go; parallel mode (both halves
// executing as independent instructions rather than the high half
// alone) is selected by bit 12 of the high half, the p0 flag.
func (c *CPU) executeCompact(word uint32) stepOutcome {
	hi, lo := decodeHalf16(word)
	parallel := hi&0x1000 != 0

	branched := c.executeHalf16(hi)

	bytes := 2
	if parallel && !branched {
		branched = c.executeHalf16(lo)
		bytes = 4
	}
	return stepOutcome{branched: branched, bytes: bytes}
}

// executeHalf16 executes one 16-bit half-instruction and reports
// whether it transferred control itself. The rD field is bits[11:8]
// (r0..r15), since bit 12 is the p0 parallel-mode flag.
func (c *CPU) executeHalf16(half uint16) bool {
	format := half16Format(half)
	switch format {
	case half16Move:
		rD := uint32(half>>8) & 0xF
		rA := uint32(half>>3) & 0x1F
		c.SetGPR(rD, c.GPR(rA))
	case half16LdImm:
		rD := uint32(half>>8) & 0xF
		imm := uint32(half) & 0xFF
		c.SetGPR(rD, imm)
	case half16Jump:
		target := uint32(half&0x1FFF) << 1
		c.pc.Load((c.pc.Address() & 0xFFFFE000) | target)
		return true
	case half16Branch:
		cc := uint32(half>>8) & 0xF
		disp := int32(signExtend(uint32(half)&0xFF, 8))
		if evalCondition(cc, c.flags) {
			c.pc.Load(uint32(int32(c.pc.Address()) + disp*2))
			return true
		}
	default:
		c.trap(causeInvalidOpcode)
		return true
	}
	return false
}
