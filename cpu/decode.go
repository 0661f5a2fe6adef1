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

// Package cpu implements the S+core interpreter: decode, execute,
// condition codes, and exception entry/return. The encoding tables
// below fill in bit positions that the architectural source left
// ambiguous for several forms (B-form's split displacement, the 16-bit
// compact re-fetch) — each resolution is called out at its point of
// use. The CR-form uses fixed sub-opcodes 0x00 mfcr, 0x01 mtcr and
// 0x84 rte; there is no drte.
package cpu

// opField extracts the top 5 bits that route every 32-bit instruction
// to one of the decode forms.
func opField(word uint32) uint32 {
	return word >> 27
}

// Bit-field extraction shared across the 32-bit forms. Every form
// places OP in bits[31:27]; the remaining layout is this decoder's own
// choice for the forms left otherwise unfixed (I-form, RIX-form,
// ADDRI-form, memory-form), and a documented resolution for the forms
// that are fixed (B-form, CR-form).

func bits(word uint32, hi, lo uint) uint32 {
	width := hi - lo + 1
	return (word >> lo) & ((1 << width) - 1)
}

func signExtend(v uint32, bitsWide uint) uint32 {
	shift := 32 - bitsWide
	return uint32(int32(v<<shift) >> shift)
}

// SP-form (OP=0x00): rD[26:22] rA[21:17] rB[16:12] func6[11:6] CU[5].
func decodeSP(word uint32) (rD, rA, rB, func6 uint32, cu bool) {
	rD = bits(word, 26, 22)
	rA = bits(word, 21, 17)
	rB = bits(word, 16, 12)
	func6 = bits(word, 11, 6)
	cu = bits(word, 5, 5) != 0
	return
}

// I-form (OP=0x01, 0x05): rD[26:22] func3[21:19] imm16[18:3].
func decodeI(word uint32) (rD, func3, imm16 uint32) {
	rD = bits(word, 26, 22)
	func3 = bits(word, 21, 19)
	imm16 = bits(word, 18, 3)
	return
}

// J-form (OP=0x02): disp24[26:3] link[2].
func decodeJ(word uint32) (disp24 uint32, link bool) {
	disp24 = bits(word, 26, 3)
	link = bits(word, 2, 2) != 0
	return
}

// RIX-form (OP=0x03, 0x07): rD[26:22] rA[21:17] disp12[16:5] func3[4:2].
func decodeRIX(word uint32) (rD, rA, func3 uint32, disp12 int32) {
	rD = bits(word, 26, 22)
	rA = bits(word, 21, 17)
	disp12 = int32(signExtend(bits(word, 16, 5), 12))
	func3 = bits(word, 4, 2)
	return
}

// B-form (OP=0x04): cc[26:23] link[22] disp22[21:0].
//
// Resolution of the open "B-form encoding" question: the condition
// code and link bit occupy the 5 bits immediately below OP, and the
// entire remaining 22 bits form one contiguous displacement field —
// the source's two different extraction sites were reconciled in favor
// of this layout because it is the only one that consumes exactly the
// 22 bits the format's name promises with no gap or overlap.
func decodeB(word uint32) (cc uint32, link bool, disp22 int32) {
	cc = bits(word, 26, 23)
	link = bits(word, 22, 22) != 0
	disp22 = int32(signExtend(bits(word, 21, 0), 22))
	return
}

// CR-form (OP=0x06): rD[26:22] crA[21:17] subop[16:9].
func decodeCR(word uint32) (rD, crA, subop uint32) {
	rD = bits(word, 26, 22)
	crA = bits(word, 21, 17)
	subop = bits(word, 16, 9)
	return
}

const (
	crSubopMFCR = 0x00
	crSubopMTCR = 0x01
	crSubopRTE  = 0x84
)

// ADDRI/ANDRI/ORRI-form (OP=0x08..0x0F): rD[26:22] rA[21:17] imm14[16:3].
func decodeADDRI(word uint32) (rD, rA uint32, imm14 int32) {
	rD = bits(word, 26, 22)
	rA = bits(word, 21, 17)
	imm14 = int32(signExtend(bits(word, 16, 3), 14))
	return
}

// memory-form (OP=0x10..0x17): rD[26:22] rA[21:17] imm15[16:2].
func decodeMem(word uint32) (rD, rA uint32, imm15 int32) {
	rD = bits(word, 26, 22)
	rA = bits(word, 21, 17)
	imm15 = int32(signExtend(bits(word, 16, 2), 15))
	return
}

// decodeHalf16 splits a 32-bit fetch slot into its two 16-bit compact
// half-instructions, high half first.
//
// Resolution of the open "OP=0x18..0x1F dispatch" question: the slot
// is re-fetched as two independent 16-bit halves rather than decoded
// as a single 32-bit instruction; each half carries its own top-3-bit
// format selector and its own p0/p1 parallel-mode flag.
func decodeHalf16(word uint32) (hi, lo uint16) {
	return uint16(word >> 16), uint16(word)
}

// half16Format extracts the 3-bit format selector from a 16-bit half.
func half16Format(half uint16) uint32 {
	return uint32(half >> 13)
}
