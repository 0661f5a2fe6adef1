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

// Package vdu implements the video display unit: the CTRL/STATUS/
// FB_ADDR registers and the per-frame scan-out that converts a source
// framebuffer into an RGBA8888 pixel surface, generalized from a fixed
// colour table into four configurable source pixel formats.
package vdu

import (
	"time"

	"github.com/Sharons5150/spg290/memory"
	"github.com/Sharons5150/spg290/peripherals/intc"
)

// Format identifies the framebuffer's source pixel encoding.
type Format int

const (
	FormatRGBA8888 Format = iota
	FormatRGB565
	FormatRGB555
	FormatARGB8888
)

// BytesPerPixel returns the source storage width of the format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB565, FormatRGB555:
		return 2
	case FormatRGBA8888, FormatARGB8888:
		return 4
	}
	return 0
}

// CTRL/STATUS bit positions.
const (
	ctrlEnable   = 1 << 0
	statusVblank = 1 << 0
)

// Stats counts non-fatal scan-out failures and the duration of the
// last successful render, for the debugger/telemetry dashboard.
type Stats struct {
	BoundsErrors      uint64
	UnknownFormatErrs uint64
	LastRenderNanos   int64
}

// VDU is the SPG290's video display unit.
type VDU struct {
	ctrl       uint16
	status     uint16
	fbAddrHigh uint16
	fbAddrLow  uint16

	width, height int
	format        Format

	pixels []byte // RGBA8888, row-major, width*height*4 bytes
	stats  Stats
}

// New creates a VDU targeting a width x height RGBA8888 surface sourced
// from framebuffer data in the given format.
func New(width, height int, format Format) *VDU {
	return &VDU{
		width:  width,
		height: height,
		format: format,
		pixels: make([]byte, width*height*4),
	}
}

// Reset returns the VDU's registers to their power-on values. The
// output surface and configured dimensions/format are unaffected.
func (v *VDU) Reset() {
	v.ctrl = 0
	v.status = 0
	v.fbAddrHigh = 0
	v.fbAddrLow = 0
}

// Register accessors.
func (v *VDU) ReadCtrl() uint16       { return v.ctrl }
func (v *VDU) ReadStatus() uint16     { return v.status }
func (v *VDU) ReadFBAddrHigh() uint16 { return v.fbAddrHigh }
func (v *VDU) ReadFBAddrLow() uint16  { return v.fbAddrLow }

func (v *VDU) WriteCtrl(val uint16)       { v.ctrl = val }
func (v *VDU) WriteFBAddrHigh(val uint16) { v.fbAddrHigh = val }
func (v *VDU) WriteFBAddrLow(val uint16)  { v.fbAddrLow = val }

// fbAddr reassembles the 32-bit framebuffer base address.
func (v *VDU) fbAddr() uint32 {
	return uint32(v.fbAddrHigh)<<16 | uint32(v.fbAddrLow)
}

// Pixels exposes the most recently rendered RGBA8888 surface.
func (v *VDU) Pixels() []byte {
	return v.pixels
}

// GetStats returns a copy of the scan-out failure counters.
func (v *VDU) GetStats() Stats {
	return v.stats
}

// ClearVblank drops STATUS bit 0, called by the engine at the start of
// the next frame.
func (v *VDU) ClearVblank() {
	v.status &^= statusVblank
}

// Render streams one frame from the framebuffer region into the output
// surface, converting each source pixel to RGBA8888, then asserts
// vblank. It never fails the caller: bounds or format errors bump a
// counter and leave the previous frame's pixels in place.
func (v *VDU) Render(m *memory.MIU, irq *intc.Controller, cpu intc.Exceptioner) {
	start := time.Now()
	defer func() {
		v.status |= statusVblank
		irq.Raise(cpu, intc.LineVblank)
	}()

	if v.ctrl&ctrlEnable == 0 {
		return
	}

	bpp := v.format.BytesPerPixel()
	if bpp == 0 {
		v.stats.UnknownFormatErrs++
		return
	}

	addr := v.fbAddr()
	segment, offset := byte(addr>>24), addr&0x00FFFFFF
	region, _ := m.RegionAt(segment)
	if region == nil {
		v.stats.BoundsErrors++
		return
	}

	required := uint32(v.width*v.height*bpp)
	if offset+required > region.Size() {
		v.stats.BoundsErrors++
		return
	}

	for i := 0; i < v.width*v.height; i++ {
		srcOff := offset + uint32(i*bpp)
		r, g, b, a := v.readSourcePixel(region, srcOff)
		o := i * 4
		v.pixels[o+0] = r
		v.pixels[o+1] = g
		v.pixels[o+2] = b
		v.pixels[o+3] = a
	}

	v.stats.LastRenderNanos = time.Since(start).Nanoseconds()
}

func (v *VDU) readSourcePixel(region memory.Region, offset uint32) (r, g, b, a byte) {
	switch v.format {
	case FormatRGBA8888:
		word := region.Read32(offset)
		return byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)
	case FormatARGB8888:
		word := region.Read32(offset)
		return byte(word >> 16), byte(word >> 8), byte(word), byte(word >> 24)
	case FormatRGB565:
		word := region.Read16(offset)
		r5 := (word >> 11) & 0x1F
		g6 := (word >> 5) & 0x3F
		b5 := word & 0x1F
		return scale5to8(r5), scale6to8(g6), scale5to8(b5), 0xFF
	case FormatRGB555:
		word := region.Read16(offset)
		r5 := (word >> 10) & 0x1F
		g5 := (word >> 5) & 0x1F
		b5 := word & 0x1F
		return scale5to8(r5), scale5to8(g5), scale5to8(b5), 0xFF
	}
	return 0, 0, 0, 0xFF
}

func scale5to8(v uint16) byte {
	return byte((uint32(v)*255 + 15) / 31)
}

func scale6to8(v uint16) byte {
	return byte((uint32(v)*255 + 31) / 63)
}
