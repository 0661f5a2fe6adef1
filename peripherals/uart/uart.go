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

// Package uart implements the on-chip serial port: a TX byte sink, an
// RX FIFO, and the CTRL/STATUS/BAUD registers around them. Where the
// teacher's source models timed retransmission with setTimeout-style
// callbacks, this package follows the REDESIGN FLAGS guidance and
// completes transmission synchronously within the same register write
// that triggers it, keeping the emulator's cycle-by-cycle behaviour
// reproducible.
package uart

// STATUS bit positions.
const (
	StatusTXEmpty = 1 << 7
	StatusRXReady = 1 << 6
	StatusTXIdle  = 1 << 4
	StatusFraming = 1 << 0
	StatusParity  = 1 << 1
	StatusOverrun = 1 << 2
	StatusBreak   = 1 << 3
)

// rxFifoCapacity is the depth of the receive queue. The SPG290's UART
// core descends from the 16550 lineage, which carries a 16-byte FIFO;
// the exact depth is otherwise unstated, so this is a supplemented
// constant rather than an architectural given.
const rxFifoCapacity = 16

// Sink receives bytes written to the TX register.
type Sink func(b byte)

// UART is the SPG290's serial port.
type UART struct {
	ctrl   uint32
	status uint32
	baud   uint32

	rxFifo []byte
	rxHead byte

	sink Sink
}

// New creates a UART in its power-on state: TX-empty and TX-idle set,
// no pending RX byte.
func New(sink Sink) *UART {
	u := &UART{sink: sink}
	u.Reset()
	return u
}

// Reset returns the UART to its power-on register values.
func (u *UART) Reset() {
	u.ctrl = 0
	u.status = StatusTXEmpty | StatusTXIdle
	u.baud = 0
	u.rxFifo = u.rxFifo[:0]
	u.rxHead = 0
}

// ReadTXRX consumes the head of the RX FIFO, clearing RX-ready if the
// FIFO becomes empty.
func (u *UART) ReadTXRX() uint32 {
	v := u.rxHead
	if len(u.rxFifo) > 0 {
		u.rxHead = u.rxFifo[0]
		u.rxFifo = u.rxFifo[1:]
	} else {
		u.rxHead = 0
		u.status &^= StatusRXReady
	}
	return uint32(v)
}

// WriteTXRX transmits the low byte of v to the external sink. This
// implementation completes synchronously, so TX-empty stays asserted.
func (u *UART) WriteTXRX(v uint32) {
	if u.sink != nil {
		u.sink(byte(v))
	}
}

// ReadCtrl, ReadStatus, ReadBaud implement the remaining register reads.
func (u *UART) ReadCtrl() uint32   { return u.ctrl }
func (u *UART) ReadStatus() uint32 { return u.status }
func (u *UART) ReadBaud() uint32   { return u.baud }

// WriteCtrl, WriteBaud set their registers verbatim. STATUS is
// read-only from software and has no write handler.
func (u *UART) WriteCtrl(v uint32) { u.ctrl = v }
func (u *UART) WriteBaud(v uint32) { u.baud = v }

// EnqueueRx appends a byte received from the external RX source. If
// the FIFO is already full the byte is dropped and the overrun bit is
// latched; otherwise the byte joins the queue and, if it is the only
// byte present, becomes the head value with RX-ready asserted.
func (u *UART) EnqueueRx(b byte) {
	if len(u.rxFifo) >= rxFifoCapacity-1 && u.status&StatusRXReady != 0 {
		u.status |= StatusOverrun
		return
	}

	if u.status&StatusRXReady == 0 {
		u.rxHead = b
		u.status |= StatusRXReady
		return
	}

	u.rxFifo = append(u.rxFifo, b)
}

// DrainTx is a no-op hook retained for symmetry with a buffered
// transmitter; since writes to TX/RX complete synchronously through
// the sink, there is nothing buffered to drain.
func (u *UART) DrainTx() []byte {
	return nil
}

// Snapshot is a plain copy of the UART's registers, for the debugger.
type Snapshot struct {
	Ctrl, Status, Baud uint32
}

// Snapshot returns a copy of the UART's current registers.
func (u *UART) Snapshot() Snapshot {
	return Snapshot{Ctrl: u.ctrl, Status: u.status, Baud: u.baud}
}
