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

// Package logger implements a small tag-based, ring-buffered log shared
// by the whole core. It exists so that CPU decode failures, engine state
// transitions, and peripheral diagnostics land in one place without every
// package needing to carry its own io.Writer.
//
// Consecutive entries with an identical tag and detail are collapsed into
// a repeat count rather than being stored twice, which keeps a busy
// interpreter loop from flooding the log with the same complaint.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Entry is a single log line.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	repeated  int
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

const maxEntries = 512

type central struct {
	mu      sync.Mutex
	entries []Entry
	echo    io.Writer
}

var log = &central{}

// SetEcho causes every subsequent log entry to also be written to w.
// Passing nil disables echoing.
func SetEcho(w io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.echo = w
}

// Logf appends a formatted entry under tag to the central log.
func Logf(tag, format string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()

	detail := strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", "")
	tag = strings.ReplaceAll(tag, "\n", "")

	if n := len(log.entries); n > 0 {
		last := &log.entries[n-1]
		if last.Tag == tag && last.Detail == detail {
			last.repeated++
			last.Timestamp = time.Now()
			return
		}
	}

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}
	log.entries = append(log.entries, e)
	if len(log.entries) > maxEntries {
		log.entries = log.entries[len(log.entries)-maxEntries:]
	}

	if log.echo != nil {
		io.WriteString(log.echo, e.String())
	}
}

// Clear removes all entries from the central log.
func Clear() {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.entries = log.entries[:0]
}

// Tail writes the most recent n entries to w.
func Tail(w io.Writer, n int) {
	log.mu.Lock()
	defer log.mu.Unlock()

	if n > len(log.entries) {
		n = len(log.entries)
	}
	for _, e := range log.entries[len(log.entries)-n:] {
		io.WriteString(w, e.String())
	}
}

// Dump writes every entry to stderr. Intended for use from tests that
// want to see what the core logged on failure.
func Dump() {
	Tail(os.Stderr, len(log.entries))
}
