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

// Package curated implements a small error type that supports pattern
// matching without requiring callers to hold onto sentinel error values.
//
// Errors are created with Errorf(), which behaves like fmt.Errorf() but
// defers formatting until Error() is called. This lets Is() and Has()
// match against the original pattern string rather than the fully
// rendered message, so callers can ask "was this a decode failure?"
// without caring about the operands that were interpolated into it.
package curated

import (
	"fmt"
	"strings"
)

// curated is the concrete error type returned by Errorf.
type curated struct {
	pattern string
	values  []interface{}
}

// Errorf creates a new curated error from a pattern and its arguments.
func Errorf(pattern string, values ...interface{}) error {
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error implements the error interface. Adjacent duplicate segments in
// a wrapped chain (e.g. "cpu: cpu: bad opcode") are collapsed.
func (er curated) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}

	return strings.Join(p, ": ")
}

// IsAny reports whether err was created by Errorf.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is reports whether err was created by Errorf with the given pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}
	return false
}

// Has reports whether pattern occurs anywhere in err's wrapped chain.
func Has(err error, pattern string) bool {
	if err == nil || !IsAny(err) {
		return false
	}
	if Is(err, pattern) {
		return true
	}
	for _, v := range err.(curated).values {
		if e, ok := v.(curated); ok && Has(e, pattern) {
			return true
		}
	}
	return false
}
