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

// Package govern holds the engine's lifecycle state as a small typed
// enum rather than a bare int, kept separate from the engine loop
// itself.
package govern

// State is one of the engine's five lifecycle states.
type State int

const (
	Stopped State = iota
	Loading
	Paused
	Running
	Error
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loading:
		return "Loading"
	case Paused:
		return "Paused"
	case Running:
		return "Running"
	case Error:
		return "Error"
	}
	return "Undefined"
}

// ValidTransition reports whether moving from from to to is one of the
// engine's named lifecycle transitions. It is advisory — callers
// decide whether to consult it — but gives the engine one place to
// check its own bookkeeping instead of scattering ad-hoc comparisons.
func ValidTransition(from, to State) bool {
	switch from {
	case Stopped:
		return to == Loading
	case Loading:
		return to == Paused || to == Error
	case Paused:
		return to == Running || to == Loading || to == Paused
	case Running:
		return to == Paused || to == Error
	case Error:
		return to == Loading
	}
	return false
}
