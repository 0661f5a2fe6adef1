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

package debugger

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/Sharons5150/spg290/config"
	"github.com/Sharons5150/spg290/engine"
)

func TestCaptureIsStableAcrossIdleReads(t *testing.T) {
	assert := assert.New(t)

	e := engine.New(config.Default(), nil)
	e.Reset()

	first := Capture(e)
	second := Capture(e)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two captures of an idle engine diverged (-first +second):\n%s", diff)
	}
	assert.Equal(first.State, second.State)
}

func TestCaptureReflectsTimerWrites(t *testing.T) {
	e := engine.New(config.Default(), nil)
	e.Reset()

	before := Capture(e)
	e.Timer().WriteCmp(0, 42)
	after := Capture(e)

	diff := cmp.Diff(before.Timer0, after.Timer0)
	if diff == "" {
		t.Fatal("expected Timer0 snapshot to change after WriteCmp, but cmp reported no diff")
	}
}

func TestWriteGraphProducesDotOutput(t *testing.T) {
	assert := assert.New(t)

	e := engine.New(config.Default(), nil)
	snap := Capture(e)

	var buf bytes.Buffer
	err := snap.WriteGraph(&buf)
	assert.NoError(err)
	assert.Greater(buf.Len(), 0)
}
