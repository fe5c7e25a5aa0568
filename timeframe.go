/*
   Copyright 2021 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package flow

import "time"

// Clock abstracts wall-clock reads, letting tests substitute a stepped
// fake clock in place of real sleeps, the way ticker_test.go in the
// teacher package substitutes timer behaviour rather than sleeping.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// systemClock is the default Clock, backed by time.Now.
var systemClock Clock = ClockFunc(time.Now)

// TimeFrame is the Kernel's monotonic clock state (spec §4.10): Now is
// the current tick's instant, Delta is the duration since the previous
// tick's Now. Updated exactly once per Kernel tick, before stepping, and
// exposed read-only to Generators that need wall-clock progress (Timer,
// PeriodicTimer).
type TimeFrame struct {
	Now   time.Time
	Delta time.Duration

	// diag carries the owning Kernel's configured diagnostic logger down
	// to every Generator's Step the same way Now/Delta already reach
	// them - through the TimeFrame argument each Step receives - so
	// leaves that need to log a firing or a panicked callback (Timer,
	// PeriodicTimer, Trigger) don't need a separate back-reference to
	// the Kernel. nil when no logger was configured (the default); every
	// diagnosticLogger method is nil-receiver safe.
	diag *diagnosticLogger
}

// advance returns the TimeFrame produced by observing now, given the
// receiver as the previous frame. The very first frame (zero Now) has a
// zero Delta. diag carries over unchanged.
func (tf TimeFrame) advance(now time.Time) TimeFrame {
	var delta time.Duration
	if !tf.Now.IsZero() {
		delta = now.Sub(tf.Now)
		if delta < 0 {
			delta = 0
		}
	}
	return TimeFrame{Now: now, Delta: delta, diag: tf.diag}
}
