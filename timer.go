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

import (
	"context"
	"sync"
	"time"
)

// Timer is the one-shot wall-clock timer from spec §4.7. It records a
// start_time snapshot of the TimeFrame on its first productive Step, and
// completes - invoking its callback exactly once, if set - on the first
// subsequent Step where now - start_time >= duration. Late wakeups are
// not compensated: if the Kernel tick happens after the deadline, the
// callback fires late, not retroactively at the deadline.
type Timer struct {
	GeneratorBase
	duration time.Duration

	// mu guards callback/started/startTime, distinct from GeneratorBase's
	// own lock, since Step runs on whatever goroutine drives the Kernel
	// (including the goroutine started by RunInBackground) while
	// SetElapsedCallback and Step's own reads may race from a caller's
	// goroutine (spec §5).
	mu        sync.RWMutex
	callback  func()
	started   bool
	startTime time.Time
}

var _ Generator = (*Timer)(nil)

// NewTimer constructs an Inactive Timer that completes duration after
// its first productive Step.
func NewTimer(duration time.Duration) *Timer {
	return &Timer{GeneratorBase: NewGeneratorBase(), duration: duration}
}

func (t *Timer) Named(name string) Generator {
	t.SetName(name)
	return t
}

// SetElapsedCallback sets (or clears, with nil) the callback invoked
// exactly once when the Timer elapses.
func (t *Timer) SetElapsedCallback(fn func()) *Timer {
	t.mu.Lock()
	t.callback = fn
	t.mu.Unlock()
	return t
}

func (t *Timer) Step(tf TimeFrame) error {
	if !t.beginStep() {
		return nil
	}

	t.mu.Lock()
	if !t.started {
		t.started = true
		t.startTime = tf.Now
		t.mu.Unlock()
		t.markRunning()
		return nil
	}
	startTime := t.startTime
	t.mu.Unlock()

	if tf.Now.Sub(startTime) < t.duration {
		t.markRunning()
		return nil
	}
	t.markIdle()

	t.mu.RLock()
	callback := t.callback
	t.mu.RUnlock()

	if callback != nil {
		tf.diag.firing(context.Background(), "timer", t.Name())
		if !guardCallback(tf.diag, t.Name(), t.Fail, callback) {
			return nil
		}
	}
	t.Complete()
	return nil
}
