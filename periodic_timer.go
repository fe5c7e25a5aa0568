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

// PeriodicTimer is the repeating wall-clock timer from spec §4.7. It
// records a last_tick snapshot on its first productive Step, then on
// each subsequent Step invokes its callback once per whole interval
// elapsed since last_tick, advancing last_tick by one interval per
// invocation - catch-up semantics: a Step that observes several missed
// interval boundaries fires the callback that many times in that one
// Step. A PeriodicTimer never completes on its own; a caller stops it by
// removing it from its parent or calling Complete explicitly (e.g. from
// inside its own callback, or from a Trigger).
type PeriodicTimer struct {
	GeneratorBase
	interval time.Duration

	// mu guards callback/started/lastTick; see Timer's mu for why a
	// dedicated lock is needed in addition to GeneratorBase's.
	mu       sync.RWMutex
	callback func()
	started  bool
	lastTick time.Time
}

var _ Generator = (*PeriodicTimer)(nil)

// NewPeriodicTimer constructs an Inactive PeriodicTimer firing every
// interval after its first productive Step.
func NewPeriodicTimer(interval time.Duration) *PeriodicTimer {
	return &PeriodicTimer{GeneratorBase: NewGeneratorBase(), interval: interval}
}

func (p *PeriodicTimer) Named(name string) Generator {
	p.SetName(name)
	return p
}

// SetElapsedCallback sets (or clears, with nil) the callback invoked once
// per elapsed interval.
func (p *PeriodicTimer) SetElapsedCallback(fn func()) *PeriodicTimer {
	p.mu.Lock()
	p.callback = fn
	p.mu.Unlock()
	return p
}

func (p *PeriodicTimer) Step(tf TimeFrame) error {
	if !p.beginStep() {
		return nil
	}

	p.mu.Lock()
	if !p.started {
		p.started = true
		p.lastTick = tf.Now
		p.mu.Unlock()
		p.markRunning()
		return nil
	}
	p.mu.Unlock()

	p.markRunning()
	for {
		p.mu.Lock()
		due := tf.Now.Sub(p.lastTick) >= p.interval
		if !due {
			p.mu.Unlock()
			break
		}
		p.lastTick = p.lastTick.Add(p.interval)
		callback := p.callback
		p.mu.Unlock()

		if callback != nil {
			tf.diag.firing(context.Background(), "periodic_timer", p.Name())
			if !guardCallback(tf.diag, p.Name(), p.Fail, callback) {
				return nil
			}
		}
		if p.State().Terminal() {
			// the callback stopped the timer (e.g. via Complete).
			return nil
		}
	}
	p.markIdle()
	return nil
}
