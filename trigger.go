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
)

// ConditionFunc is a cheap, side-effect-free predicate evaluated once per
// Trigger Step (spec §4.8).
type ConditionFunc func(tf TimeFrame) bool

// Trigger is the edge-triggered condition watcher from spec §4.8: on
// each Step, if not yet latched, it evaluates its condition; the first
// time the condition is true, it latches, invokes its callback (if set),
// and completes. A Trigger fires at most once per lifetime.
type Trigger struct {
	GeneratorBase
	condition ConditionFunc

	// mu guards callback/latched; see Timer's mu for why a dedicated
	// lock is needed in addition to GeneratorBase's. condition is set
	// once at construction and never mutated, so it needs no guard.
	mu       sync.RWMutex
	callback func()
	latched  bool
}

var _ Generator = (*Trigger)(nil)

// NewTrigger constructs an Inactive Trigger watching condition.
func NewTrigger(condition ConditionFunc) *Trigger {
	return &Trigger{GeneratorBase: NewGeneratorBase(), condition: condition}
}

func (t *Trigger) Named(name string) Generator {
	t.SetName(name)
	return t
}

// SetTriggeredCallback sets (or clears, with nil) the callback invoked
// exactly once when the condition first evaluates true.
func (t *Trigger) SetTriggeredCallback(fn func()) *Trigger {
	t.mu.Lock()
	t.callback = fn
	t.mu.Unlock()
	return t
}

// Latched reports whether the Trigger has already fired.
func (t *Trigger) Latched() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latched
}

func (t *Trigger) Step(tf TimeFrame) error {
	if !t.beginStep() {
		return nil
	}
	if t.Latched() {
		t.markIdle()
		return nil
	}
	t.markRunning()
	if t.condition == nil || !t.condition(tf) {
		return nil
	}

	t.mu.Lock()
	t.latched = true
	callback := t.callback
	t.mu.Unlock()

	t.markIdle()
	if callback != nil {
		tf.diag.firing(context.Background(), "trigger", t.Name())
		if !guardCallback(tf.diag, t.Name(), t.Fail, callback) {
			return nil
		}
	}
	t.Complete()
	return nil
}
