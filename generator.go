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
	"fmt"
	"sync"
)

// Generator is the capability set shared by every participant in the flow
// graph (spec §4.1). Step asks the Generator to make at most one quantum
// of progress for the given tick's TimeFrame; implementations must treat
// Step on a terminal or paused Generator as a no-op returning a nil
// error, and Step on an Inactive Generator as transitioning it to Active
// (taking effect from the following tick) without doing further work.
type Generator interface {
	// ID returns the stable identity token assigned at construction.
	ID() GeneratorID
	// Name returns the human-readable diagnostic name, or "".
	Name() string
	// Named sets the diagnostic name and returns the receiver, for
	// builder-style construction.
	Named(name string) Generator

	// State returns the current lifecycle state.
	State() State
	// IsActive reports State() == Active.
	IsActive() bool
	// IsRunning reports State() == Running.
	IsRunning() bool
	// IsCompleted reports State() == Completed.
	IsCompleted() bool
	// IsFailed reports State() == Failed.
	IsFailed() bool
	// Err returns the failure reason if IsFailed, else nil.
	Err() error

	// Activate transitions Inactive -> Active; a no-op otherwise.
	Activate()
	// Pause suppresses Step's effects while the Generator remains Active.
	Pause()
	// Resume clears a prior Pause.
	Resume()
	// Paused reports whether Pause has been called without a matching
	// Resume.
	Paused() bool

	// Step performs at most one quantum of progress.
	Step(tf TimeFrame) error
	// Complete transitions the receiver to Completed; a no-op if already
	// terminal.
	Complete()
	// Fail transitions the receiver to Failed, recording reason; a no-op
	// if already terminal.
	Fail(reason error)
}

// GeneratorBase implements the Generator capability set and is embedded
// by every concrete component in this package (Node, Sequence, Barrier,
// Timer, PeriodicTimer, Trigger, Future, AsyncCoroutine, SyncCoroutine).
// Every mutable field is guarded by mu, a reader/writer lock, per spec
// §5's shared-resource policy; the lock is never held across a Step
// implementation's user callback invocation.
type GeneratorBase struct {
	mu     sync.RWMutex
	id     GeneratorID
	name   string
	state  State
	paused bool
	err    error
}

// NewGeneratorBase constructs an Inactive GeneratorBase with a fresh ID.
func NewGeneratorBase() GeneratorBase {
	return GeneratorBase{id: newGeneratorID()}
}

func (g *GeneratorBase) ID() GeneratorID { return g.id }

func (g *GeneratorBase) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.name
}

// SetName sets the diagnostic name; each concrete type's Named calls it
// and then returns its own receiver as the Generator.
func (g *GeneratorBase) SetName(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.name = name
}

func (g *GeneratorBase) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *GeneratorBase) IsActive() bool    { return g.State() == Active }
func (g *GeneratorBase) IsRunning() bool   { return g.State() == Running }
func (g *GeneratorBase) IsCompleted() bool { return g.State() == Completed }
func (g *GeneratorBase) IsFailed() bool    { return g.State() == Failed }

func (g *GeneratorBase) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.err
}

func (g *GeneratorBase) Activate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Inactive {
		g.state = Active
	}
}

func (g *GeneratorBase) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = true
}

func (g *GeneratorBase) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = false
}

func (g *GeneratorBase) Paused() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.paused
}

func (g *GeneratorBase) Complete() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Terminal() {
		return
	}
	g.state = Completed
}

func (g *GeneratorBase) Fail(reason error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Terminal() {
		return
	}
	g.state = Failed
	g.err = reason
}

// beginStep implements the Inactive/terminal/paused admission rules
// common to every Step implementation in this package (spec §4.1). It
// returns run=false when the caller's Step must do nothing further this
// tick (either because it already handled the no-op case, or because the
// Generator just transitioned Inactive -> Active and Active only takes
// effect next tick).
func (g *GeneratorBase) beginStep() (run bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state {
	case Inactive:
		g.state = Active
		return false
	case Completed, Failed:
		return false
	}
	if g.paused {
		return false
	}
	return true
}

// markRunning records that this tick's Step is doing productive work.
func (g *GeneratorBase) markRunning() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Active {
		g.state = Running
	}
}

// markIdle reverts Running back to Active between bursts of work; used
// by composites whose children, not the composite itself, are doing the
// stepping.
func (g *GeneratorBase) markIdle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Running {
		g.state = Active
	}
}

// guardCallback runs fn, recovering any panic and converting it into a
// CallbackPanicked failure on fail, per spec §7: "a user-supplied
// callback raised; the Generator is transitioned to Failed with this
// cause and the tick loop continues." It reports whether fn completed
// without panicking. A recovered panic is also recorded via log, under
// name, when a diagnostic logger is configured; log may be nil.
func guardCallback(log *diagnosticLogger, name string, fail func(error), fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			var cause error
			if err, isErr := r.(error); isErr {
				cause = err
			} else {
				cause = fmt.Errorf("%v", r)
			}
			err := CallbackPanicked(cause)
			log.callbackPanicked(context.Background(), name, err)
			fail(err)
			ok = false
		}
	}()
	fn()
	return true
}
