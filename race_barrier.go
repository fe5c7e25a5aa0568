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

import "sync"

// RaceBarrier is a supplemental composite (see SPEC_FULL.md) that
// completes as soon as its first child reaches a terminal state, taking
// on that child's outcome (Completed if the winner Completed, Failed
// with the winner's reason if the winner Failed). The remaining children
// are left as-is - stepping stops once a winner is recorded, but any
// already-running work they own (e.g. an AsyncCoroutine's goroutine) is
// not itself interrupted by RaceBarrier; call CancelLosers to ask them to
// terminate.
//
// This is the reusable form of spec §8 scenario 4 (the timeout pattern):
// a Timer and an AsyncCoroutine raced against one another, with whichever
// finishes first deciding the outcome.
type RaceBarrier struct {
	GeneratorBase
	childList
	mu     sync.Mutex
	winner Generator
}

var _ Container = (*RaceBarrier)(nil)

// NewRaceBarrier constructs an Inactive RaceBarrier with no children.
func NewRaceBarrier() *RaceBarrier {
	return &RaceBarrier{GeneratorBase: NewGeneratorBase()}
}

func (r *RaceBarrier) Named(name string) Generator {
	r.SetName(name)
	return r
}

func (r *RaceBarrier) AddChild(g Generator)            { r.childList.add(g) }
func (r *RaceBarrier) RemoveChild(id GeneratorID) bool { return r.childList.remove(id) }
func (r *RaceBarrier) Children() []Generator           { return r.childList.snapshot() }
func (r *RaceBarrier) ChildrenCount() int              { return r.childList.count() }
func (r *RaceBarrier) ClearCompleted()                 { r.childList.clearCompleted() }

// Winner returns the child that decided the race, or nil if undecided.
func (r *RaceBarrier) Winner() Generator {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.winner
}

// CancelLosers completes every non-winning child that is not yet
// terminal, via Generator.Complete. Callers whose children support
// cancellation (AsyncCoroutine) should prefer calling Fail/cancel on them
// directly for prompt abort; CancelLosers exists for the common case of
// cooperative leaves (Timer, Trigger) with no independent goroutine.
func (r *RaceBarrier) CancelLosers() {
	winner := r.Winner()
	for _, child := range r.childList.snapshot() {
		if child == winner {
			continue
		}
		if !child.State().Terminal() {
			child.Complete()
		}
	}
}

func (r *RaceBarrier) Step(tf TimeFrame) error {
	if !r.beginStep() {
		return nil
	}
	if r.Winner() != nil {
		return nil
	}
	children := r.childList.snapshot()
	if len(children) == 0 {
		r.markIdle()
		return nil
	}

	r.markRunning()
	for _, child := range children {
		if child.State().Terminal() {
			r.declareWinner(child)
			r.markIdle()
			return nil
		}
		_ = child.Step(tf)
		if child.State().Terminal() {
			r.declareWinner(child)
			r.markIdle()
			return nil
		}
	}
	r.markIdle()
	return nil
}

func (r *RaceBarrier) declareWinner(child Generator) {
	r.mu.Lock()
	r.winner = child
	r.mu.Unlock()
	if child.IsFailed() {
		r.Fail(child.Err())
		return
	}
	r.Complete()
}
