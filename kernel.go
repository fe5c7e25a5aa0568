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
	"time"

	"github.com/joeycumines/go-bigbuff"
)

const defaultTickQuantum = time.Millisecond

// KernelOption configures a Kernel at construction, in the teacher
// ecosystem's functional-option style (c.f. logiface.Option).
type KernelOption func(*Kernel)

// WithTickQuantum sets the idle sleep between ticks (spec §6,
// Kernel.set_tick_quantum); the default is 1ms.
func WithTickQuantum(d time.Duration) KernelOption {
	return func(k *Kernel) { k.tickQuantum = d }
}

// WithLogger sets the diagnostic sink described in spec §6; nil (the
// default) disables diagnostics entirely.
func WithLogger(l *diagnosticLogger) KernelOption {
	return func(k *Kernel) { k.logger = l }
}

// WithClock substitutes the wall clock, letting tests drive the Kernel
// with a stepped fake clock instead of real sleeps.
func WithClock(c Clock) KernelOption {
	return func(k *Kernel) { k.clock = c }
}

// Kernel is the driver from spec §4.11: it owns the root Node, a
// TimeFrame, a break token, and an optional wait-until instant, and
// repeatedly ticks the tree until quiescence, a time budget, or an
// external break.
type Kernel struct {
	mu          sync.Mutex
	root        *Node
	tf          TimeFrame
	token       *BreakToken
	tickQuantum time.Duration
	waitUntil   time.Time
	clock       Clock
	logger      *diagnosticLogger
	faulted     bool
	worker      bigbuff.Worker
}

// New constructs a Kernel with an activated, empty root Node.
func New(opts ...KernelOption) *Kernel {
	k := &Kernel{
		root:        NewNode(),
		token:       &BreakToken{},
		tickQuantum: defaultTickQuantum,
		clock:       systemClock,
	}
	k.root.Activate()
	for _, opt := range opts {
		opt(k)
	}
	k.tf.diag = k.logger
	return k
}

// Root returns the Kernel's root Node.
func (k *Kernel) Root() *Node { return k.root }

// Token returns the Kernel's BreakToken, for capture by a callback that
// needs to request BreakFlow without holding a strong *Kernel reference
// (spec §9's design note).
func (k *Kernel) Token() *BreakToken { return k.token }

// BreakFlow requests a graceful stop at the next tick boundary.
func (k *Kernel) BreakFlow() { k.token.BreakFlow() }

// SetTickQuantum changes the idle sleep between ticks.
func (k *Kernel) SetTickQuantum(d time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.tickQuantum = d
}

// Wait advances wait_until by duration: subsequent ticks are delayed
// until now >= wait_until, with stepping skipped while waiting.
func (k *Kernel) Wait(duration time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()
	base := k.waitUntil
	if base.IsZero() {
		base = k.clock.Now()
	}
	k.waitUntil = base.Add(duration)
}

// TimeFrame returns the most recently observed TimeFrame.
func (k *Kernel) TimeFrame() TimeFrame {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tf
}

// RunUntilComplete ticks until the root has no non-terminal children or
// BreakFlow is called (spec §6). ErrKernelBroken, a sentinel matched
// with errors.Is, is returned if a break interrupted the run before
// completion.
func (k *Kernel) RunUntilComplete() error {
	return k.run(func(time.Time) bool { return k.quiescent() })
}

// RunFor ticks until duration elapses or the root becomes quiescent,
// whichever is first. Reaching the budget with non-terminal work
// remaining is a success return, per spec §7 (Timeout is not an error).
func (k *Kernel) RunFor(duration time.Duration) error {
	deadline := k.clock.Now().Add(duration)
	return k.run(func(now time.Time) bool {
		return !now.Before(deadline) || k.quiescent()
	})
}

// RunUntil ticks until the clock reaches instant or the root becomes
// quiescent, whichever is first.
func (k *Kernel) RunUntil(instant time.Time) error {
	return k.run(func(now time.Time) bool {
		return !now.Before(instant) || k.quiescent()
	})
}

func (k *Kernel) quiescent() bool {
	for _, child := range k.root.Children() {
		if !child.State().Terminal() {
			return false
		}
	}
	return true
}

// run implements the tick algorithm from spec §4.11, looping until done
// reports true or a break is observed.
func (k *Kernel) run(done func(now time.Time) bool) (err error) {
	k.mu.Lock()
	if k.faulted {
		k.mu.Unlock()
		return ErrKernelFault
	}
	k.mu.Unlock()

	// Each independent Run* call starts from a clean break flag, so a
	// Kernel that was previously broken can be run again (spec §9).
	k.token.reset()

	defer func() {
		if r := recover(); r != nil {
			k.mu.Lock()
			k.faulted = true
			k.mu.Unlock()
			err = ErrKernelFault
			k.logFault(fmt.Errorf("flow: kernel tick loop panic: %v", r))
		}
	}()

	for {
		// 1. break check
		if k.token.Broken() {
			k.logBreak()
			return ErrKernelBroken
		}

		// 2. update TimeFrame
		now := k.clock.Now()
		k.mu.Lock()
		k.tf = k.tf.advance(now)
		tf := k.tf
		waitUntil := k.waitUntil
		tickQuantum := k.tickQuantum
		k.mu.Unlock()

		// 3. honor an outstanding Wait
		if !waitUntil.IsZero() && now.Before(waitUntil) {
			time.Sleep(minDuration(tickQuantum, waitUntil.Sub(now)))
			continue
		}

		// 4-5. step and prune
		_ = k.root.Step(tf)
		k.root.ClearCompleted()

		// 6. termination predicate
		if done(now) {
			return nil
		}

		// 7. idle sleep
		time.Sleep(tickQuantum)
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

// RunInBackground drives RunUntilComplete on a supervised goroutine
// (mirroring the Manager/Ticker supervision pattern in the teacher's
// manager.go, via the same bigbuff.Worker dependency used by
// AsyncCoroutine) and returns a function that requests BreakFlow and
// blocks until the background run has returned.
func (k *Kernel) RunInBackground() (stop func()) {
	resultCh := make(chan error, 1)
	release := k.worker.Do(func(stop <-chan struct{}) {
		resultCh <- k.RunUntilComplete()
	})
	return func() {
		k.BreakFlow()
		<-resultCh
		release()
	}
}

func (k *Kernel) logFault(err error) {
	if k.logger != nil {
		k.logger.fault(context.Background(), err)
	}
}

func (k *Kernel) logBreak() {
	if k.logger != nil {
		k.logger.broken(context.Background())
	}
}
