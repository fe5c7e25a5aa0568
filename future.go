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

// Future is the single-assignment value cell from spec §4.9. As a
// Generator, it transitions to Completed on the first Step following a
// successful TrySet/Set. Repeated sets are silently ignored (spec §9's
// chosen resolution of its own Open Question); TrySet's boolean return
// lets a caller build a stricter variant that treats a second set as an
// error.
type Future[T any] struct {
	GeneratorBase
	mu    sync.Mutex
	set   bool
	value T
	ready chan struct{}
}

var _ Generator = (*Future[struct{}])(nil)

// NewFuture constructs an Inactive, unset Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{GeneratorBase: NewGeneratorBase(), ready: make(chan struct{})}
}

func (f *Future[T]) Named(name string) Generator {
	f.SetName(name)
	return f
}

// TrySet stores v as the Future's value if it is not already set,
// waking any Wait callers, and reports whether this call was the one
// that set it.
func (f *Future[T]) TrySet(v T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.set {
		return false
	}
	f.set = true
	f.value = v
	close(f.ready)
	return true
}

// Set stores v as the Future's value; per spec, a second call is a
// silent no-op.
func (f *Future[T]) Set(v T) { f.TrySet(v) }

// IsSet reports whether a value has been stored.
func (f *Future[T]) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

// Wait blocks until a value is present (all waiters are released once
// set is observed, in an unspecified but fair order per spec §4.9), then
// returns it, or returns the zero value and ctx.Err() if ctx is done
// first.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.ready:
		f.mu.Lock()
		v := f.value
		f.mu.Unlock()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) Step(tf TimeFrame) error {
	if !f.beginStep() {
		return nil
	}
	if !f.IsSet() {
		f.markRunning()
		return nil
	}
	f.markIdle()
	f.Complete()
	return nil
}
