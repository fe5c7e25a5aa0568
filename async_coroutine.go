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

	"github.com/joeycumines/go-bigbuff"
)

// AsyncFunc is a user computation that suspends using the host runtime's
// native suspension (e.g. blocking calls, channel receives); it must
// observe ctx and return promptly once ctx is Done.
type AsyncFunc func(ctx context.Context) error

// AsyncCoroutine adapts an AsyncFunc into a Generator (spec §4.5). At
// construction the computation is submitted to the host runtime (a
// goroutine supervised by a bigbuff.Worker, mirroring how the teacher's
// Manager supervises Tickers in manager.go) and a handle retained; Step
// only inspects that handle - the coroutine is never driven by the
// Kernel's tick, only observed by it.
type AsyncCoroutine struct {
	GeneratorBase
	worker bigbuff.Worker
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	done bool
	err  error
}

var _ Generator = (*AsyncCoroutine)(nil)

// NewAsyncCoroutine submits fn to run in the background immediately and
// returns a Generator observing its outcome. Cancelling the returned
// coroutine's context (via Cancel) is the cooperative-cancellation
// mechanism described in spec §5: dropping the coroutine from its parent
// does not itself stop fn, but calling Cancel signals it to abort.
func NewAsyncCoroutine(ctx context.Context, fn AsyncFunc) *AsyncCoroutine {
	if ctx == nil {
		ctx = context.Background()
	}
	a := &AsyncCoroutine{GeneratorBase: NewGeneratorBase()}
	a.ctx, a.cancel = context.WithCancel(ctx)

	// a.worker.Do both launches fn in its own goroutine and supervises it,
	// the way manager.go's Manager supervises each registered Ticker;
	// releasing immediately hands the goroutine fully to the worker,
	// since this coroutine has exactly one caller and no shared lifecycle
	// to coordinate.
	release := a.worker.Do(func(stop <-chan struct{}) {
		err := fn(a.ctx)
		a.mu.Lock()
		a.done = true
		a.err = err
		a.mu.Unlock()
	})
	release()

	return a
}

func (a *AsyncCoroutine) Named(name string) Generator {
	a.SetName(name)
	return a
}

// Cancel requests the wrapped computation abort, per spec §5's
// cooperative cancellation contract: there is no guarantee of immediate
// stoppage, only that the library stops observing the computation once
// it is no longer reachable from a Kernel-driven parent.
func (a *AsyncCoroutine) Cancel() { a.cancel() }

func (a *AsyncCoroutine) Step(tf TimeFrame) error {
	if !a.beginStep() {
		return nil
	}
	a.mu.Lock()
	done, err := a.done, a.err
	a.mu.Unlock()

	if !done {
		a.markRunning()
		return nil
	}
	a.markIdle()
	if err != nil {
		a.Fail(CoroutineFailed(err))
		return nil
	}
	a.Complete()
	return nil
}
