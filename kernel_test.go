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
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestKernel_runUntilComplete(t *testing.T) {
	k := New(WithTickQuantum(time.Microsecond))

	calls := 0
	child := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) {
		calls++
		if calls < 3 {
			return Continue, nil
		}
		return Done, nil
	})
	k.Root().AddChild(child)

	if err := k.RunUntilComplete(); err != nil {
		t.Fatal(err)
	}
	if !child.IsCompleted() {
		t.Error("expected the child to have completed")
	}
}

func TestKernel_breakFlow(t *testing.T) {
	k := New(WithTickQuantum(time.Microsecond))

	never := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) { return Continue, nil })
	k.Root().AddChild(never)

	go func() {
		time.Sleep(5 * time.Millisecond)
		k.BreakFlow()
	}()

	err := k.RunUntilComplete()
	if !errors.Is(err, ErrKernelBroken) {
		t.Fatalf("expected ErrKernelBroken, got %v", err)
	}
}

func TestKernel_runFor_succeedsWithoutCompletion(t *testing.T) {
	k := New(WithTickQuantum(time.Microsecond))

	never := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) { return Continue, nil })
	k.Root().AddChild(never)

	err := k.RunFor(5 * time.Millisecond)
	if err != nil {
		t.Fatalf("expected RunFor to report success when its budget is exhausted, got %v", err)
	}
	if never.State().Terminal() {
		t.Error("expected the unfinished child to remain non-terminal")
	}
}

func TestKernel_clearsCompletedChildren(t *testing.T) {
	k := New(WithTickQuantum(time.Microsecond))

	done := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) { return Done, nil })
	k.Root().AddChild(done)

	if err := k.RunUntilComplete(); err != nil {
		t.Fatal(err)
	}
	if k.Root().ChildrenCount() != 0 {
		t.Errorf("expected the root to prune completed children, got %d remaining", k.Root().ChildrenCount())
	}
}

func TestKernel_wait(t *testing.T) {
	var nowNano atomic.Int64
	nowNano.Store(time.Unix(0, 0).UnixNano())
	k := New(WithTickQuantum(time.Microsecond), WithClock(ClockFunc(func() time.Time {
		return time.Unix(0, nowNano.Load())
	})))

	calls := 0
	child := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) {
		calls++
		return Done, nil
	})
	k.Root().AddChild(child)
	k.Wait(time.Hour)

	done := make(chan error, 1)
	go func() { done <- k.RunUntilComplete() }()

	select {
	case <-done:
		t.Fatal("expected RunUntilComplete to block while waiting")
	case <-time.After(20 * time.Millisecond):
	}
	if calls != 0 {
		t.Error("expected the child to not be stepped while the Kernel is waiting")
	}

	nowNano.Add(int64(2 * time.Hour))

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected RunUntilComplete to proceed once the wait elapsed")
	}
}

func TestKernel_runInBackground(t *testing.T) {
	k := New(WithTickQuantum(time.Microsecond))
	never := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) { return Continue, nil })
	k.Root().AddChild(never)

	stop := k.RunInBackground()
	time.Sleep(5 * time.Millisecond)
	stop()
}
