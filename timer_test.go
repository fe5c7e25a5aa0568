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
	"testing"
	"time"
)

func TestTimer_firesOnceElapsed(t *testing.T) {
	timer := NewTimer(10 * time.Millisecond)
	fired := 0
	timer.SetElapsedCallback(func() { fired++ })
	timer.Activate()

	start := time.Now()

	// Inactive->Active is handled by Activate itself here, so the very
	// first Step records start_time.
	if err := timer.Step(TimeFrame{Now: start}); err != nil {
		t.Fatal(err)
	}
	if timer.State().Terminal() {
		t.Fatal("expected the Timer not to complete before its duration elapses")
	}

	if err := timer.Step(TimeFrame{Now: start.Add(5 * time.Millisecond)}); err != nil {
		t.Fatal(err)
	}
	if fired != 0 {
		t.Fatal("expected no callback before the duration elapses")
	}

	if err := timer.Step(TimeFrame{Now: start.Add(11 * time.Millisecond)}); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("expected the callback to fire exactly once, got %d", fired)
	}
	if !timer.IsCompleted() {
		t.Error("expected the Timer to complete once elapsed")
	}
}

func TestTimer_callbackPanicFailsTimer(t *testing.T) {
	timer := NewTimer(time.Millisecond)
	timer.SetElapsedCallback(func() { panic("boom") })
	timer.Activate()

	start := time.Now()
	_ = timer.Step(TimeFrame{Now: start})
	_ = timer.Step(TimeFrame{Now: start.Add(time.Hour)})

	if !timer.IsFailed() {
		t.Fatalf("expected a panicking callback to fail the Timer, got %s", timer.State())
	}
}
