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

import "testing"

func TestTrigger_firesOnceConditionTrue(t *testing.T) {
	threshold := 3
	calls := 0
	trig := NewTrigger(func(TimeFrame) bool {
		calls++
		return calls >= threshold
	})
	fired := 0
	trig.SetTriggeredCallback(func() { fired++ })
	trig.Activate()

	stepUntilTerminal(trig, 10)

	if fired != 1 {
		t.Fatalf("expected the callback to fire exactly once, got %d", fired)
	}
	if !trig.Latched() {
		t.Error("expected Latched true once fired")
	}
	if !trig.IsCompleted() {
		t.Error("expected the Trigger to complete once fired")
	}

	// further steps must not re-fire.
	_ = trig.Step(TimeFrame{})
	if fired != 1 {
		t.Error("expected a Trigger to fire at most once per lifetime")
	}
}

func TestTrigger_nilConditionNeverFires(t *testing.T) {
	trig := NewTrigger(nil)
	trig.Activate()
	for i := 0; i < 5; i++ {
		_ = trig.Step(TimeFrame{})
	}
	if trig.State().Terminal() {
		t.Error("expected a Trigger with a nil condition to never fire")
	}
}

func TestTrigger_callbackPanicFailsTrigger(t *testing.T) {
	trig := NewTrigger(func(TimeFrame) bool { return true })
	trig.SetTriggeredCallback(func() { panic("boom") })
	trig.Activate()

	stepUntilTerminal(trig, 5)

	if !trig.IsFailed() {
		t.Fatalf("expected a panicking callback to fail the Trigger, got %s", trig.State())
	}
}
