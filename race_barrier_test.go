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
	"testing"
)

func TestRaceBarrier_firstCompletionWins(t *testing.T) {
	r := NewRaceBarrier()
	r.Activate()

	winner := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) { return Done, nil })
	loser := newStubGenerator()
	winner.Activate()
	loser.Activate()
	r.AddChild(winner)
	r.AddChild(loser)

	stepUntilTerminal(r, 10)

	if r.Winner() != Generator(winner) {
		t.Fatal("expected winner to be recorded")
	}
	if !r.IsCompleted() {
		t.Error("expected the RaceBarrier to complete when its winner completed")
	}
}

func TestRaceBarrier_firstFailureWins(t *testing.T) {
	r := NewRaceBarrier()
	r.Activate()

	reason := errors.New("deadline exceeded")
	failer := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) { return SyncFailed, reason })
	other := newStubGenerator()
	failer.Activate()
	other.Activate()
	r.AddChild(failer)
	r.AddChild(other)

	stepUntilTerminal(r, 10)

	if !r.IsFailed() {
		t.Fatal("expected the RaceBarrier to fail when its winner failed")
	}
	if !errors.Is(r.Err(), reason) {
		t.Error("expected the RaceBarrier's error to wrap the winner's reason")
	}
}

func TestRaceBarrier_cancelLosers(t *testing.T) {
	r := NewRaceBarrier()
	r.Activate()

	winner := NewSyncCoroutine(func(TimeFrame) (SyncStatus, error) { return Done, nil })
	loser := newStubGenerator()
	winner.Activate()
	loser.Activate()
	r.AddChild(winner)
	r.AddChild(loser)

	stepUntilTerminal(r, 10)
	r.CancelLosers()

	if !loser.State().Terminal() {
		t.Error("expected CancelLosers to complete the non-winning child")
	}
}
