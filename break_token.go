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

// BreakToken is the weak/back-reference handle described in spec §9's
// design note: a Trigger (or other leaf) callback that needs to request
// Kernel.break_flow captures a *BreakToken instead of the owning *Kernel,
// avoiding a reference cycle between a long-lived leaf and its Kernel.
// Kernel.Token returns the receiver's token; Kernel.BreakFlow and
// BreakToken.BreakFlow are equivalent.
type BreakToken struct {
	mu     sync.Mutex
	broken bool
}

// BreakFlow requests a graceful stop at the next tick boundary.
func (b *BreakToken) BreakFlow() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broken = true
}

// Broken reports whether BreakFlow has been called.
func (b *BreakToken) Broken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.broken
}

// reset clears the flag, used when a Kernel is reused across independent
// Run* calls after a prior break.
func (b *BreakToken) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broken = false
}
