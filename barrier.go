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

// Barrier is the concurrent composite from spec §4.4: every non-terminal
// child is stepped once per tick, in insertion order, and the Barrier
// completes once every child is terminal and at least one child was ever
// added. An empty Barrier remains Active until a child is added or it is
// completed explicitly by the caller. A Failed child counts as terminal
// for completion purposes.
type Barrier struct {
	GeneratorBase
	childList
}

var _ Container = (*Barrier)(nil)

// NewBarrier constructs an Inactive Barrier with no children.
func NewBarrier() *Barrier {
	return &Barrier{GeneratorBase: NewGeneratorBase()}
}

func (b *Barrier) Named(name string) Generator {
	b.SetName(name)
	return b
}

func (b *Barrier) AddChild(g Generator)            { b.childList.add(g) }
func (b *Barrier) RemoveChild(id GeneratorID) bool { return b.childList.remove(id) }
func (b *Barrier) Children() []Generator           { return b.childList.snapshot() }
func (b *Barrier) ChildrenCount() int              { return b.childList.count() }
func (b *Barrier) ClearCompleted()                 { b.childList.clearCompleted() }

func (b *Barrier) Step(tf TimeFrame) error {
	if !b.beginStep() {
		return nil
	}
	children := b.childList.snapshot()
	if len(children) == 0 {
		b.markIdle()
		return nil
	}

	b.markRunning()
	allTerminal := true
	errs := make([]error, 0, len(children))
	for _, child := range children {
		if child.State().Terminal() {
			continue
		}
		errs = append(errs, child.Step(tf))
		if !child.State().Terminal() {
			allTerminal = false
		}
	}
	b.markIdle()
	if allTerminal {
		b.Complete()
	}
	return combineErrors(errs)
}
