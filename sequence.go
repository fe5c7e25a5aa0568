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

// Sequence is the ordered composite from spec §4.3: it holds children
// plus a current index, stepping only the child at that index each tick
// and advancing the index once that child is terminal. A Failed child is
// terminal for advancement purposes - it does not abort the Sequence,
// which is this library's chosen (non-strict) Sequence contract; see
// Invert for building stricter variants on top.
//
// An empty Sequence is Completed on its first Step. Children added after
// completion are ignored; children added while running are picked up
// naturally when the index reaches them.
type Sequence struct {
	GeneratorBase
	childList
	idxMu sync.Mutex
	idx   int
}

var _ Container = (*Sequence)(nil)

// NewSequence constructs an Inactive Sequence with no children.
func NewSequence() *Sequence {
	return &Sequence{GeneratorBase: NewGeneratorBase()}
}

func (s *Sequence) Named(name string) Generator {
	s.SetName(name)
	return s
}

func (s *Sequence) AddChild(g Generator) { s.childList.add(g) }
func (s *Sequence) RemoveChild(id GeneratorID) bool {
	return s.childList.remove(id)
}
func (s *Sequence) Children() []Generator { return s.childList.snapshot() }
func (s *Sequence) ChildrenCount() int    { return s.childList.count() }
func (s *Sequence) ClearCompleted()       { s.childList.clearCompleted() }

// Index returns the current position; bounded by ChildrenCount.
func (s *Sequence) Index() int {
	s.idxMu.Lock()
	defer s.idxMu.Unlock()
	return s.idx
}

func (s *Sequence) Step(tf TimeFrame) error {
	if !s.beginStep() {
		return nil
	}
	children := s.childList.snapshot()

	s.idxMu.Lock()
	idx := s.idx
	s.idxMu.Unlock()

	if idx >= len(children) {
		s.markIdle()
		s.Complete()
		return nil
	}

	s.markRunning()
	child := children[idx]
	_ = child.Step(tf)
	if child.State().Terminal() {
		s.idxMu.Lock()
		if s.idx == idx {
			s.idx++
		}
		s.idxMu.Unlock()
	}
	s.markIdle()
	return nil
}
