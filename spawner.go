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

// SpawnFunc decides, for a given tick, what new work (if any) a Spawner
// should mint. Returning a non-nil child adds it to the Spawner's target
// Container this tick; returning done=true completes the Spawner itself
// (no further spawning).
type SpawnFunc func(tf TimeFrame) (child Generator, done bool)

// Spawner is a supplemental leaf Generator (see SPEC_FULL.md) that mints
// new child Generators into a target Container over time, rather than
// owning children itself. Grounded on the teacher's Fork (fork.go),
// reshaped from "fan out and rejoin a fixed child set" into "mint new
// work on demand" - the shape needed for e.g. a server accepting a
// steady stream of independent units of work onto one Kernel.
type Spawner struct {
	GeneratorBase
	target  Container
	factory SpawnFunc
}

var _ Generator = (*Spawner)(nil)

// NewSpawner constructs an Inactive Spawner that adds the Generators
// factory returns to target.
func NewSpawner(target Container, factory SpawnFunc) *Spawner {
	return &Spawner{GeneratorBase: NewGeneratorBase(), target: target, factory: factory}
}

func (s *Spawner) Named(name string) Generator {
	s.SetName(name)
	return s
}

func (s *Spawner) Step(tf TimeFrame) error {
	if !s.beginStep() {
		return nil
	}
	if s.factory == nil {
		s.markIdle()
		return nil
	}
	s.markRunning()
	child, done := s.factory(tf)
	if child != nil {
		s.target.AddChild(child)
	}
	s.markIdle()
	if done {
		s.Complete()
	}
	return nil
}
