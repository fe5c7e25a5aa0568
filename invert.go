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

// invert decorates a Generator so that its Completed/Failed outcomes
// read as swapped: IsCompleted reports true where the wrapped Generator
// is Failed, and IsFailed reports true where it is Completed. Step,
// Pause, Resume, Activate and the other mutators pass straight through
// to the wrapped Generator - only the read side is inverted. Grounded on
// the teacher's Not (not.go), adapted from a Tick-return transform to a
// Generator state-read transform.
type invert struct {
	Generator
}

// Invert wraps g so reading Completed/Failed swaps, letting a caller
// build "abort on success" or "fire unless X happens" compositions (e.g.
// a watchdog Trigger over an inverted child) without a second Trigger
// condition language. Invert of a nil Generator returns nil.
func Invert(g Generator) Generator {
	if g == nil {
		return nil
	}
	return invert{Generator: g}
}

func (i invert) State() State {
	switch s := i.Generator.State(); s {
	case Completed:
		return Failed
	case Failed:
		return Completed
	default:
		return s
	}
}

func (i invert) IsCompleted() bool { return i.Generator.IsFailed() }
func (i invert) IsFailed() bool    { return i.Generator.IsCompleted() }

func (i invert) Err() error {
	if i.Generator.IsFailed() {
		return nil
	}
	return i.Generator.Err()
}

func (i invert) Named(name string) Generator {
	i.Generator.Named(name)
	return i
}
