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

import "errors"

var errBoom = errors.New("boom")

// stepUntilTerminal steps g up to max times, stopping early once terminal;
// used by tests that don't care exactly which tick a composite settles on.
func stepUntilTerminal(g Generator, max int) {
	for i := 0; i < max && !g.State().Terminal(); i++ {
		_ = g.Step(TimeFrame{})
	}
}
