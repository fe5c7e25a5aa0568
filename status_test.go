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
	"fmt"
	"testing"
)

func TestState_String(t *testing.T) {
	testCases := []struct {
		State  State
		String string
	}{
		{State: Inactive, String: `inactive`},
		{State: Active, String: `active`},
		{State: Running, String: `running`},
		{State: Completed, String: `completed`},
		{State: Failed, String: `failed`},
		{State: 234, String: `unknown state (234)`},
	}

	for i, testCase := range testCases {
		name := fmt.Sprintf("TestState_String_#%d", i)
		if actual := testCase.State.String(); actual != testCase.String {
			t.Errorf("%s failed: expected stringer '%s' != actual '%s'", name, testCase.String, actual)
		}
	}
}

func TestState_Terminal(t *testing.T) {
	testCases := []struct {
		State    State
		Terminal bool
	}{
		{State: Inactive, Terminal: false},
		{State: Active, Terminal: false},
		{State: Running, Terminal: false},
		{State: Completed, Terminal: true},
		{State: Failed, Terminal: true},
	}

	for i, testCase := range testCases {
		name := fmt.Sprintf("TestState_Terminal_#%d", i)
		if actual := testCase.State.Terminal(); actual != testCase.Terminal {
			t.Errorf("%s failed: expected %v != actual %v", name, testCase.Terminal, actual)
		}
	}
}
