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

import "github.com/google/uuid"

// GeneratorID is the stable, opaque 128-bit identity token assigned to
// every Generator at construction (spec §3, "Identity").
type GeneratorID = uuid.UUID

// newGeneratorID allocates a fresh identity token.
func newGeneratorID() GeneratorID {
	return uuid.New()
}
