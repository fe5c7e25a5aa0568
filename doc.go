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

// Package flow is a cooperative flow-graph scheduler: it lets a caller
// express structured, time-aware asynchronous workflows as a tree of
// composable Generators (sequences, barriers, timers, triggers,
// coroutines, futures) and drives that tree forward, tick by tick, on a
// single-threaded cooperative Kernel.
//
// The package does not provide example programs, a CLI, or logging
// setup beyond an optional diagnostic sink - callers instantiate a
// Kernel, build a tree under its root Node, and dispose of it.
package flow
