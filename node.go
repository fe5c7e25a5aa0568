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

// Node is the untyped container from spec §4.2: it propagates Step to
// every child in insertion order, never completes on its own (it remains
// Active for as long as it exists), and a child's failure neither stops
// its siblings nor changes the Node's own lifecycle state - children's
// Step errors are aggregated and returned from the Node's own Step
// instead, via combineErrors.
type Node struct {
	GeneratorBase
	childList
}

var _ Container = (*Node)(nil)

// NewNode constructs an Inactive Node with no children.
func NewNode() *Node {
	return &Node{GeneratorBase: NewGeneratorBase()}
}

// Named sets the diagnostic name and returns the receiver.
func (n *Node) Named(name string) Generator {
	n.SetName(name)
	return n
}

func (n *Node) AddChild(g Generator)            { n.childList.add(g) }
func (n *Node) RemoveChild(id GeneratorID) bool { return n.childList.remove(id) }
func (n *Node) Children() []Generator           { return n.childList.snapshot() }
func (n *Node) ChildrenCount() int              { return n.childList.count() }
func (n *Node) ClearCompleted()                 { n.childList.clearCompleted() }

// Step ticks every child once, in insertion order. Node itself never
// reaches a terminal state via Step; a caller wanting to end a Node must
// call Complete or Fail explicitly.
func (n *Node) Step(tf TimeFrame) error {
	if !n.beginStep() {
		return nil
	}
	children := n.childList.snapshot()
	if len(children) == 0 {
		n.markIdle()
		return nil
	}
	n.markRunning()
	errs := make([]error, 0, len(children))
	for _, child := range children {
		// A child's failure is also observable via child.Err, and does
		// not change the Node's own lifecycle state (spec §4.2); its
		// error return is only aggregated into the Node's own Step
		// return.
		errs = append(errs, child.Step(tf))
	}
	n.markIdle()
	return combineErrors(errs)
}
