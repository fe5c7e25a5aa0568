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
	"bytes"
	"fmt"
	"io"

	"github.com/xlab/treeprint"
)

// Printer models something capable of rendering a Generator subtree for
// diagnostics (spec §6), in the spirit of the teacher's printer.go.
type Printer interface {
	Fprint(output io.Writer, root Generator) error
}

// TreePrinter is the default Printer, built on github.com/xlab/treeprint.
// Each node is labelled with its name (or ID if unnamed) and State; a
// failed Generator's Err is appended.
type TreePrinter struct{}

// DefaultPrinter is used by String.
var DefaultPrinter Printer = TreePrinter{}

// String renders root using DefaultPrinter, for use in %v/%s formatting
// and ad-hoc debugging.
func String(root Generator) string {
	var b bytes.Buffer
	if err := DefaultPrinter.Fprint(&b, root); err != nil {
		return fmt.Sprintf("flow: print error: %s", err)
	}
	return b.String()
}

func (TreePrinter) Fprint(output io.Writer, root Generator) error {
	tree := treeprint.New()
	buildTree(tree, root)
	_, err := output.Write(tree.Bytes())
	return err
}

func buildTree(tree treeprint.Tree, g Generator) {
	if g == nil {
		tree.SetValue("<nil>")
		return
	}
	tree.SetValue(describe(g))
	if c, ok := g.(Container); ok {
		for _, child := range c.Children() {
			buildTree(tree.AddBranch(nil), child)
		}
	}
}

func describe(g Generator) string {
	name := g.Name()
	if name == "" {
		name = g.ID().String()
	}
	if g.IsFailed() {
		return fmt.Sprintf("%s [%s: %v]", name, g.State(), g.Err())
	}
	return fmt.Sprintf("%s [%s]", name, g.State())
}
