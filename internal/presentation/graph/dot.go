// Package graph renders a chart as Graphviz DOT for quick visual inspection
// of the declared hierarchy.
package graph

import (
	"bytes"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// DOT renders the chart as a digraph. Composite states are drawn as boxes,
// leaves as ellipses; solid edges are parent containment, dashed edges point
// at a composite's default child.
func DOT(c *domain.Chart, name string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("\trankdir=TB;\n")

	for i := 0; i < c.Len(); i++ {
		shape := "ellipse"
		if !c.IsLeaf(i) {
			shape = "box"
		}
		fmt.Fprintf(&buf, "\t%q [shape=%s];\n", c.ID(i), shape)
	}

	for i := 0; i < c.Len(); i++ {
		if p := c.Parent(i); p != domain.None {
			fmt.Fprintf(&buf, "\t%q -> %q;\n", c.ID(p), c.ID(i))
		}
	}
	for i := 0; i < c.Len(); i++ {
		if init := c.Initial(i); init != domain.None {
			fmt.Fprintf(&buf, "\t%q -> %q [style=dashed, label=\"initial\"];\n", c.ID(i), c.ID(init))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
