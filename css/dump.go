package css

import (
	"fmt"
	"strconv"
	"strings"
)

// treeWriter accumulates indented description of the tree.
type treeWriter struct {
	w *strings.Builder
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func quote(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}

// Dump returns human readable description of the tree structure with source
// lines, used in debug reports.
func (s *Stylesheet) Dump() string {
	tw := treeWriter{w: &strings.Builder{}}
	tw.line(0, "Stylesheet: nodes=%d warnings=%d", len(s.Nodes), len(s.Warnings))
	dumpNodes(tw, 1, s.Nodes)
	for _, w := range s.Warnings {
		tw.line(1, "Warning[%d]: %s", w.Line, quote(w.Text))
	}
	return tw.w.String()
}

func dumpNodes(tw treeWriter, depth int, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *AtRule:
			if n.HasBlock {
				tw.line(depth, "AtRule[%d]: @%s %s block=%d", n.Line, n.Name, quote(n.Params), len(n.Nodes))
				dumpNodes(tw, depth+1, n.Nodes)
			} else {
				tw.line(depth, "AtRule[%d]: @%s %s", n.Line, n.Name, quote(n.Params))
			}
		case *Rule:
			tw.line(depth, "Rule[%d]: %s block=%d", n.Line, quote(n.Selector()), len(n.Nodes))
			dumpNodes(tw, depth+1, n.Nodes)
		case *Declaration:
			if n.Important {
				tw.line(depth, "Declaration[%d]: %s = %s !important", n.Line, n.Property, quote(n.Value))
			} else {
				tw.line(depth, "Declaration[%d]: %s = %s", n.Line, n.Property, quote(n.Value))
			}
		case *Comment:
			tw.line(depth, "Comment[%d]: %s", n.Line, quote(n.Text))
		}
	}
}
