package css

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Node is a single item of a stylesheet tree: at-rule, rule, declaration or
// comment.
type Node interface {
	// SourceLine returns line number in source for error reporting, 0 if unknown.
	SourceLine() int
	// Clone returns deep copy of the node.
	Clone() Node
}

// AtRule represents "@name params { nodes }" or a statement "@name params;".
type AtRule struct {
	Name     string // Keyword without leading "@" (e.g., "component", "media")
	Params   string // Prelude text with whitespace collapsed
	Nodes    []Node // Block content, nil for statements
	HasBlock bool   // false for statement form ("@import x;")
	Line     int
}

func (a *AtRule) SourceLine() int { return a.Line }

func (a *AtRule) Clone() Node {
	c := *a
	c.Nodes = cloneNodes(a.Nodes)
	return &c
}

// Rule represents ordinary qualified rule (selector list + block).
type Rule struct {
	Selectors []string // Comma separated selector list, in source order
	Nodes     []Node
	Line      int
}

func (r *Rule) SourceLine() int { return r.Line }

func (r *Rule) Clone() Node {
	c := *r
	c.Selectors = slices.Clone(r.Selectors)
	c.Nodes = cloneNodes(r.Nodes)
	return &c
}

// Selector returns selector list as written by the writer.
func (r *Rule) Selector() string {
	return strings.Join(r.Selectors, ", ")
}

// Declaration represents "property: value".
type Declaration struct {
	Property  string
	Value     string
	Important bool
	Line      int
}

func (d *Declaration) SourceLine() int { return d.Line }

func (d *Declaration) Clone() Node {
	c := *d
	return &c
}

// Comment keeps comment text without "/*" and "*/".
type Comment struct {
	Text string
	Line int
}

func (c *Comment) SourceLine() int { return c.Line }

func (c *Comment) Clone() Node {
	n := *c
	return &n
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Clone())
	}
	return out
}

// Warning is a non fatal problem found while processing stylesheet.
type Warning struct {
	Text string
	Line int
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Text)
	}
	return w.Text
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Nodes    []Node    // All top-level nodes in source order
	Warnings []Warning // Warnings accumulated by parser and transformations
}

// Warn appends warning to the stylesheet.
func (s *Stylesheet) Warn(text string, line int) {
	s.Warnings = append(s.Warnings, Warning{Text: text, Line: line})
}

// Rules returns all top-level rules in source order.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	for _, n := range s.Nodes {
		if r, ok := n.(*Rule); ok {
			rules = append(rules, r)
		}
	}
	return rules
}

// AtRules returns all top-level at-rules with the given name in source order.
func (s *Stylesheet) AtRules(name string) []*AtRule {
	var rules []*AtRule
	for _, n := range s.Nodes {
		if a, ok := n.(*AtRule); ok && a.Name == name {
			rules = append(rules, a)
		}
	}
	return rules
}

const indentUnit = "    "

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, n := range s.Nodes {
		writeNode(cw, n, 0)
		if cw.err != nil {
			break
		}
	}
	return cw.n, cw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// countingWriter keeps the first error and total so node writers do not have
// to check every write.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}

func writeNode(cw *countingWriter, n Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch n := n.(type) {
	case *Declaration:
		if n.Important {
			cw.printf("%s%s: %s !important;\n", indent, n.Property, n.Value)
		} else {
			cw.printf("%s%s: %s;\n", indent, n.Property, n.Value)
		}
	case *Comment:
		cw.printf("%s/*%s*/\n", indent, n.Text)
	case *Rule:
		writeBlock(cw, indent+n.Selector(), n.Nodes, depth)
	case *AtRule:
		head := indent + "@" + n.Name
		if n.Params != "" {
			head += " " + n.Params
		}
		if !n.HasBlock {
			cw.printf("%s;\n", head)
			return
		}
		writeBlock(cw, head, n.Nodes, depth)
	}
}

func writeBlock(cw *countingWriter, head string, nodes []Node, depth int) {
	if len(nodes) == 0 {
		cw.printf("%s {}\n", head)
		return
	}
	cw.printf("%s {\n", head)
	for _, child := range nodes {
		writeNode(cw, child, depth+1)
	}
	cw.printf("%s}\n", strings.Repeat(indentUnit, depth))
}
