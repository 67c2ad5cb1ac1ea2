package bem

import "slices"

// Context is naming state for one branch of the tree walk. Values are never
// modified in place: every derivation returns a copy, so siblings cannot see
// each other's changes.
type Context struct {
	Style      Style
	Separators Separators
	// Namespace set by the nearest @component-namespace, empty if none.
	Namespace string
	// Ancestors are selectors emitted for the nearest enclosing rule, empty
	// at the document root.
	Ancestors []string
}

// AtRoot reports whether there is no enclosing rule.
func (c Context) AtRoot() bool {
	return len(c.Ancestors) == 0
}

func (c Context) withNamespace(ns string) Context {
	c.Namespace = ns
	return c
}

func (c Context) withAncestors(selectors []string) Context {
	c.Ancestors = slices.Clone(selectors)
	return c
}
