// Package bem rewrites component at-rules (@component-namespace, @component,
// @utility, @modifier, @descendent, @when) into plain CSS rules following SUIT
// or BEM naming conventions.
//
// Transformation works on an already parsed css.Stylesheet. For every node a
// new list of replacement nodes is built, so input tree is not modified until
// the whole walk succeeds. Naming state (convention, separators, namespace and
// selectors of the enclosing rule) flows down the walk in Context values.
package bem

import (
	"fmt"

	"go.uber.org/zap"

	"cssbem/css"
)

// Options configures transformation run.
type Options struct {
	Style            Style
	DefaultNamespace string               // used when no @component-namespace is active
	Separators       map[Separator]string // overrides of convention defaults
	Shortcuts        map[Kind]string      // alternative at-rule keywords, one per kind
}

// Transformer rewrites stylesheets. It keeps no per-run state and could be
// used for any number of stylesheets.
type Transformer struct {
	style            Style
	separators       Separators
	defaultNamespace string
	shortcuts        shortcuts
	log              *zap.Logger
}

// New validates options and creates Transformer.
func New(opts Options, log *zap.Logger) (*Transformer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !opts.Style.IsValid() {
		return nil, fmt.Errorf("unsupported naming style: %s", opts.Style)
	}
	for sep := range opts.Separators {
		if !sep.IsValid() {
			return nil, fmt.Errorf("unsupported separator override: %s", sep)
		}
	}
	sc, err := newShortcuts(opts.Shortcuts)
	if err != nil {
		return nil, fmt.Errorf("bad shortcuts: %w", err)
	}
	return &Transformer{
		style:            opts.Style,
		separators:       ResolveSeparators(opts.Style, opts.Separators),
		defaultNamespace: opts.DefaultNamespace,
		shortcuts:        sc,
		log:              log.Named("bem"),
	}, nil
}

// Context returns naming context for the document root.
func (t *Transformer) Context() Context {
	return Context{Style: t.style, Separators: t.separators}
}

// Resolve returns kind of at-rule keyword taking shortcuts into account.
func (t *Transformer) Resolve(keyword string) Kind {
	return t.shortcuts.resolve(keyword)
}

// Components lists names of components declared in the stylesheet at the
// document root or inside @component-namespace blocks, in source order.
// Malformed declarations are skipped.
func (t *Transformer) Components(sheet *css.Stylesheet) []string {
	var names []string
	var collect func(nodes []css.Node)
	collect = func(nodes []css.Node) {
		for _, n := range nodes {
			a, ok := n.(*css.AtRule)
			if !ok {
				continue
			}
			switch t.Resolve(a.Name) {
			case KindNamespace:
				collect(a.Nodes)
			case KindComponent:
				entries, _, err := ExpandNames(a.Params, KindComponent)
				if err != nil {
					continue
				}
				names = append(names, entryNames(entries)...)
			}
		}
	}
	collect(sheet.Nodes)
	return names
}

// Transform rewrites stylesheet. Warnings are appended to sheet.Warnings. On
// fatal problem *SyntaxError is returned and sheet nodes are left as they were.
func (t *Transformer) Transform(sheet *css.Stylesheet) error {
	w := &walk{t: t}
	nodes, err := w.siblings(sheet.Nodes, t.Context(), false)
	for _, warn := range w.warnings {
		sheet.Warn(warn.Text, warn.Line)
	}
	if err != nil {
		t.log.Debug("Transformation aborted", zap.Error(err))
		return err
	}
	t.log.Debug("Transformation completed", zap.Int("nodes", len(nodes)), zap.Int("warnings", len(w.warnings)))
	sheet.Nodes = nodes
	return nil
}

// walk holds diagnostics of a single Transform call.
type walk struct {
	t        *Transformer
	warnings []css.Warning
}

func (w *walk) warn(text string, line int) {
	w.t.log.Debug("Warning", zap.String("text", text), zap.Int("line", line))
	w.warnings = append(w.warnings, css.Warning{Text: text, Line: line})
}

// siblings rewrites list where each node is replaced in place by its
// results: document root and @component-namespace blocks. Statement form
// @component-namespace changes context for the following siblings only.
func (w *walk) siblings(nodes []css.Node, ctx Context, dropDeclarations bool) ([]css.Node, error) {
	var out []css.Node
	for _, n := range nodes {
		switch n := n.(type) {
		case *css.AtRule:
			kind := w.t.Resolve(n.Name)
			if kind == KindNamespace && !n.HasBlock {
				ns, err := w.namespace(n)
				if err != nil {
					return nil, err
				}
				ctx = ctx.withNamespace(ns)
				continue
			}
			res, err := w.atRule(n, kind, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, res...)
		case *css.Rule:
			res, err := w.emit(n.Line, n.Selectors, n.Nodes, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, res...)
		case *css.Declaration:
			if !dropDeclarations {
				out = append(out, n.Clone())
			}
		default:
			out = append(out, n.Clone())
		}
	}
	return out, nil
}

// body processes block content of a rule being emitted. Declarations,
// comments, passthrough at-rules and nested plain rules stay in the rule.
// Results of nested active at-rules go after the rule in source order.
func (w *walk) body(nodes []css.Node, ctx Context) (kept, emitted []css.Node, err error) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *css.AtRule:
			kind := w.t.Resolve(n.Name)
			if !IsActive(ctx.Style, kind) {
				w.passthrough(n, kind, ctx.Style)
				kept = append(kept, n.Clone())
				continue
			}
			if kind == KindNamespace && !n.HasBlock {
				ns, err := w.namespace(n)
				if err != nil {
					return nil, nil, err
				}
				ctx = ctx.withNamespace(ns)
				continue
			}
			res, err := w.atRule(n, kind, ctx)
			if err != nil {
				return nil, nil, err
			}
			emitted = append(emitted, res...)
		case *css.Rule:
			res, err := w.emit(n.Line, n.Selectors, n.Nodes, ctx)
			if err != nil {
				return nil, nil, err
			}
			kept = append(kept, res...)
		default:
			kept = append(kept, n.Clone())
		}
	}
	return kept, emitted, nil
}

// atRule returns replacement nodes for a single at-rule.
func (w *walk) atRule(a *css.AtRule, kind Kind, ctx Context) ([]css.Node, error) {
	if !IsActive(ctx.Style, kind) {
		w.passthrough(a, kind, ctx.Style)
		return []css.Node{a.Clone()}, nil
	}

	entries, err := w.expand(a, kind)
	if err != nil {
		return nil, err
	}

	var selectors []string
	switch kind {
	case KindNamespace:
		return w.siblings(a.Nodes, ctx.withNamespace(entries[0].Name), true)
	case KindComponent:
		selectors = w.componentSelectors(entries, ctx)
	case KindUtility:
		selectors = utilitySelectors(entries, ctx.Separators)
	case KindModifier, KindDescendent, KindWhen:
		if ctx.AtRoot() {
			return nil, fatal(a.Line, "@%s can only be used in rules which are not the root node", kind.Keyword())
		}
		join := ctx.Separators.Modifier
		switch kind {
		case KindDescendent:
			join = ctx.Separators.Descendent
		case KindWhen:
			join = ctx.Separators.State
		}
		selectors = Combine(ctx.Ancestors, entryNames(entries), join)
	default:
		// never happens: all active kinds are handled above
		panic(fmt.Sprintf("unexpected at-rule kind %d", kind))
	}

	w.t.log.Debug("Rewriting at-rule",
		zap.String("kind", kind.Keyword()), zap.String("params", a.Params), zap.Strings("selectors", selectors), zap.Int("line", a.Line))
	return w.emit(a.Line, selectors, a.Nodes, ctx)
}

// passthrough reports component at-rules left inside blocks of unrecognized
// at-rules, they reach the output as written.
func (w *walk) passthrough(a *css.AtRule, kind Kind, style Style) {
	if kind != KindUnrecognized {
		return
	}
	var scan func(nodes []css.Node)
	scan = func(nodes []css.Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *css.AtRule:
				if IsActive(style, w.t.Resolve(n.Name)) {
					w.warn(fmt.Sprintf("@%s inside @%s is not processed", n.Name, a.Name), n.Line)
					continue
				}
				scan(n.Nodes)
			case *css.Rule:
				scan(n.Nodes)
			}
		}
	}
	scan(a.Nodes)
}

// emit builds rule with selectors followed by rules generated by its nested
// at-rules. Nested content sees selectors as its ancestors.
func (w *walk) emit(line int, selectors []string, nodes []css.Node, ctx Context) ([]css.Node, error) {
	kept, emitted, err := w.body(nodes, ctx.withAncestors(selectors))
	if err != nil {
		return nil, err
	}
	own := &css.Rule{Selectors: append([]string(nil), selectors...), Nodes: kept, Line: line}
	return append([]css.Node{own}, emitted...), nil
}

func (w *walk) namespace(a *css.AtRule) (string, error) {
	entries, err := w.expand(a, KindNamespace)
	if err != nil {
		return "", err
	}
	return entries[0].Name, nil
}

func (w *walk) expand(a *css.AtRule, kind Kind) ([]Entry, error) {
	entries, warnings, err := ExpandNames(a.Params, kind)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok && se.Line == 0 {
			se.Line = a.Line
		}
		return nil, err
	}
	for _, text := range warnings {
		w.warn(text, a.Line)
	}
	return entries, nil
}

func (w *walk) componentSelectors(entries []Entry, ctx Context) []string {
	ns := ctx.Namespace
	if ns == "" {
		ns = w.t.defaultNamespace
	}
	selectors := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if ns != "" {
			name = ns + ctx.Separators.Namespace + name
		}
		selectors = append(selectors, "."+name)
	}
	return selectors
}

func utilitySelectors(entries []Entry, seps Separators) []string {
	selectors := make([]string, 0, len(entries))
	for _, e := range entries {
		name := "u" + seps.Namespace
		if e.HasVariant {
			name += e.Variant + seps.Namespace
		}
		selectors = append(selectors, "."+name+e.Name)
	}
	return selectors
}

func entryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
