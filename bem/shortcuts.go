package bem

import "fmt"

// shortcuts maps at-rule keyword (alias or canonical) to its kind.
type shortcuts map[string]Kind

// newShortcuts validates aliases and prepares lookup table. Canonical keywords
// always stay available.
func newShortcuts(aliases map[Kind]string) (shortcuts, error) {
	table := make(shortcuts, len(kindKeywords)+len(aliases))
	for _, k := range Kinds() {
		table[k.Keyword()] = k
	}
	for kind, alias := range aliases {
		if kind <= KindUnrecognized || !kind.IsValid() {
			return nil, fmt.Errorf("shortcut %q defined for unknown at-rule kind", alias)
		}
		if alias == "" {
			return nil, fmt.Errorf("empty shortcut for @%s", kind.Keyword())
		}
		if prev, exists := table[alias]; exists && prev != kind {
			return nil, fmt.Errorf("shortcut %q for @%s is already used by @%s", alias, kind.Keyword(), prev.Keyword())
		}
		table[alias] = kind
	}
	return table, nil
}

// resolve returns kind for at-rule keyword. Unknown keywords resolve to
// KindUnrecognized.
func (s shortcuts) resolve(keyword string) Kind {
	if k, ok := s[keyword]; ok {
		return k
	}
	return KindUnrecognized
}
