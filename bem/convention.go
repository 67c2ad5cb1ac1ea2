package bem

// Separators holds effective joins for all separator kinds.
type Separators struct {
	Namespace  string
	Modifier   string
	Descendent string
	State      string
}

var defaultSeparators = map[Style]Separators{
	StyleSuit: {Namespace: "-", Modifier: "--", Descendent: "-", State: ".is-"},
	// state is never used by BEM since @when is not processed there
	StyleBem: {Namespace: "--", Modifier: "_", Descendent: "__"},
}

// DefaultSeparators returns convention defaults.
func DefaultSeparators(style Style) Separators {
	return defaultSeparators[style]
}

// DefaultSeparator returns convention default for a single separator kind.
func DefaultSeparator(style Style, sep Separator) string {
	return DefaultSeparators(style).Get(sep)
}

// Get returns value of the requested separator.
func (s Separators) Get(sep Separator) string {
	switch sep {
	case SeparatorNamespace:
		return s.Namespace
	case SeparatorModifier:
		return s.Modifier
	case SeparatorDescendent:
		return s.Descendent
	case SeparatorState:
		return s.State
	}
	return ""
}

// With returns copy with a single separator replaced.
func (s Separators) With(sep Separator, value string) Separators {
	switch sep {
	case SeparatorNamespace:
		s.Namespace = value
	case SeparatorModifier:
		s.Modifier = value
	case SeparatorDescendent:
		s.Descendent = value
	case SeparatorState:
		s.State = value
	}
	return s
}

// ResolveSeparators fills separators from convention defaults and applies
// overrides on top. Unset keys keep defaults, overrides are independent.
func ResolveSeparators(style Style, overrides map[Separator]string) Separators {
	seps := DefaultSeparators(style)
	for sep, value := range overrides {
		seps = seps.With(sep, value)
	}
	return seps
}

// IsActive reports whether at-rule kind is rewritten under convention.
// Inactive kinds are passed through untouched.
func IsActive(style Style, kind Kind) bool {
	switch kind {
	case KindNamespace, KindComponent, KindModifier, KindDescendent:
		return true
	case KindUtility, KindWhen:
		return style == StyleSuit
	}
	return false
}
