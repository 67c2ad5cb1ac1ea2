package bem

import (
	"strings"
)

// Entry is a single comma separated item of at-rule parameters.
type Entry struct {
	Name string
	// Variant is size code of @utility entry ("sm", "md", "lg"). It is empty
	// for unknown variant words, HasVariant tells whether variant was present.
	Variant    string
	HasVariant bool
}

var utilityVariants = map[string]string{
	"small":  "sm",
	"medium": "md",
	"large":  "lg",
}

// ExpandNames parses at-rule parameters into entries in source order. The
// returned warnings are not fatal, the entries already carry fallback values.
func ExpandNames(params string, kind Kind) ([]Entry, []string, error) {
	raw := splitEntries(params)
	if len(raw) == 0 {
		return nil, nil, &SyntaxError{Reason: "No names supplied to @" + kind.Keyword()}
	}

	switch kind {
	case KindNamespace, KindWhen:
		if len(raw) > 1 {
			return nil, nil, &SyntaxError{Reason: "@" + kind.Keyword() + " accepts a single name"}
		}
	}

	var (
		entries  = make([]Entry, 0, len(raw))
		warnings []string
	)
	for _, item := range raw {
		tokens := strings.Fields(item)
		if len(tokens) == 0 {
			return nil, nil, &SyntaxError{Reason: "Empty name in @" + kind.Keyword()}
		}
		e := Entry{Name: tokens[0]}
		switch {
		case (kind == KindComponent || kind == KindNamespace) && len(tokens) > 1:
			warnings = append(warnings, "Too many parameters for @"+kind.Keyword())
		case kind == KindUtility && len(tokens) > 1:
			if len(tokens) > 2 {
				warnings = append(warnings, "Too many parameters for @utility")
			}
			e.HasVariant = true
			code, ok := utilityVariants[tokens[1]]
			if !ok {
				warnings = append(warnings, "Unknown variant: "+tokens[1])
			}
			e.Variant = code
		}
		entries = append(entries, e)
	}
	return entries, warnings, nil
}

// splitEntries splits text on commas outside of parentheses, brackets and
// quotes. Items are not trimmed. Blank text has no entries.
func splitEntries(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		items []string
		depth int
		quote rune
		start int
	)
	for i, r := range text {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			items = append(items, text[start:i])
			start = i + 1
		}
	}
	return append(items, text[start:])
}
