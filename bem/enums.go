package bem

//go:generate go tool go-enum --marshal --names --nocase

import "fmt"

// Selector naming convention.
// ENUM(suit, bem)
type Style int

// Kind of at-rule recognized by the transformer.
// ENUM(unrecognized, namespace, component, utility, modifier, descendent, when)
type Kind int

// Configurable join between name parts.
// ENUM(namespace, modifier, descendent, state)
type Separator int

// canonical at-rule keywords, indexed by Kind
var kindKeywords = []string{"", "component-namespace", "component", "utility", "modifier", "descendent", "when"}

// Kinds lists all recognized kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindNamespace, KindComponent, KindUtility, KindModifier, KindDescendent, KindWhen}
}

// Keyword returns canonical at-rule keyword for the kind (without "@").
func (k Kind) Keyword() string {
	if k <= KindUnrecognized || !k.IsValid() {
		return ""
	}
	return kindKeywords[k]
}

// KindFromKeyword converts canonical at-rule keyword to Kind.
func KindFromKeyword(keyword string) (Kind, error) {
	for _, k := range Kinds() {
		if kindKeywords[k] == keyword {
			return k, nil
		}
	}
	return KindUnrecognized, fmt.Errorf("%s is not a valid at-rule keyword, try %q", keyword, kindKeywords[1:])
}
