package bem_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"cssbem/bem"
	"cssbem/css"
)

func run(t *testing.T, input string, opts bem.Options) (*css.Stylesheet, error) {
	t.Helper()
	log := zaptest.NewLogger(t)
	tr, err := bem.New(opts, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sheet := css.NewParser(log).Parse([]byte(input))
	if len(sheet.Warnings) != 0 {
		t.Fatalf("unexpected parser warnings: %v", sheet.Warnings)
	}
	return sheet, tr.Transform(sheet)
}

func warningTexts(sheet *css.Stylesheet) []string {
	var texts []string
	for _, w := range sheet.Warnings {
		texts = append(texts, w.Text)
	}
	return texts
}

type transformCase struct {
	name  string
	input string
	want  string
	opts  bem.Options
}

func checkCases(t *testing.T, tests []transformCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := run(t, tt.input, tt.opts)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if got := sheet.String(); got != tt.want {
				t.Errorf("Transform() =\n%s\nwant\n%s", got, tt.want)
			}
			if len(sheet.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", sheet.Warnings)
			}
		})
	}
}

func separator(sep bem.Separator, value string) map[bem.Separator]string {
	return map[bem.Separator]string{sep: value}
}

func TestSuit_Utility(t *testing.T) {
	checkCases(t, []transformCase{
		{"name", `@utility utilityName {}`, ".u-utilityName {}\n", bem.Options{}},
		{"multiple names", `@utility utilityName1, utilityName2 {}`, ".u-utilityName1, .u-utilityName2 {}\n", bem.Options{}},
		{"small", `@utility utilityName small {}`, ".u-sm-utilityName {}\n", bem.Options{}},
		{"medium", `@utility utilityName medium {}`, ".u-md-utilityName {}\n", bem.Options{}},
		{"large", `@utility utilityName large {}`, ".u-lg-utilityName {}\n", bem.Options{}},
		{
			"multiple names and sizes",
			`@utility utilityName1 small, utilityName2 medium, utilityName3 large {}`,
			".u-sm-utilityName1, .u-md-utilityName2, .u-lg-utilityName3 {}\n",
			bem.Options{},
		},
		{
			"namespace separator override",
			`@utility utilityName small {}`,
			".u_sm_utilityName {}\n",
			bem.Options{Separators: separator(bem.SeparatorNamespace, "_")},
		},
	})
}

func TestSuit_UtilityWarnings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		warnings []string
	}{
		{"too many args", `@utility a small c {}`, ".u-sm-a {}\n", []string{"Too many parameters for @utility"}},
		{"unknown variant", `@utility a b {}`, ".u--a {}\n", []string{"Unknown variant: b"}},
		{"per entry", `@utility a b, c small d {}`, ".u--a, .u-sm-c {}\n", []string{"Unknown variant: b", "Too many parameters for @utility"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := run(t, tt.input, bem.Options{})
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if got := sheet.String(); got != tt.want {
				t.Errorf("Transform() = %q, want %q", got, tt.want)
			}
			if diff := cmp.Diff(tt.warnings, warningTexts(sheet)); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
			for _, w := range sheet.Warnings {
				if w.Line != 1 {
					t.Errorf("warning line = %d, want 1", w.Line)
				}
			}
		})
	}
}

func TestSuit_Namespace(t *testing.T) {
	checkCases(t, []transformCase{
		{"removed when empty", `@component-namespace nmsp {}`, "", bem.Options{}},
		{"statement removed", `@component-namespace nmsp;`, "", bem.Options{}},
		{
			"declarations in block are dropped",
			`@component-namespace nmsp { color: red; @component A {} }`,
			".nmsp-A {}\n",
			bem.Options{},
		},
		{
			"block scopes children only",
			`@component-namespace nmsp { @component A {} } @component B {}`,
			".nmsp-A {}\n.B {}\n",
			bem.Options{},
		},
		{
			"statement scopes following siblings",
			`@component A {} @component-namespace nmsp; @component B {} @component C {}`,
			".A {}\n.nmsp-B {}\n.nmsp-C {}\n",
			bem.Options{},
		},
		{
			"statement inside block ends with the block",
			`@component-namespace outer { @component-namespace inner; @component A {} } @component B {}`,
			".inner-A {}\n.B {}\n",
			bem.Options{},
		},
		{
			"keeps plain rules in place",
			`@component-namespace nmsp { @component A {} .plain { color: red; } @component B {} }`,
			".nmsp-A {}\n.plain {\n    color: red;\n}\n.nmsp-B {}\n",
			bem.Options{},
		},
	})
}

func TestSuit_Component(t *testing.T) {
	const props = ".ComponentName {\n    color: red;\n    text-align: right;\n}\n"

	checkCases(t, []transformCase{
		{"without properties", `@component ComponentName {}`, ".ComponentName {}\n", bem.Options{}},
		{"with properties", `@component ComponentName {color: red; text-align: right;}`, props, bem.Options{}},
		{
			"in @component-namespace",
			`@component-namespace nmsp {@component ComponentName {color: red; text-align: right;}}`,
			".nmsp-" + props[1:],
			bem.Options{},
		},
		{
			"after file-level @component-namespace",
			`@component-namespace nmsp; @component ComponentName {color: red; text-align: right;}`,
			".nmsp-" + props[1:],
			bem.Options{},
		},
		{
			"default namespace",
			`@component ComponentName {color: red; text-align: right;}`,
			".nmmmmsp-" + props[1:],
			bem.Options{DefaultNamespace: "nmmmmsp"},
		},
		{
			"in @component-namespace with default namespace",
			`@component-namespace nmsp {@component ComponentName {color: red; text-align: right;}}`,
			".nmsp-" + props[1:],
			bem.Options{DefaultNamespace: "nmmmmsp"},
		},
		{
			"after file-level @component-namespace with default namespace",
			`@component-namespace nmsp; @component ComponentName {color: red; text-align: right;}`,
			".nmsp-" + props[1:],
			bem.Options{DefaultNamespace: "nmmmmsp"},
		},
		{
			"namespace separator override",
			`@component-namespace nmsp {@component ComponentName {color: red; text-align: right;}}`,
			".nmsp_" + props[1:],
			bem.Options{Separators: separator(bem.SeparatorNamespace, "_")},
		},
		{"multiple names", `@component A, B { color: red }`, ".A, .B {\n    color: red;\n}\n", bem.Options{}},
		{
			"nested component starts fresh chain",
			`@component A { @component B { @modifier m {} } }`,
			".A {}\n.B {}\n.B--m {}\n",
			bem.Options{},
		},
	})
}

func TestSuit_Modifier(t *testing.T) {
	checkCases(t, []transformCase{
		{
			"without properties",
			`@component ComponentName {@modifier modifierName {}}`,
			".ComponentName {}\n.ComponentName--modifierName {}\n",
			bem.Options{},
		},
		{
			"with properties",
			`@component ComponentName {color: red; text-align: right; @modifier modifierName {color: blue; text-align: left;}}`,
			".ComponentName {\n    color: red;\n    text-align: right;\n}\n.ComponentName--modifierName {\n    color: blue;\n    text-align: left;\n}\n",
			bem.Options{},
		},
		{
			"modifier separator override",
			`@component ComponentName {@modifier modifierName {}}`,
			".ComponentName {}\n.ComponentName__modifierName {}\n",
			bem.Options{Separators: separator(bem.SeparatorModifier, "__")},
		},
		{
			"multiple modifier names",
			`@component Alert { @modifier error,warning { color: #f00; } }`,
			".Alert {}\n.Alert--error, .Alert--warning {\n    color: #f00;\n}\n",
			bem.Options{},
		},
		{
			"inside of @descendent",
			`@component ComponentName {color: red; text-align: right; @descendent descendentName {color: blue; text-align: left; @modifier modifierName {color: green; text-align: center;}}}`,
			".ComponentName {\n    color: red;\n    text-align: right;\n}\n" +
				".ComponentName-descendentName {\n    color: blue;\n    text-align: left;\n}\n" +
				".ComponentName-descendentName--modifierName {\n    color: green;\n    text-align: center;\n}\n",
			bem.Options{},
		},
		{
			"inside of @descendent with multiple names",
			`@component Box { @descendent header, content { font-weight: bold; @modifier red, important { color: #f00 } } }`,
			".Box {}\n.Box-header, .Box-content {\n    font-weight: bold;\n}\n" +
				".Box-header__red, .Box-content__red, .Box-header__important, .Box-content__important {\n    color: #f00;\n}\n",
			bem.Options{Separators: separator(bem.SeparatorModifier, "__")},
		},
		{
			"in plain rule",
			`.button { @modifier large {} }`,
			".button {}\n.button--large {}\n",
			bem.Options{},
		},
		{
			"chained modifiers",
			`@component A { @modifier x { @modifier y {} } }`,
			".A {}\n.A--x {}\n.A--x--y {}\n",
			bem.Options{},
		},
	})
}

func TestSuit_Descendent(t *testing.T) {
	checkCases(t, []transformCase{
		{
			"without properties",
			`@component ComponentName {@descendent descendentName {}}`,
			".ComponentName {}\n.ComponentName-descendentName {}\n",
			bem.Options{},
		},
		{
			"with properties",
			`@component ComponentName {color: red; text-align: right; @descendent descendentName {color: blue; text-align: left;}}`,
			".ComponentName {\n    color: red;\n    text-align: right;\n}\n.ComponentName-descendentName {\n    color: blue;\n    text-align: left;\n}\n",
			bem.Options{},
		},
		{
			"multiple descendent names",
			`@component Box { @descendent header, content { font-weight: bold; } }`,
			".Box {}\n.Box-header, .Box-content {\n    font-weight: bold;\n}\n",
			bem.Options{},
		},
		{
			"descendent separator override",
			`@component ComponentName {@descendent descendentName {}}`,
			".ComponentName {}\n.ComponentName___descendentName {}\n",
			bem.Options{Separators: separator(bem.SeparatorDescendent, "___")},
		},
		{
			"siblings keep source order",
			`@component A { @descendent b {} color: red; @modifier c {} @descendent d {} }`,
			".A {\n    color: red;\n}\n.A-b {}\n.A--c {}\n.A-d {}\n",
			bem.Options{},
		},
	})
}

func TestSuit_When(t *testing.T) {
	checkCases(t, []transformCase{
		{
			"without properties",
			`@component ComponentName {@when stateName {}}`,
			".ComponentName {}\n.ComponentName.is-stateName {}\n",
			bem.Options{},
		},
		{
			"with properties",
			`@component ComponentName {color: red; text-align: right; @when stateName {color: blue; text-align: left;}}`,
			".ComponentName {\n    color: red;\n    text-align: right;\n}\n.ComponentName.is-stateName {\n    color: blue;\n    text-align: left;\n}\n",
			bem.Options{},
		},
		{
			"in any selector",
			`.ComponentName {color: red; text-align: right; @when stateName {color: blue; text-align: left;}}`,
			".ComponentName {\n    color: red;\n    text-align: right;\n}\n.ComponentName.is-stateName {\n    color: blue;\n    text-align: left;\n}\n",
			bem.Options{},
		},
		{
			"state separator override",
			`@component ComponentName {@when stateName {}}`,
			".ComponentName {}\n.ComponentName____stateName {}\n",
			bem.Options{Separators: separator(bem.SeparatorState, "____")},
		},
		{
			"multiple parents",
			`@component A { @descendent b, c { @when open {} } }`,
			".A {}\n.A-b, .A-c {}\n.A-b.is-open, .A-c.is-open {}\n",
			bem.Options{},
		},
	})
}

func TestBEM(t *testing.T) {
	useBEM := bem.Options{Style: bem.StyleBem}
	const props = ".component-name {\n    color: red;\n    text-align: right;\n}\n"

	checkCases(t, []transformCase{
		{"utility does nothing", `@utility utilityName {}`, "@utility utilityName {}\n", useBEM},
		{
			"utility subtree untouched",
			`@utility utilityName { color: red; @modifier x {} }`,
			"@utility utilityName {\n    color: red;\n    @modifier x {}\n}\n",
			useBEM,
		},
		{"namespace removed when empty", `@component-namespace nmsp {}`, "", useBEM},
		{"component without properties", `@component component-name {}`, ".component-name {}\n", useBEM},
		{"component with properties", `@component component-name {color: red; text-align: right;}`, props, useBEM},
		{
			"component in @component-namespace",
			`@component-namespace nmsp {@component component-name {color: red; text-align: right;}}`,
			".nmsp--" + props[1:],
			useBEM,
		},
		{
			"component after file-level @component-namespace",
			`@component-namespace nmsp; @component component-name {color: red; text-align: right;}`,
			".nmsp--" + props[1:],
			useBEM,
		},
		{
			"component with default namespace",
			`@component component-name {color: red; text-align: right;}`,
			".nmmmmsp--" + props[1:],
			bem.Options{Style: bem.StyleBem, DefaultNamespace: "nmmmmsp"},
		},
		{
			"component in @component-namespace with default namespace",
			`@component-namespace nmsp {@component component-name {color: red; text-align: right;}}`,
			".nmsp--" + props[1:],
			bem.Options{Style: bem.StyleBem, DefaultNamespace: "nmmmmsp"},
		},
		{
			"namespace separator override",
			`@component-namespace nmsp {@component component-name {color: red; text-align: right;}}`,
			".nmsp_" + props[1:],
			bem.Options{Style: bem.StyleBem, Separators: separator(bem.SeparatorNamespace, "_")},
		},
		{
			"modifier without properties",
			`@component component-name {@modifier modifier-name {}}`,
			".component-name {}\n.component-name_modifier-name {}\n",
			useBEM,
		},
		{
			"modifier with properties",
			`@component component-name {color: red; text-align: right; @modifier modifier-name {color: blue; text-align: left;}}`,
			props + ".component-name_modifier-name {\n    color: blue;\n    text-align: left;\n}\n",
			useBEM,
		},
		{
			"modifier separator override",
			`@component component-name {@modifier modifier-name {}}`,
			".component-name {}\n.component-name__modifier-name {}\n",
			bem.Options{Style: bem.StyleBem, Separators: separator(bem.SeparatorModifier, "__")},
		},
		{
			"modifier inside of @descendent",
			`@component component-name {color: red; text-align: right; @descendent descendent-name {color: blue; text-align: left; @modifier modifier-name {color: green; text-align: center;}}}`,
			props +
				".component-name__descendent-name {\n    color: blue;\n    text-align: left;\n}\n" +
				".component-name__descendent-name_modifier-name {\n    color: green;\n    text-align: center;\n}\n",
			useBEM,
		},
		{
			"descendent without properties",
			`@component component-name {@descendent descendent-name {}}`,
			".component-name {}\n.component-name__descendent-name {}\n",
			useBEM,
		},
		{
			"descendent separator override",
			`@component component-name {@descendent descendent-name {}}`,
			".component-name {}\n.component-name___descendent-name {}\n",
			bem.Options{Style: bem.StyleBem, Separators: separator(bem.SeparatorDescendent, "___")},
		},
		{
			"when does nothing",
			`@component component-name {@when stateName {}}`,
			".component-name {\n    @when stateName {}\n}\n",
			useBEM,
		},
		{
			"when at root does nothing",
			`@when stateName { color: blue; }`,
			"@when stateName {\n    color: blue;\n}\n",
			useBEM,
		},
	})
}

func TestPassthrough(t *testing.T) {
	checkCases(t, []transformCase{
		{
			"unrecognized at-rules",
			`@charset "utf-8"; @media print { .a { color: red; } }`,
			"@charset \"utf-8\";\n@media print {\n    .a {\n        color: red;\n    }\n}\n",
			bem.Options{},
		},
		{
			"unrecognized at-rule in component stays in its rule",
			`@component A { @media print { color: red; } @modifier m {} }`,
			".A {\n    @media print {\n        color: red;\n    }\n}\n.A--m {}\n",
			bem.Options{},
		},
		{
			"plain rules and comments",
			"/* c */\n.a { color: red; }\nb > i {}",
			"/* c */\n.a {\n    color: red;\n}\nb > i {}\n",
			bem.Options{},
		},
		{
			"nested plain rule is rewritten in place",
			`@component A { .inner { @when open {} } }`,
			".A {\n    .inner {}\n    .inner.is-open {}\n}\n",
			bem.Options{},
		},
	})
}

func TestPassthrough_Warnings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		warnings []string
		opts     bem.Options
	}{
		{
			"component inside media",
			`@media screen { @component Btn { color: red; @modifier big {} } }`,
			"@media screen {\n    @component Btn {\n        color: red;\n        @modifier big {}\n    }\n}\n",
			[]string{"@component inside @media is not processed"},
			bem.Options{},
		},
		{
			"nested in plain rule and supports",
			`@supports (display: grid) { .a { @when open {} } @b X {} }`,
			"@supports (display: grid) {\n    .a {\n        @when open {}\n    }\n    @b X {}\n}\n",
			[]string{"@when inside @supports is not processed", "@b inside @supports is not processed"},
			bem.Options{Shortcuts: map[bem.Kind]string{bem.KindComponent: "b"}},
		},
		{
			"media in component body",
			`@component A { @media print { @modifier m {} } }`,
			".A {\n    @media print {\n        @modifier m {}\n    }\n}\n",
			[]string{"@modifier inside @media is not processed"},
			bem.Options{},
		},
		{
			"inactive kinds are not reported",
			`@media print { @when open {} @utility u {} }`,
			"@media print {\n    @when open {}\n    @utility u {}\n}\n",
			nil,
			bem.Options{Style: bem.StyleBem},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := run(t, tt.input, tt.opts)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if got := sheet.String(); got != tt.want {
				t.Errorf("Transform() =\n%s\nwant\n%s", got, tt.want)
			}
			if diff := cmp.Diff(tt.warnings, warningTexts(sheet)); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComponent_ExtraTokens(t *testing.T) {
	sheet, err := run(t, `@component A B {}`, bem.Options{})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got, want := sheet.String(), ".A {}\n"; got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"Too many parameters for @component"}, warningTexts(sheet)); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
		opts   bem.Options
	}{
		{"when in root", `@when stateName {color: blue; text-align: left;}`, "@when can only be used in rules which are not the root node", bem.Options{}},
		{"when in namespace", `@component-namespace n { @when s {} }`, "@when can only be used in rules which are not the root node", bem.Options{}},
		{"modifier in root", `@modifier m {}`, "@modifier can only be used in rules which are not the root node", bem.Options{}},
		{"descendent in root", `@descendent d {}`, "@descendent can only be used in rules which are not the root node", bem.Options{}},
		{"utility no args", `@utility {}`, "No names supplied to @utility", bem.Options{}},
		{"component no args", `@component {}`, "No names supplied to @component", bem.Options{}},
		{"component no args in bem", `@component {}`, "No names supplied to @component", bem.Options{Style: bem.StyleBem}},
		{"namespace no args", `@component-namespace {}`, "No names supplied to @component-namespace", bem.Options{}},
		{"namespace statement no args", `@component-namespace;`, "No names supplied to @component-namespace", bem.Options{}},
		{"modifier no args", `@component A { @modifier {} }`, "No names supplied to @modifier", bem.Options{}},
		{"empty entry", `@component A { @descendent a, , b {} }`, "Empty name in @descendent", bem.Options{}},
		{"trailing comma", `@component A { @modifier a, {} }`, "Empty name in @modifier", bem.Options{}},
		{"namespace list", `@component-namespace a, b;`, "@component-namespace accepts a single name", bem.Options{}},
		{"when list", `.a { @when a, b {} }`, "@when accepts a single name", bem.Options{}},
		{"deep error", `@component A { @descendent b { @modifier c { @when {} } } }`, "No names supplied to @when", bem.Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.input, tt.opts)

			var se *bem.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Transform() error = %v, want *bem.SyntaxError", err)
			}
			if se.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", se.Reason, tt.reason)
			}
			if se.Line != 1 {
				t.Errorf("Line = %d, want 1", se.Line)
			}
			if !strings.Contains(se.Error(), tt.reason) {
				t.Errorf("Error() = %q does not contain reason", se.Error())
			}
		})
	}
}

func TestErrors_KeepInput(t *testing.T) {
	input := `@component A { @modifier m {} } @when x {}`
	sheet, err := run(t, input, bem.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := sheet.String(), "@component A {\n    @modifier m {}\n}\n@when x {}\n"; got != want {
		t.Errorf("stylesheet after error =\n%s\nwant\n%s", got, want)
	}
}

func TestShortcuts(t *testing.T) {
	useBEM := bem.Options{
		Style: bem.StyleBem,
		Shortcuts: map[bem.Kind]string{
			bem.KindNamespace:  "ns",
			bem.KindComponent:  "b",
			bem.KindModifier:   "m",
			bem.KindDescendent: "e",
		},
	}
	useSuit := bem.Options{
		Shortcuts: map[bem.Kind]string{
			bem.KindUtility:    "ut",
			bem.KindNamespace:  "ns",
			bem.KindComponent:  "com",
			bem.KindModifier:   "mod",
			bem.KindDescendent: "dec",
			bem.KindWhen:       "state",
		},
	}

	tests := []struct {
		name      string
		canonical string
		aliased   string
		opts      bem.Options
	}{
		{"bem component", `@component component-name {@descendent descendent-name {}}`, `@b component-name {@descendent descendent-name {}}`, useBEM},
		{"bem namespace", `@component-namespace nmsp {@component component-name {color: red; text-align: right;}}`, `@ns nmsp {@component component-name {color: red; text-align: right;}}`, useBEM},
		{"bem descendent", `@component component-name {@descendent descendent-name {}}`, `@component component-name {@e descendent-name {}}`, useBEM},
		{"bem modifier", `@component component-name {@modifier modifier-name {}}`, `@component component-name {@m modifier-name {}}`, useBEM},
		{
			"bem modifier with properties",
			`@component component-name {color: red; text-align: right; @modifier modifier-name {color: blue; text-align: left;}}`,
			`@component component-name {color: red; text-align: right; @m modifier-name {color: blue; text-align: left;}}`,
			useBEM,
		},
		{
			"bem everything",
			`@component-namespace x; @component a { @descendent b { @modifier c {} } @modifier d {} }`,
			`@ns x; @b a { @e b { @m c {} } @m d {} }`,
			useBEM,
		},
		{"suit component", `@component component-name {@descendent descendent-name {}}`, `@com component-name {@descendent descendent-name {}}`, useSuit},
		{"suit utility", `@utility utilityName {}`, `@ut utilityName {}`, useSuit},
		{"suit namespace", `@component-namespace nmsp {@component ComponentName {color: red; text-align: right;}}`, `@ns nmsp {@component ComponentName {color: red; text-align: right;}}`, useSuit},
		{"suit modifier", `@component component-name {@modifier modifier-name {}}`, `@component component-name {@mod modifier-name {}}`, useSuit},
		{"suit descendent", `@component component-name {@descendent descendent-name {}}`, `@component component-name {@dec descendent-name {}}`, useSuit},
		{"suit when", `@component ComponentName {@when stateName {}}`, `@component ComponentName {@state stateName {}}`, useSuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := run(t, tt.canonical, tt.opts)
			if err != nil {
				t.Fatalf("Transform(canonical) error = %v", err)
			}
			second, err := run(t, tt.aliased, tt.opts)
			if err != nil {
				t.Fatalf("Transform(aliased) error = %v", err)
			}
			if diff := cmp.Diff(first.String(), second.String()); diff != "" {
				t.Errorf("aliased output differs (-canonical +aliased):\n%s", diff)
			}
			if len(first.Warnings)+len(second.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v %v", first.Warnings, second.Warnings)
			}
		})
	}
}

func TestShortcuts_PassthroughKeepsAlias(t *testing.T) {
	opts := bem.Options{Style: bem.StyleBem, Shortcuts: map[bem.Kind]string{bem.KindWhen: "state"}}
	sheet, err := run(t, `@component a { @state open {} }`, opts)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got, want := sheet.String(), ".a {\n    @state open {}\n}\n"; got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
}

func TestIdempotence(t *testing.T) {
	inputs := []struct {
		input string
		opts  bem.Options
	}{
		{`@component-namespace n; @component Box { color: red; @descendent header, content { @modifier red, important { color: #f00 } @when open {} } }`, bem.Options{}},
		{`@utility a small, b {} .x { @when y { color: blue } }`, bem.Options{DefaultNamespace: "ns"}},
		{`@component b { @e el { @m mod {} } @when s {} }`, bem.Options{Style: bem.StyleBem, Shortcuts: map[bem.Kind]string{bem.KindDescendent: "e", bem.KindModifier: "m"}}},
	}

	for _, tt := range inputs {
		first, err := run(t, tt.input, tt.opts)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		output := first.String()
		second, err := run(t, output, tt.opts)
		if err != nil {
			t.Fatalf("second Transform() error = %v", err)
		}
		if got := second.String(); got != output {
			t.Errorf("second pass changed output:\n%s\nwant\n%s", got, output)
		}
	}
}

func TestTransform_Reusable(t *testing.T) {
	log := zaptest.NewLogger(t)
	tr, err := bem.New(bem.Options{}, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p := css.NewParser(log)

	warned := p.Parse([]byte(`@utility a b {}`))
	if err := tr.Transform(warned); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	clean := p.Parse([]byte(`@utility a {}`))
	if err := tr.Transform(clean); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if len(warned.Warnings) != 1 || len(clean.Warnings) != 0 {
		t.Errorf("warnings leaked between runs: %v / %v", warned.Warnings, clean.Warnings)
	}
}

func TestTransform_DoesNotAliasInput(t *testing.T) {
	log := zaptest.NewLogger(t)
	tr, err := bem.New(bem.Options{Style: bem.StyleBem}, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sheet := css.NewParser(log).Parse([]byte(`@utility u { color: red; }`))
	original := sheet.Nodes[0].(*css.AtRule)

	if err := tr.Transform(sheet); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	out := sheet.Nodes[0].(*css.AtRule)
	if out == original {
		t.Fatal("passthrough node is shared with input")
	}
	out.Nodes[0].(*css.Declaration).Value = "blue"
	if original.Nodes[0].(*css.Declaration).Value != "red" {
		t.Error("modifying output changed input tree")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts bem.Options
	}{
		{"unknown style", bem.Options{Style: bem.Style(7)}},
		{"empty shortcut", bem.Options{Shortcuts: map[bem.Kind]string{bem.KindComponent: ""}}},
		{"duplicate shortcut", bem.Options{Shortcuts: map[bem.Kind]string{bem.KindComponent: "x", bem.KindModifier: "x"}}},
		{"shortcut hides other kind", bem.Options{Shortcuts: map[bem.Kind]string{bem.KindComponent: "modifier"}}},
		{"unknown kind", bem.Options{Shortcuts: map[bem.Kind]string{bem.KindUnrecognized: "x"}}},
		{"unknown separator", bem.Options{Separators: map[bem.Separator]string{bem.Separator(9): "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := bem.New(tt.opts, nil); err == nil {
				t.Error("New() expected error")
			}
		})
	}
}

func TestComponents(t *testing.T) {
	log := zaptest.NewLogger(t)
	tr, err := bem.New(bem.Options{Shortcuts: map[bem.Kind]string{bem.KindComponent: "c"}}, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sheet := css.NewParser(log).Parse([]byte(`
@component Box { @descendent header {} }
@component-namespace ui { @c Button, Link {} }
@component {}
@media print { @component Hidden {} }
a {}
`))
	got := tr.Components(sheet)
	if diff := cmp.Diff([]string{"Box", "Button", "Link"}, got); diff != "" {
		t.Errorf("Components() mismatch (-want +got):\n%s", diff)
	}
}
