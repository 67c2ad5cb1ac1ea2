package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"cssbem/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Name       string   // source file name without extension
	Dir        string   // source directory relative to processed root, slash separated
	Ext        string   // source file extension
	Style      string   // naming convention
	Namespace  string   // default component namespace
	Components []string // components declared in the source
}

func newValues(src string, components []string, tc *config.TransformConfig) Values {
	ext := filepath.Ext(src)
	dir := filepath.ToSlash(filepath.Dir(src))
	if dir == "." {
		dir = ""
	}
	return Values{
		Name:       strings.TrimSuffix(filepath.Base(src), ext),
		Dir:        dir,
		Ext:        ext,
		Style:      tc.Style.String(),
		Namespace:  tc.DefaultNamespace,
		Components: components,
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
