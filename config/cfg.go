package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"cssbem/bem"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	TransformConfig struct {
		Style            bem.Style         `yaml:"style"`
		DefaultNamespace string            `yaml:"default_namespace"`
		Separators       map[string]string `yaml:"separators" validate:"dive,keys,oneof=namespace modifier descendent state,endkeys"`
		Shortcuts        map[string]string `yaml:"shortcuts" validate:"dive,keys,oneof=component-namespace component utility modifier descendent when,endkeys,required"`
	}

	OutputConfig struct {
		NameTemplate  string `yaml:"name_template"`
		Transliterate bool   `yaml:"transliterate"`
		Extension     string `yaml:"extension" validate:"required,startswith=."`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Transform TransformConfig `yaml:"transform"`
		Output    OutputConfig    `yaml:"output"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// Options converts transformation section to options of the rewriter.
func (conf *TransformConfig) Options() (bem.Options, error) {
	opts := bem.Options{
		Style:            conf.Style,
		DefaultNamespace: conf.DefaultNamespace,
	}
	if len(conf.Separators) > 0 {
		opts.Separators = make(map[bem.Separator]string, len(conf.Separators))
		for name, value := range conf.Separators {
			sep, err := bem.ParseSeparator(name)
			if err != nil {
				return bem.Options{}, err
			}
			opts.Separators[sep] = value
		}
	}
	if len(conf.Shortcuts) > 0 {
		opts.Shortcuts = make(map[bem.Kind]string, len(conf.Shortcuts))
		for name, alias := range conf.Shortcuts {
			kind, err := bem.KindFromKeyword(name)
			if err != nil {
				return bem.Options{}, err
			}
			opts.Shortcuts[kind] = alias
		}
	}
	return opts, nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		// make sure rewriter would accept it
		opts, err := cfg.Transform.Options()
		if err == nil {
			_, err = bem.New(opts, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("bad transform configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
