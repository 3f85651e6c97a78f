// Package config holds the shell's startup configuration: the prompt,
// verbosity default and the optional executable search-path file.
package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

const (
	// ConfigurationName is the file the shell looks for by default.
	ConfigurationName = "tinysh.yaml"

	// DefaultPrompt is printed before every input line unless overridden.
	DefaultPrompt = "tinysh> "
)

// Configuration is read once at startup and treated as read-only for the
// lifetime of the process.
type Configuration struct {
	// Prompt is printed before every input line.
	Prompt string `json:"prompt" validate:"required"`

	// PathFile names a file holding one search directory per line.
	// Blank means the shell uses the PATH inherited from the environment.
	PathFile string `json:"path_file"`

	// Verbose narrates process creation and descriptor handling.
	Verbose bool `json:"verbose"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{Prompt: DefaultPrompt}
}

// Parse unmarshals and validates a configuration document. Fields absent
// from the document keep their defaults.
func Parse(data []byte) (*Configuration, error) {
	out := Default()
	if err := yaml.UnmarshalStrict(data, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
