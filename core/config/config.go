package config

import (
	_ "embed"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	LineEditorBuffered = "buffered"
	LineEditorReadline = "readline"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configPath string

	Prompt             string `json:"prompt" validate:"required"`
	ContinuationPrompt string `json:"continuation_prompt"`
	LineEditor         string `json:"line_editor" validate:"oneof=buffered readline"`
	ReadChunkSize      int    `json:"read_chunk_size" validate:"gte=1,lte=65536"`
	IncludeNewline     bool   `json:"include_newline"`
	KeepEmptyArgs      bool   `json:"keep_empty_args"`
	Color              string `json:"color" validate:"oneof=always auto never"`
	LogLevel           string `json:"log_level" validate:"oneof=debug info warn error"`
	RequireExecutable  bool   `json:"require_executable"`
	MaxFunctionDepth   int    `json:"max_function_depth" validate:"gte=1"`
	Cbreak             bool   `json:"cbreak"`

	// Functions holds user functions defined before the first prompt, keyed by
	// name. Each entry is a single command line.
	Functions map[string][]string `json:"functions"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	for name := range c.Functions {
		if name == "" || strings.ContainsAny(name, " \t\n") {
			return fmt.Errorf("functions: invalid function name %q", name)
		}
	}
	return nil
}

// Path returns the file the configuration was loaded from, or the empty
// string for the built-in defaults.
func (c *Configuration) Path() string {
	return c.configPath
}

// Default returns a copy of the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
