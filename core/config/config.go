package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt string `json:"prompt"`
	BinDir string `json:"bin_dir" validate:"required,startswith=/,endswith=/"`

	MaxWordLen    int `json:"max_word_len" validate:"gt=0"`
	MaxWords      int `json:"max_words" validate:"gt=0"`
	MaxCommands   int `json:"max_commands" validate:"gt=0"`
	MaxCommandLen int `json:"max_command_len" validate:"gtefield=MaxWordLen"`
	MaxDirLen     int `json:"max_dir_len" validate:"gt=0"`

	StripQuotesFor []string `json:"strip_quotes_for" validate:"unique,dive,required"`

	Color string `json:"color" validate:"oneof=always auto never"`

	EventLog string `json:"event_log"`
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

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewMemMapFs()
	}
	return c.configFs
}

// OpenEventLog opens the event log in an append only state. It returns nil
// with no error if the event log is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	fd, err := c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	return fd, errors.Wrap(err, "opening event log")
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, errors.New("event_log is not set in the configuration")
	}
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration, it isn't backed by a directory
// so the event log is kept in memory.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
