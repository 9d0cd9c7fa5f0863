// Package ulogcfg binds the two logging channels to one process-wide
// configuration, loadable from a YAML file. Apply the configuration
// before the first log write; Shutdown closes both channels
// deterministically at process exit.
package ulogcfg

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ulog-project/ulog-go/pkg/diag"
	"github.com/ulog-project/ulog-go/pkg/msglog"
)

// Config is the recognized option surface of the logging facility.
type Config struct {
	// Output is the general message log path.
	Output string `yaml:"output"`

	// Diagnostics is the diagnostics log path.
	Diagnostics string `yaml:"diagnostics"`

	// LogToFile toggles the message log's file channel.
	LogToFile bool `yaml:"log_to_file"`

	// LogToConsole toggles the message log's console channel.
	LogToConsole bool `yaml:"log_to_console"`

	// NoSpace suppresses token separators in the message log.
	NoSpace bool `yaml:"no_space"`

	// OutputMaxSize is the message log rotation threshold in bytes.
	OutputMaxSize int64 `yaml:"output_max_size"`

	// DiagnosticsMaxSize is the diagnostics rotation threshold in bytes.
	DiagnosticsMaxSize int64 `yaml:"diagnostics_max_size"`
}

// Default returns the standard configuration: both channels enabled,
// default paths and thresholds.
func Default() Config {
	return Config{
		Output:             msglog.DefaultPath,
		Diagnostics:        diag.DefaultPath,
		LogToFile:          true,
		LogToConsole:       true,
		OutputMaxSize:      msglog.DefaultMaxFileSize,
		DiagnosticsMaxSize: diag.DefaultMaxFileSize,
	}
}

// Load reads a YAML configuration file over the defaults. Unknown keys
// are rejected so a typo cannot silently disable a channel.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DiagOptions maps the config onto the diagnostics channel options.
func (c Config) DiagOptions() diag.Options {
	return diag.Options{
		DiagnosticsPath: c.Diagnostics,
		MaxFileSize:     c.DiagnosticsMaxSize,
	}
}

// MsgOptions maps the config onto the message channel options.
func (c Config) MsgOptions() msglog.Options {
	return msglog.Options{
		Path:        c.Output,
		MaxFileSize: c.OutputMaxSize,
		ToFile:      c.LogToFile,
		ToConsole:   c.LogToConsole,
		NoSpace:     c.NoSpace,
	}
}

// Apply installs the configuration as the process-wide defaults of
// both channels. Call before the first log write; earlier defaults are
// replaced, not closed.
func (c Config) Apply() {
	diag.SetDefault(diag.NewService(c.DiagOptions()))
	msglog.SetDefault(msglog.NewLogger(c.MsgOptions()))
}

// Shutdown flushes and closes both default channels. Safe to call even
// if nothing was ever written.
func Shutdown() error {
	return errors.Join(
		diag.Default().Close(),
		msglog.Default().Close(),
	)
}
