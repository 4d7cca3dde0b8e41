package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/on-the-ground/assocarray/assoc"
	"github.com/on-the-ground/assocarray/shared/log"
	"github.com/tailscale/hujson"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config drives the experiment runner.
type Config struct {
	InitialCapacity int          `json:"initial_capacity"`
	LogLevel        log.LogLevel `json:"log_level"`
	LogEncoding     log.Encoding `json:"log_encoding"`
	Experiments     []string     `json:"experiments"`
	Output          string       `json:"output"`
	SinkBufferSize  int          `json:"sink_buffer_size"`
}

// Overrides carries command-line values. Zero values mean "not set".
type Overrides struct {
	InitialCapacity int
	LogLevel        log.LogLevel
	Experiments     []string
	Output          string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		InitialCapacity: assoc.DefaultCapacity,
		LogLevel:        log.LogInfo,
		LogEncoding:     log.EncodingConsole,
		SinkBufferSize:  64,
	}
}

// Load applies, in order: defaults, the file at path (skipped when path is empty),
// and overrides. The result is validated.
func Load(path string, overrides Overrides) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("cannot read config %s: %w", path, err)
		}
		fileCfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		cfg = merge(cfg, fileCfg)
	}

	cfg = apply(cfg, overrides)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a JSONC document. Fields absent from the document stay zero.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the runner cannot honour.
// A non-positive capacity is not an error: the container falls back to its default.
func Validate(cfg Config) error {
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	switch cfg.LogEncoding {
	case log.EncodingConsole, log.EncodingJSON:
	default:
		return fmt.Errorf("%w: log_encoding: %q", ErrInvalidConfig, cfg.LogEncoding)
	}
	if cfg.SinkBufferSize < 0 {
		return fmt.Errorf("%w: sink_buffer_size: %d", ErrInvalidConfig, cfg.SinkBufferSize)
	}
	return nil
}

func merge(base, file Config) Config {
	if file.InitialCapacity != 0 {
		base.InitialCapacity = file.InitialCapacity
	}
	if file.LogLevel != "" {
		base.LogLevel = file.LogLevel
	}
	if file.LogEncoding != "" {
		base.LogEncoding = file.LogEncoding
	}
	if file.Experiments != nil {
		base.Experiments = file.Experiments
	}
	if file.Output != "" {
		base.Output = file.Output
	}
	if file.SinkBufferSize != 0 {
		base.SinkBufferSize = file.SinkBufferSize
	}
	return base
}

func apply(cfg Config, o Overrides) Config {
	if o.InitialCapacity != 0 {
		cfg.InitialCapacity = o.InitialCapacity
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if len(o.Experiments) > 0 {
		cfg.Experiments = o.Experiments
	}
	if o.Output != "" {
		cfg.Output = o.Output
	}
	return cfg
}
