package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the task file looked up in the working directory.
const DefaultFile = "taskrabbit.toml"

var (
	ErrNotFound = errors.New("could not find task file")
	ErrParse    = errors.New("invalid task file")
)

// Format is the encoding of a task file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension. Anything that
// is not .yaml or .yml is treated as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// rawConfig is the decoding target shared by both formats. Pointers and nil
// maps let validate tell a missing key from an empty one.
type rawConfig struct {
	Info      *rawInfo            `toml:"info" yaml:"info"`
	Variables map[string]any      `toml:"variables" yaml:"variables"`
	Tasks     map[string]*rawTask `toml:"tasks" yaml:"tasks"`
}

type rawInfo struct {
	Name               *string `toml:"name" yaml:"name"`
	Author             *string `toml:"author" yaml:"author"`
	DefaultTask        string  `toml:"default_task" yaml:"default_task"`
	DefaultWindowsTask string  `toml:"default_windows_task" yaml:"default_windows_task"`
	DefaultLinuxTask   string  `toml:"default_linux_task" yaml:"default_linux_task"`
	DefaultMacOSTask   string  `toml:"default_macos_task" yaml:"default_macos_task"`
}

type rawTask struct {
	Commands           []string    `toml:"commands" yaml:"commands"`
	EnvVars            []rawEnvVar `toml:"env_vars" yaml:"env_vars"`
	DotenvFile         string      `toml:"dotenv_file" yaml:"dotenv_file"`
	PlatformsSupported []string    `toml:"platforms_supported" yaml:"platforms_supported"`
}

type rawEnvVar struct {
	Name  string `toml:"name" yaml:"name"`
	Value string `toml:"value" yaml:"value"`
}

// Load reads and validates the task file at path. A nil logger discards
// debug output.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read task file %s: %w", path, err)
	}

	format := FormatFromPath(path)
	logger.Debug("loading task file", "path", path, "format", format)

	cfg, err := parse(bytes.NewReader(data), format, logger)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParse, path, err)
	}
	return cfg, nil
}

// Parse decodes a task file from r without touching the filesystem.
func Parse(r io.Reader, format Format) (*Config, error) {
	cfg, err := parse(r, format, slog.New(slog.DiscardHandler))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return cfg, nil
}

func parse(r io.Reader, format Format, logger *slog.Logger) (*Config, error) {
	var raw rawConfig
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("document is empty")
			}
			return nil, err
		}
	default:
		md, err := toml.NewDecoder(r).Decode(&raw)
		if err != nil {
			return nil, err
		}
		for _, key := range md.Undecoded() {
			logger.Debug("ignoring unknown task file key", "key", key.String())
		}
	}

	if err := validate(&raw); err != nil {
		return nil, err
	}
	return raw.build(), nil
}

func validate(raw *rawConfig) error {
	if raw.Info == nil {
		return errors.New("missing [info] table")
	}
	if raw.Info.Name == nil {
		return errors.New("info.name is required")
	}
	if raw.Info.Author == nil {
		return errors.New("info.author is required")
	}
	if raw.Variables == nil {
		return errors.New("missing [variables] table")
	}
	if raw.Tasks == nil {
		return errors.New("missing [tasks] table")
	}
	for name, task := range raw.Tasks {
		if task == nil || task.Commands == nil {
			return fmt.Errorf("tasks.%s.commands is required", name)
		}
	}
	return nil
}

func (raw *rawConfig) build() *Config {
	cfg := &Config{
		Info: Info{
			Name:               *raw.Info.Name,
			Author:             *raw.Info.Author,
			DefaultTask:        raw.Info.DefaultTask,
			DefaultWindowsTask: raw.Info.DefaultWindowsTask,
			DefaultLinuxTask:   raw.Info.DefaultLinuxTask,
			DefaultMacOSTask:   raw.Info.DefaultMacOSTask,
		},
		Variables: raw.Variables,
		Tasks:     make(map[string]*Task, len(raw.Tasks)),
	}

	for name, rt := range raw.Tasks {
		task := &Task{
			Commands:           rt.Commands,
			DotenvFile:         rt.DotenvFile,
			PlatformsSupported: rt.PlatformsSupported,
		}
		for _, ev := range rt.EnvVars {
			task.EnvVars = append(task.EnvVars, EnvVar{Name: ev.Name, Value: ev.Value})
		}
		cfg.Tasks[name] = task
	}
	return cfg
}
