package config

import (
	"sort"

	"github.com/grqphical/taskrabbit/internal/platform"
)

// Config represents a parsed task file.
type Config struct {
	Info      Info
	Variables map[string]any
	Tasks     map[string]*Task
}

// Info is the [info] table. Name and Author are display-only.
type Info struct {
	Name               string
	Author             string
	DefaultTask        string
	DefaultWindowsTask string
	DefaultLinuxTask   string
	DefaultMacOSTask   string
}

// Task is one runnable entry under [tasks.<name>].
type Task struct {
	Commands           []string
	EnvVars            []EnvVar
	DotenvFile         string
	PlatformsSupported []string
}

// EnvVar is a single [[tasks.<name>.env_vars]] entry.
type EnvVar struct {
	Name  string
	Value string
}

// ResolveDefault returns the default task for host. A platform-specific
// default wins over the generic default_task.
func (i Info) ResolveDefault(host platform.Platform) (string, bool) {
	var specific string
	switch host {
	case platform.Windows:
		specific = i.DefaultWindowsTask
	case platform.Linux:
		specific = i.DefaultLinuxTask
	case platform.MacOS:
		specific = i.DefaultMacOSTask
	default:
		return "", false
	}
	if specific != "" {
		return specific, true
	}
	if i.DefaultTask != "" {
		return i.DefaultTask, true
	}
	return "", false
}

// Task looks up a task by name.
func (c *Config) Task(name string) (*Task, bool) {
	t, ok := c.Tasks[name]
	return t, ok
}

// TaskNames returns all task names in sorted order.
func (c *Config) TaskNames() []string {
	names := make([]string, 0, len(c.Tasks))
	for name := range c.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
