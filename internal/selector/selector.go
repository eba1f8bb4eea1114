package selector

import (
	"errors"
	"fmt"

	"github.com/grqphical/taskrabbit/internal/config"
	"github.com/grqphical/taskrabbit/internal/platform"
)

var (
	ErrNoDefaultTask = errors.New("no default task specified")
	ErrTaskNotFound  = errors.New("task not found")
)

// Select picks the task to run. An explicit name is used as given;
// otherwise the host's default is resolved. The result always names a
// task present in cfg.
func Select(cfg *config.Config, explicit string, host platform.Platform) (string, error) {
	name := explicit
	if name == "" {
		resolved, ok := cfg.Info.ResolveDefault(host)
		if !ok {
			return "", fmt.Errorf("%w for %s", ErrNoDefaultTask, host)
		}
		name = resolved
	}

	if _, ok := cfg.Task(name); !ok {
		return "", fmt.Errorf("%w: %q", ErrTaskNotFound, name)
	}
	return name, nil
}
