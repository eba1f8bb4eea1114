package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/grqphical/taskrabbit/internal/config"
	"github.com/grqphical/taskrabbit/internal/platform"
	"github.com/grqphical/taskrabbit/internal/termstyle"
)

// Print writes every task name in cfg, highlighting the host's default
// and showing platform restrictions where a task declares them.
func Print(w io.Writer, cfg *config.Config, host platform.Platform, style termstyle.Style) error {
	defaultTask, hasDefault := cfg.Info.ResolveDefault(host)

	if _, err := fmt.Fprintln(w, "Tasks Available:"); err != nil {
		return err
	}
	for _, name := range cfg.TaskNames() {
		label := name
		if hasDefault && name == defaultTask {
			label = style.Highlight(name)
		}
		if platforms := cfg.Tasks[name].PlatformsSupported; len(platforms) > 0 {
			label += " [" + strings.Join(platforms, ", ") + "]"
		}
		if _, err := fmt.Fprintf(w, "  %s\n", label); err != nil {
			return err
		}
	}
	return nil
}
