package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/grqphical/taskrabbit/internal/config"
	"github.com/grqphical/taskrabbit/internal/doctor"
	"github.com/grqphical/taskrabbit/internal/listing"
	"github.com/grqphical/taskrabbit/internal/platform"
	"github.com/grqphical/taskrabbit/internal/runner"
	"github.com/grqphical/taskrabbit/internal/selector"
	"github.com/grqphical/taskrabbit/internal/termstyle"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	taskFile  string
	listTasks bool
	checkOnly bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "taskrabbit [task]",
	Short:         "A simple way to create easy to run tasks in a repository",
	Long:          "Runs a task from taskrabbit.toml. Uses the default task for this platform if none is given.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		explicit := ""
		if len(args) == 1 {
			explicit = args[0]
		}

		logger := newLogger(cmd.ErrOrStderr(), verbose)
		host := platform.Host()

		inv := invocation{
			File:     taskFile,
			Explicit: explicit,
			Host:     host,
			Stdout:   cmd.OutOrStdout(),
			Style:    termstyle.Detect(os.Stdout),
			Runner:   runner.New(host, logger),
			Logger:   logger,
		}
		switch {
		case listTasks:
			return inv.list()
		case checkOnly:
			return inv.check(doctor.CheckTask)
		default:
			return inv.run(cmd.Context())
		}
	},
}

// invocation carries everything one CLI run needs, so the modes can be
// exercised without going through cobra.
type invocation struct {
	File     string
	Explicit string
	Host     platform.Platform
	Stdout   io.Writer
	Style    termstyle.Style
	Runner   *runner.Runner
	Logger   *slog.Logger
}

type checkFunc func(cfg *config.Config, name string, host platform.Platform) ([]doctor.CheckResult, error)

func (inv invocation) load() (*config.Config, error) {
	return config.Load(inv.File, inv.Logger)
}

func (inv invocation) list() error {
	cfg, err := inv.load()
	if err != nil {
		return err
	}
	return listing.Print(inv.Stdout, cfg, inv.Host, inv.Style)
}

func (inv invocation) selectTask() (*config.Config, string, error) {
	cfg, err := inv.load()
	if err != nil {
		return nil, "", err
	}
	name, err := selector.Select(cfg, inv.Explicit, inv.Host)
	if err != nil {
		return nil, "", err
	}
	inv.Logger.Debug("selected task", "task", name, "explicit", inv.Explicit != "")
	return cfg, name, nil
}

func (inv invocation) run(ctx context.Context) error {
	cfg, name, err := inv.selectTask()
	if err != nil {
		return err
	}
	return inv.Runner.Run(ctx, cfg, name)
}

func (inv invocation) check(checkTask checkFunc) error {
	cfg, name, err := inv.selectTask()
	if err != nil {
		return err
	}

	results, err := checkTask(cfg, name, inv.Host)
	if err != nil {
		return err
	}

	for _, result := range results {
		status := "OK"
		if !result.OK {
			status = "FAIL"
		}
		detail := result.Path
		if detail == "" {
			detail = result.Detail
		}
		fmt.Fprintf(inv.Stdout, "%-10s %-4s %s\n", result.Name, status, detail)
	}

	if !doctor.AllOK(results) {
		return fmt.Errorf("one or more checks failed for task %q", name)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	rootCmd.Flags().BoolVarP(&listTasks, "list", "l", false, "Lists all tasks")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "Check that the task's programs can be found without running it")
	rootCmd.Flags().StringVarP(&taskFile, "file", "f", config.DefaultFile, "Path to the task file (.toml, .yaml or .yml)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.MarkFlagsMutuallyExclusive("list", "check")
}
