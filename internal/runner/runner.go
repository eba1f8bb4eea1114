package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/grqphical/taskrabbit/internal/config"
	"github.com/grqphical/taskrabbit/internal/dotenv"
	"github.com/grqphical/taskrabbit/internal/platform"
	"github.com/grqphical/taskrabbit/internal/selector"
)

// ExecFunc starts cmd and waits for it. Start failures must be returned as
// *SpawnError so they are not mistaken for a failed command.
type ExecFunc func(cmd *exec.Cmd) error

// Runner executes the commands of one task, in order, stopping at the
// first failure.
type Runner struct {
	Host   platform.Platform
	Shell  Shell
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environ supplies the parent environment the task's variables are
	// layered on top of.
	Environ func() []string
	Exec    ExecFunc
	Logger  *slog.Logger
}

// New returns a Runner for host wired to the process's own stdio.
func New(host platform.Platform, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		Host:    host,
		Shell:   ShellFor(host),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
		Exec:    startAndWait,
		Logger:  logger,
	}
}

func startAndWait(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return &SpawnError{Command: strings.Join(cmd.Args, " "), Err: err}
	}
	return cmd.Wait()
}

// Run executes the named task from cfg.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, name string) error {
	task, ok := cfg.Task(name)
	if !ok {
		return fmt.Errorf("%w: %q", selector.ErrTaskNotFound, name)
	}

	if err := CheckPlatform(name, task, r.Host); err != nil {
		return err
	}

	env, err := TaskEnv(task)
	if err != nil {
		return err
	}
	childEnv := append(r.environ(), env...)

	r.Logger.Debug("running task", "task", name, "commands", len(task.Commands), "host", r.Host)

	for _, line := range task.Commands {
		// A running child is never killed from here; it receives terminal
		// signals itself. Cancellation only stops the next command.
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("task %q interrupted: %w", name, err)
		}

		argv, err := Resolve(r.Shell, line, cfg.Variables)
		if err != nil {
			return err
		}

		r.Logger.Debug("running command", "task", name, "argv", argv)

		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = r.Stdin
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		cmd.Env = childEnv

		if err := r.Exec(cmd); err != nil {
			return classify(strings.Join(argv, " "), err)
		}
	}
	return nil
}

func (r *Runner) environ() []string {
	if r.Environ == nil {
		return nil
	}
	return r.Environ()
}

func classify(command string, err error) error {
	var spawnErr *SpawnError
	if errors.As(err, &spawnErr) {
		return err
	}

	code := 1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		code = exitErr.ExitCode()
	}
	return &CommandFailedError{Command: command, Code: code, Err: err}
}

// CheckPlatform validates the task's platforms_supported entries and
// requires host to be one of them. Tasks without the key run anywhere.
func CheckPlatform(name string, task *config.Task, host platform.Platform) error {
	if task.PlatformsSupported == nil {
		return nil
	}

	allowed := false
	for _, entry := range task.PlatformsSupported {
		p, err := platform.Parse(entry)
		if err != nil {
			return fmt.Errorf("%w for task %q: %w", ErrInvalidPlatform, name, err)
		}
		if p == host {
			allowed = true
		}
	}

	if !allowed {
		return fmt.Errorf("%w: supported platforms are [%s]", ErrUnsupportedPlatform, strings.Join(task.PlatformsSupported, ", "))
	}
	return nil
}

// TaskEnv returns the task's variables as KEY=value entries: env_vars
// first, then the dotenv file, with later names overriding earlier ones.
func TaskEnv(task *config.Task) ([]string, error) {
	var (
		order  []string
		values = make(map[string]string)
	)
	set := func(name, value string) {
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = value
	}

	for _, ev := range task.EnvVars {
		set(ev.Name, ev.Value)
	}

	if task.DotenvFile != "" {
		pairs, err := dotenv.Read(task.DotenvFile)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			set(p.Name, p.Value)
		}
	}

	env := make([]string, 0, len(order))
	for _, name := range order {
		env = append(env, name+"="+values[name])
	}
	return env, nil
}
