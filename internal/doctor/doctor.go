package doctor

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/grqphical/taskrabbit/internal/config"
	"github.com/grqphical/taskrabbit/internal/platform"
	"github.com/grqphical/taskrabbit/internal/runner"
	"github.com/grqphical/taskrabbit/internal/selector"
	"github.com/grqphical/taskrabbit/internal/vars"
)

type LookPath func(file string) (string, error)

type CheckResult struct {
	Name   string
	OK     bool
	Path   string
	Detail string
}

// cmdBuiltins are handled by cmd.exe itself and never appear on PATH.
var cmdBuiltins = map[string]bool{
	"assoc": true, "call": true, "cd": true, "chdir": true, "cls": true,
	"copy": true, "date": true, "del": true, "dir": true, "echo": true,
	"erase": true, "exit": true, "for": true, "ftype": true, "if": true,
	"md": true, "mkdir": true, "mklink": true, "move": true, "path": true,
	"pause": true, "popd": true, "pushd": true, "rd": true, "rem": true,
	"ren": true, "rename": true, "rmdir": true, "set": true, "start": true,
	"time": true, "title": true, "type": true, "ver": true, "vol": true,
}

// CheckTask reports whether the named task can run on host: its platform
// restriction and every program its commands would execute.
func CheckTask(cfg *config.Config, name string, host platform.Platform) ([]CheckResult, error) {
	return CheckTaskWithLookPath(cfg, name, host, runner.ShellFor(host), exec.LookPath)
}

func CheckTaskWithLookPath(cfg *config.Config, name string, host platform.Platform, shell runner.Shell, look LookPath) ([]CheckResult, error) {
	task, ok := cfg.Task(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", selector.ErrTaskNotFound, name)
	}

	_, viaCmd := shell.(runner.CmdShell)

	results := make([]CheckResult, 0, len(task.Commands)+1)
	results = append(results, checkPlatform(name, task, host))

	for _, line := range task.Commands {
		substituted, err := vars.Substitute(line, cfg.Variables)
		if err != nil {
			return nil, err
		}
		// Under cmd /c the program is the first token of the line, not cmd.
		program := runner.DirectShell{}.Argv(substituted)[0]
		if viaCmd && cmdBuiltins[strings.ToLower(program)] {
			results = append(results, CheckResult{Name: program, OK: true, Detail: "cmd builtin"})
			continue
		}
		results = append(results, checkProgram(look, program))
	}
	return results, nil
}

// AllOK reports whether every check passed.
func AllOK(results []CheckResult) bool {
	for _, result := range results {
		if !result.OK {
			return false
		}
	}
	return true
}

func checkPlatform(name string, task *config.Task, host platform.Platform) CheckResult {
	if err := runner.CheckPlatform(name, task, host); err != nil {
		return CheckResult{Name: "platform", OK: false, Detail: err.Error()}
	}
	return CheckResult{Name: "platform", OK: true, Detail: host.String()}
}

func checkProgram(look LookPath, program string) CheckResult {
	if program == "" {
		return CheckResult{Name: program, OK: false, Detail: "empty command"}
	}

	path, err := look(program)
	if err != nil {
		return CheckResult{Name: program, OK: false, Detail: err.Error()}
	}
	return CheckResult{Name: program, OK: true, Path: path}
}
