package runner

import (
	"strings"

	"github.com/grqphical/taskrabbit/internal/platform"
	"github.com/grqphical/taskrabbit/internal/vars"
)

// Shell turns a substituted command line into the argv that is executed.
// Lines are split on single spaces; there is no quoting, and repeated
// spaces produce empty arguments.
type Shell interface {
	Argv(line string) []string
}

// DirectShell executes the first token as the program, without a shell.
type DirectShell struct{}

func (DirectShell) Argv(line string) []string {
	return strings.Split(line, " ")
}

// CmdShell routes every command through "cmd /c".
type CmdShell struct{}

func (CmdShell) Argv(line string) []string {
	return append([]string{"cmd", "/c"}, strings.Split(line, " ")...)
}

// ShellFor returns the command interpretation used on host.
func ShellFor(host platform.Platform) Shell {
	if host == platform.Windows {
		return CmdShell{}
	}
	return DirectShell{}
}

// Resolve substitutes variables into line and splits it for shell.
func Resolve(shell Shell, line string, variables map[string]any) ([]string, error) {
	substituted, err := vars.Substitute(line, variables)
	if err != nil {
		return nil, err
	}
	return shell.Argv(substituted), nil
}
