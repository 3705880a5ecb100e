package timeutils

import (
	"fmt"
	"os/exec"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// ClockSetter overwrites the operating system's local wall clock.
type ClockSetter interface {
	SetLocalTime(lt LocalTime) error
}

// SystemSetter applies the time through the native clock primitive of the
// running platform. See setter_*.go.
type SystemSetter struct{}

// CommandSetter applies the time by running the platform's date/time tools.
type CommandSetter struct {
	// Sudo prefixes the unix commands with sudo.
	Sudo bool

	command func(name string, args ...string) *exec.Cmd
}

// NewCommandSetter returns a CommandSetter that runs real processes.
func NewCommandSetter(sudo bool) *CommandSetter {
	return &CommandSetter{Sudo: sudo, command: exec.Command}
}

// SetLocalTime runs each command in turn and stops at the first failure.
func (c *CommandSetter) SetLocalTime(lt LocalTime) error {
	commands, err := setTimeCommands(runtime.GOOS, lt.In(time.Local), c.Sudo)
	if err != nil {
		return err
	}

	command := c.command
	if command == nil {
		command = exec.Command
	}
	for _, args := range commands {
		if err := command(args[0], args[1:]...).Run(); err != nil {
			return osError(err)
		}
	}
	return nil
}

// setTimeCommands builds the command lines that set t as local time on goos.
func setTimeCommands(goos string, t time.Time, sudo bool) ([][]string, error) {
	var commands [][]string

	switch goos {
	case "windows":
		commands = [][]string{
			{"cmd", "/C", "date", t.Format("2006-01-02")},
			{"cmd", "/C", "time", t.Format("15:04:05.00")},
		}
		return commands, nil
	case "linux":
		commands = [][]string{{"date", "-s", t.Format("2006-01-02 15:04:05.000")}}
	case "darwin":
		commands = [][]string{{"date", t.Format("010215042006.05")}}
	case "freebsd", "openbsd", "netbsd":
		commands = [][]string{{"date", t.Format("200601021504.05")}}
	default:
		return nil, &OSError{Code: -1, Err: errors.Wrap(ErrUnsupportedPlatform, goos)}
	}

	if sudo {
		for i, args := range commands {
			commands[i] = append([]string{"sudo"}, args...)
		}
	}
	return commands, nil
}

// osError wraps a platform failure, keeping its code as reported.
func osError(err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &OSError{Code: int(errno), Err: err}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &OSError{Code: exitErr.ExitCode(), Err: err}
	}
	return &OSError{Code: -1, Err: err}
}

// String names the setter for reports.
func (SystemSetter) String() string { return fmt.Sprintf("system call (%s)", runtime.GOOS) }

func (c *CommandSetter) String() string { return "system tools" }
