// Package errlog records pipeline failures in a plain text file, one line
// per failure.
package errlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// DefaultPath is relative to the working directory.
const DefaultPath = "./logs_error.txt"

// defaultMode applies to a log file created by Log.
const defaultMode os.FileMode = 0o644

// Logger appends failure lines shaped "<message> - [<seconds>]" to Path,
// where seconds is the local seconds-of-minute at log time.
type Logger struct {
	Path string
	Now  func() time.Time
}

// New returns a Logger writing to path.
func New(path string) *Logger {
	return &Logger{Path: path, Now: time.Now}
}

// Line formats a single log line, including the trailing newline.
func Line(message string, at time.Time) string {
	return fmt.Sprintf("%s - [%d]\n", message, at.Second())
}

// Log adds message to the log file, creating it when absent. The existing
// content is read and the whole file rewritten through a temp file, so a
// failed write leaves the previous lines intact. Errors are returned to the
// caller and never abort the process.
func (l *Logger) Log(message string) error {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	line := Line(message, now().Local())

	target, mode, err := resolve(l.Path)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(target)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "reading log file %s", l.Path)
	}
	content = append(content, line...)

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp log file")
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "setting log file mode")
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "writing temp log file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "closing temp log file")
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "replacing log file %s", l.Path)
	}
	return nil
}

// resolve follows a symlinked log path to the file it names and returns the
// permissions the rewritten file must keep.
func resolve(path string) (string, os.FileMode, error) {
	target, err := filepath.EvalSymlinks(path)
	if os.IsNotExist(err) {
		return path, defaultMode, nil
	}
	if err != nil {
		return "", 0, errors.Wrapf(err, "resolving log file %s", path)
	}

	fi, err := os.Stat(target)
	if err != nil {
		return "", 0, errors.Wrapf(err, "stat log file %s", path)
	}
	return target, fi.Mode().Perm(), nil
}
