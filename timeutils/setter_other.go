//go:build !linux && !darwin && !windows

package timeutils

import (
	"runtime"

	"github.com/pkg/errors"
)

func (SystemSetter) SetLocalTime(LocalTime) error {
	return &OSError{Code: -1, Err: errors.Wrap(ErrUnsupportedPlatform, runtime.GOOS)}
}
