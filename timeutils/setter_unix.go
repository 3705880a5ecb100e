//go:build linux || darwin

package timeutils

import (
	"time"

	"golang.org/x/sys/unix"
)

// SetLocalTime reads lt in the machine's local zone and sets the clock with
// settimeofday. Requires CAP_SYS_TIME or root.
func (SystemSetter) SetLocalTime(lt LocalTime) error {
	t := lt.In(time.Local)
	tv := unix.NsecToTimeval(t.UnixNano())
	if err := unix.Settimeofday(&tv); err != nil {
		return osError(err)
	}
	return nil
}
