//go:build windows

package timeutils

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procSetLocalTime = kernel32.NewProc("SetLocalTime")
)

// SetLocalTime calls kernel32 SetLocalTime. The process needs
// SeSystemtimePrivilege.
func (SystemSetter) SetLocalTime(lt LocalTime) error {
	st := windows.Systemtime{
		Year:         lt.Year,
		Month:        lt.Month,
		DayOfWeek:    lt.DayOfWeek,
		Day:          lt.Day,
		Hour:         lt.Hour,
		Minute:       lt.Minute,
		Second:       lt.Second,
		Milliseconds: lt.Millisecond,
	}

	r1, _, err := procSetLocalTime.Call(uintptr(unsafe.Pointer(&st)))
	if r1 == 0 {
		return osError(err)
	}
	return nil
}
