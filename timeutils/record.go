package timeutils

import (
	"fmt"
	"time"
)

// TimeRecord is the decoded response of the time service.
type TimeRecord struct {
	DateTime    string `json:"datetime"`
	DayOfWeek   uint8  `json:"day_of_week"`
	DayOfYear   uint32 `json:"day_of_year"`
	Timezone    string `json:"timezone"`
	UnixTime    int64  `json:"unixtime"`
	UTCDateTime string `json:"utc_datetime"`
	UTCOffset   string `json:"utc_offset"`
	WeekNumber  uint8  `json:"week_number"`
}

// LocalTime is the calendar and wall clock record handed to a ClockSetter.
// Field widths match the native SYSTEMTIME layout.
type LocalTime struct {
	Year        uint16
	Month       uint16
	Day         uint16
	DayOfWeek   uint16
	Hour        uint16
	Minute      uint16
	Second      uint16
	Millisecond uint16
}

// In interprets the wall clock fields in loc.
func (lt LocalTime) In(loc *time.Location) time.Time {
	return time.Date(int(lt.Year), time.Month(lt.Month), int(lt.Day),
		int(lt.Hour), int(lt.Minute), int(lt.Second),
		int(lt.Millisecond)*int(time.Millisecond), loc)
}

func (lt LocalTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d (%s)",
		lt.Year, lt.Month, lt.Day, lt.Hour, lt.Minute, lt.Second, lt.Millisecond,
		time.Weekday(lt.DayOfWeek%7))
}
