package timeutils

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// rawRecord mirrors TimeRecord with pointer fields so absent keys can be told
// apart from zero values.
type rawRecord struct {
	DateTime    *string `json:"datetime"`
	DayOfWeek   *uint8  `json:"day_of_week"`
	DayOfYear   *uint32 `json:"day_of_year"`
	Timezone    *string `json:"timezone"`
	UnixTime    *int64  `json:"unixtime"`
	UTCDateTime *string `json:"utc_datetime"`
	UTCOffset   *string `json:"utc_offset"`
	WeekNumber  *uint8  `json:"week_number"`
}

// ParseRecord decodes the time service body. Every field is required.
func ParseRecord(body string) (TimeRecord, error) {
	var raw rawRecord
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return TimeRecord{}, &ParseError{Kind: ErrMalformedJSON, Err: err}
	}

	required := []struct {
		name    string
		present bool
	}{
		{"datetime", raw.DateTime != nil},
		{"day_of_week", raw.DayOfWeek != nil},
		{"day_of_year", raw.DayOfYear != nil},
		{"timezone", raw.Timezone != nil},
		{"unixtime", raw.UnixTime != nil},
		{"utc_datetime", raw.UTCDateTime != nil},
		{"utc_offset", raw.UTCOffset != nil},
		{"week_number", raw.WeekNumber != nil},
	}
	for _, f := range required {
		if !f.present {
			return TimeRecord{}, parseErr(ErrMalformedJSON, f.name, "")
		}
	}

	return TimeRecord{
		DateTime:    *raw.DateTime,
		DayOfWeek:   *raw.DayOfWeek,
		DayOfYear:   *raw.DayOfYear,
		Timezone:    *raw.Timezone,
		UnixTime:    *raw.UnixTime,
		UTCDateTime: *raw.UTCDateTime,
		UTCOffset:   *raw.UTCOffset,
		WeekNumber:  *raw.WeekNumber,
	}, nil
}

// Decompose splits rec.DateTime, shaped YYYY-MM-DDTHH:MM:SS.ffffff-HH:MM,
// into the fields of a LocalTime.
//
// Milliseconds are the first two fractional digits read as an integer, so
// ".873421" becomes 87, not 873. Only negative UTC offsets are accepted; a
// "+" or "Z" suffix is rejected with ErrUnsupportedOffsetSign.
func Decompose(rec TimeRecord) (LocalTime, error) {
	dt := rec.DateTime

	domains := strings.Split(dt, "T")
	if len(domains) != 2 {
		return LocalTime{}, parseErr(ErrMalformedDateTime, "datetime", dt)
	}
	if strings.ContainsAny(domains[1], "+Zz") {
		return LocalTime{}, parseErr(ErrUnsupportedOffsetSign, "datetime", dt)
	}

	date := strings.Split(domains[0], "-")
	if len(date) != 3 {
		return LocalTime{}, parseErr(ErrMalformedDateTime, "datetime", dt)
	}

	// The offset carries its own colon, so a well formed clock splits into 4.
	clock := strings.Split(domains[1], ":")
	if len(clock) != 4 {
		return LocalTime{}, parseErr(ErrMalformedDateTime, "datetime", dt)
	}

	seconds := strings.Split(clock[2], ".")
	if len(seconds) != 2 {
		return LocalTime{}, parseErr(ErrMalformedDateTime, "datetime", dt)
	}

	tail := strings.Split(seconds[1], "-")
	if len(tail) != 2 || !isDigits(tail[1], 2) || !isDigits(clock[3], 2) {
		return LocalTime{}, parseErr(ErrMalformedDateTime, "datetime", dt)
	}

	fraction := tail[0]
	if len(fraction) < 2 || !isDigits(fraction, len(fraction)) {
		return LocalTime{}, parseErr(ErrInvalidNumericField, "millisecond", fraction)
	}

	var (
		lt  LocalTime
		err error
	)
	fields := []struct {
		name  string
		value string
		dst   *uint16
	}{
		{"year", date[0], &lt.Year},
		{"month", date[1], &lt.Month},
		{"day", date[2], &lt.Day},
		{"hour", clock[0], &lt.Hour},
		{"minute", clock[1], &lt.Minute},
		{"second", seconds[0], &lt.Second},
		{"millisecond", fraction[:2], &lt.Millisecond},
	}
	for _, f := range fields {
		if *f.dst, err = parseUint16(f.name, f.value); err != nil {
			return LocalTime{}, err
		}
	}

	if rec.DayOfWeek > 6 {
		return LocalTime{}, parseErr(ErrInvalidNumericField, "day_of_week", strconv.Itoa(int(rec.DayOfWeek)))
	}
	lt.DayOfWeek = uint16(rec.DayOfWeek)

	if err := validateCalendar(lt); err != nil {
		return LocalTime{}, err
	}
	return lt, nil
}

// Parse decodes body and decomposes its datetime in one step.
func Parse(body string) (TimeRecord, LocalTime, error) {
	rec, err := ParseRecord(body)
	if err != nil {
		return TimeRecord{}, LocalTime{}, err
	}
	lt, err := Decompose(rec)
	if err != nil {
		return rec, LocalTime{}, err
	}
	return rec, lt, nil
}

func parseUint16(field, value string) (uint16, error) {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, &ParseError{Kind: ErrInvalidNumericField, Field: field, Value: value, Err: err}
	}
	return uint16(n), nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateCalendar(lt LocalTime) error {
	itoa := func(v uint16) string { return strconv.Itoa(int(v)) }

	switch {
	case lt.Month < 1 || lt.Month > 12:
		return parseErr(ErrInvalidNumericField, "month", itoa(lt.Month))
	case lt.Day < 1 || int(lt.Day) > daysIn(time.Month(lt.Month), int(lt.Year)):
		return parseErr(ErrInvalidNumericField, "day", itoa(lt.Day))
	case lt.Hour > 23:
		return parseErr(ErrInvalidNumericField, "hour", itoa(lt.Hour))
	case lt.Minute > 59:
		return parseErr(ErrInvalidNumericField, "minute", itoa(lt.Minute))
	case lt.Second > 59:
		return parseErr(ErrInvalidNumericField, "second", itoa(lt.Second))
	}
	return nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
