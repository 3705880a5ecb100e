package timeutils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldclockset/timeutils"
)

func TestFormattedOutput(t *testing.T) {
	color.NoColor = true

	lt := timeutils.LocalTime{Year: 2023, Month: 8, Day: 14, DayOfWeek: 1, Hour: 9, Minute: 5, Second: 42, Millisecond: 87}
	r := timeutils.Report{
		URL:         "http://example.test/api/timezone/America/Sao_Paulo",
		Setter:      "system tools",
		Record:      timeutils.TimeRecord{Timezone: "America/Sao_Paulo", DateTime: "2023-08-14T09:05:42.873421-03:00", UTCOffset: "-03:00"},
		Applied:     lt,
		LocalBefore: lt.In(time.Local).Add(-2 * time.Second),
		RTT:         40 * time.Millisecond,
		NTPServer:   "pool.ntp.org",
		NTP:         &ntp.Response{Stratum: 2, ClockOffset: 3 * time.Millisecond},
	}

	assert.Equal(t, 2*time.Second, r.Difference())

	out, err := timeutils.FormattedOutput(r)
	require.NoError(t, err)
	for _, want := range []string{
		"America/Sao_Paulo",
		"2023-08-14 09:05:42.087 (Monday)",
		"2s",
		"40ms",
		"yes via system tools",
		"pool.ntp.org",
		"3ms",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormattedOutputDryRun(t *testing.T) {
	color.NoColor = true

	out, err := timeutils.FormattedOutput(timeutils.Report{DryRun: true})
	require.NoError(t, err)
	assert.Contains(t, out, "no (dry run)")
	assert.NotContains(t, out, "Stratum")
}

func TestFormattedOutputBorderless(t *testing.T) {
	color.NoColor = true

	out, err := timeutils.FormattedOutput(timeutils.Report{
		URL:    "http://example.test/api/timezone/America/Sao_Paulo",
		Record: timeutils.TimeRecord{Timezone: "America/Sao_Paulo"},
	})
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		for _, corner := range []string{"┌", "└", "│", "+", "|"} {
			assert.False(t, strings.HasPrefix(line, corner), "bordered line %q", line)
		}
	}

	// Left aligned: the short value starts in the same column as the long one.
	var sourceCol, zoneCol int
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "http://example.test"):
			sourceCol = strings.Index(line, "http://example.test")
		case strings.Contains(line, "America/Sao_Paulo"):
			zoneCol = strings.Index(line, "America/Sao_Paulo")
		}
	}
	require.NotZero(t, sourceCol)
	assert.Equal(t, sourceCol, zoneCol)
}
