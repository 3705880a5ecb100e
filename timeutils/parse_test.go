package timeutils_test

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldclockset/timeutils"
)

func saoPauloBody(datetime string) string {
	return fmt.Sprintf(`{
		"abbreviation": "-03",
		"datetime": %q,
		"day_of_week": 1,
		"day_of_year": 226,
		"dst": false,
		"timezone": "America/Sao_Paulo",
		"unixtime": 1692014742,
		"utc_datetime": "2023-08-14T12:05:42.873421+00:00",
		"utc_offset": "-03:00",
		"week_number": 33
	}`, datetime)
}

func TestParse(t *testing.T) {
	rec, lt, err := timeutils.Parse(saoPauloBody("2023-08-14T09:05:42.873421-03:00"))
	require.NoError(t, err)

	assert.Equal(t, "America/Sao_Paulo", rec.Timezone)
	assert.Equal(t, int64(1692014742), rec.UnixTime)
	assert.Equal(t, uint8(33), rec.WeekNumber)
	assert.Equal(t, timeutils.LocalTime{
		Year:        2023,
		Month:       8,
		Day:         14,
		DayOfWeek:   1,
		Hour:        9,
		Minute:      5,
		Second:      42,
		Millisecond: 87,
	}, lt)
}

func TestDecomposeMilliseconds(t *testing.T) {
	tests := []struct {
		fraction string
		want     uint16
	}{
		{"56", 56},
		{"873421", 87},
		{"999999", 99},
		{"05", 5},
		{"000001", 0},
	}

	for _, tt := range tests {
		t.Run(tt.fraction, func(t *testing.T) {
			lt, err := timeutils.Decompose(timeutils.TimeRecord{
				DateTime:  "2024-02-29T23:59:59." + tt.fraction + "-03:00",
				DayOfWeek: 4,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, lt.Millisecond)
			assert.Equal(t, uint16(29), lt.Day)
		})
	}
}

func TestParseRecordMissingField(t *testing.T) {
	_, err := timeutils.ParseRecord(`{"day_of_week":1,"day_of_year":226,"timezone":"America/Sao_Paulo",
		"unixtime":1692014742,"utc_datetime":"x","utc_offset":"-03:00","week_number":33}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, timeutils.ErrMalformedJSON))

	var pe *timeutils.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "datetime", pe.Field)
}

func TestParseRecordMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":         "<html>503</html>",
		"empty":            "",
		"mistyped":         `{"datetime": 12}`,
		"negative weekday": `{"datetime":"2023-08-14T09:05:42.873421-03:00","day_of_week":-1}`,
		"null datetime":    `{"datetime":null,"day_of_week":1,"day_of_year":1,"timezone":"x","unixtime":1,"utc_datetime":"x","utc_offset":"x","week_number":1}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := timeutils.ParseRecord(body)
			assert.True(t, errors.Is(err, timeutils.ErrMalformedJSON), "got %v", err)
		})
	}
}

func TestDecomposeErrors(t *testing.T) {
	tests := []struct {
		name      string
		datetime  string
		dayOfWeek uint8
		want      error
	}{
		{"missing T", "2023-08-14 09:05:42.873421-03:00", 1, timeutils.ErrMalformedDateTime},
		{"two T", "2023-08-14T09:05T42.873421-03:00", 1, timeutils.ErrMalformedDateTime},
		{"empty", "", 1, timeutils.ErrMalformedDateTime},
		{"short date", "2023-08T09:05:42.873421-03:00", 1, timeutils.ErrMalformedDateTime},
		{"short clock", "2023-08-14T09:05", 1, timeutils.ErrMalformedDateTime},
		{"no fraction", "2023-08-14T09:05:42-03:00", 1, timeutils.ErrMalformedDateTime},
		{"no offset", "2023-08-14T09:05:42.873421", 1, timeutils.ErrMalformedDateTime},
		{"bad offset", "2023-08-14T09:05:42.873421-3:00", 1, timeutils.ErrMalformedDateTime},
		{"positive offset", "2023-08-14T09:05:42.873421+03:00", 1, timeutils.ErrUnsupportedOffsetSign},
		{"utc suffix", "2023-08-14T09:05:42.873421Z", 1, timeutils.ErrUnsupportedOffsetSign},
		{"one fractional digit", "2023-08-14T09:05:42.8-03:00", 1, timeutils.ErrInvalidNumericField},
		{"letters in year", "20x3-08-14T09:05:42.873421-03:00", 1, timeutils.ErrInvalidNumericField},
		{"plus in clock", "2023-08-14T09:+5:42.873421-03:00", 1, timeutils.ErrUnsupportedOffsetSign},
		{"year overflow", "70000-08-14T09:05:42.873421-03:00", 1, timeutils.ErrInvalidNumericField},
		{"month 13", "2023-13-14T09:05:42.873421-03:00", 1, timeutils.ErrInvalidNumericField},
		{"february 30", "2023-02-30T09:05:42.873421-03:00", 1, timeutils.ErrInvalidNumericField},
		{"hour 24", "2023-08-14T24:05:42.873421-03:00", 1, timeutils.ErrInvalidNumericField},
		{"second 60", "2023-08-14T09:05:60.873421-03:00", 1, timeutils.ErrInvalidNumericField},
		{"weekday 7", "2023-08-14T09:05:42.873421-03:00", 7, timeutils.ErrInvalidNumericField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := timeutils.Decompose(timeutils.TimeRecord{DateTime: tt.datetime, DayOfWeek: tt.dayOfWeek})
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
			})
		})
	}
}
