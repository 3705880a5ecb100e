package timeutils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/beevik/ntp"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Report collects what a sync run did, for display.
type Report struct {
	URL         string
	Setter      string
	DryRun      bool
	Record      TimeRecord
	Applied     LocalTime
	LocalBefore time.Time
	RTT         time.Duration

	NTPServer string
	NTP       *ntp.Response
}

// NewReport builds a Report from a pipeline result.
func NewReport(url, setter string, res *Result) Report {
	return Report{
		URL:         url,
		Setter:      setter,
		DryRun:      !res.Applied,
		Record:      res.Record,
		Applied:     res.LocalTime,
		LocalBefore: res.LocalBefore,
		RTT:         res.RTT,
	}
}

// Difference is how far the local clock was from the service time.
func (r Report) Difference() time.Duration {
	return r.Applied.In(time.Local).Sub(r.LocalBefore)
}

// FormattedOutput renders r as a two column table.
func FormattedOutput(r Report) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
	table.Header("Property", "Value")

	var rows [][]string
	addRow := func(property, value string) {
		rows = append(rows, []string{property, value})
	}
	addColoredRow := func(property string, d time.Duration) {
		rows = append(rows, []string{property, colorDuration(d)})
	}

	addRow("Source", r.URL)
	addRow("Timezone", r.Record.Timezone)
	addRow("Remote Time", r.Record.DateTime)
	addRow("UTC Offset", r.Record.UTCOffset)
	addRow("Local Time", r.Applied.String())
	addRow("Before", r.LocalBefore.Format(time.RFC3339Nano))
	addColoredRow("Time Difference", r.Difference())
	addRow("Round Trip Time", r.RTT.String())
	if r.DryRun {
		addRow("Applied", "no (dry run)")
	} else {
		addRow("Applied", "yes via "+r.Setter)
	}

	if r.NTP != nil {
		addRow("NTP Server", r.NTPServer)
		addRow("Stratum", fmt.Sprintf("%d", r.NTP.Stratum))
		addRow("Root Delay", r.NTP.RootDelay.String())
		addRow("Root Dispersion", r.NTP.RootDispersion.String())
		addColoredRow("Clock Offset", r.NTP.ClockOffset)
	}

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return "", err
		}
	}
	if err := table.Render(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func colorDuration(d time.Duration) string {
	value := d.String()
	switch {
	case d.Abs() < 250*time.Millisecond:
		return color.GreenString(value)
	case d.Abs() < time.Second:
		return color.YellowString(value)
	default:
		return color.RedString(value)
	}
}
