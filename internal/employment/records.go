// Package employment analyzes a candidate's employment history as reported
// by the employment provider: overlapping tenures (a proxy for undisclosed
// concurrent employment), true total experience with overlaps merged out,
// and identity agreement between provider and trusted identity data.
//
// Like the identity comparators, everything here is pure: inputs arrive as
// value types, the reference date is passed in, and a record that cannot be
// parsed is excluded from the timeline with a flag instead of failing the
// whole analysis.
package employment

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for employment dates.
const DateLayout = "2006-01-02"

// Record is one establishment entry from the employment provider. An empty
// DateOfExit means the candidate is still employed there.
type Record struct {
	EstablishmentName string `json:"establishment_name" validate:"required"`
	DateOfJoining     string `json:"date_of_joining" validate:"required"`
	DateOfExit        string `json:"date_of_exit,omitempty"`
}

// Interval is a closed employment interval on the timeline. End is the exit
// date, or the reference date for a current job.
type Interval struct {
	Name      string
	Start     time.Time
	End       time.Time
	IsCurrent bool
}

// Employer is the display form of a timeline entry.
type Employer struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	IsCurrent bool   `json:"is_current"`
}

// buildTimeline parses records into closed intervals. Records with a missing
// or unparsable joining date are dropped with a per-record flag.
func buildTimeline(records []Record, today time.Time) ([]Interval, []string) {
	timeline := make([]Interval, 0, len(records))
	var flags []string

	for _, rec := range records {
		start, err := time.Parse(DateLayout, rec.DateOfJoining)
		if err != nil {
			flags = append(flags, unparseableFlag(rec.EstablishmentName))
			continue
		}

		end := today
		current := rec.DateOfExit == ""
		if !current {
			end, err = time.Parse(DateLayout, rec.DateOfExit)
			if err != nil {
				flags = append(flags, unparseableFlag(rec.EstablishmentName))
				continue
			}
		}

		name := rec.EstablishmentName
		if name == "" {
			name = "Unknown"
		}

		timeline = append(timeline, Interval{
			Name:      name,
			Start:     start,
			End:       end,
			IsCurrent: current,
		})
	}

	return timeline, flags
}

func unparseableFlag(establishment string) string {
	name := strings.ToUpper(strings.Join(strings.Fields(establishment), "_"))
	if name == "" {
		name = "UNKNOWN"
	}
	return fmt.Sprintf("EMPLOYMENT_RECORD_UNPARSEABLE_%s", name)
}

// monthsBetween returns the number of whole months from start to end,
// decrementing when the end day-of-month has not yet reached the start's.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
