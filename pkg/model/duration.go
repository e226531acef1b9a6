package model

import (
	"fmt"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

// Duration is a journey duration with minute resolution, parsed from the
// ISO-8601 style PTnHnM tokens the wire format uses. TotalMinutes is always
// Hours*60+Minutes, maintained at construction.
type Duration struct {
	Hours        int `json:"hours" groups:"basic"`
	Minutes      int `json:"minutes" groups:"basic"`
	TotalMinutes int `json:"totalMinutes" groups:"basic"`
}

func NewDurationFromMinutes(totalMinutes int) Duration {
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	return Duration{
		Hours:        totalMinutes / 60,
		Minutes:      totalMinutes % 60,
		TotalMinutes: totalMinutes,
	}
}

// ParseDuration parses PTnHnM (optionally with a day component, PnDTnHnM).
// Second components are truncated.
func ParseDuration(text string) (Duration, error) {
	parsed, err := iso8601.ParseISO8601(text)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", text, err)
	}

	totalMinutes := ((parsed.W*7+parsed.D)*24+parsed.TH)*60 + parsed.TM

	return NewDurationFromMinutes(totalMinutes), nil
}

func (d Duration) AsOJPFormat() string {
	return fmt.Sprintf("PT%dH%dM", d.Hours, d.Minutes)
}

// Format renders the display form used on trip summaries, e.g. "2h 5min" or
// "45min".
func (d Duration) Format() string {
	if d.Hours == 0 {
		return fmt.Sprintf("%dmin", d.Minutes)
	}

	return fmt.Sprintf("%dh %dmin", d.Hours, d.Minutes)
}

func (d Duration) Plus(other Duration) Duration {
	return NewDurationFromMinutes(d.TotalMinutes + other.TotalMinutes)
}

func (d Duration) AsDuration() time.Duration {
	return time.Duration(d.TotalMinutes) * time.Minute
}

// DurationBetween truncates to whole minutes, matching the wire resolution.
func DurationBetween(from time.Time, to time.Time) Duration {
	if to.Before(from) {
		return NewDurationFromMinutes(0)
	}

	return NewDurationFromMinutes(int(to.Sub(from).Minutes()))
}
