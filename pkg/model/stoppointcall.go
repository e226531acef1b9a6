package model

import (
	"fmt"
	"time"

	"github.com/openjourney/ojp/pkg/schema"
)

const XSDDateTimeFormat = "2006-01-02T15:04:05Z07:00"

// StopTime pairs the timetabled instant with its realtime estimate, either of
// which may be absent.
type StopTime struct {
	Timetable *time.Time `json:"timetable,omitempty" groups:"basic"`
	Realtime  *time.Time `json:"realtime,omitempty" groups:"basic"`
}

// Best returns the realtime instant when present, the timetabled one
// otherwise.
func (t StopTime) Best() *time.Time {
	if t.Realtime != nil {
		return t.Realtime
	}

	return t.Timetable
}

func (t StopTime) Format() string {
	best := t.Best()
	if best == nil {
		return ""
	}

	return best.Format("15:04")
}

// DelayMinutes returns the realtime delay and whether one is computable.
func (t StopTime) DelayMinutes() (int, bool) {
	if t.Timetable == nil || t.Realtime == nil {
		return 0, false
	}

	return int(t.Realtime.Sub(*t.Timetable).Minutes()), true
}

// DelayText renders the delay in the board notation, e.g. "+3'". On-time and
// unknown delays render empty.
func (t StopTime) DelayText() string {
	delay, known := t.DelayMinutes()
	if !known || delay == 0 {
		return ""
	}

	return fmt.Sprintf("%+d'", delay)
}

type StopPlatform struct {
	Timetable string `json:"timetable,omitempty" groups:"basic"`
	Realtime  string `json:"realtime,omitempty" groups:"basic"`
}

func (p StopPlatform) Best() string {
	if p.Realtime != "" {
		return p.Realtime
	}

	return p.Timetable
}

// StopPointCall is one scheduled/realtime visit of a service at a stop. Built
// once per parse; consumed by leg and board builders.
type StopPointCall struct {
	StopPointRef  string `json:"stopPointRef" groups:"basic"`
	StopPointName string `json:"stopPointName" groups:"basic"`

	Place *Place `json:"place,omitempty" groups:"detailed"`

	Arrival   StopTime     `json:"arrival" groups:"basic"`
	Departure StopTime     `json:"departure" groups:"basic"`
	Platform  StopPlatform `json:"platform" groups:"basic"`

	Order int `json:"order,omitempty" groups:"detailed"`

	NotWheelchairAccessible bool `json:"notWheelchairAccessible,omitempty" groups:"basic"`

	// Occupancy per fare class, e.g. "firstClass" -> "manySeatsAvailable".
	Occupancy map[string]string `json:"occupancy,omitempty" groups:"basic"`

	RequestStop       bool `json:"requestStop,omitempty" groups:"basic"`
	UnplannedStop     bool `json:"unplannedStop,omitempty" groups:"basic"`
	NotServicedStop   bool `json:"notServicedStop,omitempty" groups:"basic"`
	NoBoardingAtStop  bool `json:"noBoardingAtStop,omitempty" groups:"basic"`
	NoAlightingAtStop bool `json:"noAlightingAtStop,omitempty" groups:"basic"`
}

func NewStopPointCallFromSchema(s schema.CallAtStop, context *ResolutionContext) *StopPointCall {
	call := &StopPointCall{
		StopPointRef:  s.StopPointRef,
		StopPointName: s.StopPointName,

		Arrival:   makeStopTime(s.PlannedArrival, s.EstimatedArrival, context),
		Departure: makeStopTime(s.PlannedDeparture, s.EstimatedDeparture, context),
		Platform: StopPlatform{
			Timetable: s.PlannedQuay,
			Realtime:  s.EstimatedQuay,
		},

		Order: s.Order,

		NotWheelchairAccessible: s.NotWheelchairAccessible,

		RequestStop:       s.RequestStop,
		UnplannedStop:     s.UnplannedStop,
		NotServicedStop:   s.NotServicedStop,
		NoBoardingAtStop:  s.NoBoardingAtStop,
		NoAlightingAtStop: s.NoAlightingAtStop,
	}

	call.Place = context.ResolvePlace(
		PlaceRef{Ref: s.StopPointRef, Name: s.StopPointName, Source: PlaceRefSourceStopPoint},
		"stop-point-call",
	)

	if len(s.Occupancy) > 0 {
		call.Occupancy = map[string]string{}
		for _, occupancy := range s.Occupancy {
			call.Occupancy[occupancy.FareClass] = occupancy.Level
		}
	}

	return call
}

func makeStopTime(planned string, estimated string, context *ResolutionContext) StopTime {
	return StopTime{
		Timetable: parseWireTime(planned, context),
		Realtime:  parseWireTime(estimated, context),
	}
}

func parseWireTime(text string, context *ResolutionContext) *time.Time {
	if text == "" {
		return nil
	}

	parsed, err := time.Parse(XSDDateTimeFormat, text)
	if err != nil {
		context.Warn(Warning{Kind: WarningMalformedTimestamp, Detail: text})
		return nil
	}

	return &parsed
}
