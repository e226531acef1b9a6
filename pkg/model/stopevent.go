package model

import (
	"errors"

	"github.com/openjourney/ojp/pkg/schema"
)

// ErrMissingServiceBlock marks a board entry whose wire response omitted the
// service block entirely. Such entries are unusable and the caller skips them.
var ErrMissingServiceBlock = errors.New("stop event carries no service block")

// StopEventResult is one departure/arrival-board entry: the run's service,
// the call at the queried stop, and the calls before and after it.
type StopEventResult struct {
	ID string `json:"id" groups:"basic"`

	PreviousCalls []*StopPointCall `json:"previousCalls,omitempty" groups:"detailed"`
	ThisCall      *StopPointCall   `json:"thisCall" groups:"basic"`
	OnwardCalls   []*StopPointCall `json:"onwardCalls,omitempty" groups:"detailed"`

	Service *JourneyService `json:"service" groups:"basic"`

	Situations []*SituationContent `json:"situations,omitempty" groups:"basic"`
}

func NewStopEventResultFromSchema(s schema.StopEventResult, context *ResolutionContext) (*StopEventResult, error) {
	if s.Service == nil {
		return nil, ErrMissingServiceBlock
	}

	result := &StopEventResult{
		ID:      s.ID,
		Service: NewJourneyServiceFromSchema(*s.Service),
	}

	for _, call := range s.PreviousCalls {
		result.PreviousCalls = append(result.PreviousCalls, NewStopPointCallFromSchema(call, context))
	}

	if s.ThisCall != nil {
		result.ThisCall = NewStopPointCallFromSchema(*s.ThisCall, context)
	}

	for _, call := range s.OnwardCalls {
		result.OnwardCalls = append(result.OnwardCalls, NewStopPointCallFromSchema(call, context))
	}

	result.Situations = context.ResolveSituations(result.Service.SituationRefs)

	return result, nil
}
