package model

import (
	"regexp"
	"strings"

	"github.com/openjourney/ojp/pkg/schema"
)

// SituationContent is the disruption/advisory text attached to services,
// addressable by situation number from the per-delivery situation map.
type SituationContent struct {
	SituationNumber string   `json:"situationNumber" groups:"basic"`
	Summary         string   `json:"summary" groups:"basic"`
	Descriptions    []string `json:"descriptions,omitempty" groups:"basic"`
	SafeDetails     []string `json:"details,omitempty" groups:"basic"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func NewSituationContentFromSchema(s schema.Situation) *SituationContent {
	situation := &SituationContent{
		SituationNumber: s.SituationNumber,
		Summary:         strings.TrimSpace(s.Summary),
		Descriptions:    s.Descriptions,
	}

	// Detail texts arrive with embedded publisher markup; strip it before the
	// text reaches any renderer.
	for _, detail := range s.Details {
		safe := strings.TrimSpace(htmlTagPattern.ReplaceAllString(detail, " "))
		safe = strings.Join(strings.Fields(safe), " ")
		if safe != "" {
			situation.SafeDetails = append(situation.SafeDetails, safe)
		}
	}

	return situation
}
