package model

import (
	"fmt"

	"github.com/openjourney/ojp/pkg/schema"
)

type WarningKind string

const (
	WarningUnresolvedPlaceRef     WarningKind = "unresolved-place-ref"
	WarningUnresolvedSituationRef WarningKind = "unresolved-situation-ref"
	WarningMalformedTimestamp     WarningKind = "malformed-timestamp"
	WarningUnknownLegVariant      WarningKind = "unknown-leg-variant"
)

// Warning records a degraded-but-usable parse outcome, such as a leg whose
// endpoint ref was missing from the delivery's place map. Warnings are data,
// inspectable by the caller, not just log lines.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Ref    string      `json:"ref,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

func (w Warning) String() string {
	if w.Ref == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
	}

	return fmt.Sprintf("%s: %s (%s)", w.Kind, w.Ref, w.Detail)
}

// ResolutionContext carries the per-delivery ref maps every builder resolves
// against, and collects warnings raised along the way. One context lives for
// exactly one response parse.
type ResolutionContext struct {
	Places     map[string]*Place
	Situations map[string]*SituationContent

	warnings []Warning
}

func NewResolutionContext(places []schema.Place, situations []schema.Situation) *ResolutionContext {
	context := &ResolutionContext{
		Places:     map[string]*Place{},
		Situations: map[string]*SituationContent{},
	}

	for _, placeSchema := range places {
		place := NewPlaceFromSchema(placeSchema)
		if ref := place.Ref(); ref != "" {
			context.Places[ref] = place
		}
	}

	for _, situationSchema := range situations {
		situation := NewSituationContentFromSchema(situationSchema)
		context.Situations[situation.SituationNumber] = situation
	}

	return context
}

// ResolvePlace returns nil and records a warning when the ref is not in the
// map. Callers still construct their object, partially resolved.
func (c *ResolutionContext) ResolvePlace(ref PlaceRef, where string) *Place {
	if ref.Ref == "" {
		return nil
	}

	if place, found := c.Places[ref.Ref]; found {
		return place
	}

	c.Warn(Warning{Kind: WarningUnresolvedPlaceRef, Ref: ref.Ref, Detail: where})

	return nil
}

func (c *ResolutionContext) ResolveSituations(refs []string) []*SituationContent {
	var situations []*SituationContent

	for _, ref := range refs {
		if situation, found := c.Situations[ref]; found {
			situations = append(situations, situation)
		} else {
			c.Warn(Warning{Kind: WarningUnresolvedSituationRef, Ref: ref})
		}
	}

	return situations
}

func (c *ResolutionContext) Warn(warning Warning) {
	c.warnings = append(c.warnings, warning)
}

func (c *ResolutionContext) Warnings() []Warning {
	return c.warnings
}
