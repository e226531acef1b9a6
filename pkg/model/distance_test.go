package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumDistances_KeepsFirstProvenance(t *testing.T) {
	a := NewDistanceData(500, DistanceSourceLegLength)
	b := NewDistanceData(2000, DistanceSourceLinkProjection)

	sum := SumDistances(a, b)

	assert.Equal(t, 2500, sum.DistanceM)
	assert.Equal(t, DistanceSourceLegLength, sum.Source)

	// Operand order decides which tag survives.
	flipped := SumDistances(b, a)
	assert.Equal(t, 2500, flipped.DistanceM)
	assert.Equal(t, DistanceSourceLinkProjection, flipped.Source)
}

func TestDistanceData_Format(t *testing.T) {
	assert.Equal(t, "500m", NewDistanceData(500, DistanceSourceTrip).Format())
	assert.Equal(t, "1.5km", NewDistanceData(1500, DistanceSourceTrip).Format())
	assert.Equal(t, "0m", EmptyDistanceData().Format())
}
