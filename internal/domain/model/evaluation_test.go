package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEvaluation_Defaults(t *testing.T) {
	e := NewEvaluation(7)

	assert.Equal(t, int64(7), e.TeamID)
	assert.Equal(t, 1, e.Novelty)
	assert.Equal(t, 1, e.FastestToBuild)
	assert.Equal(t, 1, e.FeatureCount)
	assert.Equal(t, 1, e.Clarity)
	assert.Equal(t, 1, e.ImpactReach)
	assert.Equal(t, 5, e.TotalScore)
}

func TestEvaluation_ComputeTotal(t *testing.T) {
	e := &Evaluation{
		Novelty:        4,
		FastestToBuild: 3,
		FeatureCount:   2,
		Clarity:        5,
		ImpactReach:    4,
	}
	assert.Equal(t, 18, e.ComputeTotal())
}

func TestEvaluation_TotalRange(t *testing.T) {
	// every criteria combination on the 1-5 scale sums into [5,25]
	for a := 1; a <= 5; a++ {
		for b := 1; b <= 5; b++ {
			for c := 1; c <= 5; c++ {
				e := &Evaluation{Novelty: a, FastestToBuild: b, FeatureCount: c, Clarity: 1, ImpactReach: 5}
				total := e.ComputeTotal()
				assert.GreaterOrEqual(t, total, 5)
				assert.LessOrEqual(t, total, 25)
				assert.Equal(t, a+b+c+1+5, total)
			}
		}
	}
}

func TestClampCriterion(t *testing.T) {
	testCases := []struct {
		in       int
		expected int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{6, 5},
		{100, 5},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ClampCriterion(tc.in))
	}
}
