package model

import (
	"time"
)

const (
	CriterionMin = 1
	CriterionMax = 5
)

// Evaluation holds the five judging criteria, each in [1,5]. TotalScore
// is derived; ComputeTotal is the single authoritative computation and
// is re-run before every write.
type Evaluation struct {
	TeamID         int64     `json:"team_id"`
	Novelty        int       `json:"novelty"`
	FastestToBuild int       `json:"fastest_to_build"`
	FeatureCount   int       `json:"feature_count"`
	Clarity        int       `json:"clarity"`
	ImpactReach    int       `json:"impact_reach"`
	TotalScore     int       `json:"total_score"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewEvaluation returns the default evaluation a team starts with:
// every criterion at the minimum, total 5.
func NewEvaluation(teamID int64) *Evaluation {
	e := &Evaluation{
		TeamID:         teamID,
		Novelty:        CriterionMin,
		FastestToBuild: CriterionMin,
		FeatureCount:   CriterionMin,
		Clarity:        CriterionMin,
		ImpactReach:    CriterionMin,
	}
	e.TotalScore = e.ComputeTotal()
	return e
}

// ComputeTotal sums the five criteria. It performs no clamping; callers
// clamp before storage.
func (e *Evaluation) ComputeTotal() int {
	return e.Novelty + e.FastestToBuild + e.FeatureCount + e.Clarity + e.ImpactReach
}

// ClampCriterion pins a criterion value into the [1,5] scale.
func ClampCriterion(v int) int {
	if v < CriterionMin {
		return CriterionMin
	}
	if v > CriterionMax {
		return CriterionMax
	}
	return v
}
