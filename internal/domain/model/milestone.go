package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

type MilestoneState string
type MilestoneKind string

const (
	StateNotStarted    MilestoneState = "NotStarted"
	StatePendingReview MilestoneState = "PendingReview"
	StateApproved      MilestoneState = "Approved"

	KindBrainstorming MilestoneKind = "brainstorming"
	KindPRD           MilestoneKind = "prd"
	KindBuild         MilestoneKind = "build"
)

var ErrInvalidTransition = errors.New("invalid milestone transition")

func ParseMilestoneKind(s string) (MilestoneKind, error) {
	switch MilestoneKind(s) {
	case KindBrainstorming, KindPRD, KindBuild:
		return MilestoneKind(s), nil
	}
	return "", fmt.Errorf("unknown milestone kind %q", s)
}

// Milestones tracks the review state of the three fixed checkpoints
// every team moves through.
type Milestones struct {
	TeamID        int64          `json:"team_id"`
	Brainstorming MilestoneState `json:"brainstorming"`
	PRD           MilestoneState `json:"prd"`
	Build         MilestoneState `json:"build"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewMilestones(teamID int64) *Milestones {
	return &Milestones{
		TeamID:        teamID,
		Brainstorming: StateNotStarted,
		PRD:           StateNotStarted,
		Build:         StateNotStarted,
	}
}

func (m *Milestones) State(kind MilestoneKind) MilestoneState {
	switch kind {
	case KindPRD:
		return m.PRD
	case KindBuild:
		return m.Build
	default:
		return m.Brainstorming
	}
}

func (m *Milestones) setState(kind MilestoneKind, state MilestoneState) {
	switch kind {
	case KindPRD:
		m.PRD = state
	case KindBuild:
		m.Build = state
	default:
		m.Brainstorming = state
	}
}

// Request moves a milestone into review. Requesting a milestone that is
// already pending or approved is a no-op; the returned bool reports
// whether anything changed.
func (m *Milestones) Request(kind MilestoneKind) bool {
	if m.State(kind) != StateNotStarted {
		return false
	}
	m.setState(kind, StatePendingReview)
	return true
}

// Approve completes a milestone that is under review.
func (m *Milestones) Approve(kind MilestoneKind) error {
	if m.State(kind) != StatePendingReview {
		return fmt.Errorf("approve %s from %s: %w", kind, m.State(kind), ErrInvalidTransition)
	}
	m.setState(kind, StateApproved)
	return nil
}

// Reject sends a milestone under review back to not-started. No record
// of the rejection is kept.
func (m *Milestones) Reject(kind MilestoneKind) error {
	if m.State(kind) != StatePendingReview {
		return fmt.Errorf("reject %s from %s: %w", kind, m.State(kind), ErrInvalidTransition)
	}
	m.setState(kind, StateNotStarted)
	return nil
}

// ForceSet is the admin bypass: it pins a milestone to Approved or
// NotStarted regardless of its current state, skipping review.
func (m *Milestones) ForceSet(kind MilestoneKind, approved bool) {
	if approved {
		m.setState(kind, StateApproved)
	} else {
		m.setState(kind, StateNotStarted)
	}
}

// StateFromFlags decodes the persisted complete/pending boolean pair.
// The pair complete=true pending=true is never written by any
// transition, but if encountered it decodes as Approved.
func StateFromFlags(complete, pending bool) MilestoneState {
	switch {
	case complete:
		return StateApproved
	case pending:
		return StatePendingReview
	default:
		return StateNotStarted
	}
}

// Flags encodes a state back into the two stored booleans.
func (s MilestoneState) Flags() (complete, pending bool) {
	switch s {
	case StateApproved:
		return true, false
	case StatePendingReview:
		return false, true
	default:
		return false, false
	}
}

// ComputeProgress returns the team's completion percentage. Only
// approved milestones count; pending ones do not.
func ComputeProgress(m *Milestones) int {
	if m == nil {
		return 0
	}
	completed := 0
	for _, s := range []MilestoneState{m.Brainstorming, m.PRD, m.Build} {
		if s == StateApproved {
			completed++
		}
	}
	return int(math.Round(float64(completed) / 3 * 100))
}
