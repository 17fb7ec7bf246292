package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestones_RequestApproveReject(t *testing.T) {
	m := NewMilestones(1)
	require.Equal(t, StateNotStarted, m.Brainstorming)

	// team requests review
	assert.True(t, m.Request(KindBrainstorming))
	assert.Equal(t, StatePendingReview, m.Brainstorming)

	// re-requesting while pending is a no-op
	assert.False(t, m.Request(KindBrainstorming))
	assert.Equal(t, StatePendingReview, m.Brainstorming)

	// admin rejects, milestone returns to not-started with no trace
	require.NoError(t, m.Reject(KindBrainstorming))
	assert.Equal(t, StateNotStarted, m.Brainstorming)

	// team re-requests, admin approves
	assert.True(t, m.Request(KindBrainstorming))
	require.NoError(t, m.Approve(KindBrainstorming))
	assert.Equal(t, StateApproved, m.Brainstorming)

	// requesting an approved milestone is also a no-op
	assert.False(t, m.Request(KindBrainstorming))
	assert.Equal(t, StateApproved, m.Brainstorming)
}

func TestMilestones_InvalidTransitions(t *testing.T) {
	m := NewMilestones(1)

	err := m.Approve(KindPRD)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateNotStarted, m.PRD)

	err = m.Reject(KindPRD)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateNotStarted, m.PRD)

	require.True(t, m.Request(KindPRD))
	require.NoError(t, m.Approve(KindPRD))
	err = m.Approve(KindPRD)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMilestones_ForceSet(t *testing.T) {
	m := NewMilestones(1)

	// admin bypass skips the review queue entirely
	m.ForceSet(KindBuild, true)
	assert.Equal(t, StateApproved, m.Build)

	m.ForceSet(KindBuild, false)
	assert.Equal(t, StateNotStarted, m.Build)

	// bypass also clears a pending request
	require.True(t, m.Request(KindBuild))
	m.ForceSet(KindBuild, true)
	assert.Equal(t, StateApproved, m.Build)
}

func TestStateFromFlags(t *testing.T) {
	testCases := []struct {
		name     string
		complete bool
		pending  bool
		expected MilestoneState
	}{
		{"not started", false, false, StateNotStarted},
		{"pending review", false, true, StatePendingReview},
		{"approved", true, false, StateApproved},
		{"both flags set decodes as approved", true, true, StateApproved},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StateFromFlags(tc.complete, tc.pending))
		})
	}
}

func TestMilestoneState_FlagsRoundTrip(t *testing.T) {
	for _, state := range []MilestoneState{StateNotStarted, StatePendingReview, StateApproved} {
		complete, pending := state.Flags()
		assert.Equal(t, state, StateFromFlags(complete, pending))
		assert.False(t, complete && pending)
	}
}

func TestComputeProgress(t *testing.T) {
	testCases := []struct {
		name     string
		states   [3]MilestoneState
		expected int
	}{
		{"none approved", [3]MilestoneState{StateNotStarted, StateNotStarted, StateNotStarted}, 0},
		{"one approved", [3]MilestoneState{StateApproved, StateNotStarted, StateNotStarted}, 33},
		{"two approved", [3]MilestoneState{StateApproved, StateApproved, StateNotStarted}, 67},
		{"all approved", [3]MilestoneState{StateApproved, StateApproved, StateApproved}, 100},
		{"pending does not count", [3]MilestoneState{StateApproved, StatePendingReview, StatePendingReview}, 33},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Milestones{
				Brainstorming: tc.states[0],
				PRD:           tc.states[1],
				Build:         tc.states[2],
			}
			assert.Equal(t, tc.expected, ComputeProgress(m))
		})
	}

	assert.Equal(t, 0, ComputeProgress(nil))
}

func TestComputeProgress_Monotonic(t *testing.T) {
	// flipping any milestone to approved never decreases progress
	states := []MilestoneState{StateNotStarted, StatePendingReview, StateApproved}
	for _, bs := range states {
		for _, prd := range states {
			for _, bld := range states {
				m := &Milestones{Brainstorming: bs, PRD: prd, Build: bld}
				before := ComputeProgress(m)
				for _, kind := range []MilestoneKind{KindBrainstorming, KindPRD, KindBuild} {
					flipped := *m
					flipped.ForceSet(kind, true)
					assert.GreaterOrEqual(t, ComputeProgress(&flipped), before)
				}
			}
		}
	}
}

func TestParseMilestoneKind(t *testing.T) {
	for _, valid := range []string{"brainstorming", "prd", "build"} {
		kind, err := ParseMilestoneKind(valid)
		require.NoError(t, err)
		assert.Equal(t, MilestoneKind(valid), kind)
	}

	_, err := ParseMilestoneKind("design")
	assert.Error(t, err)
}
