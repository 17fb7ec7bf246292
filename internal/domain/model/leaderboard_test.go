package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaderboardFixture() []Team {
	return []Team{
		{
			ID: 1, TeamNumber: 1, Name: "Eco-Warriors", EloScore: 1200,
			Milestones: &Milestones{Brainstorming: StateApproved, PRD: StateApproved, Build: StateNotStarted},
			Evaluation: &Evaluation{TotalScore: 18},
		},
		{
			ID: 2, TeamNumber: 2, Name: "HealthBridge", EloScore: 1450,
			Milestones: &Milestones{Brainstorming: StateApproved, PRD: StateApproved, Build: StateApproved},
			Evaluation: &Evaluation{TotalScore: 25},
		},
		{
			ID: 3, TeamNumber: 3, Name: "FinFlow", EloScore: 1100,
			Milestones: &Milestones{Brainstorming: StateApproved, PRD: StateNotStarted, Build: StateNotStarted},
			Evaluation: &Evaluation{TotalScore: 9},
		},
	}
}

func TestBuildLeaderboard_SortByTotal(t *testing.T) {
	entries := BuildLeaderboard(leaderboardFixture(), SortByTotal)
	require.Len(t, entries, 3)

	assert.Equal(t, []int{25, 18, 9}, []int{entries[0].TotalScore, entries[1].TotalScore, entries[2].TotalScore})
	assert.Equal(t, "HealthBridge", entries[0].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestBuildLeaderboard_SortByElo(t *testing.T) {
	entries := BuildLeaderboard(leaderboardFixture(), SortByElo)
	require.Len(t, entries, 3)

	// elo order is independent of total_score order
	assert.Equal(t, []int{1450, 1200, 1100}, []int{entries[0].EloScore, entries[1].EloScore, entries[2].EloScore})
}

func TestBuildLeaderboard_SortByProgress(t *testing.T) {
	entries := BuildLeaderboard(leaderboardFixture(), SortByProgress)
	require.Len(t, entries, 3)

	assert.Equal(t, []int{100, 67, 33}, []int{entries[0].Progress, entries[1].Progress, entries[2].Progress})
}

func TestBuildLeaderboard_StableOnTies(t *testing.T) {
	teams := []Team{
		{ID: 1, TeamNumber: 1, Name: "A", Evaluation: &Evaluation{TotalScore: 10}},
		{ID: 2, TeamNumber: 2, Name: "B", Evaluation: &Evaluation{TotalScore: 10}},
		{ID: 3, TeamNumber: 3, Name: "C", Evaluation: &Evaluation{TotalScore: 10}},
		{ID: 4, TeamNumber: 4, Name: "D", Evaluation: &Evaluation{TotalScore: 15}},
	}

	first := BuildLeaderboard(teams, SortByTotal)
	second := BuildLeaderboard(teams, SortByTotal)

	// tied teams keep input order, and re-sorting reproduces it
	assert.Equal(t, "D", first[0].Name)
	assert.Equal(t, []string{"A", "B", "C"}, []string{first[1].Name, first[2].Name, first[3].Name})
	assert.Equal(t, first, second)
}

func TestBuildLeaderboard_Badges(t *testing.T) {
	teams := make([]Team, 5)
	for i := range teams {
		teams[i] = Team{ID: int64(i + 1), TeamNumber: i + 1, Evaluation: &Evaluation{TotalScore: 20 - i}}
	}

	entries := BuildLeaderboard(teams, SortByTotal)
	assert.Equal(t, "gold", entries[0].Badge)
	assert.Equal(t, "silver", entries[1].Badge)
	assert.Equal(t, "bronze", entries[2].Badge)
	assert.Equal(t, "#4", entries[3].Badge)
	assert.Equal(t, "#5", entries[4].Badge)
}

func TestBuildLeaderboard_MissingSatellites(t *testing.T) {
	// a team without evaluation or milestones scores zero, not a panic
	entries := BuildLeaderboard([]Team{{ID: 1, TeamNumber: 1, Name: "Empty"}}, SortByTotal)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].TotalScore)
	assert.Equal(t, 0, entries[0].Progress)
}

func TestParseLeaderboardSort(t *testing.T) {
	key, err := ParseLeaderboardSort("")
	require.NoError(t, err)
	assert.Equal(t, SortByTotal, key)

	for _, valid := range []string{"total", "elo", "progress"} {
		key, err := ParseLeaderboardSort(valid)
		require.NoError(t, err)
		assert.Equal(t, LeaderboardSort(valid), key)
	}

	_, err = ParseLeaderboardSort("alphabetical")
	assert.Error(t, err)
}
