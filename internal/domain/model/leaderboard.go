package model

import (
	"fmt"
	"sort"
)

type LeaderboardSort string

const (
	SortByTotal    LeaderboardSort = "total"
	SortByElo      LeaderboardSort = "elo"
	SortByProgress LeaderboardSort = "progress"
)

func ParseLeaderboardSort(s string) (LeaderboardSort, error) {
	switch LeaderboardSort(s) {
	case SortByTotal, SortByElo, SortByProgress:
		return LeaderboardSort(s), nil
	case "":
		return SortByTotal, nil
	}
	return "", fmt.Errorf("unknown leaderboard sort %q", s)
}

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	Badge      string `json:"badge"`
	TeamID     int64  `json:"team_id"`
	TeamNumber int    `json:"team_number"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Theme      string `json:"theme"`
	TotalScore int    `json:"total_score"`
	EloScore   int    `json:"elo_score"`
	Progress   int    `json:"progress"`
}

// BuildLeaderboard ranks teams descending by the chosen key. The sort
// is stable, so tied teams keep the input order (team_number ascending
// when fed from the store).
func BuildLeaderboard(teams []Team, key LeaderboardSort) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, t := range teams {
		e := LeaderboardEntry{
			TeamID:     t.ID,
			TeamNumber: t.TeamNumber,
			Name:       t.Name,
			Slug:       t.Slug,
			Theme:      t.Theme,
			EloScore:   t.EloScore,
			Progress:   ComputeProgress(t.Milestones),
		}
		if t.Evaluation != nil {
			e.TotalScore = t.Evaluation.TotalScore
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		switch key {
		case SortByElo:
			return entries[i].EloScore > entries[j].EloScore
		case SortByProgress:
			return entries[i].Progress > entries[j].Progress
		default:
			return entries[i].TotalScore > entries[j].TotalScore
		}
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Badge = rankBadge(i + 1)
	}
	return entries
}

func rankBadge(rank int) string {
	switch rank {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "bronze"
	}
	return fmt.Sprintf("#%d", rank)
}
