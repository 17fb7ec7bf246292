package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hacktrack/internal/domain/model"
	"hacktrack/internal/domain/repository"
)

const leaderboardCacheKey = "leaderboard:teams"

// Cache is the slice of redis the leaderboard needs. Get returns
// (nil, nil) on a miss. A nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// LeaderboardService ranks all teams by the selected key. The joined
// team list is cached for a short TTL and dropped on every
// team-mutating write; the cache is an optimization only, a miss or a
// redis outage falls through to the store.
type LeaderboardService struct {
	teamRepo      repository.TeamRepository
	milestoneRepo repository.MilestoneRepository
	evalRepo      repository.EvaluationRepository
	cache         Cache
	cacheTTL      time.Duration
}

func NewLeaderboardService(
	teamRepo repository.TeamRepository,
	milestoneRepo repository.MilestoneRepository,
	evalRepo repository.EvaluationRepository,
	cache Cache,
	cacheTTL time.Duration,
) *LeaderboardService {
	return &LeaderboardService{
		teamRepo:      teamRepo,
		milestoneRepo: milestoneRepo,
		evalRepo:      evalRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

// Get returns the full ranking for the requested sort key.
func (s *LeaderboardService) Get(ctx context.Context, key model.LeaderboardSort) ([]model.LeaderboardEntry, error) {
	teams, err := s.loadTeams(ctx)
	if err != nil {
		return nil, err
	}
	return model.BuildLeaderboard(teams, key), nil
}

// loadTeams fetches every team with milestones and evaluation, serving
// from the cache when warm.
func (s *LeaderboardService) loadTeams(ctx context.Context) ([]model.Team, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, leaderboardCacheKey)
		if err != nil {
			log.Printf("WARN: Leaderboard cache read failed: %v", err)
		} else if cached != nil {
			var teams []model.Team
			if err := json.Unmarshal(cached, &teams); err == nil {
				return teams, nil
			}
			log.Printf("WARN: Corrupt leaderboard cache entry, dropping: %v", err)
			s.cache.Del(ctx, leaderboardCacheKey)
		}
	}

	rows, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	teams := make([]model.Team, 0, len(rows))
	for _, t := range rows {
		t.Password = ""
		t.Milestones, err = s.milestoneRepo.GetByTeamID(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load milestones for team %d: %w", t.ID, err)
		}
		t.Evaluation, err = s.evalRepo.GetByTeamID(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load evaluation for team %d: %w", t.ID, err)
		}
		teams = append(teams, t)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(teams); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.cacheTTL); err != nil {
				log.Printf("WARN: Failed to cache leaderboard: %v", err)
			}
		}
	}
	return teams, nil
}

// Invalidate drops the cached team list. Called after every write that
// can change the ranking, registration included.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, leaderboardCacheKey); err != nil {
		log.Printf("WARN: Failed to invalidate leaderboard cache: %v", err)
	}
}
