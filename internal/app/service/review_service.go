package service

import (
	"context"
	"errors"
	"fmt"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"
	"hacktrack/internal/domain/repository"
)

// ReviewService is the admin/mentor side: listing teams, approving or
// rejecting milestone requests, the direct-set bypass, and scoring.
type ReviewService struct {
	teamService   *TeamService
	teamRepo      repository.TeamRepository
	milestoneRepo repository.MilestoneRepository
	evalRepo      repository.EvaluationRepository
	leaderboard   *LeaderboardService
}

func NewReviewService(
	teamService *TeamService,
	teamRepo repository.TeamRepository,
	milestoneRepo repository.MilestoneRepository,
	evalRepo repository.EvaluationRepository,
	leaderboard *LeaderboardService,
) *ReviewService {
	return &ReviewService{
		teamService:   teamService,
		teamRepo:      teamRepo,
		milestoneRepo: milestoneRepo,
		evalRepo:      evalRepo,
		leaderboard:   leaderboard,
	}
}

// ListTeams returns every team with satellite records, ordered by team
// number.
func (s *ReviewService) ListTeams(ctx context.Context) ([]model.Team, error) {
	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		full, err := s.teamService.GetTeam(ctx, teams[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team %d: %w", teams[i].ID, err)
		}
		teams[i] = *full
	}
	return teams, nil
}

func (s *ReviewService) GetTeam(ctx context.Context, teamID int64) (*model.Team, error) {
	return s.teamService.GetTeam(ctx, teamID)
}

// PendingCount reports how many milestone requests are waiting for
// review across all teams.
func (s *ReviewService) PendingCount(ctx context.Context) (int, error) {
	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, t := range teams {
		m, err := s.milestoneRepo.GetByTeamID(ctx, t.ID)
		if err != nil {
			return 0, err
		}
		for _, state := range []model.MilestoneState{m.Brainstorming, m.PRD, m.Build} {
			if state == model.StatePendingReview {
				count++
			}
		}
	}
	return count, nil
}

// ApproveMilestone completes a pending milestone. Approving one that is
// not under review is a conflict.
func (s *ReviewService) ApproveMilestone(ctx context.Context, teamID int64, kind model.MilestoneKind) (*model.Milestones, error) {
	return s.transition(ctx, teamID, kind, (*model.Milestones).Approve)
}

// RejectMilestone sends a pending milestone back to not-started.
func (s *ReviewService) RejectMilestone(ctx context.Context, teamID int64, kind model.MilestoneKind) (*model.Milestones, error) {
	return s.transition(ctx, teamID, kind, (*model.Milestones).Reject)
}

func (s *ReviewService) transition(ctx context.Context, teamID int64, kind model.MilestoneKind, apply func(*model.Milestones, model.MilestoneKind) error) (*model.Milestones, error) {
	milestones, err := s.milestoneRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if err := apply(milestones, kind); err != nil {
		if errors.Is(err, model.ErrInvalidTransition) {
			return nil, fmt.Errorf("%v: %w", err, common.ErrConflict)
		}
		return nil, err
	}

	if err := s.milestoneRepo.Save(ctx, milestones); err != nil {
		return nil, fmt.Errorf("failed to save milestone transition: %w", err)
	}
	s.leaderboard.Invalidate(ctx)
	return s.milestoneRepo.GetByTeamID(ctx, teamID)
}

// SetMilestone is the admin bypass: pins a milestone to approved or
// not-started directly, skipping the review queue.
func (s *ReviewService) SetMilestone(ctx context.Context, teamID int64, kind model.MilestoneKind, approved bool) (*model.Milestones, error) {
	milestones, err := s.milestoneRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	milestones.ForceSet(kind, approved)

	if err := s.milestoneRepo.Save(ctx, milestones); err != nil {
		return nil, fmt.Errorf("failed to save milestone: %w", err)
	}
	s.leaderboard.Invalidate(ctx)
	return s.milestoneRepo.GetByTeamID(ctx, teamID)
}

type UpdateEvaluationRequest struct {
	Novelty        *int `json:"novelty,omitempty"`
	FastestToBuild *int `json:"fastest_to_build,omitempty"`
	FeatureCount   *int `json:"feature_count,omitempty"`
	Clarity        *int `json:"clarity,omitempty"`
	ImpactReach    *int `json:"impact_reach,omitempty"`
}

// UpdateEvaluation applies a partial criteria edit. Values are clamped
// to the 1-5 scale before storage and the total is recomputed
// server-side on save.
func (s *ReviewService) UpdateEvaluation(ctx context.Context, teamID int64, req UpdateEvaluationRequest) (*model.Evaluation, error) {
	eval, err := s.evalRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.Novelty != nil {
		eval.Novelty = model.ClampCriterion(*req.Novelty)
	}
	if req.FastestToBuild != nil {
		eval.FastestToBuild = model.ClampCriterion(*req.FastestToBuild)
	}
	if req.FeatureCount != nil {
		eval.FeatureCount = model.ClampCriterion(*req.FeatureCount)
	}
	if req.Clarity != nil {
		eval.Clarity = model.ClampCriterion(*req.Clarity)
	}
	if req.ImpactReach != nil {
		eval.ImpactReach = model.ClampCriterion(*req.ImpactReach)
	}

	if err := s.evalRepo.Save(ctx, eval); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	s.leaderboard.Invalidate(ctx)
	return s.evalRepo.GetByTeamID(ctx, teamID)
}
