package service

import (
	"context"
	"fmt"
	"log"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"
	"hacktrack/internal/domain/repository"

	"github.com/gosimple/slug"
)

// TeamService covers the team self-service workflows: reading the own
// record, editing tool usage and progress links, and requesting
// milestone approval.
type TeamService struct {
	teamRepo      repository.TeamRepository
	milestoneRepo repository.MilestoneRepository
	toolRepo      repository.ToolUsageRepository
	progressRepo  repository.ProgressRepository
	evalRepo      repository.EvaluationRepository
	leaderboard   *LeaderboardService
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	milestoneRepo repository.MilestoneRepository,
	toolRepo repository.ToolUsageRepository,
	progressRepo repository.ProgressRepository,
	evalRepo repository.EvaluationRepository,
	leaderboard *LeaderboardService,
) *TeamService {
	return &TeamService{
		teamRepo:      teamRepo,
		milestoneRepo: milestoneRepo,
		toolRepo:      toolRepo,
		progressRepo:  progressRepo,
		evalRepo:      evalRepo,
		leaderboard:   leaderboard,
	}
}

// GetTeam fetches the team row joined with all its satellite records.
func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (*model.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	team.Participants, err = s.teamRepo.GetParticipants(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Milestones, err = s.milestoneRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.ToolUsage, err = s.toolRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Progress, err = s.progressRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Evaluation, err = s.evalRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	team.Password = ""
	return team, nil
}

type UpdateToolUsageRequest struct {
	CodingTools *[]string `json:"coding_tools,omitempty"`
	LLMUsed     *string   `json:"llm_used,omitempty"`
}

// UpdateToolUsage applies a partial edit and returns the refreshed
// record from the store.
func (s *TeamService) UpdateToolUsage(ctx context.Context, teamID int64, req UpdateToolUsageRequest) (*model.ToolUsage, error) {
	usage, err := s.toolRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.CodingTools != nil {
		usage.CodingTools = *req.CodingTools
	}
	if req.LLMUsed != nil {
		usage.LLMUsed = *req.LLMUsed
	}

	if err := s.toolRepo.Save(ctx, usage); err != nil {
		return nil, fmt.Errorf("failed to save tool usage: %w", err)
	}
	return s.toolRepo.GetByTeamID(ctx, teamID)
}

type UpdateProgressRequest struct {
	ScreenRecordingURL *string `json:"screen_recording_url,omitempty"`
	SubmissionURL      *string `json:"submission_url,omitempty"`
}

func (s *TeamService) UpdateProgress(ctx context.Context, teamID int64, req UpdateProgressRequest) (*model.ProgressUpdates, error) {
	progress, err := s.progressRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.ScreenRecordingURL != nil {
		progress.ScreenRecordingURL = *req.ScreenRecordingURL
	}
	if req.SubmissionURL != nil {
		progress.SubmissionURL = *req.SubmissionURL
	}

	if err := s.progressRepo.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to save progress updates: %w", err)
	}
	return s.progressRepo.GetByTeamID(ctx, teamID)
}

// RequestMilestone puts a milestone up for admin review. Requesting one
// that is already pending or approved changes nothing and is not an
// error.
func (s *TeamService) RequestMilestone(ctx context.Context, teamID int64, kind model.MilestoneKind) (*model.Milestones, error) {
	milestones, err := s.milestoneRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if !milestones.Request(kind) {
		log.Printf("Milestone %s for team %d already %s, request ignored", kind, teamID, milestones.State(kind))
		return milestones, nil
	}

	if err := s.milestoneRepo.Save(ctx, milestones); err != nil {
		return nil, fmt.Errorf("failed to save milestone request: %w", err)
	}
	s.leaderboard.Invalidate(ctx)
	return s.milestoneRepo.GetByTeamID(ctx, teamID)
}

type UpdateTeamInfoRequest struct {
	Name             *string `json:"name,omitempty"`
	ProblemStatement *string `json:"problem_statement,omitempty"`
	Theme            *string `json:"theme,omitempty"`
}

// UpdateInfo edits the team's basic fields. An empty name is rejected;
// the slug follows the name.
func (s *TeamService) UpdateInfo(ctx context.Context, teamID int64, req UpdateTeamInfoRequest) (*model.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("team name must not be empty: %w", common.ErrValidation)
		}
		team.Name = *req.Name
		team.Slug = slug.Make(*req.Name)
	}
	if req.ProblemStatement != nil {
		team.ProblemStatement = *req.ProblemStatement
	}
	if req.Theme != nil {
		team.Theme = *req.Theme
	}

	if err := s.teamRepo.UpdateInfo(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team info: %w", err)
	}
	s.leaderboard.Invalidate(ctx)
	return s.GetTeam(ctx, teamID)
}
