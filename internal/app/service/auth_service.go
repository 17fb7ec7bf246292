package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hacktrack/internal/common"
	"hacktrack/internal/common/security"
	"hacktrack/internal/domain/model"
	"hacktrack/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

type AuthService struct {
	teamRepo      repository.TeamRepository
	milestoneRepo repository.MilestoneRepository
	toolRepo      repository.ToolUsageRepository
	progressRepo  repository.ProgressRepository
	evalRepo      repository.EvaluationRepository
	verifier      security.PasswordVerifier
	authorizer    security.Authorizer
	leaderboard   *LeaderboardService
	db            *sql.DB
	validate      *validator.Validate
}

func NewAuthService(
	teamRepo repository.TeamRepository,
	milestoneRepo repository.MilestoneRepository,
	toolRepo repository.ToolUsageRepository,
	progressRepo repository.ProgressRepository,
	evalRepo repository.EvaluationRepository,
	verifier security.PasswordVerifier,
	authorizer security.Authorizer,
	leaderboard *LeaderboardService,
	db *sql.DB,
) *AuthService {
	return &AuthService{
		teamRepo:      teamRepo,
		milestoneRepo: milestoneRepo,
		toolRepo:      toolRepo,
		progressRepo:  progressRepo,
		evalRepo:      evalRepo,
		verifier:      verifier,
		authorizer:    authorizer,
		leaderboard:   leaderboard,
		db:            db,
		validate:      validator.New(),
	}
}

type ParticipantInput struct {
	Name       string `json:"name" validate:"required"`
	Background string `json:"background"`
	Role       string `json:"role"`
}

type RegisterTeamRequest struct {
	Name             string             `json:"name" validate:"required"`
	Password         string             `json:"password" validate:"required"`
	ProblemStatement string             `json:"problem_statement"`
	Theme            string             `json:"theme"`
	Participants     []ParticipantInput `json:"participants" validate:"dive"`
}

type TeamLoginRequest struct {
	TeamNumber int    `json:"team_number" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type AuthResponse struct {
	Team  *model.Team `json:"team,omitempty"`
	Role  string      `json:"role"`
	Token string      `json:"token"`
}

// RegisterTeam creates the team row, its participants and the four
// satellite records in a single transaction. The next sequential team
// number is claimed inside the same transaction; on any failure the
// whole registration rolls back.
func (s *AuthService) RegisterTeam(ctx context.Context, req RegisterTeamRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	stored, err := s.verifier.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	teamNumber, err := s.teamRepo.NextTeamNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	team := &model.Team{
		TeamNumber:       teamNumber,
		Name:             req.Name,
		Slug:             slug.Make(req.Name),
		Password:         stored,
		ProblemStatement: req.ProblemStatement,
		Theme:            req.Theme,
		EloScore:         model.DefaultEloScore,
	}
	if err := s.teamRepo.CreateTeam(ctx, tx, team); err != nil {
		return nil, common.Errorf("failed to create team: %w", err)
	}

	participants := make([]model.Participant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = model.Participant{Name: p.Name, Background: p.Background, Role: p.Role}
	}
	if len(participants) > 0 {
		if err := s.teamRepo.AddParticipants(ctx, tx, team.ID, participants); err != nil {
			return nil, common.Errorf("failed to create participants: %w", err)
		}
	}

	if err := s.milestoneRepo.Init(ctx, tx, team.ID); err != nil {
		return nil, common.Errorf("failed to init milestones: %w", err)
	}
	if err := s.toolRepo.Init(ctx, tx, team.ID); err != nil {
		return nil, common.Errorf("failed to init tool usage: %w", err)
	}
	if err := s.progressRepo.Init(ctx, tx, team.ID); err != nil {
		return nil, common.Errorf("failed to init progress updates: %w", err)
	}
	if err := s.evalRepo.Init(ctx, tx, team.ID); err != nil {
		return nil, common.Errorf("failed to init evaluation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	// The team set changed, so any cached ranking is stale.
	s.leaderboard.Invalidate(ctx)

	token, err := security.GenerateTeamToken(team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	team.Participants = participants
	team.Milestones = model.NewMilestones(team.ID)
	team.ToolUsage = &model.ToolUsage{TeamID: team.ID, CodingTools: []string{}}
	team.Progress = &model.ProgressUpdates{TeamID: team.ID}
	team.Evaluation = model.NewEvaluation(team.ID)
	team.Password = "" // Clear before returning

	return &AuthResponse{Team: team, Role: security.RoleTeam, Token: token}, nil
}

// LoginTeam checks team number and password. Both misses collapse into
// the same ErrInvalidCredentials so the response never reveals which
// part was wrong.
func (s *AuthService) LoginTeam(ctx context.Context, req TeamLoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	team, err := s.teamRepo.FindByNumber(ctx, req.TeamNumber)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if !s.verifier.Verify(req.Password, team.Password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateTeamToken(team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	team.Password = ""
	return &AuthResponse{Team: team, Role: security.RoleTeam, Token: token}, nil
}

// LoginAdmin exchanges the reviewer credential for an admin session.
func (s *AuthService) LoginAdmin(ctx context.Context, req AdminLoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	if !s.authorizer.Authorize(req.PIN) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateAdminToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Role: security.RoleAdmin, Token: token}, nil
}
