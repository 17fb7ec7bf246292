package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"
)

type ToolUsageRepository interface {
	Init(ctx context.Context, tx *sql.Tx, teamID int64) error
	GetByTeamID(ctx context.Context, teamID int64) (*model.ToolUsage, error)
	Save(ctx context.Context, usage *model.ToolUsage) error
}

type pgToolUsageRepository struct {
	db *sql.DB
}

func NewPgToolUsageRepository(db *sql.DB) ToolUsageRepository {
	return &pgToolUsageRepository{db: db}
}

func (r *pgToolUsageRepository) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	query := `INSERT INTO tool_usage (team_id, coding_tools) VALUES ($1, '[]'::jsonb)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, teamID)
	} else {
		_, err = r.db.ExecContext(ctx, query, teamID)
	}
	if err != nil {
		return fmt.Errorf("pgToolUsageRepository.Init: %w", err)
	}
	return nil
}

func (r *pgToolUsageRepository) GetByTeamID(ctx context.Context, teamID int64) (*model.ToolUsage, error) {
	query := `SELECT team_id, coding_tools, llm_used, updated_at FROM tool_usage WHERE team_id = $1`

	usage := &model.ToolUsage{}
	var toolsJSON []byte
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(&usage.TeamID, &toolsJSON, &usage.LLMUsed, &usage.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgToolUsageRepository.GetByTeamID: %w", err)
	}
	if err := json.Unmarshal(toolsJSON, &usage.CodingTools); err != nil {
		return nil, fmt.Errorf("pgToolUsageRepository.GetByTeamID decode tools: %w", err)
	}
	return usage, nil
}

func (r *pgToolUsageRepository) Save(ctx context.Context, usage *model.ToolUsage) error {
	if usage.CodingTools == nil {
		usage.CodingTools = []string{}
	}
	toolsJSON, err := json.Marshal(usage.CodingTools)
	if err != nil {
		return fmt.Errorf("pgToolUsageRepository.Save encode tools: %w", err)
	}

	query := `UPDATE tool_usage SET coding_tools = $1, llm_used = $2, updated_at = CURRENT_TIMESTAMP WHERE team_id = $3`
	res, err := r.db.ExecContext(ctx, query, toolsJSON, usage.LLMUsed, usage.TeamID)
	if err != nil {
		return fmt.Errorf("pgToolUsageRepository.Save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
