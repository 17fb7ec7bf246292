package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"
)

type ProgressRepository interface {
	Init(ctx context.Context, tx *sql.Tx, teamID int64) error
	GetByTeamID(ctx context.Context, teamID int64) (*model.ProgressUpdates, error)
	Save(ctx context.Context, progress *model.ProgressUpdates) error
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	query := `INSERT INTO progress_updates (team_id) VALUES ($1)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, teamID)
	} else {
		_, err = r.db.ExecContext(ctx, query, teamID)
	}
	if err != nil {
		return fmt.Errorf("pgProgressRepository.Init: %w", err)
	}
	return nil
}

func (r *pgProgressRepository) GetByTeamID(ctx context.Context, teamID int64) (*model.ProgressUpdates, error) {
	query := `SELECT team_id, screen_recording_url, submission_url, updated_at FROM progress_updates WHERE team_id = $1`

	progress := &model.ProgressUpdates{}
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(
		&progress.TeamID, &progress.ScreenRecordingURL, &progress.SubmissionURL, &progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProgressRepository.GetByTeamID: %w", err)
	}
	return progress, nil
}

func (r *pgProgressRepository) Save(ctx context.Context, progress *model.ProgressUpdates) error {
	query := `UPDATE progress_updates SET screen_recording_url = $1, submission_url = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE team_id = $3`
	res, err := r.db.ExecContext(ctx, query, progress.ScreenRecordingURL, progress.SubmissionURL, progress.TeamID)
	if err != nil {
		return fmt.Errorf("pgProgressRepository.Save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
