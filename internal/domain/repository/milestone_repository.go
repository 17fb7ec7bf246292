package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"
)

// MilestoneRepository persists milestone review state. The table stores
// a complete/pending boolean pair per checkpoint; the mapping to the
// MilestoneState enum happens here at the boundary.
type MilestoneRepository interface {
	Init(ctx context.Context, tx *sql.Tx, teamID int64) error
	GetByTeamID(ctx context.Context, teamID int64) (*model.Milestones, error)
	Save(ctx context.Context, m *model.Milestones) error
}

type pgMilestoneRepository struct {
	db *sql.DB
}

func NewPgMilestoneRepository(db *sql.DB) MilestoneRepository {
	return &pgMilestoneRepository{db: db}
}

func (r *pgMilestoneRepository) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	query := `INSERT INTO milestones (team_id) VALUES ($1)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, teamID)
	} else {
		_, err = r.db.ExecContext(ctx, query, teamID)
	}
	if err != nil {
		return fmt.Errorf("pgMilestoneRepository.Init: %w", err)
	}
	return nil
}

func (r *pgMilestoneRepository) GetByTeamID(ctx context.Context, teamID int64) (*model.Milestones, error) {
	query := `SELECT team_id, brainstorming_complete, brainstorming_pending,
	                 prd_generated, prd_pending, build_complete, build_pending, updated_at
	          FROM milestones WHERE team_id = $1`

	var (
		m                       model.Milestones
		bsComplete, bsPending   bool
		prdComplete, prdPending bool
		bldComplete, bldPending bool
	)
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(
		&m.TeamID, &bsComplete, &bsPending, &prdComplete, &prdPending, &bldComplete, &bldPending, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMilestoneRepository.GetByTeamID: %w", err)
	}

	m.Brainstorming = model.StateFromFlags(bsComplete, bsPending)
	m.PRD = model.StateFromFlags(prdComplete, prdPending)
	m.Build = model.StateFromFlags(bldComplete, bldPending)
	return &m, nil
}

func (r *pgMilestoneRepository) Save(ctx context.Context, m *model.Milestones) error {
	bsComplete, bsPending := m.Brainstorming.Flags()
	prdComplete, prdPending := m.PRD.Flags()
	bldComplete, bldPending := m.Build.Flags()

	query := `UPDATE milestones SET
	            brainstorming_complete = $1, brainstorming_pending = $2,
	            prd_generated = $3, prd_pending = $4,
	            build_complete = $5, build_pending = $6,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE team_id = $7`
	res, err := r.db.ExecContext(ctx, query,
		bsComplete, bsPending, prdComplete, prdPending, bldComplete, bldPending, m.TeamID,
	)
	if err != nil {
		return fmt.Errorf("pgMilestoneRepository.Save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
