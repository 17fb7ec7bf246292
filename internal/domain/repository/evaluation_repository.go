package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"
)

type EvaluationRepository interface {
	Init(ctx context.Context, tx *sql.Tx, teamID int64) error
	GetByTeamID(ctx context.Context, teamID int64) (*model.Evaluation, error)
	Save(ctx context.Context, eval *model.Evaluation) error
}

type pgEvaluationRepository struct {
	db *sql.DB
}

func NewPgEvaluationRepository(db *sql.DB) EvaluationRepository {
	return &pgEvaluationRepository{db: db}
}

// Init seeds the evaluation row at its minimums (all criteria 1,
// total 5).
func (r *pgEvaluationRepository) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	eval := model.NewEvaluation(teamID)
	query := `INSERT INTO evaluations (team_id, novelty, fastest_to_build, feature_count, clarity, impact_reach, total_score)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, teamID, eval.Novelty, eval.FastestToBuild, eval.FeatureCount, eval.Clarity, eval.ImpactReach, eval.TotalScore)
	} else {
		_, err = r.db.ExecContext(ctx, query, teamID, eval.Novelty, eval.FastestToBuild, eval.FeatureCount, eval.Clarity, eval.ImpactReach, eval.TotalScore)
	}
	if err != nil {
		return fmt.Errorf("pgEvaluationRepository.Init: %w", err)
	}
	return nil
}

func (r *pgEvaluationRepository) GetByTeamID(ctx context.Context, teamID int64) (*model.Evaluation, error) {
	query := `SELECT team_id, novelty, fastest_to_build, feature_count, clarity, impact_reach, total_score, updated_at
	          FROM evaluations WHERE team_id = $1`

	eval := &model.Evaluation{}
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(
		&eval.TeamID, &eval.Novelty, &eval.FastestToBuild, &eval.FeatureCount,
		&eval.Clarity, &eval.ImpactReach, &eval.TotalScore, &eval.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEvaluationRepository.GetByTeamID: %w", err)
	}
	return eval, nil
}

// Save persists the criteria and the recomputed total together. The
// total stored here is authoritative; clients only ever preview it.
func (r *pgEvaluationRepository) Save(ctx context.Context, eval *model.Evaluation) error {
	eval.TotalScore = eval.ComputeTotal()

	query := `UPDATE evaluations SET novelty = $1, fastest_to_build = $2, feature_count = $3,
	            clarity = $4, impact_reach = $5, total_score = $6, updated_at = CURRENT_TIMESTAMP
	          WHERE team_id = $7`
	res, err := r.db.ExecContext(ctx, query,
		eval.Novelty, eval.FastestToBuild, eval.FeatureCount, eval.Clarity, eval.ImpactReach, eval.TotalScore, eval.TeamID,
	)
	if err != nil {
		return fmt.Errorf("pgEvaluationRepository.Save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
