package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type TeamRepository interface {
	NextTeamNumber(ctx context.Context, tx *sql.Tx) (int, error)
	CreateTeam(ctx context.Context, tx *sql.Tx, team *model.Team) error
	AddParticipants(ctx context.Context, tx *sql.Tx, teamID int64, participants []model.Participant) error
	FindByID(ctx context.Context, id int64) (*model.Team, error)
	FindByNumber(ctx context.Context, teamNumber int) (*model.Team, error)
	ListAll(ctx context.Context) ([]model.Team, error)
	GetParticipants(ctx context.Context, teamID int64) ([]model.Participant, error)
	UpdateInfo(ctx context.Context, team *model.Team) error
}

type pgTeamRepository struct {
	db *sql.DB
}

func NewPgTeamRepository(db *sql.DB) TeamRepository {
	return &pgTeamRepository{db: db}
}

const teamColumns = `id, team_number, name, slug, password, problem_statement, theme, elo_score, created_at, updated_at`

// NextTeamNumber returns the next sequential team number. Must run
// inside the creation transaction so two concurrent registrations
// cannot claim the same number.
func (r *pgTeamRepository) NextTeamNumber(ctx context.Context, tx *sql.Tx) (int, error) {
	query := `SELECT COALESCE(MAX(team_number), 0) + 1 FROM teams`
	var next int
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query).Scan(&next)
	} else {
		err = r.db.QueryRowContext(ctx, query).Scan(&next)
	}
	if err != nil {
		return 0, fmt.Errorf("pgTeamRepository.NextTeamNumber: %w", err)
	}
	return next, nil
}

func (r *pgTeamRepository) CreateTeam(ctx context.Context, tx *sql.Tx, team *model.Team) error {
	query := `INSERT INTO teams (team_number, name, slug, password, problem_statement, theme, elo_score)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	var row *sql.Row
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, team.TeamNumber, team.Name, team.Slug, team.Password, team.ProblemStatement, team.Theme, team.EloScore)
	} else {
		row = r.db.QueryRowContext(ctx, query, team.TeamNumber, team.Name, team.Slug, team.Password, team.ProblemStatement, team.Theme, team.EloScore)
	}

	if err := row.Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on team_number or slug
			return fmt.Errorf("team with this number or slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeamRepository.CreateTeam: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) AddParticipants(ctx context.Context, tx *sql.Tx, teamID int64, participants []model.Participant) error {
	query := `INSERT INTO participants (team_id, name, background, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	for i := range participants {
		participants[i].TeamID = teamID
		var row *sql.Row
		if tx != nil {
			row = tx.QueryRowContext(ctx, query, teamID, participants[i].Name, participants[i].Background, participants[i].Role)
		} else {
			row = r.db.QueryRowContext(ctx, query, teamID, participants[i].Name, participants[i].Background, participants[i].Role)
		}
		if err := row.Scan(&participants[i].ID, &participants[i].CreatedAt); err != nil {
			return fmt.Errorf("pgTeamRepository.AddParticipants: %w", err)
		}
	}
	return nil
}

func (r *pgTeamRepository) FindByID(ctx context.Context, id int64) (*model.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgTeamRepository) FindByNumber(ctx context.Context, teamNumber int) (*model.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE team_number = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, teamNumber), "FindByNumber")
}

func (r *pgTeamRepository) scanTeam(row *sql.Row, op string) (*model.Team, error) {
	team := &model.Team{}
	err := row.Scan(
		&team.ID, &team.TeamNumber, &team.Name, &team.Slug, &team.Password,
		&team.ProblemStatement, &team.Theme, &team.EloScore, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.%s: %w", op, err)
	}
	return team, nil
}

func (r *pgTeamRepository) ListAll(ctx context.Context) ([]model.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY team_number ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var team model.Team
		if err := rows.Scan(
			&team.ID, &team.TeamNumber, &team.Name, &team.Slug, &team.Password,
			&team.ProblemStatement, &team.Theme, &team.EloScore, &team.CreatedAt, &team.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgTeamRepository.ListAll scan: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListAll rows: %w", err)
	}
	return teams, nil
}

func (r *pgTeamRepository) GetParticipants(ctx context.Context, teamID int64) ([]model.Participant, error) {
	query := `SELECT id, team_id, name, background, role, created_at FROM participants WHERE team_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.GetParticipants: %w", err)
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.Background, &p.Role, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTeamRepository.GetParticipants scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTeamRepository.GetParticipants rows: %w", err)
	}
	return participants, nil
}

func (r *pgTeamRepository) UpdateInfo(ctx context.Context, team *model.Team) error {
	query := `UPDATE teams SET name = $1, slug = $2, problem_statement = $3, theme = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, team.Name, team.Slug, team.ProblemStatement, team.Theme, team.ID)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.UpdateInfo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
