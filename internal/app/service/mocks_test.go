package service

import (
	"context"
	"database/sql"
	"time"

	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"
)

// In-memory repository fakes. They carry state across calls so the
// multi-step workflows (request -> reject -> re-request -> approve) can
// be exercised without a database.

type fakeTeamRepo struct {
	teams        map[int64]*model.Team
	participants map[int64][]model.Participant
	nextID       int64
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:        make(map[int64]*model.Team),
		participants: make(map[int64][]model.Participant),
	}
}

func (f *fakeTeamRepo) NextTeamNumber(ctx context.Context, tx *sql.Tx) (int, error) {
	max := 0
	for _, t := range f.teams {
		if t.TeamNumber > max {
			max = t.TeamNumber
		}
	}
	return max + 1, nil
}

func (f *fakeTeamRepo) CreateTeam(ctx context.Context, tx *sql.Tx, team *model.Team) error {
	f.nextID++
	team.ID = f.nextID
	copied := *team
	f.teams[team.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) AddParticipants(ctx context.Context, tx *sql.Tx, teamID int64, participants []model.Participant) error {
	for i := range participants {
		participants[i].TeamID = teamID
		participants[i].ID = int64(len(f.participants[teamID]) + 1)
		f.participants[teamID] = append(f.participants[teamID], participants[i])
	}
	return nil
}

func (f *fakeTeamRepo) FindByID(ctx context.Context, id int64) (*model.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeamRepo) FindByNumber(ctx context.Context, teamNumber int) (*model.Team, error) {
	for _, t := range f.teams {
		if t.TeamNumber == teamNumber {
			copied := *t
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeTeamRepo) ListAll(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	for number := 1; ; number++ {
		found := false
		for _, t := range f.teams {
			if t.TeamNumber == number {
				out = append(out, *t)
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) GetParticipants(ctx context.Context, teamID int64) ([]model.Participant, error) {
	return f.participants[teamID], nil
}

func (f *fakeTeamRepo) UpdateInfo(ctx context.Context, team *model.Team) error {
	stored, ok := f.teams[team.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Name = team.Name
	stored.Slug = team.Slug
	stored.ProblemStatement = team.ProblemStatement
	stored.Theme = team.Theme
	return nil
}

type fakeMilestoneRepo struct {
	byTeam  map[int64]*model.Milestones
	saveErr error
}

func newFakeMilestoneRepo() *fakeMilestoneRepo {
	return &fakeMilestoneRepo{byTeam: make(map[int64]*model.Milestones)}
}

func (f *fakeMilestoneRepo) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	f.byTeam[teamID] = model.NewMilestones(teamID)
	return nil
}

func (f *fakeMilestoneRepo) GetByTeamID(ctx context.Context, teamID int64) (*model.Milestones, error) {
	m, ok := f.byTeam[teamID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMilestoneRepo) Save(ctx context.Context, m *model.Milestones) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.byTeam[m.TeamID]; !ok {
		return common.ErrNotFound
	}
	copied := *m
	f.byTeam[m.TeamID] = &copied
	return nil
}

type fakeToolUsageRepo struct {
	byTeam map[int64]*model.ToolUsage
}

func newFakeToolUsageRepo() *fakeToolUsageRepo {
	return &fakeToolUsageRepo{byTeam: make(map[int64]*model.ToolUsage)}
}

func (f *fakeToolUsageRepo) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	f.byTeam[teamID] = &model.ToolUsage{TeamID: teamID, CodingTools: []string{}}
	return nil
}

func (f *fakeToolUsageRepo) GetByTeamID(ctx context.Context, teamID int64) (*model.ToolUsage, error) {
	u, ok := f.byTeam[teamID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeToolUsageRepo) Save(ctx context.Context, usage *model.ToolUsage) error {
	if _, ok := f.byTeam[usage.TeamID]; !ok {
		return common.ErrNotFound
	}
	copied := *usage
	f.byTeam[usage.TeamID] = &copied
	return nil
}

type fakeProgressRepo struct {
	byTeam map[int64]*model.ProgressUpdates
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{byTeam: make(map[int64]*model.ProgressUpdates)}
}

func (f *fakeProgressRepo) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	f.byTeam[teamID] = &model.ProgressUpdates{TeamID: teamID}
	return nil
}

func (f *fakeProgressRepo) GetByTeamID(ctx context.Context, teamID int64) (*model.ProgressUpdates, error) {
	p, ok := f.byTeam[teamID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProgressRepo) Save(ctx context.Context, progress *model.ProgressUpdates) error {
	if _, ok := f.byTeam[progress.TeamID]; !ok {
		return common.ErrNotFound
	}
	copied := *progress
	f.byTeam[progress.TeamID] = &copied
	return nil
}

type fakeEvaluationRepo struct {
	byTeam map[int64]*model.Evaluation
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{byTeam: make(map[int64]*model.Evaluation)}
}

func (f *fakeEvaluationRepo) Init(ctx context.Context, tx *sql.Tx, teamID int64) error {
	f.byTeam[teamID] = model.NewEvaluation(teamID)
	return nil
}

func (f *fakeEvaluationRepo) GetByTeamID(ctx context.Context, teamID int64) (*model.Evaluation, error) {
	e, ok := f.byTeam[teamID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEvaluationRepo) Save(ctx context.Context, eval *model.Evaluation) error {
	if _, ok := f.byTeam[eval.TeamID]; !ok {
		return common.ErrNotFound
	}
	eval.TotalScore = eval.ComputeTotal()
	copied := *eval
	f.byTeam[eval.TeamID] = &copied
	return nil
}

// fakeCache is an in-memory Cache, counting writes and drops so tests
// can assert the hit/invalidate lifecycle.
type fakeCache struct {
	data map[string][]byte
	sets int
	dels int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return val, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.sets++
	c.data[key] = value
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels++
	delete(c.data, key)
	return nil
}

// seedTeam drops a fully initialized team into the fakes, the same
// shape RegisterTeam produces.
func seedTeam(teamRepo *fakeTeamRepo, milestoneRepo *fakeMilestoneRepo, toolRepo *fakeToolUsageRepo, progressRepo *fakeProgressRepo, evalRepo *fakeEvaluationRepo, team *model.Team) *model.Team {
	ctx := context.Background()
	number, _ := teamRepo.NextTeamNumber(ctx, nil)
	team.TeamNumber = number
	if team.EloScore == 0 {
		team.EloScore = model.DefaultEloScore
	}
	teamRepo.CreateTeam(ctx, nil, team)
	milestoneRepo.Init(ctx, nil, team.ID)
	toolRepo.Init(ctx, nil, team.ID)
	progressRepo.Init(ctx, nil, team.ID)
	evalRepo.Init(ctx, nil, team.ID)
	return team
}
