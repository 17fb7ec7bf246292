package model

import (
	"time"
)

const DefaultEloScore = 1200

type Team struct {
	ID               int64     `json:"id"`
	TeamNumber       int       `json:"team_number"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Password         string    `json:"-"` // Not exposed
	ProblemStatement string    `json:"problem_statement"`
	Theme            string    `json:"theme"`
	EloScore         int       `json:"elo_score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Participants []Participant    `json:"participants,omitempty"`
	Milestones   *Milestones      `json:"milestones,omitempty"`
	ToolUsage    *ToolUsage       `json:"tool_usage,omitempty"`
	Progress     *ProgressUpdates `json:"progress_updates,omitempty"`
	Evaluation   *Evaluation      `json:"evaluation,omitempty"`
}

type Participant struct {
	ID         int64     `json:"id"`
	TeamID     int64     `json:"team_id"`
	Name       string    `json:"name"`
	Background string    `json:"background"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToolUsage is team-editable at any time, no approval gate.
type ToolUsage struct {
	TeamID      int64     `json:"team_id"`
	CodingTools []string  `json:"coding_tools"`
	LLMUsed     string    `json:"llm_used"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProgressUpdates holds the team's demo and submission links. The URLs
// are free text; no server-side validation beyond presence of a value.
type ProgressUpdates struct {
	TeamID             int64     `json:"team_id"`
	ScreenRecordingURL string    `json:"screen_recording_url"`
	SubmissionURL      string    `json:"submission_url"`
	UpdatedAt          time.Time `json:"updated_at"`
}
