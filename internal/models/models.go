package models

import (
	"time"
)

// Candidate represents a registered candidate in the selection process
type Candidate struct {
	ID        uint      `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email,omitempty" db:"email"`
	CPF       *string   `json:"cpf,omitempty" db:"cpf"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Grade     *string   `json:"grade,omitempty" db:"grade"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Competition values a team can be registered for
const (
	CompetitionOBR  = "OBR"
	CompetitionTBR  = "TBR"
	CompetitionCCBB = "CCBB"
)

// Team represents a competition team
type Team struct {
	ID          uint      `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Competition string    `json:"competition" db:"competition"`
	IsVeteran   bool      `json:"is_veteran" db:"is_veteran"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TeamMembership links a candidate to a team. A candidate may belong to
// more than one team; there is no single-team invariant.
type TeamMembership struct {
	TeamID      uint      `json:"team_id" db:"team_id"`
	CandidateID uint      `json:"candidate_id" db:"candidate_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TrainingSession represents one scheduled training slot.
// Date is YYYY-MM-DD, times are HH:MM; validated at the API boundary.
type TrainingSession struct {
	ID        uint      `json:"id" db:"id"`
	Date      string    `json:"date" db:"date"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   string    `json:"end_time" db:"end_time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Attendance records whether a team showed up to a training session
type Attendance struct {
	ID                uint      `json:"id" db:"id"`
	TrainingSessionID uint      `json:"training_session_id" db:"training_session_id"`
	TeamID            uint      `json:"team_id" db:"team_id"`
	Present           bool      `json:"present" db:"present"`
	Notes             *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Evaluation delete kinds. Deactivation is reversible, deletion is not;
// both keep the row with is_active=false.
const (
	DeleteKindDeactivated = "deactivated"
	DeleteKindDeleted     = "deleted"
)

// Evaluation represents one judged evaluation of a team at a session.
// At most one active evaluation may exist per (team, session) pair.
type Evaluation struct {
	ID                uint       `json:"id" db:"id"`
	TeamID            uint       `json:"team_id" db:"team_id"`
	TrainingSessionID uint       `json:"training_session_id" db:"training_session_id"`
	Judge             string     `json:"judge" db:"judge"`
	Immersion         *int       `json:"immersion,omitempty" db:"immersion"`
	Development       *int       `json:"development,omitempty" db:"development"`
	Presentation      *int       `json:"presentation,omitempty" db:"presentation"`
	HiddenScore       float64    `json:"hidden_score" db:"hidden_score"`
	Comment           *string    `json:"comment,omitempty" db:"comment"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	DeleteKind        *string    `json:"delete_kind,omitempty" db:"delete_kind"`
	DeleteReason      *string    `json:"delete_reason,omitempty" db:"delete_reason"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// MemberContribution attributes a fraction of a team evaluation's hidden
// score to one member. Weights are independent multipliers in [0.1, 1.2]
// and are not required to sum to anything.
type MemberContribution struct {
	ID           uint      `json:"id" db:"id"`
	EvaluationID uint      `json:"evaluation_id" db:"evaluation_id"`
	MemberID     uint      `json:"member_id" db:"member_id"`
	Weight       *float64  `json:"weight,omitempty" db:"weight"`
	Note         *string   `json:"note,omitempty" db:"note"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Weight names for the hidden-score formula
const (
	WeightImmersion    = "immersion"
	WeightDevelopment  = "development"
	WeightPresentation = "presentation"
)

// InternalWeight is one named weight of the hidden-score formula
type InternalWeight struct {
	Name   string  `json:"name" db:"name"`
	Weight float64 `json:"weight" db:"weight"`
}

// Setting is a key-value configuration row
type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}

// Settings keys
const (
	SettingAdminHash     = "admin_hash"
	SettingProcessStatus = "process_status"
)

// Process status values; ENCERRADO locks every mutating operation
const (
	ProcessOpen   = "ABERTO"
	ProcessClosed = "ENCERRADO"
)

// DiaryEntry is one diary note for a team
type DiaryEntry struct {
	ID        uint      `json:"id" db:"id"`
	TeamID    uint      `json:"team_id" db:"team_id"`
	Title     string    `json:"title" db:"title"`
	Content   *string   `json:"content,omitempty" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Attachment is a file reference attached to a diary entry. Only the
// metadata lives here; the file itself is outside the store.
type Attachment struct {
	ID           uint      `json:"id" db:"id"`
	DiaryEntryID uint      `json:"diary_entry_id" db:"diary_entry_id"`
	FilePath     string    `json:"file_path" db:"file_path"`
	OriginalName string    `json:"original_name" db:"original_name"`
	MimeType     *string   `json:"mime_type,omitempty" db:"mime_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AuditLog represents an audit trail entry
type AuditLog struct {
	ID        uint      `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	Resource  string    `json:"resource" db:"resource"`
	Details   string    `json:"details,omitempty" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Final statuses assigned by rank. Labels match the exported CSV files.
const (
	StatusApproved   = "Aprovado"
	StatusWaitlisted = "Lista de espera"
	StatusRejected   = "Não aprovado"
)

// TeamSummary is one row of the team-level summary: average hidden score
// over active evaluations, presence percentage and the penalty-adjusted
// final score
type TeamSummary struct {
	TeamID      uint    `json:"team_id"`
	Name        string  `json:"name"`
	AvgHidden   float64 `json:"avg_hidden"`
	PresencePct float64 `json:"presence_pct"`
	FinalScore  float64 `json:"final_score"`
}

// MemberScore is the projected aggregate score of one member across all
// evaluations they contributed to
type MemberScore struct {
	MemberID   uint    `json:"member_id"`
	Name       string  `json:"name"`
	Team       string  `json:"team"`
	TotalScore float64 `json:"total_score"`
	EvalCount  int     `json:"eval_count"`
}

// RankedMember is a member score with its final rank and status
type RankedMember struct {
	MemberScore
	Rank   int    `json:"rank"`
	Status string `json:"status"`
}

// DashboardCards holds the headline counters of the dashboard
type DashboardCards struct {
	Candidates    int    `json:"candidates"`
	Teams         int    `json:"teams"`
	Evaluations   int    `json:"evaluations"`
	ProcessStatus string `json:"process_status"`
}

// StageAverages holds per-criterion averages over active evaluations
type StageAverages struct {
	Immersion    *float64 `json:"immersion"`
	Development  *float64 `json:"development"`
	Presentation *float64 `json:"presentation"`
}
