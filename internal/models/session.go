package models

import (
	"time"

	"gorm.io/datatypes"
)

type SessionMode string

const (
	ModeStudy SessionMode = "study"
	ModeExam  SessionMode = "exam"
)

// QuizSession is one quiz attempt, created at start and filled in on submit.
type QuizSession struct {
	ID               string         `json:"id" gorm:"primaryKey;size:36"`
	Mode             SessionMode    `json:"mode" gorm:"not null;index" validate:"required,oneof=study exam"`
	BankIDs          datatypes.JSON `json:"bank_ids" gorm:"not null"`
	StartedAt        time.Time      `json:"started_at" gorm:"not null;index"`
	CompletedAt      *time.Time     `json:"completed_at"`
	TimeSpentSeconds int            `json:"time_spent_seconds" gorm:"default:0"`
	TotalQuestions   int            `json:"total_questions" gorm:"not null"`
	CorrectCount     int            `json:"correct_count" gorm:"default:0"`
	ScorePercentage  float64        `json:"score_percentage" gorm:"default:0"`
	ScaledScore      int            `json:"scaled_score" gorm:"default:0"`
	Passed           bool           `json:"passed" gorm:"default:false"`
	Config           datatypes.JSON `json:"config,omitempty"`

	Responses []QuestionResponse `json:"responses,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// IsCompleted reports whether the session has been submitted and scored.
func (s *QuizSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

// QuestionResponse is one persisted per-question response of a session.
type QuestionResponse struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	SessionID        string         `json:"session_id" gorm:"not null;index;size:36"`
	QuestionID       string         `json:"question_id" gorm:"not null"`
	QuestionType     QuestionType   `json:"question_type" gorm:"not null"`
	Domain           string         `json:"domain" gorm:"index"`
	Objective        string         `json:"objective"`
	UserAnswer       datatypes.JSON `json:"user_answer"`
	CorrectAnswer    datatypes.JSON `json:"correct_answer"`
	IsCorrect        bool           `json:"is_correct" gorm:"not null;default:false"`
	PartialScore     float64        `json:"partial_score" gorm:"default:0"`
	TimeSpentSeconds int            `json:"time_spent_seconds" gorm:"default:0"`
}

func (QuestionResponse) TableName() string {
	return "question_responses"
}

// FlaggedQuestion marks a question for later review.
type FlaggedQuestion struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	QuestionID string    `json:"question_id" gorm:"not null;uniqueIndex:idx_flag_question_bank"`
	BankID     string    `json:"bank_id" gorm:"not null;uniqueIndex:idx_flag_question_bank"`
	Reason     string    `json:"reason" gorm:"default:review"`
	CreatedAt  time.Time `json:"created_at"`
}

func (FlaggedQuestion) TableName() string {
	return "flagged_questions"
}

// SessionConfig is the quiz setup persisted alongside a session.
type SessionConfig struct {
	TimeLimit     int      `json:"time_limit,omitempty"`
	Count         int      `json:"count,omitempty"`
	Domains       []string `json:"domains,omitempty"`
	Difficulties  []string `json:"difficulties,omitempty"`
	QuestionTypes []string `json:"question_types,omitempty"`
	Randomize     bool     `json:"randomize"`
}
