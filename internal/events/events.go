package events

import "time"

type EventType string

const (
	QuizStarted    EventType = "quiz.started"
	QuizCompleted  EventType = "quiz.completed"
	SessionDeleted EventType = "session.deleted"
)

// Topic is the in-process pub/sub topic all quiz lifecycle events go to.
const Topic = "quiz-events"

// QuizEvent is published on session lifecycle transitions. History
// statistics consumers use it to drop stale cache entries.
type QuizEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`

	// Set on quiz.completed.
	ScaledScore int  `json:"scaled_score,omitempty"`
	Passed      bool `json:"passed,omitempty"`
}
