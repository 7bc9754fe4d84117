package models

import "time"

// BotRun states. A run is created as running and moves to exactly one
// terminal state; stopped exists for manually halted runs.
const (
	BotRunRunning = "running"
	BotRunStopped = "stopped"
	BotRunDone    = "done"
	BotRunError   = "error"
)

// BotRun is the audit record of one provider invocation.
type BotRun struct {
	ID         string     `bson:"id" json:"id"`
	UserID     string     `bson:"user_id" json:"userId"`
	RequestID  string     `bson:"request_id" json:"requestId"`
	Provider   string     `bson:"provider" json:"provider"`
	Status     string     `bson:"status" json:"status"`
	Error      string     `bson:"error,omitempty" json:"error,omitempty"`
	StartedAt  time.Time  `bson:"started_at" json:"startedAt"`
	FinishedAt *time.Time `bson:"finished_at,omitempty" json:"finishedAt,omitempty"`
}
