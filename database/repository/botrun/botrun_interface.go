package botrunRepo

import "coccigo/models"

// BotRunRepository abstracts the bot_runs audit collection. Runs are
// appended at dispatch time and finished exactly once.
type BotRunRepository interface {
	Create(run *models.BotRun) error
	GetByID(id string) (*models.BotRun, error)
	GetByRequestID(requestID string) (*models.BotRun, error)
	Finish(id, status, errMsg string) error
	ListRecent(limit int64) ([]models.BotRun, error)
}
