package requestRepo

import "coccigo/models"

// RequestRepository abstracts the requests collection.
type RequestRepository interface {
	Create(req *models.Request) error
	GetByID(id string) (*models.Request, error)
	SetStatus(id, status string) error
}
