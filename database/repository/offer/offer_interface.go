package offerRepo

import "coccigo/models"

// OfferRepository abstracts the offers collection.
type OfferRepository interface {
	BulkCreate(offers []models.Offer) error
	GetByID(id string) (*models.Offer, error)
	ListByUser(userID string, limit int64) ([]models.Offer, error)
	SetEstado(id, estado string) error
}
