package workflow

import (
	"context"

	botrunRepo "coccigo/database/repository/botrun"
	offerRepo "coccigo/database/repository/offer"
	requestRepo "coccigo/database/repository/request"
	"coccigo/models"
	"coccigo/services/provider"
)

// Engine drives the request lifecycle: accept a travel intent, fire the
// provider invocation in the background, and settle request and audit
// state from its outcome.
type Engine interface {
	SubmitRequest(userID string, input SubmitRequestInput) (string, error)
	ProcessRequest(ctx context.Context, requestID, runID string) error
}

// Dispatcher hands a (request, run) pair to the background executor. The
// submitting call never waits for the provider.
type Dispatcher interface {
	Dispatch(ctx context.Context, requestID, runID string) error
}

// OfferCacheInvalidator evicts a user's cached offer listing after new
// offers land. The offer ledger provides it.
type OfferCacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}

// SubmitRequestInput carries the fields of one travel intent. Numeric
// fields tolerate junk values: they decode to absent instead of rejecting
// the submission.
type SubmitRequestInput struct {
	Modality    string               `json:"modality"`
	Origin      string               `json:"origin"`
	Destination string               `json:"destination"`
	SurpriseMe  bool                 `json:"surpriseMe"`
	DateIn      string               `json:"dateIn"`
	DateOut     string               `json:"dateOut"`
	PartySize   models.OptionalInt   `json:"partySize"`
	Class       string               `json:"class"`
	StarRating  models.OptionalInt   `json:"starRating"`
	Budget      models.OptionalFloat `json:"budget"`
	Email       string               `json:"email"`
	Mode        string               `json:"mode"`
}

// DefaultEngine is the production implementation.
type DefaultEngine struct {
	Requests   requestRepo.RequestRepository
	Offers     offerRepo.OfferRepository
	Runs       botrunRepo.BotRunRepository
	Gateway    provider.Gateway
	Dispatcher Dispatcher
	OfferCache OfferCacheInvalidator
}
