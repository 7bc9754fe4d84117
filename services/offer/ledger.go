package offer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	offerRepo "coccigo/database/repository/offer"
	"coccigo/models"
	"coccigo/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ListLimit caps an offer listing. There is no pagination beyond it.
const ListLimit = 300

const (
	cacheKeyPrefix = "offers:user:"
	cacheTTL       = 30 * time.Second
)

// ErrOfferNotFound covers both a missing offer and an offer the caller does
// not own; the two are indistinguishable on purpose.
var ErrOfferNotFound = fmt.Errorf("offer not found")

// Ledger exposes a user's offers and their reservation state.
type Ledger interface {
	ListOffers(ctx context.Context, userID string) ([]models.Offer, error)
	Reserve(ctx context.Context, userID, offerID string) error
	Cancel(ctx context.Context, userID, offerID string) error
	InvalidateUser(ctx context.Context, userID string)
}

// DefaultLedger is the production implementation. Cache may be nil, in
// which case every listing hits the store.
type DefaultLedger struct {
	Repo  offerRepo.OfferRepository
	Cache *redis.Client
}

// ListOffers returns the caller's offers, newest first, capped at ListLimit.
func (l *DefaultLedger) ListOffers(ctx context.Context, userID string) ([]models.Offer, error) {
	if l.Cache != nil {
		if cached, err := l.Cache.Get(ctx, cacheKeyPrefix+userID).Result(); err == nil {
			var offers []models.Offer
			if err := json.Unmarshal([]byte(cached), &offers); err == nil {
				return offers, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("offer cache read failed, using DB", zap.Error(err))
		}
	}

	offers, err := l.Repo.ListByUser(userID, ListLimit)
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		if payload, err := json.Marshal(offers); err == nil {
			_ = l.Cache.Set(ctx, cacheKeyPrefix+userID, payload, cacheTTL).Err()
		}
	}
	return offers, nil
}

// Reserve sets the offer to Reservado regardless of its current state.
func (l *DefaultLedger) Reserve(ctx context.Context, userID, offerID string) error {
	return l.setEstado(ctx, userID, offerID, models.OfferReservado)
}

// Cancel sets the offer to Cancelado regardless of its current state.
func (l *DefaultLedger) Cancel(ctx context.Context, userID, offerID string) error {
	return l.setEstado(ctx, userID, offerID, models.OfferCancelado)
}

// setEstado verifies ownership, then writes the state unconditionally.
// Concurrent calls race and the last write wins.
func (l *DefaultLedger) setEstado(ctx context.Context, userID, offerID, estado string) error {
	existing, err := l.Repo.GetByID(offerID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrOfferNotFound
	}

	if err := l.Repo.SetEstado(offerID, estado); err != nil {
		return err
	}
	l.InvalidateUser(ctx, userID)
	return nil
}

// InvalidateUser evicts the user's cached listing.
func (l *DefaultLedger) InvalidateUser(ctx context.Context, userID string) {
	if l.Cache == nil {
		return
	}
	if err := l.Cache.Del(ctx, cacheKeyPrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("offer cache eviction failed",
			zap.String("userId", userID), zap.Error(err))
	}
}
