package offer

import (
	"context"
	"testing"

	"coccigo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOfferRepo struct {
	docs []models.Offer
}

func (r *fakeOfferRepo) BulkCreate(offers []models.Offer) error {
	r.docs = append(r.docs, offers...)
	return nil
}

func (r *fakeOfferRepo) GetByID(id string) (*models.Offer, error) {
	for i := range r.docs {
		if r.docs[i].ID == id {
			cp := r.docs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOfferRepo) ListByUser(userID string, limit int64) ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range r.docs {
		if o.UserID == userID {
			out = append(out, o)
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) SetEstado(id, estado string) error {
	for i := range r.docs {
		if r.docs[i].ID == id {
			r.docs[i].Estado = estado
		}
	}
	return nil
}

func newLedger(offers ...models.Offer) (*DefaultLedger, *fakeOfferRepo) {
	repo := &fakeOfferRepo{docs: offers}
	return &DefaultLedger{Repo: repo}, repo
}

func TestListOffers_OnlyOwnOffers(t *testing.T) {
	ledger, _ := newLedger(
		models.Offer{ID: "o1", UserID: "alice", Estado: models.OfferDisponible},
		models.Offer{ID: "o2", UserID: "bob", Estado: models.OfferDisponible},
		models.Offer{ID: "o3", UserID: "alice", Estado: models.OfferReservado},
	)

	offers, err := ledger.ListOffers(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, offers, 2)
	for _, o := range offers {
		assert.Equal(t, "alice", o.UserID)
	}
}

func TestReserveThenCancel_LastWriteWins(t *testing.T) {
	ledger, repo := newLedger(
		models.Offer{ID: "o1", UserID: "alice", Estado: models.OfferDisponible},
	)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, "alice", "o1"))
	require.NoError(t, ledger.Cancel(ctx, "alice", "o1"))
	stored, _ := repo.GetByID("o1")
	assert.Equal(t, models.OfferCancelado, stored.Estado)

	// No transition rule: reserve flips a cancelled offer right back.
	require.NoError(t, ledger.Reserve(ctx, "alice", "o1"))
	stored, _ = repo.GetByID("o1")
	assert.Equal(t, models.OfferReservado, stored.Estado)
}

func TestReserve_ForeignOfferRejected(t *testing.T) {
	ledger, repo := newLedger(
		models.Offer{ID: "o1", UserID: "bob", Estado: models.OfferDisponible},
	)

	err := ledger.Reserve(context.Background(), "alice", "o1")
	assert.ErrorIs(t, err, ErrOfferNotFound)

	stored, _ := repo.GetByID("o1")
	assert.Equal(t, models.OfferDisponible, stored.Estado)
}

func TestReserve_MissingOffer(t *testing.T) {
	ledger, _ := newLedger()

	err := ledger.Cancel(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, ErrOfferNotFound)
}
