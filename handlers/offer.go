package handlers

import (
	"context"
	"errors"
	"net/http"

	"coccigo/middleware"
	"coccigo/models"
	"coccigo/services/offer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OfferHandler serves the offer ledger endpoints.
type OfferHandler struct {
	Ledger offer.Ledger
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(ledger offer.Ledger) *OfferHandler {
	return &OfferHandler{Ledger: ledger}
}

// ListOffersHandler returns the caller's offers, newest first.
func (h *OfferHandler) ListOffersHandler(c *gin.Context) {
	logger := getLogger(c)

	cap, ok := middleware.GetCapability(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	offers, err := h.Ledger.ListOffers(c.Request.Context(), cap.UserID)
	if err != nil {
		logger.Error("Failed to list offers", zap.String("userId", cap.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch offers"})
		return
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	c.JSON(http.StatusOK, offers)
}

// ReserveOfferHandler marks the offer Reservado.
func (h *OfferHandler) ReserveOfferHandler(c *gin.Context) {
	h.setEstado(c, h.Ledger.Reserve)
}

// CancelOfferHandler marks the offer Cancelado.
func (h *OfferHandler) CancelOfferHandler(c *gin.Context) {
	h.setEstado(c, h.Ledger.Cancel)
}

func (h *OfferHandler) setEstado(c *gin.Context, op func(ctx context.Context, userID, offerID string) error) {
	logger := getLogger(c)

	cap, ok := middleware.GetCapability(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	offerID := c.Param("id")
	if offerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offer id is required"})
		return
	}

	if err := op(c.Request.Context(), cap.UserID, offerID); err != nil {
		if errors.Is(err, offer.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Offer update failed", zap.String("offerId", offerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update offer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
