package workflow

import (
	"context"
	"fmt"

	"coccigo/models"
	"coccigo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidModality rejects submissions for unknown travel products. It is
// the only server-side validation a submission gets; every other field is
// taken as-is.
type ErrInvalidModality struct {
	Modality string
}

func (e ErrInvalidModality) Error() string {
	return fmt.Sprintf("unknown modality %q", e.Modality)
}

// SubmitRequest persists the request and its audit run, hands both to the
// dispatcher, and returns the request ID without waiting for the provider.
func (e *DefaultEngine) SubmitRequest(userID string, input SubmitRequestInput) (string, error) {
	if !models.ValidModality(input.Modality) {
		return "", ErrInvalidModality{Modality: input.Modality}
	}

	req := &models.Request{
		ID:          uuid.New().String(),
		UserID:      userID,
		Modality:    input.Modality,
		Origin:      input.Origin,
		Destination: input.Destination,
		SurpriseMe:  input.SurpriseMe,
		DateIn:      input.DateIn,
		DateOut:     input.DateOut,
		PartySize:   input.PartySize.Value,
		Class:       input.Class,
		StarRating:  input.StarRating.Value,
		Budget:      input.Budget.Value,
		Email:       input.Email,
		Mode:        input.Mode,
		Status:      models.RequestStatusSearching,
	}
	if err := e.Requests.Create(req); err != nil {
		return "", fmt.Errorf("failed to persist request: %w", err)
	}

	run := &models.BotRun{
		ID:        uuid.New().String(),
		UserID:    userID,
		RequestID: req.ID,
		Provider:  req.Modality,
		Status:    models.BotRunRunning,
	}
	if err := e.Runs.Create(run); err != nil {
		return "", fmt.Errorf("failed to persist bot run: %w", err)
	}

	if err := e.Dispatcher.Dispatch(context.Background(), req.ID, run.ID); err != nil {
		// The documents exist; the run just never got an executor. Settle
		// both so the client is not left polling a request that nobody is
		// working on.
		utils.GetLogger().Error("SubmitRequest: dispatch failed",
			zap.String("requestId", req.ID), zap.Error(err))
		e.settle(req.ID, run.ID, nil, fmt.Errorf("dispatch failed: %v", err))
	}

	return req.ID, nil
}

// ProcessRequest is the background executor's entrypoint: one provider
// invocation, then exactly one terminal transition for the run and its
// request.
func (e *DefaultEngine) ProcessRequest(ctx context.Context, requestID, runID string) error {
	req, err := e.Requests.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to load request %s: %w", requestID, err)
	}
	if req == nil {
		return fmt.Errorf("request %s not found", requestID)
	}

	rawOffers, invokeErr := e.Gateway.Invoke(ctx, req)
	if invokeErr != nil {
		e.settle(requestID, runID, req, invokeErr)
		return nil
	}

	offers := make([]models.Offer, 0, len(rawOffers))
	for _, ro := range rawOffers {
		estado := ro.Estado
		if estado == "" {
			estado = models.OfferDisponible
		}
		offers = append(offers, models.Offer{
			ID:           uuid.New().String(),
			RequestID:    req.ID,
			UserID:       req.UserID,
			Modality:     req.Modality,
			RutaODestino: ro.RutaODestino,
			Fecha:        ro.Fecha,
			Clase:        ro.Clase,
			Pax:          ro.Pax.Value,
			PrecioUSD:    ro.PrecioUSD.Value,
			Estado:       estado,
		})
	}

	if err := e.Offers.BulkCreate(offers); err != nil {
		e.settle(requestID, runID, req, fmt.Errorf("failed to persist offers: %v", err))
		return nil
	}

	e.settle(requestID, runID, req, nil)
	return nil
}

// settle writes the single terminal transition: done/finalized on success,
// error/cancelled on failure. The cause lands on the run, never on the
// request.
func (e *DefaultEngine) settle(requestID, runID string, req *models.Request, cause error) {
	logger := utils.GetLogger()

	runStatus, reqStatus, errMsg := models.BotRunDone, models.RequestStatusFinalized, ""
	if cause != nil {
		runStatus, reqStatus, errMsg = models.BotRunError, models.RequestStatusCancelled, cause.Error()
	}

	if err := e.Runs.Finish(runID, runStatus, errMsg); err != nil {
		logger.Error("settle: failed to finish bot run",
			zap.String("runId", runID), zap.Error(err))
	}
	if err := e.Requests.SetStatus(requestID, reqStatus); err != nil {
		logger.Error("settle: failed to set request status",
			zap.String("requestId", requestID), zap.Error(err))
	}

	if cause != nil {
		logger.Warn("request cancelled",
			zap.String("requestId", requestID), zap.String("cause", errMsg))
	} else if req != nil && e.OfferCache != nil {
		e.OfferCache.InvalidateUser(context.Background(), req.UserID)
	}
}
