package handlers

import (
	"errors"
	"net/http"

	"coccigo/middleware"
	"coccigo/services/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler serves travel request submission.
type RequestHandler struct {
	Engine workflow.Engine
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(engine workflow.Engine) *RequestHandler {
	return &RequestHandler{Engine: engine}
}

// SubmitRequestHandler accepts a travel intent and answers with the
// request identifier. The provider call happens in the background; clients
// poll GET /offers until offers appear or the request goes terminal.
func (h *RequestHandler) SubmitRequestHandler(c *gin.Context) {
	logger := getLogger(c)

	cap, ok := middleware.GetCapability(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input workflow.SubmitRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	requestID, err := h.Engine.SubmitRequest(cap.UserID, input)
	if err != nil {
		var invalid workflow.ErrInvalidModality
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		logger.Error("Request submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requestId": requestID})
}
