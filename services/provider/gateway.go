package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"coccigo/models"
	"coccigo/utils"

	"go.uber.org/zap"
)

// Gateway sends a travel request to the configured external provider and
// parses the offers it returns.
type Gateway interface {
	Invoke(ctx context.Context, req *models.Request) ([]models.RawOffer, error)
}

// HTTPGateway is the production Gateway. URLs maps each modality to its
// endpoint; an empty entry means no provider serves that product.
type HTTPGateway struct {
	URLs   map[string]string
	Client *http.Client
}

// NewHTTPGateway builds a gateway with a bounded per-call timeout.
func NewHTTPGateway(urls map[string]string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		URLs:   urls,
		Client: &http.Client{Timeout: timeout},
	}
}

// invokePayload echoes every request field plus the correlation identifiers
// the provider needs to tag its own records.
type invokePayload struct {
	Modality    string   `json:"modality"`
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination,omitempty"`
	SurpriseMe  bool     `json:"surpriseMe"`
	DateIn      string   `json:"dateIn,omitempty"`
	DateOut     string   `json:"dateOut,omitempty"`
	PartySize   *int     `json:"partySize,omitempty"`
	Class       string   `json:"class,omitempty"`
	StarRating  *int     `json:"starRating,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Email       string   `json:"email,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	RequestID   string   `json:"requestId"`
	UserID      string   `json:"userId"`
}

// Invoke posts the request to its modality's provider and returns the raw
// offers. Failures come back as *ProviderError.
func (g *HTTPGateway) Invoke(ctx context.Context, req *models.Request) ([]models.RawOffer, error) {
	url := g.URLs[req.Modality]
	if url == "" {
		return nil, unconfiguredError()
	}

	payload := invokePayload{
		Modality:    req.Modality,
		Origin:      req.Origin,
		Destination: req.Destination,
		SurpriseMe:  req.SurpriseMe,
		DateIn:      req.DateIn,
		DateOut:     req.DateOut,
		PartySize:   req.PartySize,
		Class:       req.Class,
		StarRating:  req.StarRating,
		Budget:      req.Budget,
		Email:       req.Email,
		Mode:        req.Mode,
		RequestID:   req.ID,
		UserID:      req.UserID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, decodeError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, networkError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, decodeError(err)
	}

	offers, err := parseOffers(raw)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Debug("provider responded",
		zap.String("modality", req.Modality),
		zap.String("requestId", req.ID),
		zap.Int("offers", len(offers)))
	return offers, nil
}

// parseOffers accepts either a bare array of offers or an object carrying an
// "offers" array. Valid JSON of any other shape yields an empty slice: a
// provider that answered 2xx with something unexpected produced no offers,
// not a failure. Bytes that are not JSON at all (an HTML error page, a
// truncated body) are a malformed response and fail the call.
func parseOffers(raw []byte) ([]models.RawOffer, error) {
	var bare []models.RawOffer
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Offers []models.RawOffer `json:"offers"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Offers != nil {
		return wrapped.Offers, nil
	}

	if !json.Valid(raw) {
		return nil, decodeError(errors.New("response body is not valid JSON"))
	}
	return nil, nil
}
