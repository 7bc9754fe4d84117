package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coccigo/middleware"
	"coccigo/models"
	"coccigo/services/offer"
	"coccigo/services/user"
	"coccigo/services/workflow"
	"coccigo/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeUserService struct {
	duplicate bool
	banned    []string
	created   []string
}

func (s *fakeUserService) Authenticate(usernameOrEmail, password string) (*user.AuthResponse, error) {
	if password != "hunter22" {
		return nil, user.InvalidCredentialsError{}
	}
	return &user.AuthResponse{ID: "u-1", Token: "tok", Username: usernameOrEmail, Role: models.RoleUser}, nil
}

func (s *fakeUserService) CreateUser(email, username, password string) (*models.User, error) {
	if s.duplicate {
		return nil, user.DuplicateUserError{Field: "email or username"}
	}
	s.created = append(s.created, email)
	return &models.User{ID: "u-new", Email: email, Username: username, Role: models.RoleUser}, nil
}

func (s *fakeUserService) BanUser(email string) error {
	s.banned = append(s.banned, email)
	return nil
}

func (s *fakeUserService) EnsureAdmin(email, username, password string) error { return nil }

type fakeEngine struct {
	lastUser  string
	lastInput workflow.SubmitRequestInput
}

func (e *fakeEngine) SubmitRequest(userID string, input workflow.SubmitRequestInput) (string, error) {
	if !models.ValidModality(input.Modality) {
		return "", workflow.ErrInvalidModality{Modality: input.Modality}
	}
	e.lastUser = userID
	e.lastInput = input
	return "req-42", nil
}

func (e *fakeEngine) ProcessRequest(ctx context.Context, requestID, runID string) error {
	return nil
}

type fakeLedger struct {
	estados map[string]string
	owner   map[string]string
}

func (l *fakeLedger) ListOffers(ctx context.Context, userID string) ([]models.Offer, error) {
	var out []models.Offer
	for id, owner := range l.owner {
		if owner == userID {
			out = append(out, models.Offer{ID: id, UserID: owner, Estado: l.estados[id]})
		}
	}
	return out, nil
}

func (l *fakeLedger) Reserve(ctx context.Context, userID, offerID string) error {
	return l.set(userID, offerID, models.OfferReservado)
}

func (l *fakeLedger) Cancel(ctx context.Context, userID, offerID string) error {
	return l.set(userID, offerID, models.OfferCancelado)
}

func (l *fakeLedger) set(userID, offerID, estado string) error {
	if l.owner[offerID] != userID {
		return offer.ErrOfferNotFound
	}
	l.estados[offerID] = estado
	return nil
}

func (l *fakeLedger) InvalidateUser(ctx context.Context, userID string) {}

type fakeRunRepo struct {
	runs []models.BotRun
}

func (r *fakeRunRepo) Create(run *models.BotRun) error                          { return nil }
func (r *fakeRunRepo) GetByID(id string) (*models.BotRun, error)                { return nil, nil }
func (r *fakeRunRepo) GetByRequestID(requestID string) (*models.BotRun, error)  { return nil, nil }
func (r *fakeRunRepo) Finish(id, status, errMsg string) error                   { return nil }
func (r *fakeRunRepo) ListRecent(limit int64) ([]models.BotRun, error)          { return r.runs, nil }

// --- harness ---

func newTestRouter(t *testing.T) (*gin.Engine, *fakeUserService, *fakeEngine, *fakeLedger, *fakeRunRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &fakeUserService{}
	engine := &fakeEngine{}
	ledger := &fakeLedger{
		estados: map[string]string{"o-1": models.OfferDisponible},
		owner:   map[string]string{"o-1": "u-1"},
	}
	runs := &fakeRunRepo{runs: []models.BotRun{{ID: "run-1", Status: models.BotRunDone}}}

	hb := &HandlerBundle{
		Auth:    NewAuthHandler(users),
		Request: NewRequestHandler(engine),
		Offer:   NewOfferHandler(ledger),
		Admin:   NewAdminHandler(users, runs),
	}

	r := gin.New()
	r.POST("/login", hb.Auth.LoginHandler)
	r.POST("/logout", hb.Auth.LogoutHandler)

	authed := r.Group("")
	authed.Use(middleware.SessionAuth())
	authed.POST("/requests", hb.Request.SubmitRequestHandler)
	authed.GET("/offers", hb.Offer.ListOffersHandler)
	authed.POST("/offers/:id/reserve", hb.Offer.ReserveOfferHandler)
	authed.POST("/offers/:id/cancel", hb.Offer.CancelOfferHandler)

	admin := r.Group("/admin")
	admin.Use(middleware.SessionAuth(), middleware.RequireAdmin())
	admin.GET("/bots", hb.Admin.ListBotRunsHandler)
	admin.POST("/users", hb.Admin.CreateUserHandler)
	admin.POST("/ban", hb.Admin.BanUserHandler)

	return r, users, engine, ledger, runs
}

func sessionCookie(t *testing.T, claims utils.SessionClaims) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateSessionToken(claims, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func userCookie(t *testing.T) *http.Cookie {
	return sessionCookie(t, utils.SessionClaims{UserID: "u-1", Username: "alice", Role: models.RoleUser})
}

func adminCookie(t *testing.T) *http.Cookie {
	return sessionCookie(t, utils.SessionClaims{UserID: "a-1", Username: "root", Role: models.RoleAdmin})
}

// --- tests ---

func TestLogin_MissingFields(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/login", map[string]string{"usernameOrEmail": "alice"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/login",
		map[string]string{"usernameOrEmail": "alice", "password": "hunter22"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogin_BadCredentials(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/login",
		map[string]string{"usernameOrEmail": "alice", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	for _, path := range []string{"/offers", "/admin/bots"} {
		w := doJSON(r, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestBannedSessionRejected(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	cookie := sessionCookie(t, utils.SessionClaims{
		UserID: "u-1", Username: "alice", Role: models.RoleUser, Banned: true,
	})
	w := doJSON(r, http.MethodGet, "/offers", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/admin/bots", nil, userCookie(t))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitRequest_ReturnsRequestID(t *testing.T) {
	r, _, engine, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/requests",
		map[string]any{"modality": "flights", "destination": "Madrid", "partySize": 2},
		userCookie(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp["requestId"])
	assert.Equal(t, "u-1", engine.lastUser)
	require.NotNil(t, engine.lastInput.PartySize.Value)
	assert.Equal(t, 2, *engine.lastInput.PartySize.Value)
}

func TestSubmitRequest_JunkNumericFieldAccepted(t *testing.T) {
	r, _, engine, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/requests",
		map[string]any{"modality": "flights", "partySize": "dos"},
		userCookie(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, engine.lastInput.PartySize.Value)
}

func TestSubmitRequest_UnknownModality(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/requests",
		map[string]any{"modality": "cruises"}, userCookie(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReserveOffer_FlipsEstado(t *testing.T) {
	r, _, _, ledger, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/offers/o-1/reserve", nil, userCookie(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OfferReservado, ledger.estados["o-1"])

	w = doJSON(r, http.MethodPost, "/offers/o-1/cancel", nil, userCookie(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OfferCancelado, ledger.estados["o-1"])
}

func TestReserveOffer_ForeignOffer(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	cookie := sessionCookie(t, utils.SessionClaims{UserID: "u-2", Username: "mallory", Role: models.RoleUser})
	w := doJSON(r, http.MethodPost, "/offers/o-1/reserve", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOffers_OwnOnly(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/offers", nil, userCookie(t))
	require.Equal(t, http.StatusOK, w.Code)

	var offers []models.Offer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offers))
	require.Len(t, offers, 1)
	assert.Equal(t, "u-1", offers[0].UserID)
}

func TestAdminCreateUser_Duplicate(t *testing.T) {
	r, users, _, _, _ := newTestRouter(t)
	users.duplicate = true

	w := doJSON(r, http.MethodPost, "/admin/users",
		map[string]string{"email": "alice@example.com", "username": "alice", "password": "x"},
		adminCookie(t))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, users.created)
}

func TestAdminCreateUser_Success(t *testing.T) {
	r, users, _, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/admin/users",
		map[string]string{"email": "bob@example.com", "username": "bob", "password": "x"},
		adminCookie(t))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"bob@example.com"}, users.created)
}

func TestAdminBan(t *testing.T) {
	r, users, _, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/admin/ban",
		map[string]string{"email": "alice@example.com"}, adminCookie(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"alice@example.com"}, users.banned)
}

func TestAdminListBots(t *testing.T) {
	r, _, _, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/admin/bots", nil, adminCookie(t))
	require.Equal(t, http.StatusOK, w.Code)

	var runs []models.BotRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}
