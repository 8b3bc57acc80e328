package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"art-contest/internal/auth"
	"art-contest/internal/models"
	"art-contest/internal/repository"
	"art-contest/internal/services"
	"art-contest/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test_secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	repo   *repository.Repository
	admin  *models.Profile
	user   *models.Profile
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithProcedures(t, nil)
}

// newTestServerWithProcedures swaps the transactional procedures, e.g. for a mock
func newTestServerWithProcedures(t *testing.T, procs repository.Procedures) *testServer {
	t.Helper()
	return newTestServerWith(t, procs, testWebhookSecret)
}

func newTestServerWith(t *testing.T, procs repository.Procedures, webhookSecret string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.InitJWT("handlers-test-secret", time.Hour, time.Minute)

	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	if procs == nil {
		procs = repository.NewProcedures(db)
	}

	router := gin.New()
	NewHandlers(services.NewServices(repo, procs), webhookSecret).Register(router)

	return &testServer{
		router: router,
		db:     db,
		repo:   repo,
		admin:  testutil.CreateProfile(t, db, "curator", models.RoleAdmin),
		user:   testutil.CreateProfile(t, db, "painter", ""),
	}
}

func (s *testServer) token(t *testing.T, p *models.Profile) string {
	t.Helper()
	token, err := auth.GenerateToken(p.ID, p.Role)
	require.NoError(t, err)
	return token
}

// do sends a JSON request. token may be empty for anonymous calls.
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
