package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-relay/internal/app"
	"room-relay/internal/ws"
)

func testRouter() (http.Handler, *ws.Registry) {
	cfg := app.Config{Env: "test", CORSAllow: []string{"http://localhost:5173"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := ws.NewRegistry()
	return NewRouter(cfg, logger, ws.NewHub(cfg, logger, reg)), reg
}

func TestHealthz(t *testing.T) {
	router, _ := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReportsRooms(t *testing.T) {
	router, reg := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rooms":0}`, rec.Body.String())

	reg.EnsureRoom("lobby")
	reg.EnsureRoom("den")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.JSONEq(t, `{"rooms":2}`, rec.Body.String())
}
