package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ideax-be/internal/config"
	"github.com/hongminglow/ideax-be/internal/identity"
	"github.com/hongminglow/ideax-be/internal/metrics"
	"github.com/hongminglow/ideax-be/internal/middleware"
	"github.com/hongminglow/ideax-be/internal/storage/memory"
)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h$" + p, nil }
func (plainHasher) Verify(d, p string) bool        { return d == "h$"+p }

func TestRoutesEndToEnd(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	svc := identity.NewService(memory.NewStore(), plainHasher{}, log, identity.WithRecorder(m))
	h := Routes(config.Config{CORSOrigins: []string{"*"}}, Deps{Registrar: svc, Metrics: m, Logger: log})

	body := []byte(`{"fullName":"Jane Doe","companyName":"Acme","email":"jane@acme.io","password":"s3cret"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup/startup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ideax_signup_total{outcome="created",role="STARTUP"} 1`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
