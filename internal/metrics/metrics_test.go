package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ideax-be/internal/models"
)

func TestCounters(t *testing.T) {
	m := New()
	m.SignUp(models.RoleStartup, "created")
	m.SignUp(models.RoleStartup, "created")
	m.SignUp(models.RoleInvestor, "duplicate")
	m.Bootstrap("created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.signups.WithLabelValues("STARTUP", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.signups.WithLabelValues("INVESTOR", "duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bootstrap.WithLabelValues("created")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.SignUp(models.RoleInvestor, "created")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ideax_signup_total{outcome="created",role="INVESTOR"} 1`)
}

func TestNewTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
