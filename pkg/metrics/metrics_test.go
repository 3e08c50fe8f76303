package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.GuardRedirect("no_cookie")
	m.GuardRedirect("no_cookie")
	m.ObserveUpstream("cursos", "ok", 20*time.Millisecond)
	m.LoginAttempt("failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.guardRedirects.WithLabelValues("no_cookie")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("cursos", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("failure")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.GuardRedirect("x")
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
		m.ObserveUpstream("login", "ok", time.Millisecond)
		m.LoginAttempt("success")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/home/:id", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "elearning_portal_http_requests_total"))
	assert.True(t, strings.Contains(body, `route="/home/:id"`))
}
