package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndependentRegistries(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.SetActiveSessions(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.SessionsActive))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SessionsActive))
}

func TestObserveEvaluation(t *testing.T) {
	m := NewMetrics()
	m.ObserveEvaluation("http", StatusOK, time.Millisecond)
	m.ObserveEvaluation("http", StatusError, time.Millisecond)
	NewTimer(m, "ws").Stop(errors.New("bad"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("http", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("ws", "error")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalEvaluations)
	assert.Equal(t, int64(2), snap.FailedEvaluations)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/sessions/:id", func(c *gin.Context) { c.String(http.StatusNotFound, "nope") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/sessions/:id", "404")))
	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.TotalErrors)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "ucalc_http_requests_total"))
	assert.True(t, strings.Contains(body, "ucalc_uptime_seconds"))
}

func TestWSConnectionGauge(t *testing.T) {
	m := NewMetrics()
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()
	m.RecordWSMessage("in", "eval")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSConnections))
	assert.Equal(t, int64(1), m.Snapshot().ActiveConnections)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSMessages.WithLabelValues("in", "eval")))
}
