package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ucalc/internal/session"
	"github.com/GriffinCanCode/ucalc/internal/units"
)

type response struct {
	Code int
	Body map[string]any
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := catalog.Default()
	h := NewHandlers(reg, session.NewManager(reg, nil, nil), monitoring.NewMetrics(), nil)
	r := gin.New()
	h.Register(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := response{Code: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out.Body), w.Body.String())
	}
	return out
}

func TestRootAndHealth(t *testing.T) {
	r := setupRouter(t)

	res := do(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "ucalc", res.Body["service"])

	res = do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, float64(catalog.Default().Len()), res.Body["units"])

	res = do(t, r, http.MethodGet, "/metrics/json", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body, "uptime_seconds")
}

func TestCalculate(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name       string
		expression string
		wantStatus int
		wantText   string
		wantCode   string
	}{
		{"number", "2 * (3 + 4)", http.StatusOK, "14", ""},
		{"conversion", "1 km + 500 m -> m", http.StatusOK, "1500 m", ""},
		{"last statement wins", "x = 3 m; x * 2", http.StatusOK, "6 m", ""},
		{"syntax error", "5 +", http.StatusBadRequest, "", "syntax_error"},
		{"unknown unit", "5 blorps", http.StatusBadRequest, "", "unresolved_unit"},
		{"incompatible", "1 m + 1 s", http.StatusBadRequest, "", "incompatible_units"},
		{"undefined variable", "y * 2", http.StatusBadRequest, "", "undefined_variable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, r, http.MethodPost, "/calculate", CalculateRequest{Expression: tt.expression})
			require.Equal(t, tt.wantStatus, res.Code, res.Body)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, res.Body["code"])
				return
			}
			result := res.Body["result"].(map[string]any)
			assert.Equal(t, tt.wantText, result["text"])
		})
	}
}

func TestCalculateRejectsEmptyBody(t *testing.T) {
	r := setupRouter(t)
	res := do(t, r, http.MethodPost, "/calculate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCalculateRejectsControlCharacters(t *testing.T) {
	r := setupRouter(t)
	res := do(t, r, http.MethodPost, "/calculate", CalculateRequest{Expression: "1 m\x00"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_input", res.Body["code"])
}

func TestConvert(t *testing.T) {
	r := setupRouter(t)
	value := func(v float64) *float64 { return &v }

	res := do(t, r, http.MethodPost, "/convert", ConvertRequest{Value: value(100), From: "km/h", To: "m/s"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	result := res.Body["result"].(map[string]any)
	assert.InDelta(t, 27.7777777778, result["value"].(float64), 1e-9)
	assert.Equal(t, "m/s", result["unit"])

	res = do(t, r, http.MethodPost, "/convert", ConvertRequest{Value: value(0), From: "°C", To: "K"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.InDelta(t, 273.15, res.Body["result"].(map[string]any)["value"].(float64), 1e-9)

	res = do(t, r, http.MethodPost, "/convert", ConvertRequest{Value: value(10), From: "m*ft", To: "ft^2"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.InDelta(t, 10/0.3048, res.Body["result"].(map[string]any)["value"].(float64), 1e-9)

	res = do(t, r, http.MethodPost, "/convert", ConvertRequest{Value: value(1), From: "m^2", To: "m*ft"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_unit", res.Body["code"])

	res = do(t, r, http.MethodPost, "/convert", ConvertRequest{Value: value(1), From: "m", To: "s"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "incompatible_units", res.Body["code"])

	res = do(t, r, http.MethodPost, "/convert", map[string]string{"from": "m", "to": "ft"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestListUnitsAndPrefixes(t *testing.T) {
	r := setupRouter(t)

	res := do(t, r, http.MethodGet, "/units", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, float64(catalog.Default().Len()), res.Body["count"])

	res = do(t, r, http.MethodGet, "/units?dimension=temperature", nil)
	require.Equal(t, http.StatusOK, res.Code)
	list := res.Body["units"].([]any)
	require.NotEmpty(t, list)
	for _, u := range list {
		assert.Equal(t, units.Temperature.String(), u.(map[string]any)["dimension"])
	}

	res = do(t, r, http.MethodGet, "/units?dimension=flavour", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = do(t, r, http.MethodGet, "/prefixes", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Body["prefixes"], len(units.Prefixes())-1)
}

func TestSessionFlow(t *testing.T) {
	r := setupRouter(t)

	res := do(t, r, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, res.Code)
	sid := res.Body["id"].(string)
	base := "/sessions/" + sid

	res = do(t, r, http.MethodPost, base+"/eval", EvaluateRequest{Input: "d = 10 km"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	res = do(t, r, http.MethodPost, base+"/eval", EvaluateRequest{Input: "d / 2 h -> km/h"})
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, "5 km/h", res.Body["result"].(map[string]any)["text"])

	res = do(t, r, http.MethodGet, base+"/variables", nil)
	require.Equal(t, http.StatusOK, res.Code)
	vars := res.Body["variables"].(map[string]any)
	assert.Contains(t, vars, "d")
	assert.Contains(t, vars, calc.AnswerVariable)

	res = do(t, r, http.MethodPost, base+"/save", nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, float64(2), res.Body["variables"])

	res = do(t, r, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, res.Code)
	res = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "session_not_found", res.Body["code"])

	res = do(t, r, http.MethodPost, base+"/restore", nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body)
	assert.Equal(t, float64(2), res.Body["variables"])

	res = do(t, r, http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Body["sessions"], 1)
}

func TestSessionErrors(t *testing.T) {
	r := setupRouter(t)

	res := do(t, r, http.MethodGet, "/sessions/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_id", res.Body["code"])

	created := do(t, r, http.MethodPost, "/sessions", nil)
	sid := created.Body["id"].(string)

	res = do(t, r, http.MethodPost, "/sessions/"+sid+"/restore", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "snapshot_not_found", res.Body["code"])

	res = do(t, r, http.MethodPost, "/sessions/"+sid+"/eval", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
