package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ucalc/internal/api/dto"
	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ucalc/internal/session"
	"github.com/GriffinCanCode/ucalc/internal/units"
	"github.com/GriffinCanCode/ucalc/internal/utils"
)

// Version is reported by the root endpoint.
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *catalog.Registry
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	registry *catalog.Registry,
	sessions *session.Manager,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry: registry,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics/json", h.MetricsJSON)

	r.POST("/calculate", h.Calculate)
	r.POST("/convert", h.Convert)
	r.GET("/units", h.ListUnits)
	r.GET("/prefixes", h.ListPrefixes)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions", h.ListSessions)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.POST("/sessions/:id/eval", h.EvaluateInSession)
	r.GET("/sessions/:id/variables", h.SessionVariables)
	r.POST("/sessions/:id/save", h.SaveSession)
	r.POST("/sessions/:id/restore", h.RestoreSession)
}

// Root handles the status check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "ucalc",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"units":    h.registry.Len(),
		"sessions": h.sessions.Stats(),
	})
}

// MetricsJSON returns the current metric values as JSON.
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// CalculateRequest is the body of POST /calculate.
type CalculateRequest struct {
	Expression string `json:"expression" binding:"required,max=4096"`
}

// Calculate evaluates every statement of an expression in a throwaway
// interpreter.
func (h *Handlers) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateExpression(req.Expression); err != nil {
		h.respondError(c, err)
		return
	}

	timer := monitoring.NewTimer(h.metrics, "http")
	results, err := calc.NewInterpreter(h.registry).Run(req.Expression)
	timer.Stop(err)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var last *dto.Result
	if len(results) > 0 {
		last = dto.FromValue(results[len(results)-1])
	}
	c.JSON(http.StatusOK, gin.H{
		"expression": req.Expression,
		"result":     last,
		"results":    dto.FromValues(results),
	})
}

// ConvertRequest is the body of POST /convert.
type ConvertRequest struct {
	Value *float64 `json:"value" binding:"required"`
	From  string   `json:"from" binding:"required,max=256"`
	To    string   `json:"to" binding:"required,max=256"`
}

// Convert converts a value between two unit expressions.
func (h *Handlers) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, u := range []string{req.From, req.To} {
		if err := utils.ValidateUnit(u); err != nil {
			h.respondError(c, err)
			return
		}
	}

	from, err := calc.ParseScaledUnit(h.registry, req.From)
	if err != nil {
		h.respondError(c, err)
		return
	}
	to, err := calc.ParseCompositeUnit(h.registry, req.To)
	if err != nil {
		h.respondError(c, err)
		return
	}

	source, err := from.Of(*req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}
	converted, err := source.ConvertTo(to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":   dto.FromMeasurement(source),
		"result": dto.FromMeasurement(converted),
	})
}

// ListUnits lists the catalogue, optionally filtered by ?dimension=.
func (h *Handlers) ListUnits(c *gin.Context) {
	list := h.registry.All()
	if name := c.Query("dimension"); name != "" {
		d, ok := units.ParseDimension(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown dimension " + name})
			return
		}
		list = h.registry.ByDimension(d)
	}

	out := make([]dto.Unit, 0, len(list))
	for _, u := range list {
		out = append(out, dto.FromUnit(u))
	}
	c.JSON(http.StatusOK, gin.H{
		"units": out,
		"count": len(out),
	})
}

// ListPrefixes lists the metric prefixes.
func (h *Handlers) ListPrefixes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prefixes": dto.Prefixes()})
}
