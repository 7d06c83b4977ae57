package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ucalc/internal/api/dto"
	"github.com/GriffinCanCode/ucalc/internal/shared/id"
)

// EvaluateRequest is the body of POST /sessions/:id/eval.
type EvaluateRequest struct {
	Input string `json:"input" binding:"required,max=4096"`
}

// CreateSession opens a new session
func (h *Handlers) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.sessions.Create())
}

// ListSessions lists live sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	list := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": list,
		"stats":    h.sessions.Stats(),
	})
}

// GetSession describes one session
func (h *Handlers) GetSession(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	info, err := h.sessions.Get(sid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// DeleteSession closes a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(sid); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sid,
	})
}

// EvaluateInSession evaluates input against the session's variables
func (h *Handlers) EvaluateInSession(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.sessions.Evaluate(c.Request.Context(), sid, req.Input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sid,
		"result":     dto.FromValue(v),
	})
}

// SessionVariables lists the session's variables
func (h *Handlers) SessionVariables(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	vars, err := h.sessions.Variables(sid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make(map[string]*dto.Result, len(vars))
	for name, v := range vars {
		out[name] = dto.FromValue(v)
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sid,
		"variables":  out,
	})
}

// SaveSession writes a snapshot of the session
func (h *Handlers) SaveSession(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	snap, err := h.sessions.Save(c.Request.Context(), sid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sid,
		"saved_at":   snap.SavedAt,
		"variables":  len(snap.Variables),
	})
}

// RestoreSession reloads a session from its snapshot
func (h *Handlers) RestoreSession(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	info, err := h.sessions.Restore(c.Request.Context(), sid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handlers) sessionID(c *gin.Context) (id.SessionID, bool) {
	sid, err := id.ParseSessionID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return "", false
	}
	return sid, true
}
