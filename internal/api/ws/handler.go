package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ucalc/internal/api/dto"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ucalc/internal/session"
	"github.com/GriffinCanCode/ucalc/internal/shared/id"
)

// Message types.
const (
	TypeEval   = "eval"
	TypeReset  = "reset"
	TypePing   = "ping"
	TypeResult = "result"
	TypeError  = "error"
	TypePong   = "pong"
	TypeSystem = "system"
)

const maxMessageSize = 64 << 10

// Message is sent by the client.
type Message struct {
	Type  string `json:"type"`
	Input string `json:"input,omitempty"`
}

// Reply is sent by the server.
type Reply struct {
	Type      string       `json:"type"`
	SessionID id.SessionID `json:"session_id,omitempty"`
	Message   string       `json:"message,omitempty"`
	Result    *dto.Result  `json:"result,omitempty"`
	Error     *dto.Error   `json:"error,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// Handler runs a calculator session per WebSocket connection.
type Handler struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and serves messages until the
// client disconnects. The connection's session is closed with it.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	connID := uuid.NewString()
	sid := h.sessions.Create().ID
	log := h.logger.With(zap.String("conn_id", connID), zap.String("session_id", sid.String()))

	h.metrics.IncWSConnections()
	defer func() {
		h.metrics.DecWSConnections()
		if err := h.sessions.Delete(sid); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			log.Warn("failed to close session", zap.Error(err))
		}
		log.Debug("websocket closed")
	}()
	log.Debug("websocket connected")

	if err := h.send(conn, Reply{Type: TypeSystem, SessionID: sid, Message: "connected to ucalc"}); err != nil {
		return
	}

	ctx := c.Request.Context()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		var reply Reply
		switch msg.Type {
		case TypeEval:
			reply = h.eval(ctx, sid, msg.Input)
		case TypeReset:
			reply = Reply{Type: TypeSystem, Message: "variables cleared"}
			if err := h.sessions.Reset(sid); err != nil {
				reply = errorReply(err)
			}
		case TypePing:
			reply = Reply{Type: TypePong}
		default:
			reply = Reply{Type: TypeError, Error: &dto.Error{Error: "unknown message type " + msg.Type, Code: "unknown_type"}}
		}

		reply.SessionID = sid
		if err := h.send(conn, reply); err != nil {
			log.Warn("websocket write error", zap.Error(err))
			return
		}
	}
}

func (h *Handler) eval(ctx context.Context, sid id.SessionID, input string) Reply {
	v, err := h.sessions.Evaluate(ctx, sid, input)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Type: TypeResult, Result: dto.FromValue(v)}
}

func errorReply(err error) Reply {
	e := dto.NewError(err)
	return Reply{Type: TypeError, Error: &e}
}

func (h *Handler) send(conn *websocket.Conn, reply Reply) error {
	reply.Timestamp = time.Now().Unix()
	if err := conn.WriteJSON(reply); err != nil {
		return err
	}
	h.metrics.RecordWSMessage("out", reply.Type)
	return nil
}
