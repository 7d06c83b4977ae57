package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ucalc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ucalc/internal/session"
)

func dial(t *testing.T) (*websocket.Conn, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(nil, nil, nil)
	h := NewHandler(sessions, monitoring.NewMetrics(), nil)

	r := gin.New()
	r.GET("/stream", h.HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn, sessions
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg Message) Reply {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
	var reply Reply
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestStreamSession(t *testing.T) {
	conn, sessions := dial(t)

	var hello Reply
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, TypeSystem, hello.Type)
	require.NotEmpty(t, hello.SessionID)
	assert.Equal(t, 1, sessions.Len())

	reply := roundTrip(t, conn, Message{Type: TypeEval, Input: "v = 90 km/h"})
	assert.Equal(t, TypeResult, reply.Type)
	assert.Equal(t, hello.SessionID, reply.SessionID)

	reply = roundTrip(t, conn, Message{Type: TypeEval, Input: "v -> m/s"})
	require.Equal(t, TypeResult, reply.Type, reply.Error)
	assert.InDelta(t, 25, reply.Result.Value, 1e-9)
	assert.Equal(t, "m/s", reply.Result.Unit)

	reply = roundTrip(t, conn, Message{Type: TypeEval, Input: "v + 1 kg"})
	require.Equal(t, TypeError, reply.Type)
	assert.Equal(t, "incompatible_units", reply.Error.Code)

	reply = roundTrip(t, conn, Message{Type: TypeReset})
	assert.Equal(t, TypeSystem, reply.Type)
	reply = roundTrip(t, conn, Message{Type: TypeEval, Input: "v"})
	require.Equal(t, TypeError, reply.Type)
	assert.Equal(t, "undefined_variable", reply.Error.Code)
}

func TestStreamPingAndUnknown(t *testing.T) {
	conn, _ := dial(t)
	var hello Reply
	require.NoError(t, conn.ReadJSON(&hello))

	assert.Equal(t, TypePong, roundTrip(t, conn, Message{Type: TypePing}).Type)

	reply := roundTrip(t, conn, Message{Type: "shout"})
	require.Equal(t, TypeError, reply.Type)
	assert.Equal(t, "unknown_type", reply.Error.Code)
}

func TestStreamClosesSession(t *testing.T) {
	conn, sessions := dial(t)
	var hello Reply
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, 1, sessions.Len())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return sessions.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
