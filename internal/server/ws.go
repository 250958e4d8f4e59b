package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cardscan/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API binds to loopback by default; remote binds are expected
		// to sit behind the bearer token.
		return true
	},
}

// handleWebsocket upgrades the connection, sends the current snapshot, and
// keeps the client registered until it disconnects. The hub pushes all
// further events.
func (s *Server) handleWebsocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	s.hub.Add(ws)
	s.logger.Debug("ws client connected", logging.Int("clients", s.hub.Count()))

	_ = ws.WriteJSON(gin.H{"type": "welcome", "snapshot": s.pipe.Snapshot()})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Remove(ws)
	s.logger.Debug("ws client disconnected", logging.Int("clients", s.hub.Count()))
}
