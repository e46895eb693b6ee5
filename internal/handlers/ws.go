package handlers

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"

	"github.com/gin-gonic/gin"

	"github.com/Asnor14/rsvp01-admin/internal/websocket"
)

var wsUpgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket attaches a dashboard tab to the refresh feed. The
// token travels as a query parameter because browsers cannot set
// headers on websocket upgrades.
func (h *Handlers) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if !h.validToken(token) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	websocket.NewClient(h.hub, conn).Start()
}
