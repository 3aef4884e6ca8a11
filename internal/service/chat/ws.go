package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	svcErr "github.com/jaymatch/server/internal/errors"
	"github.com/jaymatch/server/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The frontend is served from a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveWS upgrades the request and hands the connection to a realtime
// client, which registers itself and owns the session from there.
func (s *Service) serveWS(c *gin.Context) {
	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		s.appCtx.Logger.Warn("websocket upgrade failed", "user_id", userID, "err", err)
		return
	}

	client := realtime.NewClient(userID, conn, s.appCtx.Registry, s.appCtx.Logger)
	client.Run()
}
