package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/app"
)

// Registrar ties the chat service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the chat service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the messaging and realtime routes to the engine
func (r *Registrar) Register(e *gin.Engine) {
	s := NewService(r.appCtx)
	e.POST("/messages", s.postMessage)
	e.GET("/messages/:a/:b", s.getMessages)
	e.GET("/ws/:user_id", s.serveWS)
}
