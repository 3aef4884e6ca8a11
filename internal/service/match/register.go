package match

import (
	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/app"
)

// Registrar ties the match service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the match service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the match ledger routes to the engine
func (r *Registrar) Register(e *gin.Engine) {
	s := NewService(r.appCtx)
	e.POST("/matches", s.createMatch)
	e.DELETE("/matches", s.deleteMatch)
	e.GET("/matches/:user_id", s.listMatches)
}
