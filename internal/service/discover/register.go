package discover

import (
	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/app"
)

// Registrar ties the discover service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the discover service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the queue and preference routes to the engine
func (r *Registrar) Register(e *gin.Engine) {
	s := NewService(r.appCtx)
	e.GET("/queue/:user_id", s.getQueue)
	e.GET("/preferences/:user_id", s.getPreferences)
	e.PUT("/preferences/:user_id", s.putPreferences)
	e.GET("/preference-options", s.getPreferenceOptions)
}
