package account

import (
	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/app"
)

// Registrar ties the account service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the account service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the account and profile routes to the engine
func (r *Registrar) Register(e *gin.Engine) {
	s := NewService(r.appCtx)
	e.GET("/health", s.health)
	e.POST("/users/new", s.createUser)
	e.POST("/login", s.login)
	e.POST("/users/delete", s.deleteUser)
	e.GET("/profiles/:user_id", s.getProfile)
	e.PUT("/profiles/:user_id", s.putProfile)
}
