package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/config"
)

// NewEngine builds the gin engine and registers all provided services.
// Split from StartHTTPServer so tests can mount the full route table on
// an httptest server.
func NewEngine(cfg *config.Config, registrars ...Registrar) *gin.Engine {
	if cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	for _, r := range registrars {
		r.Register(engine)
	}
	return engine
}

// StartHTTPServer boots the HTTP server with all provided services.
// The timeouts cover plain HTTP requests; WebSocket sessions manage
// their own deadlines after the upgrade hijacks the connection.
func StartHTTPServer(cfg *config.Config, registrars ...Registrar) error {
	srv := &http.Server{
		Addr:           cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler:        NewEngine(cfg, registrars...),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	return srv.ListenAndServe()
}
