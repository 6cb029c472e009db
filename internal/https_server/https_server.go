// Package https_server builds the gin engine with its middleware stack
// and mounted routes.
package https_server

import (
	"juntos_server/internal/handler"
	"juntos_server/internal/infrastructure/logger"
	"juntos_server/internal/infrastructure/middleware"
	"juntos_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init assembles the engine:
// 1. blank engine, no default middleware
// 2. zap request logging and panic recovery
// 3. CORS
// 4. business routes
func Init(handlers *handler.Handlers, roles middleware.RoleResolver, mode string) *gin.Engine {
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS redirection is left to the fronting proxy. Enable when the
	// server terminates TLS itself:
	// engine.Use(middleware.TlsHandler(conf.Host, conf.Port))

	rt := router.NewRouter(handlers, roles)
	rt.RegisterRoutes(engine)

	return engine
}
