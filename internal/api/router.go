// internal/api/router.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LuisEduardoPedra/analisePonto/internal/api/handlers"
	"github.com/LuisEduardoPedra/analisePonto/internal/api/middleware"
)

type RouterConfig struct {
	JWTSecret         []byte
	Permissao         string
	OrigensPermitidas []string
	Logger            *zap.Logger
}

// NewRouter monta as rotas públicas (/health, /api/v1/login) e as
// protegidas por token em /api/v1/blitz.
func NewRouter(cfg RouterConfig, authHandler *handlers.AuthHandler, blitzHandler *handlers.BlitzHandler) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.OrigensPermitidas),
	)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/login", authHandler.Login)

		protected := apiV1.Group("/blitz")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		if cfg.Permissao != "" {
			protected.Use(middleware.PermissionMiddleware(cfg.Permissao))
		}
		{
			protected.POST("/analisar", blitzHandler.HandleAnalisar)
			protected.POST("/paginas", blitzHandler.HandlePaginas)
			protected.POST("/exportar", blitzHandler.HandleExportar)
		}
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	return router
}
