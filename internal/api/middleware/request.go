// internal/api/middleware/request.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	HeaderRequestID = "X-Request-ID"
	chaveRequestID  = "request_id"
)

// RequestID reaproveita o X-Request-ID do cliente ou gera um novo.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(chaveRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDDe devolve o id da requisição, se RequestID rodou antes.
func RequestIDDe(c *gin.Context) string {
	return c.GetString(chaveRequestID)
}

// RequestLogger registra cada requisição com o nível pelo status: 5xx erro,
// 4xx aviso e o resto info.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		status := c.Writer.Status()
		nivel := zapcore.InfoLevel
		switch {
		case status >= 500:
			nivel = zapcore.ErrorLevel
		case status >= 400:
			nivel = zapcore.WarnLevel
		}

		campos := []zap.Field{
			zap.String("request_id", RequestIDDe(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duracao", time.Since(inicio)),
			zap.String("ip", c.ClientIP()),
		}
		if usuario, ok := UsuarioDe(c); ok {
			campos = append(campos, zap.String("usuario", usuario))
		}
		if len(c.Errors) > 0 {
			campos = append(campos, zap.String("erros", c.Errors.String()))
		}

		if ce := logger.Check(nivel, "requisição atendida"); ce != nil {
			ce.Write(campos...)
		}
	}
}

// CORS libera as origens configuradas; "*" libera todas.
func CORS(origens []string) gin.HandlerFunc {
	permitidas := make(map[string]bool, len(origens))
	todas := false
	for _, o := range origens {
		if o == "*" {
			todas = true
		}
		permitidas[o] = true
	}

	return func(c *gin.Context) {
		origem := c.GetHeader("Origin")
		switch {
		case todas:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case permitidas[origem]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origem)
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, "+HeaderRequestID)
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+HeaderRequestID)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
