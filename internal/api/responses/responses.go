// internal/api/responses/responses.go
package responses

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorBody é o corpo de toda resposta de erro da API.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// InitLogger instala o logger global do zap. formato "json" usa o encoder
// de produção; qualquer outro valor usa o console de desenvolvimento.
func InitLogger(nivel, formato string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(nivel)))
	if err != nil {
		return nil, fmt.Errorf("nível de log inválido %q: %w", nivel, err)
	}

	var cfg zap.Config
	if formato == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("erro ao criar logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// Error encerra a requisição com o status e a mensagem informados.
func Error(c *gin.Context, status int, message string, details ...string) {
	if status >= 500 {
		zap.L().Error(message,
			zap.Int("status", status),
			zap.Strings("details", details),
			zap.String("path", c.FullPath()),
		)
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: message, Details: details})
}
