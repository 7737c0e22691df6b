// internal/api/middleware/auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/LuisEduardoPedra/analisePonto/internal/api/responses"
)

const chaveClaims = "user_claims"

// AuthMiddleware verifica se o token JWT é válido.
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Error(c, http.StatusUnauthorized, "Token de autorização não fornecido")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			responses.Error(c, http.StatusUnauthorized, "Formato do token inválido")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		}, jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			responses.Error(c, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set(chaveClaims, claims)
		}

		c.Next()
	}
}

// UsuarioDe devolve o username do token validado por AuthMiddleware.
func UsuarioDe(c *gin.Context) (string, bool) {
	claims, ok := c.Get(chaveClaims)
	if !ok {
		return "", false
	}
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	usuario, ok := mapClaims["username"].(string)
	return usuario, ok
}

// PermissionMiddleware verifica se o usuário tem uma permissão específica.
func PermissionMiddleware(requiredPermission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get(chaveClaims)
		if !exists {
			responses.Error(c, http.StatusForbidden, "Claims do usuário não encontrados")
			return
		}

		mapClaims, ok := claims.(jwt.MapClaims)
		if !ok {
			responses.Error(c, http.StatusForbidden, "Claims do usuário não encontrados")
			return
		}
		roles, ok := mapClaims["roles"].([]interface{})
		if !ok {
			responses.Error(c, http.StatusForbidden, "Permissões não encontradas no token")
			return
		}

		for _, role := range roles {
			if roleStr, ok := role.(string); ok && roleStr == requiredPermission {
				c.Next()
				return
			}
		}

		responses.Error(c, http.StatusForbidden, "Acesso negado: permissão necessária ausente")
	}
}
