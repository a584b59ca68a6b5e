package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Brayzonn/shortlink/internal/tokens"
	"github.com/gin-gonic/gin"
)

// UserIDKey ключ контекста с идентификатором аутентифицированного пользователя.
const UserIDKey = "userID"

// unauthorizedMsg отдается при любой проблеме с токеном. Ответ намеренно
// уходит с кодом 200: клиент обязан проверять поле errMsg, а не статус.
const unauthorizedMsg = "Unauthorized Access."

// BearerAuthMiddleware проверяет JWT пользователя из заголовка Authorization
// и кладет его идентификатор в контекст запроса.
func BearerAuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, nil)
			return
		}

		// клиенты иногда присылают токен в кавычках
		authHeader = strings.ReplaceAll(authHeader, `"`, "")
		authHeader = strings.ReplaceAll(authHeader, "'", "")

		parts := strings.Fields(authHeader)
		if len(parts) == 0 {
			// заголовок состоял из одних кавычек
			abortUnauthorized(c, nil)
			return
		}
		tokenString := parts[len(parts)-1]

		claims, err := tokens.ValidateUserJWT(tokenString, jwtSecret)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(fmt.Errorf("bearer auth middleware: %w", err))
	}
	c.AbortWithStatusJSON(http.StatusOK, gin.H{"errMsg": unauthorizedMsg})
}
