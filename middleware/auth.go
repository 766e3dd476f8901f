package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"labbook/models"
	"labbook/utils"
)

// AccountContextKey is the gin context key holding the resolved AccountContext.
const AccountContextKey = "account"

// JWTAuthMiddleware validates the bearer token and stores the resolved
// AccountContext on the request. Handlers pass that value explicitly into the
// booking services.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		accountID, email, err := utils.ParseAccountToken(tokenString)
		if err != nil || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(AccountContextKey, models.AccountContext{AccountID: accountID, Email: email})
		c.Next()
	}
}

// AccountFromContext retrieves the AccountContext set by JWTAuthMiddleware.
func AccountFromContext(c *gin.Context) (models.AccountContext, bool) {
	v, exists := c.Get(AccountContextKey)
	if !exists {
		return models.AccountContext{}, false
	}
	acct, ok := v.(models.AccountContext)
	return acct, ok
}
