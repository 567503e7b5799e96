package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kunal8987/Astrape-assignment/pkg/auth"
	"github.com/kunal8987/Astrape-assignment/pkg/global"
)

const contextUserIDKey = "userID"

// AuthRequired guards protected routes: it extracts the bearer token,
// verifies signature and expiry, and puts the resolved user id on the
// request context. The handler never runs on a failed check.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Missing Authorization header", nil))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Invalid Authorization header format", nil))
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			return
		}

		userID, err := bson.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the user id resolved by AuthRequired.
func CurrentUserID(c *gin.Context) (bson.ObjectID, bool) {
	value, exists := c.Get(contextUserIDKey)
	if !exists {
		return bson.ObjectID{}, false
	}
	userID, ok := value.(bson.ObjectID)
	return userID, ok
}
