package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kunal8987/Astrape-assignment/pkg/global"
	mongodb "github.com/kunal8987/Astrape-assignment/pkg/mongo"
)

func HealthCheck(c *gin.Context) {
	db := mongodb.GetDatabase()
	if err := db.Client().Ping(c.Request.Context(), nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}
