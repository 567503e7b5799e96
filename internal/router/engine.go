package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var Router *gin.Engine

func InitEngine() {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	Router = gin.Default()

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes() {
	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", Signup)
			authRoutes.POST("/login", Login)
		}

		items := api.Group("/items")
		{
			items.GET("", ListItems)
			items.GET("/:id", GetItem)
			items.POST("", AuthRequired(), CreateItem)
			items.PUT("/:id", AuthRequired(), UpdateItem)
			items.DELETE("/:id", AuthRequired(), DeleteItem)
		}

		cart := api.Group("/cart")
		cart.Use(AuthRequired())
		{
			cart.GET("", GetCart)
			cart.POST("/add", AddToCart)
			cart.POST("/remove", RemoveFromCart)
		}
	}
}
