package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/kunal8987/Astrape-assignment/pkg/auth"
	"github.com/kunal8987/Astrape-assignment/pkg/global"
	"github.com/kunal8987/Astrape-assignment/pkg/models"
	mongodb "github.com/kunal8987/Astrape-assignment/pkg/mongo"
)

func Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password", nil))
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Cart:     []models.CartEntry{},
	}
	user.SetTimestamps()

	created, err := mongodb.CreateUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, mongodb.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Username already registered", []global.ValidationError{
				{Field: "username", Message: "This username is already in use", Code: "duplicate_username"},
			}))
			return
		}
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create user", nil))
		return
	}

	token, err := auth.IssueToken(created.ID.Hex())
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to issue token", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(gin.H{"token": token}))
}

func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	user, err := mongodb.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid username or password", nil))
			return
		}
		log.Printf("Error fetching user: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to log in", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid username or password", nil))
		return
	}

	token, err := auth.IssueToken(user.ID.Hex())
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to issue token", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"token": token}))
}
