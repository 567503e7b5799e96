package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kunal8987/Astrape-assignment/pkg/global"
	"github.com/kunal8987/Astrape-assignment/pkg/models"
	mongodb "github.com/kunal8987/Astrape-assignment/pkg/mongo"
)

func GetCart(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", nil))
		return
	}

	cart, err := mongodb.GetResolvedCart(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid session", nil))
			return
		}
		log.Printf("Error fetching cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

// AddToCart merges an item into the authenticated user's cart. Adding an
// item already in the cart increments its quantity; the quantity defaults
// to 1 when omitted.
func AddToCart(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", nil))
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Item ID required", []global.ValidationError{
			{Field: "itemId", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid quantity", []global.ValidationError{
			{Field: "quantity", Message: "Quantity must be a positive integer", Code: "invalid_value"},
		}))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	itemID, err := bson.ObjectIDFromHex(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid item ID format", []global.ValidationError{
			{Field: "itemId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	if _, err := mongodb.GetItemByID(ctx, itemID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found", []global.ValidationError{
				{Field: "itemId", Message: "No item exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add to cart", nil))
		return
	}

	if err := mongodb.AddCartItem(ctx, userID, itemID, req.Quantity); err != nil {
		log.Printf("Error adding to cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add to cart", nil))
		return
	}

	cart, err := mongodb.GetResolvedCart(ctx, userID)
	if err != nil {
		log.Printf("Error fetching cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

// RemoveFromCart filters the entry out of the cart. Removing an item that
// is not in the cart is a no-op, not an error.
func RemoveFromCart(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", nil))
		return
	}

	var req models.RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Item ID required", []global.ValidationError{
			{Field: "itemId", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	itemID, err := bson.ObjectIDFromHex(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid item ID format", []global.ValidationError{
			{Field: "itemId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	if err := mongodb.RemoveCartItem(ctx, userID, itemID); err != nil {
		log.Printf("Error removing from cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to remove from cart", nil))
		return
	}

	cart, err := mongodb.GetResolvedCart(ctx, userID)
	if err != nil {
		log.Printf("Error fetching cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}
