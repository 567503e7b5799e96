package router

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kunal8987/Astrape-assignment/pkg/global"
	"github.com/kunal8987/Astrape-assignment/pkg/models"
	mongodb "github.com/kunal8987/Astrape-assignment/pkg/mongo"
	"github.com/kunal8987/Astrape-assignment/pkg/redis"
)

func CreateItem(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	item, err := mongodb.CreateItem(c.Request.Context(), req.ToItem())
	if err != nil {
		log.Printf("Error creating item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create item", nil))
		return
	}

	if cacheErr := redis.CacheItem(c.Request.Context(), item); cacheErr != nil {
		log.Printf("Warning: %v", cacheErr)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(item))
}

// ListItems returns all items matching the optional category, name and
// price-bound filters, unbounded and in store order.
func ListItems(c *gin.Context) {
	filter := models.ItemFilter{
		Category: c.Query("category"),
		Name:     c.Query("name"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid price filter", []global.ValidationError{
				{Field: "minPrice", Message: "Must be a number", Code: "invalid_format"},
			}))
			return
		}
		filter.MinPrice = &value
	}
	if raw := c.Query("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid price filter", []global.ValidationError{
				{Field: "maxPrice", Message: "Must be a number", Code: "invalid_format"},
			}))
			return
		}
		filter.MaxPrice = &value
	}

	items, err := mongodb.GetItems(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error listing items: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get items", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(items))
}

// GetItem retrieves a single item by id with Redis read-through caching
func GetItem(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid item ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	if item, cacheErr := redis.GetItemFromCache(ctx, id.Hex()); cacheErr == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(item))
		return
	}

	item, err := mongodb.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found", []global.ValidationError{
				{Field: "id", Message: "No item exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch item", nil))
		return
	}

	if cacheErr := redis.CacheItem(ctx, item); cacheErr != nil {
		log.Printf("Warning: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(item))
}

// UpdateItem applies a partial field update. Immutable fields in the payload
// are stripped rather than rejected.
func UpdateItem(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid item ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	normalized, invalid := mongodb.NormalizeItemUpdates(updates)
	if len(invalid) > 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid field types", invalid))
		return
	}
	if len(normalized) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No valid updates provided", []global.ValidationError{
			{Field: "body", Message: "Request body must contain at least one updatable field", Code: "empty_updates"},
		}))
		return
	}

	ctx := c.Request.Context()

	item, err := mongodb.UpdateItemByID(ctx, id, normalized)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found", []global.ValidationError{
				{Field: "id", Message: "No item exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error updating item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update item", nil))
		return
	}

	if cacheErr := redis.CacheItem(ctx, item); cacheErr != nil {
		log.Printf("Warning: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(item))
}

func DeleteItem(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid item ID format", []global.ValidationError{
			{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	item, err := mongodb.DeleteItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found", []global.ValidationError{
				{Field: "id", Message: "No item exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error deleting item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete item", nil))
		return
	}

	if cacheErr := redis.RemoveItemFromCache(ctx, id.Hex()); cacheErr != nil {
		log.Printf("Warning: %v", cacheErr)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"message":     "Item deleted",
		"deletedItem": item,
	}))
}
