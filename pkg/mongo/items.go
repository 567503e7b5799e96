package mongo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kunal8987/Astrape-assignment/pkg/global"
	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

const itemsCollection = "items"

// updatableItemFields maps JSON field names accepted by the update endpoint
// to their BSON counterparts. Fields not listed here (id, createdAt) are immutable.
var updatableItemFields = map[string]string{
	"name":        "name",
	"description": "description",
	"price":       "price",
	"category":    "category",
	"imageUrl":    "image_url",
}

// BuildItemQuery translates listing filters into a MongoDB query document.
// Category is an exact match, name a case-insensitive substring match, and
// the price bounds are inclusive and independently optional.
func BuildItemQuery(filter models.ItemFilter) bson.M {
	query := bson.M{}

	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Name != "" {
		query["name"] = bson.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}

	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return query
}

// NormalizeItemUpdates filters a raw update payload down to the mutable
// fields, translated to BSON names. Immutable and unknown fields are
// dropped; a value of the wrong JSON type is a validation error, since a
// $set of a mistyped value would poison every later decode of the item.
func NormalizeItemUpdates(updates map[string]interface{}) (bson.M, []global.ValidationError) {
	normalized := bson.M{}
	var invalid []global.ValidationError

	for field, value := range updates {
		bsonField, ok := updatableItemFields[field]
		if !ok {
			continue
		}

		switch field {
		case "price":
			number, ok := value.(float64)
			if !ok {
				invalid = append(invalid, global.ValidationError{
					Field: field, Message: "Must be a number", Code: "invalid_type",
				})
				continue
			}
			normalized[bsonField] = number
		default:
			text, ok := value.(string)
			if !ok {
				invalid = append(invalid, global.ValidationError{
					Field: field, Message: "Must be a string", Code: "invalid_type",
				})
				continue
			}
			normalized[bsonField] = text
		}
	}
	return normalized, invalid
}

func CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	collection := GetCollection(itemsCollection)

	if _, err := collection.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func GetItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	collection := GetCollection(itemsCollection)

	cursor, err := collection.Find(ctx, BuildItemQuery(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func GetItemByID(ctx context.Context, id bson.ObjectID) (*models.Item, error) {
	collection := GetCollection(itemsCollection)

	var item models.Item
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// itemUpdateOptions configures item updates to return the post-update
// document and, by leaving Upsert unset, to never create a record for an
// unknown id.
func itemUpdateOptions() *options.FindOneAndUpdateOptionsBuilder {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// UpdateItemByID applies a partial field update and returns the post-update record.
// Returns mongo.ErrNoDocuments when no item has the given id; never creates one.
func UpdateItemByID(ctx context.Context, id bson.ObjectID, updates bson.M) (*models.Item, error) {
	collection := GetCollection(itemsCollection)

	var item models.Item
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, itemUpdateOptions()).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItemByID removes an item and returns the deleted record so callers
// can clean up derived state such as the cache.
func DeleteItemByID(ctx context.Context, id bson.ObjectID) (*models.Item, error) {
	collection := GetCollection(itemsCollection)

	var item models.Item
	if err := collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}
