package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

// GetResolvedCart returns the user's cart with item references expanded into
// full item records. Entries whose item has since been deleted are skipped.
func GetResolvedCart(ctx context.Context, userID bson.ObjectID) ([]models.ResolvedCartEntry, error) {
	user, err := GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved := []models.ResolvedCartEntry{}
	if len(user.Cart) == 0 {
		return resolved, nil
	}

	ids := make([]bson.ObjectID, 0, len(user.Cart))
	for _, entry := range user.Cart {
		ids = append(ids, entry.ItemID)
	}

	collection := GetCollection(itemsCollection)
	cursor, err := collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	byID := make(map[bson.ObjectID]models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, entry := range user.Cart {
		item, ok := byID[entry.ItemID]
		if !ok {
			continue
		}
		resolved = append(resolved, models.ResolvedCartEntry{Item: item, Quantity: entry.Quantity})
	}
	return resolved, nil
}

// cartUpdateFunc applies one update and reports how many documents matched.
type cartUpdateFunc func(ctx context.Context, filter, update bson.M) (int64, error)

// maxCartMergeAttempts bounds the merge retry loop; both branches missing
// repeatedly means the user document itself is gone.
const maxCartMergeAttempts = 4

var errCartMergeFailed = errors.New("failed to merge cart entry")

// AddCartItem merges an item into the user's cart atomically: an existing
// entry gets its quantity incremented in place, otherwise a new entry is
// pushed. The push is guarded by $ne so two concurrent adds for the same
// item cannot create duplicate entries.
func AddCartItem(ctx context.Context, userID, itemID bson.ObjectID, quantity int) error {
	collection := GetCollection(usersCollection)

	update := func(ctx context.Context, filter, update bson.M) (int64, error) {
		result, err := collection.UpdateOne(ctx, filter, update)
		if err != nil {
			return 0, err
		}
		return result.MatchedCount, nil
	}

	return mergeCartEntry(ctx, update, userID, itemID, quantity)
}

// mergeCartEntry retries until either the $inc or the guarded $push lands.
// When a concurrent add pushes the entry between the two updates, both
// branches match zero documents; dropping the quantity there would lose the
// update, so the loop goes back to the $inc branch.
func mergeCartEntry(ctx context.Context, update cartUpdateFunc, userID, itemID bson.ObjectID, quantity int) error {
	for attempt := 0; attempt < maxCartMergeAttempts; attempt++ {
		matched, err := update(ctx,
			bson.M{"_id": userID, "cart.item_id": itemID},
			bson.M{"$inc": bson.M{"cart.$.quantity": quantity}},
		)
		if err != nil {
			return err
		}
		if matched > 0 {
			return nil
		}

		matched, err = update(ctx,
			bson.M{"_id": userID, "cart.item_id": bson.M{"$ne": itemID}},
			bson.M{"$push": bson.M{"cart": models.CartEntry{ItemID: itemID, Quantity: quantity}}},
		)
		if err != nil {
			return err
		}
		if matched > 0 {
			return nil
		}
	}
	return errCartMergeFailed
}

// RemoveCartItem pulls the entry for the given item id. Removing an id that
// is not in the cart is a no-op, not an error.
func RemoveCartItem(ctx context.Context, userID, itemID bson.ObjectID) error {
	collection := GetCollection(usersCollection)

	_, err := collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"cart": bson.M{"item_id": itemID}}},
	)
	return err
}
