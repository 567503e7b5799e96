package mongo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

type recordedUpdate struct {
	filter bson.M
	update bson.M
}

// scriptedUpdater returns the given matched counts one call at a time and
// records every filter/update pair it was asked to apply.
func scriptedUpdater(matches []int64, calls *[]recordedUpdate) cartUpdateFunc {
	i := 0
	return func(ctx context.Context, filter, update bson.M) (int64, error) {
		*calls = append(*calls, recordedUpdate{filter: filter, update: update})
		matched := matches[i]
		i++
		return matched, nil
	}
}

func TestMergeCartEntry_ExistingEntryIncrements(t *testing.T) {
	userID := bson.NewObjectID()
	itemID := bson.NewObjectID()

	var calls []recordedUpdate
	err := mergeCartEntry(context.Background(), scriptedUpdater([]int64{1}, &calls), userID, itemID, 3)

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, bson.M{"_id": userID, "cart.item_id": itemID}, calls[0].filter)
	assert.Equal(t, bson.M{"$inc": bson.M{"cart.$.quantity": 3}}, calls[0].update)
}

func TestMergeCartEntry_NewEntryPushes(t *testing.T) {
	userID := bson.NewObjectID()
	itemID := bson.NewObjectID()

	var calls []recordedUpdate
	err := mergeCartEntry(context.Background(), scriptedUpdater([]int64{0, 1}, &calls), userID, itemID, 2)

	require.NoError(t, err)
	require.Len(t, calls, 2)

	// The push is guarded against a concurrently created entry.
	assert.Equal(t, bson.M{"_id": userID, "cart.item_id": bson.M{"$ne": itemID}}, calls[1].filter)
	assert.Equal(t, bson.M{
		"$push": bson.M{"cart": models.CartEntry{ItemID: itemID, Quantity: 2}},
	}, calls[1].update)
}

// A concurrent add can push the entry between the $inc and the guarded
// $push, leaving both with zero matches. The merge must then retry the
// $inc branch rather than drop the quantity.
func TestMergeCartEntry_RetriesAfterConcurrentPush(t *testing.T) {
	userID := bson.NewObjectID()
	itemID := bson.NewObjectID()

	var calls []recordedUpdate
	err := mergeCartEntry(context.Background(), scriptedUpdater([]int64{0, 0, 1}, &calls), userID, itemID, 2)

	require.NoError(t, err)
	require.Len(t, calls, 3)
	assert.Equal(t, bson.M{"_id": userID, "cart.item_id": itemID}, calls[2].filter)
	assert.Equal(t, bson.M{"$inc": bson.M{"cart.$.quantity": 2}}, calls[2].update)
}

func TestMergeCartEntry_GivesUpWhenNothingMatches(t *testing.T) {
	userID := bson.NewObjectID()
	itemID := bson.NewObjectID()

	matches := make([]int64, 2*maxCartMergeAttempts)
	var calls []recordedUpdate
	err := mergeCartEntry(context.Background(), scriptedUpdater(matches, &calls), userID, itemID, 1)

	assert.ErrorIs(t, err, errCartMergeFailed)
	assert.Len(t, calls, 2*maxCartMergeAttempts)
}

func TestMergeCartEntry_PropagatesUpdateError(t *testing.T) {
	userID := bson.NewObjectID()
	itemID := bson.NewObjectID()
	boom := errors.New("connection reset")

	update := func(ctx context.Context, filter, update bson.M) (int64, error) {
		return 0, boom
	}

	err := mergeCartEntry(context.Background(), update, userID, itemID, 1)
	assert.ErrorIs(t, err, boom)
}
