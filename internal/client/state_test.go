package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStorage) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	delete(s.values, key)
	return nil
}

func testItem(name string) models.Item {
	return models.Item{
		ID:    bson.NewObjectID(),
		Name:  name,
		Price: 9.99,
	}
}

func TestReduceAddToCart_MergesQuantities(t *testing.T) {
	book := testItem("Book")

	state := State{Cart: []CartLine{}}
	state = reduceAddToCart(state, book, 2)
	state = reduceAddToCart(state, book, 3)

	require.Len(t, state.Cart, 1)
	assert.Equal(t, 5, state.Cart[0].Quantity)
	assert.Equal(t, book.ID, state.Cart[0].Item.ID)
}

func TestReduceAddToCart_DefaultsToOne(t *testing.T) {
	state := reduceAddToCart(State{}, testItem("Pen"), 0)

	require.Len(t, state.Cart, 1)
	assert.Equal(t, 1, state.Cart[0].Quantity)
}

func TestReduceAddToCart_DoesNotMutateInput(t *testing.T) {
	book := testItem("Book")
	original := State{Cart: []CartLine{{Item: book, Quantity: 1}}}

	next := reduceAddToCart(original, book, 1)

	assert.Equal(t, 1, original.Cart[0].Quantity)
	assert.Equal(t, 2, next.Cart[0].Quantity)
}

func TestReduceRemoveFromCart_AbsentIDIsNoop(t *testing.T) {
	book := testItem("Book")
	state := State{Cart: []CartLine{{Item: book, Quantity: 2}}}

	next := reduceRemoveFromCart(state, bson.NewObjectID().Hex())

	assert.Equal(t, state.Cart, next.Cart)
}

func TestReduceRemoveFromCart_RemovesLine(t *testing.T) {
	book := testItem("Book")
	pen := testItem("Pen")
	state := State{Cart: []CartLine{{Item: book, Quantity: 2}, {Item: pen, Quantity: 1}}}

	next := reduceRemoveFromCart(state, book.ID.Hex())

	require.Len(t, next.Cart, 1)
	assert.Equal(t, pen.ID, next.Cart[0].Item.ID)
}

func TestReduceSetQuantity(t *testing.T) {
	book := testItem("Book")
	state := State{Cart: []CartLine{{Item: book, Quantity: 2}}}

	next := reduceSetQuantity(state, book.ID.Hex(), 7)
	assert.Equal(t, 7, next.Cart[0].Quantity)

	// quantities below 1 are rejected, matching the original UI guard
	next = reduceSetQuantity(next, book.ID.Hex(), 0)
	assert.Equal(t, 7, next.Cart[0].Quantity)
}

func TestReduceLogout_KeepsCartMirror(t *testing.T) {
	book := testItem("Book")
	state := State{
		Token: "some-token",
		Page:  PageCart,
		Cart:  []CartLine{{Item: book, Quantity: 2}},
	}

	next := reduceLogout(state)

	assert.Empty(t, next.Token)
	assert.Equal(t, PageAuth, next.Page)
	require.Len(t, next.Cart, 1)
	assert.Equal(t, 2, next.Cart[0].Quantity)
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	storage := NewMemoryStorage()
	book := testItem("Book")

	store := NewStore(storage)
	store.Login("session-token")
	store.AddToCart(book, 2)

	// Simulate a reload: a fresh store over the same storage.
	reloaded := NewStore(storage)
	state := reloaded.State()

	assert.Equal(t, "session-token", state.Token)
	assert.Equal(t, PageListing, state.Page)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, book.ID, state.Cart[0].Item.ID)
	assert.Equal(t, 2, state.Cart[0].Quantity)
}

func TestStore_LogoutClearsTokenKeepsCart(t *testing.T) {
	storage := NewMemoryStorage()

	store := NewStore(storage)
	store.Login("session-token")
	store.AddToCart(testItem("Book"), 1)
	store.Logout()

	_, hasToken := storage.Get(storageKeyToken)
	assert.False(t, hasToken, "token must be cleared from storage on logout")

	reloaded := NewStore(storage)
	assert.Empty(t, reloaded.State().Token)
	assert.Len(t, reloaded.State().Cart, 1, "cart mirror survives logout")
}

func TestStore_FileStorageRoundTrip(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	store := NewStore(storage)
	store.AddToCart(testItem("Book"), 3)

	reloaded := NewStore(storage)
	require.Len(t, reloaded.State().Cart, 1)
	assert.Equal(t, 3, reloaded.State().Cart[0].Quantity)
}
