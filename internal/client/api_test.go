package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunal8987/Astrape-assignment/pkg/global"
	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

func TestAPIClient_ListItems_SendsFilters(t *testing.T) {
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/items", r.URL.Path)
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(global.SuccessResponse([]models.Item{}))
	}))
	defer server.Close()

	api := NewAPIClient(server.URL)
	_, err := api.ListItems(context.Background(), Filters{
		Search:   "book",
		Category: "books",
		MinPrice: "5",
		MaxPrice: "10",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"book"}, gotQuery["name"])
	assert.Equal(t, []string{"books"}, gotQuery["category"])
	assert.Equal(t, []string{"5"}, gotQuery["minPrice"])
	assert.Equal(t, []string{"10"}, gotQuery["maxPrice"])
}

func TestAPIClient_ListItems_OmitsEmptyFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode(global.SuccessResponse([]models.Item{}))
	}))
	defer server.Close()

	api := NewAPIClient(server.URL)
	items, err := api.ListItems(context.Background(), Filters{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAPIClient_AddToCart_SendsTokenAndBody(t *testing.T) {
	item := testItem("Book")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cart/add", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		var req models.AddToCartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, item.ID.Hex(), req.ItemID)
		assert.Equal(t, 2, req.Quantity)

		json.NewEncoder(w).Encode(global.SuccessResponse([]models.ResolvedCartEntry{
			{Item: item, Quantity: 2},
		}))
	}))
	defer server.Close()

	api := NewAPIClient(server.URL)
	api.Token = "session-token"

	cart, err := api.AddToCart(context.Background(), item.ID.Hex(), 2)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, item.ID, cart[0].Item.ID)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestAPIClient_Login_StoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds["username"])

		json.NewEncoder(w).Encode(global.SuccessResponse(map[string]string{"token": "issued-token"}))
	}))
	defer server.Close()

	api := NewAPIClient(server.URL)
	token, err := api.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, "issued-token", api.Token)
}

func TestAPIClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(global.ErrorResponse("Invalid or expired token", nil))
	}))
	defer server.Close()

	api := NewAPIClient(server.URL)
	_, err := api.GetCart(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid or expired token", apiErr.Message)
}
