package client

import (
	"encoding/json"
	"log"

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

type Page string

const (
	PageAuth    Page = "auth"
	PageListing Page = "listing"
	PageCart    Page = "cart"
)

const (
	storageKeyToken = "token"
	storageKeyCart  = "cart"
)

// Filters holds the listing filters as entered; the search box is sent to
// the server as the `name` query parameter.
type Filters struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
}

// CartLine is one line of the local cart mirror: a full item snapshot plus
// a quantity, persisted independently of the server-side cart.
type CartLine struct {
	Item     models.Item `json:"item"`
	Quantity int         `json:"quantity"`
}

// State is the whole client view state. Transitions go through the pure
// reduce* functions so they can be tested without storage or network.
type State struct {
	Token    string
	Page     Page
	Filters  Filters
	Cart     []CartLine
	Products []models.Item
}

func reduceLogin(s State, token string) State {
	s.Token = token
	s.Page = PageListing
	return s
}

// reduceLogout clears the session but leaves the cart mirror untouched, so
// the cart survives logout and the next reload.
func reduceLogout(s State) State {
	s.Token = ""
	s.Page = PageAuth
	return s
}

func reduceSetPage(s State, page Page) State {
	s.Page = page
	return s
}

func reduceSetFilters(s State, filters Filters) State {
	s.Filters = filters
	return s
}

func reduceSetProducts(s State, products []models.Item) State {
	s.Products = products
	return s
}

// reduceAddToCart merges an item into the mirror: an existing line gets its
// quantity incremented, otherwise a new line is appended.
func reduceAddToCart(s State, item models.Item, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}
	cart := make([]CartLine, len(s.Cart))
	copy(cart, s.Cart)

	for i := range cart {
		if cart[i].Item.ID == item.ID {
			cart[i].Quantity += quantity
			s.Cart = cart
			return s
		}
	}
	s.Cart = append(cart, CartLine{Item: item, Quantity: quantity})
	return s
}

// reduceRemoveFromCart filters the line out; removing an id that is not in
// the mirror leaves the state unchanged.
func reduceRemoveFromCart(s State, itemID string) State {
	cart := make([]CartLine, 0, len(s.Cart))
	for _, line := range s.Cart {
		if line.Item.ID.Hex() != itemID {
			cart = append(cart, line)
		}
	}
	s.Cart = cart
	return s
}

func reduceSetQuantity(s State, itemID string, quantity int) State {
	if quantity < 1 {
		return s
	}
	cart := make([]CartLine, len(s.Cart))
	copy(cart, s.Cart)
	for i := range cart {
		if cart[i].Item.ID.Hex() == itemID {
			cart[i].Quantity = quantity
		}
	}
	s.Cart = cart
	return s
}

func reduceSetCart(s State, cart []CartLine) State {
	s.Cart = cart
	return s
}

// Store wraps the state with durable persistence: every transition writes
// the token and the cart mirror back to storage.
type Store struct {
	state   State
	storage Storage
}

func NewStore(storage Storage) *Store {
	state := State{Page: PageAuth, Cart: []CartLine{}}

	if token, ok := storage.Get(storageKeyToken); ok && token != "" {
		state.Token = token
		state.Page = PageListing
	}
	if raw, ok := storage.Get(storageKeyCart); ok {
		var cart []CartLine
		if err := json.Unmarshal([]byte(raw), &cart); err == nil {
			state.Cart = cart
		}
	}

	return &Store{state: state, storage: storage}
}

func (s *Store) State() State {
	return s.state
}

func (s *Store) LoggedIn() bool {
	return s.state.Token != ""
}

func (s *Store) Login(token string) {
	s.apply(reduceLogin(s.state, token))
}

func (s *Store) Logout() {
	s.apply(reduceLogout(s.state))
}

func (s *Store) SetPage(page Page) {
	s.apply(reduceSetPage(s.state, page))
}

func (s *Store) SetFilters(filters Filters) {
	s.apply(reduceSetFilters(s.state, filters))
}

func (s *Store) SetProducts(products []models.Item) {
	s.apply(reduceSetProducts(s.state, products))
}

func (s *Store) AddToCart(item models.Item, quantity int) {
	s.apply(reduceAddToCart(s.state, item, quantity))
}

func (s *Store) RemoveFromCart(itemID string) {
	s.apply(reduceRemoveFromCart(s.state, itemID))
}

func (s *Store) SetQuantity(itemID string, quantity int) {
	s.apply(reduceSetQuantity(s.state, itemID, quantity))
}

func (s *Store) SetCart(cart []CartLine) {
	s.apply(reduceSetCart(s.state, cart))
}

func (s *Store) apply(next State) {
	s.state = next
	s.persist()
}

func (s *Store) persist() {
	if s.state.Token != "" {
		if err := s.storage.Set(storageKeyToken, s.state.Token); err != nil {
			log.Printf("Warning: failed to persist token: %v", err)
		}
	} else {
		if err := s.storage.Delete(storageKeyToken); err != nil {
			log.Printf("Warning: failed to clear token: %v", err)
		}
	}

	raw, err := json.Marshal(s.state.Cart)
	if err != nil {
		log.Printf("Warning: failed to encode cart: %v", err)
		return
	}
	if err := s.storage.Set(storageKeyCart, string(raw)); err != nil {
		log.Printf("Warning: failed to persist cart: %v", err)
	}
}
