package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

// App is the interactive shop client: an auth view, a listing view with
// filters, and a cart view. The server cart is authoritative once logged
// in; while logged out mutations go to the local mirror only.
type App struct {
	store *Store
	api   *APIClient

	in  *bufio.Scanner
	out io.Writer
}

func NewApp(store *Store, api *APIClient, in io.Reader, out io.Writer) *App {
	api.Token = store.State().Token
	return &App{
		store: store,
		api:   api,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.notify("Welcome to E-Shop")

	for {
		var done bool
		var err error

		switch a.store.State().Page {
		case PageAuth:
			done, err = a.authView(ctx)
		case PageListing:
			done, err = a.listingView(ctx)
		case PageCart:
			done, err = a.cartView(ctx)
		default:
			a.store.SetPage(PageAuth)
		}

		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (a *App) notify(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) prompt(label string) (string, bool) {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) authView(ctx context.Context) (bool, error) {
	a.notify("\n[auth] commands: login, signup, browse, quit")
	cmd, ok := a.prompt(">")
	if !ok {
		return true, nil
	}

	switch cmd {
	case "login", "signup":
		username, ok := a.prompt("username")
		if !ok {
			return true, nil
		}
		password, ok := a.prompt("password")
		if !ok {
			return true, nil
		}

		var token string
		var err error
		if cmd == "signup" {
			confirm, ok := a.prompt("confirm password")
			if !ok {
				return true, nil
			}
			if confirm != password {
				a.notify("Passwords do not match")
				return false, nil
			}
			token, err = a.api.Signup(ctx, username, password)
		} else {
			token, err = a.api.Login(ctx, username, password)
		}
		if err != nil {
			a.notify("Auth failed: " + err.Error())
			return false, nil
		}

		a.store.Login(token)
		a.notify("Logged in successfully")
		a.syncCart(ctx)
	case "browse":
		a.store.SetPage(PageListing)
	case "quit":
		return true, nil
	default:
		a.notify("Unknown command")
	}
	return false, nil
}

// syncCart pushes the local mirror to the server entry by entry, then
// adopts the server cart as the source of truth.
func (a *App) syncCart(ctx context.Context) {
	for _, line := range a.store.State().Cart {
		if _, err := a.api.AddToCart(ctx, line.Item.ID.Hex(), line.Quantity); err != nil {
			a.notify("Could not sync cart entry: " + err.Error())
		}
	}

	cart, err := a.api.GetCart(ctx)
	if err != nil {
		a.notify("Could not fetch server cart: " + err.Error())
		return
	}
	a.store.SetCart(resolvedToLines(cart))
}

func resolvedToLines(cart []models.ResolvedCartEntry) []CartLine {
	lines := make([]CartLine, 0, len(cart))
	for _, entry := range cart {
		lines = append(lines, CartLine{Item: entry.Item, Quantity: entry.Quantity})
	}
	return lines
}

func (a *App) refreshProducts(ctx context.Context) {
	items, err := a.api.ListItems(ctx, a.store.State().Filters)
	if err != nil {
		a.notify("Error loading products: " + err.Error())
		return
	}
	a.store.SetProducts(items)
}

func (a *App) listingView(ctx context.Context) (bool, error) {
	a.refreshProducts(ctx)

	state := a.store.State()
	a.notify("\n[products]")
	for i, item := range state.Products {
		fmt.Fprintf(a.out, "%2d. %-30s $%.2f  %s\n", i+1, item.Name, item.Price, item.Category)
	}
	a.notify("commands: add <n>, filter, cart, logout, quit")

	cmd, ok := a.prompt(">")
	if !ok {
		return true, nil
	}

	switch {
	case strings.HasPrefix(cmd, "add "):
		index, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, "add ")))
		if err != nil || index < 1 || index > len(state.Products) {
			a.notify("Unknown product number")
			return false, nil
		}
		a.addToCart(ctx, state.Products[index-1])
	case cmd == "filter":
		a.editFilters()
	case cmd == "cart":
		a.store.SetPage(PageCart)
	case cmd == "logout":
		a.logout()
	case cmd == "quit":
		return true, nil
	default:
		a.notify("Unknown command")
	}
	return false, nil
}

func (a *App) editFilters() {
	filters := a.store.State().Filters
	if v, ok := a.prompt("search"); ok {
		filters.Search = v
	}
	if v, ok := a.prompt("category"); ok {
		filters.Category = v
	}
	if v, ok := a.prompt("min price"); ok {
		filters.MinPrice = v
	}
	if v, ok := a.prompt("max price"); ok {
		filters.MaxPrice = v
	}
	a.store.SetFilters(filters)
}

func (a *App) addToCart(ctx context.Context, item models.Item) {
	if a.store.LoggedIn() {
		cart, err := a.api.AddToCart(ctx, item.ID.Hex(), 1)
		if err != nil {
			a.notify("Could not add to cart: " + err.Error())
			return
		}
		a.store.SetCart(resolvedToLines(cart))
	} else {
		a.store.AddToCart(item, 1)
	}
	a.notify(fmt.Sprintf("Added %q to cart", item.Name))
}

func (a *App) removeFromCart(ctx context.Context, itemID string) {
	if a.store.LoggedIn() {
		cart, err := a.api.RemoveFromCart(ctx, itemID)
		if err != nil {
			a.notify("Could not remove from cart: " + err.Error())
			return
		}
		a.store.SetCart(resolvedToLines(cart))
		return
	}
	a.store.RemoveFromCart(itemID)
}

func (a *App) logout() {
	a.store.Logout()
	a.api.Token = ""
	a.notify("Logged out")
}

func (a *App) cartView(ctx context.Context) (bool, error) {
	state := a.store.State()
	a.notify("\n[cart]")

	total := 0.0
	for i, line := range state.Cart {
		subtotal := line.Item.Price * float64(line.Quantity)
		total += subtotal
		fmt.Fprintf(a.out, "%2d. %-30s x%d  $%.2f\n", i+1, line.Item.Name, line.Quantity, subtotal)
	}
	fmt.Fprintf(a.out, "total: $%.2f\n", total)
	a.notify("commands: remove <n>, qty <n> <quantity>, checkout, back, quit")

	cmd, ok := a.prompt(">")
	if !ok {
		return true, nil
	}

	switch {
	case strings.HasPrefix(cmd, "remove "):
		index, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, "remove ")))
		if err != nil || index < 1 || index > len(state.Cart) {
			a.notify("Unknown cart line")
			return false, nil
		}
		a.removeFromCart(ctx, state.Cart[index-1].Item.ID.Hex())
	case strings.HasPrefix(cmd, "qty "):
		fields := strings.Fields(cmd)
		if len(fields) != 3 {
			a.notify("Usage: qty <n> <quantity>")
			return false, nil
		}
		index, err1 := strconv.Atoi(fields[1])
		quantity, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || index < 1 || index > len(state.Cart) {
			a.notify("Unknown cart line")
			return false, nil
		}
		// Quantity edits stay local; the API has no set-quantity operation.
		a.store.SetQuantity(state.Cart[index-1].Item.ID.Hex(), quantity)
	case cmd == "checkout":
		a.notify("Checkout is not implemented yet.")
	case cmd == "back":
		a.store.SetPage(PageListing)
	case cmd == "quit":
		return true, nil
	default:
		a.notify("Unknown command")
	}
	return false, nil
}
