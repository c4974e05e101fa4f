package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	cartdomain "github.com/dwikikusuma/food-storefront/internal/cart/domain"
	"github.com/dwikikusuma/food-storefront/internal/convert"
	"github.com/go-chi/chi"
)

// listMenu serves one catalog page overlaid with the caller's cart. Listed
// items are fresher than the cart's snapshots, so they are merged in first.
func (s *server) listMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	page, err := queryInt(q.Get("page"))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	res, err := s.catalog.ListMenu(r.Context(), limit, page, q.Get("search"))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	cart := sessionFrom(r.Context()).Cart
	items := convert.MenusToCartItems(res.Items)
	cart.Reconcile(r.Context(), items)

	writeJSON(w, http.StatusOK, menuPageView{
		Items:      toListedViews(cart.Overlay(items)),
		Pagination: toPaginationView(res.Pagination),
	})
}

func (s *server) getMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	m, err := s.catalog.GetMenu(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	cart := sessionFrom(r.Context()).Cart
	items := []cartdomain.MenuItem{convert.MenuToCartItem(m)}
	cart.Reconcile(r.Context(), items)

	writeJSON(w, http.StatusOK, toListedViews(cart.Overlay(items))[0])
}

func (s *server) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartView(sessionFrom(r.Context()).Cart.CurrentCart()))
}

// addCartItem adds one unit of the posted item as the catalog currently
// lists it. A request the cart refuses, such as one past the item's stock,
// still answers 200 with the unchanged cart.
func (s *server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if body.ID <= 0 {
		writeErr(w, r, fmt.Errorf("%w: id must be positive", errBadRequest))
		return
	}

	m, err := s.catalog.GetMenu(r.Context(), body.ID)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	cart := sessionFrom(r.Context()).Cart
	item := convert.MenuToCartItem(m)
	// refresh the entry's stock first so the cap is the catalog's
	cart.Reconcile(r.Context(), []cartdomain.MenuItem{item})
	writeJSON(w, http.StatusOK, toCartView(cart.AddOne(r.Context(), item)))
}

func (s *server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	cart := sessionFrom(r.Context()).Cart.RemoveOne(r.Context(), cartdomain.MenuItem{ID: id})
	writeJSON(w, http.StatusOK, toCartView(cart))
}

func (s *server) clearCart(w http.ResponseWriter, r *http.Request) {
	cart := sessionFrom(r.Context()).Cart.Clear(r.Context())
	writeJSON(w, http.StatusOK, toCartView(cart))
}

func (s *server) quote(w http.ResponseWriter, r *http.Request) {
	cart := sessionFrom(r.Context()).Cart

	q, err := s.checkout.Quote(r.Context(), cart)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteView(q, cart.CurrentCart()))
}

func (s *server) placeOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	u, token, _ := sess.User()

	receipt, err := s.checkout.PlaceOrder(r.Context(), sess.Cart, token, u.ID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReceiptView(receipt))
}

func (s *server) listOrders(w http.ResponseWriter, r *http.Request) {
	u, token, _ := sessionFrom(r.Context()).User()

	orders, err := s.orders.ListOrders(r.Context(), token, u.ID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", errBadRequest)
	}
	return id, nil
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errBadRequest, v)
	}
	return n, nil
}
