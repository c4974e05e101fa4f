package app

import (
	"context"
	"errors"
	"fmt"

	cartdomain "github.com/dwikikusuma/food-storefront/internal/cart/domain"
	"github.com/dwikikusuma/food-storefront/internal/checkout/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrItemGone is returned by a CatalogReader for items the catalog no
	// longer has.
	ErrItemGone = errors.New("menu item no longer exists")
)

type Cart interface {
	CurrentCart() cartdomain.Cart
	Reconcile(ctx context.Context, fresh []cartdomain.MenuItem) cartdomain.Cart
	Clear(ctx context.Context) cartdomain.Cart
}

type CatalogReader interface {
	GetMenuItem(ctx context.Context, id int64) (cartdomain.MenuItem, error)
}

type OrderLine struct {
	MenuID   int64
	Quantity int64
}

type OrderWriter interface {
	PlaceOrder(ctx context.Context, token string, userID int64, lines []OrderLine) (domain.Receipt, error)
}

type Service struct {
	Catalog CatalogReader
	Orders  OrderWriter

	maxConcurrent int
}

func NewService(catalog CatalogReader, orders OrderWriter, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		Catalog:       catalog,
		Orders:        orders,
		maxConcurrent: maxConcurrent,
	}
}

// Quote refreshes every cart entry against the catalog, merges the fresh
// data into the cart and prices the result.
func (s *Service) Quote(ctx context.Context, cart Cart) (domain.Quote, error) {
	before := cart.CurrentCart()
	if before.IsEmpty() {
		return domain.Quote{}, ErrEmptyCart
	}

	after, err := s.refresh(ctx, cart, before)
	if err != nil {
		return domain.Quote{}, err
	}

	lines := make([]domain.QuoteLine, 0, len(after.Entries))
	var total int64
	for _, e := range after.Entries {
		lines = append(lines, domain.QuoteLine{
			MenuID:    e.ID,
			Name:      e.Name,
			Quantity:  e.PurchaseQuantity,
			UnitPrice: e.UnitPrice,
			LineTotal: e.LineTotal(),
		})
		total += e.LineTotal()
	}

	return domain.Quote{
		Lines:    lines,
		Total:    total,
		Adjusted: !after.Equal(before),
	}, nil
}

// refresh re-reads every entry of before from the catalog and reconciles the
// cart with it. Items the catalog no longer has leave the cart.
func (s *Service) refresh(ctx context.Context, cart Cart, before cartdomain.Cart) (cartdomain.Cart, error) {
	fresh := make([]cartdomain.MenuItem, len(before.Entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range before.Entries {
		g.Go(func() error {
			id := before.Entries[idx].ID
			item, err := s.Catalog.GetMenuItem(gctx, id)
			if errors.Is(err, ErrItemGone) {
				fresh[idx] = cartdomain.MenuItem{ID: id}
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get menu item %d: %w", id, err)
			}
			fresh[idx] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return cartdomain.Cart{}, err
	}
	return cart.Reconcile(ctx, fresh), nil
}

// PlaceOrder re-checks the cart against the catalog, sends it to the order
// API and clears the cart only once the order is accepted.
func (s *Service) PlaceOrder(ctx context.Context, cart Cart, token string, userID int64) (domain.Receipt, error) {
	before := cart.CurrentCart()
	if before.IsEmpty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	current, err := s.refresh(ctx, cart, before)
	if err != nil {
		return domain.Receipt{}, err
	}
	if current.IsEmpty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	lines := make([]OrderLine, 0, len(current.Entries))
	for _, e := range current.Entries {
		lines = append(lines, OrderLine{MenuID: e.ID, Quantity: e.PurchaseQuantity})
	}

	receipt, err := s.Orders.PlaceOrder(ctx, token, userID, lines)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("place order: %w", err)
	}
	if receipt.Total == 0 {
		receipt.Total = current.Subtotal()
	}

	cart.Clear(ctx)
	return receipt, nil
}
