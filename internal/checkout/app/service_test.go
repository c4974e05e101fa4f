package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	cartapp "github.com/dwikikusuma/food-storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/food-storefront/internal/cart/domain"
	"github.com/dwikikusuma/food-storefront/internal/cart/infra/memory"
	"github.com/dwikikusuma/food-storefront/internal/checkout/app"
	"github.com/dwikikusuma/food-storefront/internal/checkout/domain"
	"github.com/dwikikusuma/food-storefront/pkg/logger"
)

type fakeCatalog struct {
	items map[int64]cartdomain.MenuItem
	err   error
}

func (f fakeCatalog) GetMenuItem(ctx context.Context, id int64) (cartdomain.MenuItem, error) {
	if f.err != nil {
		return cartdomain.MenuItem{}, f.err
	}
	it, ok := f.items[id]
	if !ok {
		return cartdomain.MenuItem{}, app.ErrItemGone
	}
	return it, nil
}

type fakeOrders struct {
	mu    sync.Mutex
	lines []app.OrderLine
	err   error
}

func (f *fakeOrders) PlaceOrder(ctx context.Context, token string, userID int64, lines []app.OrderLine) (domain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Receipt{}, f.err
	}
	f.lines = lines
	return domain.Receipt{OrderID: 77, OrderNumber: "ORD-77"}, nil
}

func menuItem(id, price, stock int64) cartdomain.MenuItem {
	return cartdomain.MenuItem{ID: id, Name: "item", UnitPrice: price, AvailableQuantity: stock}
}

func newCart(t *testing.T, adds ...cartdomain.MenuItem) *cartapp.Manager {
	t.Helper()
	m := cartapp.NewManager(memory.NewSlots().Slot("s"), logger.Discard())
	for _, it := range adds {
		m.AddOne(context.Background(), it)
	}
	return m
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		svc := app.NewService(fakeCatalog{}, &fakeOrders{}, 0)
		if _, err := svc.Quote(ctx, newCart(t)); !errors.Is(err, app.ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("unchanged catalog", func(t *testing.T) {
		a, b := menuItem(1, 10000, 5), menuItem(2, 5000, 5)
		cart := newCart(t, a, a, b)
		svc := app.NewService(fakeCatalog{items: map[int64]cartdomain.MenuItem{1: a, 2: b}}, &fakeOrders{}, 2)

		q, err := svc.Quote(ctx, cart)
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		if q.Adjusted || q.Total != 25000 || len(q.Lines) != 2 {
			t.Fatalf("unexpected quote %+v", q)
		}
	})

	t.Run("price change and stock drop adjust the cart", func(t *testing.T) {
		a, b := menuItem(1, 10000, 5), menuItem(2, 5000, 5)
		cart := newCart(t, a, a, a, b)
		freshA := menuItem(1, 12000, 2)
		svc := app.NewService(fakeCatalog{items: map[int64]cartdomain.MenuItem{1: freshA}}, &fakeOrders{}, 0)

		q, err := svc.Quote(ctx, cart)
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		if !q.Adjusted {
			t.Fatal("expected Adjusted")
		}
		if len(q.Lines) != 1 || q.Lines[0].Quantity != 2 || q.Total != 24000 {
			t.Fatalf("unexpected quote %+v", q)
		}
		if _, _, ok := cart.CurrentCart().Find(2); ok {
			t.Fatal("vanished item should leave the cart")
		}
	})

	t.Run("catalog failure leaves the cart alone", func(t *testing.T) {
		cart := newCart(t, menuItem(1, 10000, 5))
		before := cart.CurrentCart()
		svc := app.NewService(fakeCatalog{err: errors.New("timeout")}, &fakeOrders{}, 0)

		if _, err := svc.Quote(ctx, cart); err == nil {
			t.Fatal("expected error")
		}
		if !cart.CurrentCart().Equal(before) {
			t.Fatal("cart changed on failed quote")
		}
	})
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		svc := app.NewService(fakeCatalog{}, &fakeOrders{}, 0)
		if _, err := svc.PlaceOrder(ctx, newCart(t), "tok", 1); !errors.Is(err, app.ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("success clears the cart", func(t *testing.T) {
		a, b := menuItem(1, 10000, 5), menuItem(2, 5000, 5)
		cart := newCart(t, a, a, b)
		orders := &fakeOrders{}
		svc := app.NewService(fakeCatalog{items: map[int64]cartdomain.MenuItem{1: a, 2: b}}, orders, 0)

		r, err := svc.PlaceOrder(ctx, cart, "tok", 1)
		if err != nil {
			t.Fatalf("PlaceOrder: %v", err)
		}
		if r.OrderID != 77 || r.Total != 25000 {
			t.Fatalf("unexpected receipt %+v", r)
		}
		if len(orders.lines) != 2 || orders.lines[0] != (app.OrderLine{MenuID: 1, Quantity: 2}) {
			t.Fatalf("unexpected lines %+v", orders.lines)
		}
		if !cart.CurrentCart().IsEmpty() {
			t.Fatal("cart should be cleared")
		}
	})

	t.Run("failure keeps the cart", func(t *testing.T) {
		a := menuItem(1, 10000, 5)
		cart := newCart(t, a)
		svc := app.NewService(fakeCatalog{items: map[int64]cartdomain.MenuItem{1: a}}, &fakeOrders{err: errors.New("rejected")}, 0)

		if _, err := svc.PlaceOrder(ctx, cart, "tok", 1); err == nil {
			t.Fatal("expected error")
		}
		if cart.CurrentCart().IsEmpty() {
			t.Fatal("cart should survive a failed order")
		}
	})

	t.Run("lines are clamped to catalog stock", func(t *testing.T) {
		a := menuItem(1, 10000, 5)
		cart := newCart(t, a, a, a, a)
		orders := &fakeOrders{}
		svc := app.NewService(fakeCatalog{items: map[int64]cartdomain.MenuItem{1: menuItem(1, 10000, 2)}}, orders, 0)

		r, err := svc.PlaceOrder(ctx, cart, "tok", 1)
		if err != nil {
			t.Fatalf("PlaceOrder: %v", err)
		}
		if len(orders.lines) != 1 || orders.lines[0].Quantity != 2 || r.Total != 20000 {
			t.Fatalf("unexpected order %+v, receipt %+v", orders.lines, r)
		}
	})

	t.Run("everything sold out -> empty cart", func(t *testing.T) {
		cart := newCart(t, menuItem(1, 10000, 5))
		orders := &fakeOrders{}
		svc := app.NewService(fakeCatalog{}, orders, 0)

		if _, err := svc.PlaceOrder(ctx, cart, "tok", 1); !errors.Is(err, app.ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
		if orders.lines != nil {
			t.Fatal("nothing should reach the order api")
		}
	})

	t.Run("catalog failure keeps the cart", func(t *testing.T) {
		cart := newCart(t, menuItem(1, 10000, 5))
		svc := app.NewService(fakeCatalog{err: errors.New("timeout")}, &fakeOrders{}, 0)

		if _, err := svc.PlaceOrder(ctx, cart, "tok", 1); err == nil {
			t.Fatal("expected error")
		}
		if cart.CurrentCart().IsEmpty() {
			t.Fatal("cart should survive a failed catalog read")
		}
	})
}
