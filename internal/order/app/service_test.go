package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dwikikusuma/food-storefront/internal/order/domain"
)

type fakeAPI struct {
	created domain.CreateOrderRequest
	orders  []domain.Order
}

func (f *fakeAPI) Create(ctx context.Context, token string, req domain.CreateOrderRequest) (domain.Order, error) {
	f.created = req
	return domain.Order{ID: 1, UserID: req.UserID}, nil
}

func (f *fakeAPI) ListByUser(ctx context.Context, token string, userID int64) ([]domain.Order, error) {
	return f.orders, nil
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewService(&fakeAPI{})
	ctx := context.Background()

	cases := map[string]domain.CreateOrderRequest{
		"no user":        {Items: []domain.OrderItemRequest{{MenuID: 1, Quantity: 1}}},
		"no items":       {UserID: 1},
		"bad menu id":    {UserID: 1, Items: []domain.OrderItemRequest{{MenuID: 0, Quantity: 1}}},
		"zero quantity":  {UserID: 1, Items: []domain.OrderItemRequest{{MenuID: 1, Quantity: 0}}},
		"duplicate menu": {UserID: 1, Items: []domain.OrderItemRequest{{MenuID: 1, Quantity: 1}, {MenuID: 1, Quantity: 2}}},
	}
	for name, req := range cases {
		t.Run(name+" -> invalid", func(t *testing.T) {
			if _, err := svc.CreateOrder(ctx, "tok", req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	t.Run("valid request reaches the api", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(api)
		req := domain.CreateOrderRequest{UserID: 4, Items: []domain.OrderItemRequest{{MenuID: 2, Quantity: 3}}}
		if _, err := svc.CreateOrder(ctx, "tok", req); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		if api.created.UserID != 4 || len(api.created.Items) != 1 {
			t.Fatalf("unexpected request %+v", api.created)
		}
	})
}

func TestListOrdersNewestFirst(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	api := &fakeAPI{orders: []domain.Order{
		{ID: 1, CreatedAt: day(1)},
		{ID: 3, CreatedAt: day(3)},
		{ID: 2, CreatedAt: day(2)},
	}}
	svc := NewService(api)

	got, err := svc.ListOrders(context.Background(), "tok", 9)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Fatalf("unexpected order %+v", got)
	}

	t.Run("bad user -> invalid", func(t *testing.T) {
		if _, err := svc.ListOrders(context.Background(), "tok", 0); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
