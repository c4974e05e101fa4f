package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dwikikusuma/food-storefront/internal/order/domain"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	api OrderAPI
}

func NewService(api OrderAPI) *Service {
	return &Service{api: api}
}

func (s *Service) CreateOrder(ctx context.Context, token string, req domain.CreateOrderRequest) (domain.Order, error) {
	if req.UserID <= 0 {
		return domain.Order{}, fmt.Errorf("%w: user id must be positive, got %d", ErrInvalidInput, req.UserID)
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: items must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.Items))
	for i, item := range req.Items {
		if item.MenuID <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: invalid menu id %d", ErrInvalidInput, i, item.MenuID)
		}
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if _, dup := seen[item.MenuID]; dup {
			return domain.Order{}, fmt.Errorf("%w: item %d: duplicate menu id %d", ErrInvalidInput, i, item.MenuID)
		}
		seen[item.MenuID] = struct{}{}
	}

	return s.api.Create(ctx, token, req)
}

// ListOrders returns the user's order history, newest first.
func (s *Service) ListOrders(ctx context.Context, token string, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive, got %d", ErrInvalidInput, userID)
	}

	orders, err := s.api.ListByUser(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
