package app

import (
	"context"

	"github.com/dwikikusuma/food-storefront/internal/order/domain"
)

type OrderAPI interface {
	Create(ctx context.Context, token string, req domain.CreateOrderRequest) (domain.Order, error)
	ListByUser(ctx context.Context, token string, userID int64) ([]domain.Order, error)
}
