package app

import (
	"context"

	"github.com/dwikikusuma/food-storefront/internal/catalog/domain"
)

type MenuAPI interface {
	List(ctx context.Context, q domain.ListQuery) (domain.Page, error)
	Get(ctx context.Context, id int64) (domain.Menu, error)
	Create(ctx context.Context, token string, in domain.MenuInput) (domain.Menu, error)
	Update(ctx context.Context, token string, id int64, in domain.MenuInput) (domain.Menu, error)
	Delete(ctx context.Context, token string, id int64) error
}
