package adapter

import (
	"context"
	"errors"

	cartdomain "github.com/dwikikusuma/food-storefront/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/food-storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/food-storefront/internal/checkout/app"
	"github.com/dwikikusuma/food-storefront/internal/convert"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetMenuItem(ctx context.Context, id int64) (cartdomain.MenuItem, error) {
	m, err := r.svc.GetMenu(ctx, id)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return cartdomain.MenuItem{}, checkoutapp.ErrItemGone
	}
	if err != nil {
		return cartdomain.MenuItem{}, err
	}
	return convert.MenuToCartItem(m), nil
}
