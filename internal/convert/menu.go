// Package convert maps catalog menus onto the cart's item snapshots.
package convert

import (
	cartdomain "github.com/dwikikusuma/food-storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/food-storefront/internal/catalog/domain"
)

func MenuToCartItem(m catalogdomain.Menu) cartdomain.MenuItem {
	var images []cartdomain.Image
	if len(m.Images) > 0 {
		images = make([]cartdomain.Image, 0, len(m.Images))
		for _, img := range m.Images {
			images = append(images, cartdomain.Image{ID: img.ID, URL: img.URL})
		}
	}
	return cartdomain.MenuItem{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		UnitPrice:         m.Price,
		AvailableQuantity: m.Quantity,
		Images:            images,
	}
}

func MenusToCartItems(ms []catalogdomain.Menu) []cartdomain.MenuItem {
	out := make([]cartdomain.MenuItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, MenuToCartItem(m))
	}
	return out
}
