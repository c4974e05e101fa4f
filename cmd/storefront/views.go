package main

import (
	"time"

	authdomain "github.com/dwikikusuma/food-storefront/internal/auth/domain"
	cartdomain "github.com/dwikikusuma/food-storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/food-storefront/internal/catalog/domain"
	checkoutdomain "github.com/dwikikusuma/food-storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/food-storefront/internal/order/domain"
)

type imageView struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type menuItemView struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	Quantity    int64       `json:"quantity"`
	Images      []imageView `json:"images"`
}

// addItemRequest names the item to add. Price and stock always come from
// the catalog, never from the browser.
type addItemRequest struct {
	ID int64 `json:"id"`
}

type listedItemView struct {
	menuItemView
	BuyQuantity int64 `json:"buy_quantity"`
	MaxedOut    bool  `json:"maxed_out"`
	SoldOut     bool  `json:"sold_out"`
}

type paginationView struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	TotalData int `json:"total_data"`
	TotalPage int `json:"total_page"`
}

type menuPageView struct {
	Items      []listedItemView `json:"items"`
	Pagination paginationView   `json:"pagination"`
}

type cartEntryView struct {
	menuItemView
	BuyQuantity int64 `json:"buy_quantity"`
	LineTotal   int64 `json:"line_total"`
}

type cartView struct {
	Entries       []cartEntryView `json:"entries"`
	TotalQuantity int64           `json:"total_quantity"`
	Subtotal      int64           `json:"subtotal"`
}

type quoteLineView struct {
	MenuID    int64  `json:"menu_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type quoteView struct {
	Lines    []quoteLineView `json:"lines"`
	Total    int64           `json:"total"`
	Adjusted bool            `json:"adjusted"`
	Cart     cartView        `json:"cart"`
}

type receiptView struct {
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Total       int64     `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

type orderItemView struct {
	MenuID    int64  `json:"menu_id"`
	MenuName  string `json:"menu_name"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type orderView struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	Items       []orderItemView `json:"items"`
	Total       int64           `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

type userView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Username     string `json:"username"`
	Level        int    `json:"user_level"`
	ImageProfile string `json:"image_profile"`
	Address      string `json:"address"`
}

func toMenuItemView(it cartdomain.MenuItem) menuItemView {
	images := make([]imageView, 0, len(it.Images))
	for _, img := range it.Images {
		images = append(images, imageView{ID: img.ID, URL: img.URL})
	}
	return menuItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.UnitPrice,
		Quantity:    it.AvailableQuantity,
		Images:      images,
	}
}

func toListedViews(items []cartdomain.ListedItem) []listedItemView {
	out := make([]listedItemView, 0, len(items))
	for _, li := range items {
		out = append(out, listedItemView{
			menuItemView: toMenuItemView(li.MenuItem),
			BuyQuantity:  li.InCart,
			MaxedOut:     li.MaxedOut,
			SoldOut:      li.SoldOut,
		})
	}
	return out
}

func toPaginationView(p catalogdomain.Pagination) paginationView {
	return paginationView{
		Page:      p.Page,
		Limit:     p.Limit,
		TotalData: p.TotalData,
		TotalPage: p.TotalPage,
	}
}

func toCartView(c cartdomain.Cart) cartView {
	entries := make([]cartEntryView, 0, len(c.Entries))
	for _, e := range c.Entries {
		entries = append(entries, cartEntryView{
			menuItemView: toMenuItemView(e.MenuItem),
			BuyQuantity:  e.PurchaseQuantity,
			LineTotal:    e.LineTotal(),
		})
	}
	return cartView{
		Entries:       entries,
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal(),
	}
}

func toQuoteView(q checkoutdomain.Quote, c cartdomain.Cart) quoteView {
	lines := make([]quoteLineView, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, quoteLineView{
			MenuID:    l.MenuID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return quoteView{Lines: lines, Total: q.Total, Adjusted: q.Adjusted, Cart: toCartView(c)}
}

func toReceiptView(r checkoutdomain.Receipt) receiptView {
	return receiptView{
		OrderID:     r.OrderID,
		OrderNumber: r.OrderNumber,
		Total:       r.Total,
		CreatedAt:   r.CreatedAt,
	}
}

func toOrderViews(orders []orderdomain.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		items := make([]orderItemView, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, orderItemView{
				MenuID:    it.MenuID,
				MenuName:  it.MenuName,
				Image:     it.Image,
				Price:     it.Price,
				Quantity:  it.Quantity,
				LineTotal: it.LineTotalAmount(),
			})
		}
		out = append(out, orderView{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Items:       items,
			Total:       o.TotalAmount(),
			CreatedAt:   o.CreatedAt,
		})
	}
	return out
}

func toUserView(u authdomain.User) userView {
	return userView{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		Username:     u.Username,
		Level:        u.Level,
		ImageProfile: u.ImageProfile,
		Address:      u.Address,
	}
}
