package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/food-storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/food-storefront/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/food-storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/food-storefront/internal/order/domain"
)

type OrderServiceWriter struct {
	svc *orderapp.Service
}

func NewOrderServiceWriter(svc *orderapp.Service) *OrderServiceWriter {
	return &OrderServiceWriter{svc: svc}
}

func (w *OrderServiceWriter) PlaceOrder(ctx context.Context, token string, userID int64, lines []checkoutapp.OrderLine) (checkoutdomain.Receipt, error) {
	req := orderdomain.CreateOrderRequest{
		UserID: userID,
		Items:  make([]orderdomain.OrderItemRequest, 0, len(lines)),
	}
	for _, ln := range lines {
		req.Items = append(req.Items, orderdomain.OrderItemRequest{
			MenuID:   ln.MenuID,
			Quantity: ln.Quantity,
		})
	}

	o, err := w.svc.CreateOrder(ctx, token, req)
	if err != nil {
		return checkoutdomain.Receipt{}, err
	}

	return checkoutdomain.Receipt{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Total:       o.TotalAmount(),
		CreatedAt:   o.CreatedAt,
	}, nil
}
