package domain

import "time"

type Order struct {
	ID          int64
	OrderNumber string
	UserID      int64
	Items       []OrderItem
	CreatedAt   time.Time
}

func (o Order) TotalAmount() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.LineTotalAmount()
	}
	return total
}

type OrderItem struct {
	MenuID   int64
	MenuName string
	Image    string
	Price    int64
	Quantity int64
}

func (i OrderItem) LineTotalAmount() int64 {
	return i.Price * i.Quantity
}

type CreateOrderRequest struct {
	UserID int64
	Items  []OrderItemRequest
}

type OrderItemRequest struct {
	MenuID   int64
	Quantity int64
}
