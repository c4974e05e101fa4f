package domain

import "time"

type QuoteLine struct {
	MenuID    int64
	Name      string
	Quantity  int64
	UnitPrice int64
	LineTotal int64
}

type Quote struct {
	Lines []QuoteLine
	Total int64
	// Adjusted is set when refreshing against the catalog changed the cart.
	Adjusted bool
}

type Receipt struct {
	OrderID     int64
	OrderNumber string
	Total       int64
	CreatedAt   time.Time
}
