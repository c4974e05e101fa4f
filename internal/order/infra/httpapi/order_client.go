package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dwikikusuma/food-storefront/internal/order/app"
	"github.com/dwikikusuma/food-storefront/internal/order/domain"
	"github.com/dwikikusuma/food-storefront/pkg/apiclient"
)

const orderPath = "/order"

type createOrderDTO struct {
	UserID    int64          `json:"user_id"`
	MenuItems []orderLineDTO `json:"menu_items"`
}

type orderLineDTO struct {
	MenuID   int64 `json:"menu_id"`
	Quantity int64 `json:"quantity"`
}

type orderDTO struct {
	ID          int64          `json:"id"`
	OrderNumber string         `json:"order_number"`
	UserID      int64          `json:"user_id"`
	CreatedAt   string         `json:"created_at"`
	OrderItems  []orderItemDTO `json:"order_items"`
}

type orderItemDTO struct {
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	MenuID   int64  `json:"menu_id"`
	Quantity int64  `json:"quantity"`
	MenuName string `json:"menu_name"`
}

type OrderClient struct {
	api *apiclient.Client
}

func NewOrderClient(api *apiclient.Client) *OrderClient {
	return &OrderClient{api: api}
}

func (c *OrderClient) Create(ctx context.Context, token string, req domain.CreateOrderRequest) (domain.Order, error) {
	body := createOrderDTO{
		UserID:    req.UserID,
		MenuItems: make([]orderLineDTO, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		body.MenuItems = append(body.MenuItems, orderLineDTO{MenuID: it.MenuID, Quantity: it.Quantity})
	}

	r, err := apiclient.JSON(http.MethodPost, orderPath, token, body)
	if err != nil {
		return domain.Order{}, err
	}
	env, err := c.api.Do(ctx, r)
	if err != nil {
		return domain.Order{}, mapErr(err)
	}

	var row orderDTO
	if err := apiclient.DecodeData(env, &row); err != nil {
		return domain.Order{}, err
	}
	return toDomain(row), nil
}

func (c *OrderClient) ListByUser(ctx context.Context, token string, userID int64) ([]domain.Order, error) {
	env, err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   orderPath,
		Query:  url.Values{"user_id": {strconv.FormatInt(userID, 10)}},
		Token:  token,
	})
	if err != nil {
		return nil, mapErr(err)
	}

	var rows []orderDTO
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := apiclient.DecodeData(env, &rows); err != nil {
			return nil, err
		}
	}

	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func toDomain(row orderDTO) domain.Order {
	items := make([]domain.OrderItem, 0, len(row.OrderItems))
	for _, it := range row.OrderItems {
		items = append(items, domain.OrderItem{
			MenuID:   it.MenuID,
			MenuName: it.MenuName,
			Image:    it.Image,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return domain.Order{
		ID:          row.ID,
		OrderNumber: row.OrderNumber,
		UserID:      row.UserID,
		Items:       items,
		CreatedAt:   parseTime(row.CreatedAt),
	}
}

// parseTime accepts RFC 3339 with or without fractional seconds; anything
// else is left as the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func mapErr(err error) error {
	switch apiclient.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %w", app.ErrInvalidInput, err)
	}
	return err
}
