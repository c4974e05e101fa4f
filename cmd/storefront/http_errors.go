package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	authapp "github.com/dwikikusuma/food-storefront/internal/auth/app"
	catalogapp "github.com/dwikikusuma/food-storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/food-storefront/internal/checkout/app"
	orderapp "github.com/dwikikusuma/food-storefront/internal/order/app"
	"github.com/dwikikusuma/food-storefront/pkg/apiclient"
)

var (
	errBadRequest = errors.New("bad request")
	errForbidden  = errors.New("forbidden")
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// httpStatusFromErr maps service and API errors onto the gateway's status
// codes. The message is safe to show to the browser.
func httpStatusFromErr(err error) (int, string, string) {
	var apiErr *apiclient.Error

	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, authapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, authapp.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHENTICATED", "sign in required"
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, "PERMISSION_DENIED", "not allowed"
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusConflict, "FAILED_PRECONDITION", "cart is empty"
	case errors.Is(err, apiclient.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "UNAVAILABLE", "upstream unavailable"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "BAD_GATEWAY", "upstream error"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := httpStatusFromErr(err)

	log := loggerFrom(r.Context())
	if status >= 500 {
		log.Error("request failed", slog.Any("err", err), slog.Int("status", status))
	} else {
		log.Info("request rejected", slog.Any("err", err), slog.Int("status", status))
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
