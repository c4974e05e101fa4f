package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dwikikusuma/food-storefront/pkg/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/api"}, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "/api"}, nil); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("success envelope", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/master-menu/menu" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("page"); got != "2" {
				t.Errorf("expected page=2, got %q", got)
			}
			if got := r.Header.Get("Authorization"); got != "tok-123" {
				t.Errorf("expected raw token, got %q", got)
			}
			_, _ = io.WriteString(w, `{"success":true,"message":"ok","data":{"id":7}}`)
		})

		env, err := c.Do(ctx, Request{
			Method: http.MethodGet,
			Path:   "/master-menu/menu",
			Query:  map[string][]string{"page": {"2"}},
			Token:  "tok-123",
		})
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		var got struct{ ID int64 }
		if err := DecodeData(env, &got); err != nil || got.ID != 7 {
			t.Fatalf("DecodeData: %v, %+v", err, got)
		}
	})

	t.Run("json body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected json content type, got %q", ct)
			}
			b, _ := io.ReadAll(r.Body)
			if string(b) != `{"email":"a@b.c"}` {
				t.Errorf("unexpected body %s", b)
			}
			_, _ = io.WriteString(w, `{"data":"ok"}`)
		})

		req, err := JSON(http.MethodPost, "/users/login", "", map[string]string{"email": "a@b.c"})
		if err != nil {
			t.Fatalf("JSON: %v", err)
		}
		if _, err := c.Do(ctx, req); err != nil {
			t.Fatalf("Do: %v", err)
		}
	})

	t.Run("non-2xx carries status and message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"menu not found"}`)
		})

		_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/master-menu/menu/9"})
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if apiErr.Status != http.StatusNotFound || apiErr.Message != "menu not found" {
			t.Fatalf("unexpected error %+v", apiErr)
		}
		if StatusOf(err) != http.StatusNotFound {
			t.Fatalf("StatusOf = %d", StatusOf(err))
		}
	})

	t.Run("non-json failure uses status text", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "<html>oops</html>")
		})

		_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/order"})
		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.Message != http.StatusText(http.StatusInternalServerError) {
			t.Fatalf("unexpected error %v", err)
		}
	})

	t.Run("success false -> 422", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"message":"stock habis"}`)
		})

		_, err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/order"})
		if StatusOf(err) != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %v", err)
		}
	})

	t.Run("garbage 200 -> 502", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "not json")
		})

		_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/order"})
		if StatusOf(err) != http.StatusBadGateway {
			t.Fatalf("expected 502, got %v", err)
		}
	})

	t.Run("transport failure -> ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c, err := New(Config{BaseURL: url}, logger.Discard())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		_, err = c.Do(ctx, Request{Method: http.MethodGet, Path: "/order"})
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("opens after repeated server errors", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		})

		for i := 0; i < 5; i++ {
			_, _ = c.Do(ctx, Request{Method: http.MethodGet, Path: "/order"})
		}
		_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/order"})
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable once open, got %v", err)
		}
		if n := calls.Load(); n != 5 {
			t.Fatalf("expected 5 upstream calls, got %d", n)
		}
	})

	t.Run("client errors do not trip", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		for i := 0; i < 10; i++ {
			_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/order"})
			if StatusOf(err) != http.StatusBadRequest {
				t.Fatalf("call %d: expected 400, got %v", i, err)
			}
		}
	})
}
