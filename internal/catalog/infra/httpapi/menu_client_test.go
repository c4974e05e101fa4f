package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dwikikusuma/food-storefront/internal/catalog/app"
	"github.com/dwikikusuma/food-storefront/internal/catalog/domain"
	"github.com/dwikikusuma/food-storefront/pkg/apiclient"
	"github.com/dwikikusuma/food-storefront/pkg/logger"
)

func newClient(t *testing.T, h http.HandlerFunc) *MenuClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	api, err := apiclient.New(apiclient.Config{BaseURL: srv.URL}, logger.Discard())
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return NewMenuClient(api)
}

func TestMenuClientList(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/master-menu/menu" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("limit") != "10" || q.Get("page") != "2" || q.Get("search") != "nasi" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = io.WriteString(w, `{
			"success": true,
			"data": [
				{"id": 1, "name": "Nasi Goreng", "price": 25000, "description": "pedas", "quantity": 4,
				 "images": [{"id": 11, "url": "https://cdn.example/1.jpg"}]},
				{"id": 2, "name": "Nasi Uduk", "price": 20000, "quantity": 0, "images": []}
			],
			"pagination": {"page": 2, "limit": 10, "total_data": 12, "total_page": 2}
		}`)
	})

	page, err := c.List(context.Background(), domain.ListQuery{Limit: 10, Page: 2, Search: "nasi"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	first := page.Items[0]
	if first.ID != 1 || first.Price != 25000 || first.Quantity != 4 || len(first.Images) != 1 || first.Images[0].ID != 11 {
		t.Fatalf("unexpected first item %+v", first)
	}
	want := domain.Pagination{Page: 2, Limit: 10, TotalData: 12, TotalPage: 2}
	if page.Pagination != want {
		t.Fatalf("expected %+v, got %+v", want, page.Pagination)
	}
}

func TestMenuClientGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/master-menu/menu/5" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			_, _ = io.WriteString(w, `{"data":{"id":5,"name":"Soto","price":18000,"quantity":2}}`)
		})
		m, err := c.Get(context.Background(), 5)
		if err != nil || m.ID != 5 || m.Name != "Soto" {
			t.Fatalf("Get: %v %+v", err, m)
		}
	})

	t.Run("404 -> ErrNotFound", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"menu tidak ditemukan"}`)
		})
		if _, err := c.Get(context.Background(), 5); !errors.Is(err, app.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMenuClientCreateForm(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "tok" {
			t.Errorf("missing token")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.FormValue("name") != "Bakso" || r.FormValue("price") != "15000" || r.FormValue("quantity") != "3" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		files := r.MultipartForm.File["images"]
		if len(files) != 1 || files[0].Filename != "bakso.jpg" {
			t.Errorf("unexpected files %v", files)
		}
		_, _ = io.WriteString(w, `{"data":{"id":9,"name":"Bakso","price":15000,"quantity":3}}`)
	})

	m, err := c.Create(context.Background(), "tok", domain.MenuInput{
		Name: "Bakso", Price: 15000, Quantity: 3,
		Images: []domain.Upload{{Filename: "bakso.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}},
	})
	if err != nil || m.ID != 9 {
		t.Fatalf("Create: %v %+v", err, m)
	}
}

func TestMenuClientUpdateDeleteImages(t *testing.T) {
	cases := []struct {
		name   string
		ids    []int64
		field  string
		values []string
	}{
		{"single id", []int64{4}, "deleteImages", []string{"4"}},
		{"several ids", []int64{4, 6}, "deleteImages[]", []string{"4", "6"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPatch || r.URL.Path != "/master-menu/menu/3" {
					t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
				}
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Errorf("parse form: %v", err)
				}
				got := r.MultipartForm.Value[tc.field]
				if len(got) != len(tc.values) {
					t.Errorf("expected %s=%v, got %v", tc.field, tc.values, got)
				}
				for i := range got {
					if got[i] != tc.values[i] {
						t.Errorf("expected %s=%v, got %v", tc.field, tc.values, got)
					}
				}
				_, _ = io.WriteString(w, `{"data":{"id":3,"name":"Bakso"}}`)
			})

			if _, err := c.Update(context.Background(), "tok", 3, domain.MenuInput{Name: "Bakso", DeleteImages: tc.ids}); err != nil {
				t.Fatalf("Update: %v", err)
			}
		})
	}
}

func TestMenuClientDelete(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/master-menu/menu/3" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			_, _ = io.WriteString(w, `{"success":true,"message":"deleted"}`)
		})
		if err := c.Delete(context.Background(), "tok", 3); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	t.Run("400 -> ErrInvalidInput", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		if err := c.Delete(context.Background(), "tok", 3); !errors.Is(err, app.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
