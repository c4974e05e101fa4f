package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	catalogdomain "github.com/dwikikusuma/food-storefront/internal/catalog/domain"
	"github.com/dwikikusuma/food-storefront/internal/convert"
)

func (s *server) createMenu(w http.ResponseWriter, r *http.Request) {
	in, err := parseMenuForm(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	_, token, _ := sessionFrom(r.Context()).User()
	m, err := s.catalog.CreateMenu(r.Context(), token, in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMenuItemView(convert.MenuToCartItem(m)))
}

func (s *server) updateMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	in, err := parseMenuForm(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	_, token, _ := sessionFrom(r.Context()).User()
	m, err := s.catalog.UpdateMenu(r.Context(), token, id, in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemView(convert.MenuToCartItem(m)))
}

func (s *server) deleteMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	_, token, _ := sessionFrom(r.Context()).User()
	if err := s.catalog.DeleteMenu(r.Context(), token, id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseMenuForm reads the admin menu form: name, description, price,
// quantity, any number of "images" files and "delete_images" ids.
func parseMenuForm(r *http.Request) (catalogdomain.MenuInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return catalogdomain.MenuInput{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	price, err := formInt(r, "price")
	if err != nil {
		return catalogdomain.MenuInput{}, err
	}
	qty, err := formInt(r, "quantity")
	if err != nil {
		return catalogdomain.MenuInput{}, err
	}

	in := catalogdomain.MenuInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Quantity:    qty,
	}

	for _, raw := range r.MultipartForm.Value["delete_images"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return catalogdomain.MenuInput{}, fmt.Errorf("%w: delete_images: %q", errBadRequest, raw)
		}
		in.DeleteImages = append(in.DeleteImages, id)
	}

	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return catalogdomain.MenuInput{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return catalogdomain.MenuInput{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		in.Images = append(in.Images, catalogdomain.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return in, nil
}

func formInt(r *http.Request, key string) (int64, error) {
	v := r.FormValue(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", errBadRequest, key, v)
	}
	return n, nil
}
