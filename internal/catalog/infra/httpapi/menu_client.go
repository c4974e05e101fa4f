package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/dwikikusuma/food-storefront/internal/catalog/app"
	"github.com/dwikikusuma/food-storefront/internal/catalog/domain"
	"github.com/dwikikusuma/food-storefront/pkg/apiclient"
	"github.com/pkg/errors"
)

const menuPath = "/master-menu/menu"

type menuDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Price       int64      `json:"price"`
	Description string     `json:"description"`
	Quantity    int64      `json:"quantity"`
	Images      []imageDTO `json:"images"`
}

type imageDTO struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type paginationDTO struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	TotalData int `json:"total_data"`
	TotalPage int `json:"total_page"`
}

type MenuClient struct {
	api *apiclient.Client
}

func NewMenuClient(api *apiclient.Client) *MenuClient {
	return &MenuClient{api: api}
}

func (c *MenuClient) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	env, err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   menuPath,
		Query: url.Values{
			"limit":  {strconv.Itoa(q.Limit)},
			"page":   {strconv.Itoa(q.Page)},
			"search": {q.Search},
		},
	})
	if err != nil {
		return domain.Page{}, mapErr(err)
	}

	var rows []menuDTO
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := apiclient.DecodeData(env, &rows); err != nil {
			return domain.Page{}, err
		}
	}

	var p paginationDTO
	if len(env.Pagination) > 0 && string(env.Pagination) != "null" {
		if err := json.Unmarshal(env.Pagination, &p); err != nil {
			return domain.Page{}, errors.Wrap(err, "decode pagination")
		}
	}

	out := make([]domain.Menu, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}

	return domain.Page{
		Items: out,
		Pagination: domain.Pagination{
			Page:      p.Page,
			Limit:     p.Limit,
			TotalData: p.TotalData,
			TotalPage: p.TotalPage,
		},
	}, nil
}

func (c *MenuClient) Get(ctx context.Context, id int64) (domain.Menu, error) {
	env, err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("%s/%d", menuPath, id),
	})
	if err != nil {
		return domain.Menu{}, mapErr(err)
	}
	return decodeMenu(env)
}

func (c *MenuClient) Create(ctx context.Context, token string, in domain.MenuInput) (domain.Menu, error) {
	body, contentType, err := encodeForm(in)
	if err != nil {
		return domain.Menu{}, err
	}
	env, err := c.api.Do(ctx, apiclient.Request{
		Method:      http.MethodPost,
		Path:        menuPath,
		Token:       token,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return domain.Menu{}, mapErr(err)
	}
	return decodeMenu(env)
}

func (c *MenuClient) Update(ctx context.Context, token string, id int64, in domain.MenuInput) (domain.Menu, error) {
	body, contentType, err := encodeForm(in)
	if err != nil {
		return domain.Menu{}, err
	}
	env, err := c.api.Do(ctx, apiclient.Request{
		Method:      http.MethodPatch,
		Path:        fmt.Sprintf("%s/%d", menuPath, id),
		Token:       token,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return domain.Menu{}, mapErr(err)
	}
	return decodeMenu(env)
}

func (c *MenuClient) Delete(ctx context.Context, token string, id int64) error {
	_, err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("%s/%d", menuPath, id),
		Token:  token,
	})
	return mapErr(err)
}

func decodeMenu(env apiclient.Envelope) (domain.Menu, error) {
	var row menuDTO
	if err := apiclient.DecodeData(env, &row); err != nil {
		return domain.Menu{}, err
	}
	return toDomain(row), nil
}

func toDomain(row menuDTO) domain.Menu {
	var images []domain.Image
	if len(row.Images) > 0 {
		images = make([]domain.Image, 0, len(row.Images))
		for _, img := range row.Images {
			images = append(images, domain.Image{ID: img.ID, URL: img.URL})
		}
	}
	return domain.Menu{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Quantity:    row.Quantity,
		Images:      images,
	}
}

// encodeForm builds the multipart form the menu endpoints expect. A single
// removed image goes as "deleteImages", several as repeated "deleteImages[]".
func encodeForm(in domain.MenuInput) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"name", in.Name},
		{"description", in.Description},
		{"price", strconv.FormatInt(in.Price, 10)},
		{"quantity", strconv.FormatInt(in.Quantity, 10)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", errors.Wrapf(err, "write field %s", f[0])
		}
	}

	for _, up := range in.Images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, up.Filename))
		ct := up.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrapf(err, "create part %s", up.Filename)
		}
		if _, err := part.Write(up.Data); err != nil {
			return nil, "", errors.Wrapf(err, "write part %s", up.Filename)
		}
	}

	switch len(in.DeleteImages) {
	case 0:
	case 1:
		if err := w.WriteField("deleteImages", strconv.FormatInt(in.DeleteImages[0], 10)); err != nil {
			return nil, "", errors.Wrap(err, "write field deleteImages")
		}
	default:
		for _, id := range in.DeleteImages {
			if err := w.WriteField("deleteImages[]", strconv.FormatInt(id, 10)); err != nil {
				return nil, "", errors.Wrap(err, "write field deleteImages[]")
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}
	return buf, w.FormDataContentType(), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch apiclient.StatusOf(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", app.ErrNotFound, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %w", app.ErrInvalidInput, err)
	}
	return err
}
