package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/food-storefront/internal/catalog/domain"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Service struct {
	api MenuAPI
	sf  singleflight.Group
}

func NewService(api MenuAPI) *Service {
	return &Service{
		api: api,
	}
}

// ListMenu fetches one page of the menu. Identical queries in flight at the
// same time share a single upstream call.
func (s *Service) ListMenu(ctx context.Context, limit, page int, search string) (domain.Page, error) {
	q := domain.ListQuery{
		Limit:  limit,
		Page:   page,
		Search: strings.TrimSpace(search),
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	key := fmt.Sprintf("%d|%d|%s", q.Limit, q.Page, q.Search)
	// The shared call outlives any one caller; the API client's timeout
	// bounds it.
	shared := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(key, func() (interface{}, error) {
		return s.api.List(shared, q)
	})

	select {
	case <-ctx.Done():
		return domain.Page{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Page{}, res.Err
		}
		return res.Val.(domain.Page), nil
	}
}

func (s *Service) GetMenu(ctx context.Context, id int64) (domain.Menu, error) {
	if id <= 0 {
		return domain.Menu{}, ErrInvalidInput
	}
	return s.api.Get(ctx, id)
}

func (s *Service) CreateMenu(ctx context.Context, token string, in domain.MenuInput) (domain.Menu, error) {
	in, err := normalize(in)
	if err != nil {
		return domain.Menu{}, err
	}
	return s.api.Create(ctx, token, in)
}

func (s *Service) UpdateMenu(ctx context.Context, token string, id int64, in domain.MenuInput) (domain.Menu, error) {
	if id <= 0 {
		return domain.Menu{}, ErrInvalidInput
	}
	in, err := normalize(in)
	if err != nil {
		return domain.Menu{}, err
	}
	return s.api.Update(ctx, token, id, in)
}

func (s *Service) DeleteMenu(ctx context.Context, token string, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.api.Delete(ctx, token, id)
}

func normalize(in domain.MenuInput) (domain.MenuInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" || in.Price < 0 || in.Quantity < 0 {
		return domain.MenuInput{}, ErrInvalidInput
	}
	for _, id := range in.DeleteImages {
		if id <= 0 {
			return domain.MenuInput{}, ErrInvalidInput
		}
	}
	for _, up := range in.Images {
		if len(up.Data) == 0 || strings.TrimSpace(up.Filename) == "" {
			return domain.MenuInput{}, ErrInvalidInput
		}
	}
	return in, nil
}
