package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/dwikikusuma/food-storefront/internal/auth/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type Service struct {
	api UserAPI
}

func NewService(api UserAPI) *Service {
	return &Service{api: api}
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.Login, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Login{}, ErrInvalidInput
	}

	login, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Login{}, err
	}
	if login.Token == "" || login.User.ID <= 0 {
		return domain.Login{}, ErrUnauthorized
	}
	return login, nil
}

// Register creates an account and returns the API's confirmation message.
func (s *Service) Register(ctx context.Context, form domain.RegisterForm) (string, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.FullName = strings.TrimSpace(form.FullName)
	form.Username = strings.TrimSpace(form.Username)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)

	if _, err := mail.ParseAddress(form.Email); err != nil {
		return "", ErrInvalidInput
	}
	if form.FullName == "" || form.Username == "" || len(form.Password) < 6 {
		return "", ErrInvalidInput
	}
	return s.api.Register(ctx, form)
}

func (s *Service) UpdateProfile(ctx context.Context, token string, userID int64, upd domain.ProfileUpdate) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrUnauthorized
	}
	upd.Address = strings.TrimSpace(upd.Address)
	if userID <= 0 || (len(upd.Image) > 0 && upd.Filename == "") {
		return domain.User{}, ErrInvalidInput
	}
	return s.api.UpdateProfile(ctx, token, userID, upd)
}
