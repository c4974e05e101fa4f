package app

import (
	"context"

	"github.com/dwikikusuma/food-storefront/internal/auth/domain"
)

type UserAPI interface {
	Login(ctx context.Context, email, password string) (domain.Login, error)
	Register(ctx context.Context, form domain.RegisterForm) (string, error)
	UpdateProfile(ctx context.Context, token string, userID int64, upd domain.ProfileUpdate) (domain.User, error)
}
