package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/dwikikusuma/food-storefront/internal/auth/app"
	"github.com/dwikikusuma/food-storefront/internal/auth/domain"
	"github.com/dwikikusuma/food-storefront/pkg/apiclient"
	"github.com/pkg/errors"
)

type userDTO struct {
	ID           int64   `json:"id"`
	Nama         string  `json:"nama"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number"`
	Username     string  `json:"username"`
	UserLevel    int     `json:"user_level"`
	ImageProfile *string `json:"image_profile"`
	Alamat       *string `json:"alamat"`
}

type loginDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type registerDTO struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Nama        string `json:"nama"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
	UserLevel   int    `json:"user_level"`
}

type UserClient struct {
	api *apiclient.Client
}

func NewUserClient(api *apiclient.Client) *UserClient {
	return &UserClient{api: api}
}

func (c *UserClient) Login(ctx context.Context, email, password string) (domain.Login, error) {
	r, err := apiclient.JSON(http.MethodPost, "/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return domain.Login{}, err
	}
	env, err := c.api.Do(ctx, r)
	if err != nil {
		return domain.Login{}, mapErr(err)
	}

	var row loginDTO
	if err := apiclient.DecodeData(env, &row); err != nil {
		return domain.Login{}, err
	}
	return domain.Login{Token: row.Token, User: toDomain(row.User)}, nil
}

func (c *UserClient) Register(ctx context.Context, form domain.RegisterForm) (string, error) {
	r, err := apiclient.JSON(http.MethodPost, "/users/register", "", registerDTO{
		Email:       form.Email,
		Password:    form.Password,
		Nama:        form.FullName,
		PhoneNumber: form.PhoneNumber,
		Username:    form.Username,
		UserLevel:   form.Level,
	})
	if err != nil {
		return "", err
	}
	env, err := c.api.Do(ctx, r)
	if err != nil {
		return "", mapErr(err)
	}
	return env.Message, nil
}

func (c *UserClient) UpdateProfile(ctx context.Context, token string, userID int64, upd domain.ProfileUpdate) (domain.User, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if err := w.WriteField("alamat", upd.Address); err != nil {
		return domain.User{}, errors.Wrap(err, "write field alamat")
	}
	if len(upd.Image) > 0 {
		part, err := w.CreateFormFile("image_profile", upd.Filename)
		if err != nil {
			return domain.User{}, errors.Wrap(err, "create image part")
		}
		if _, err := part.Write(upd.Image); err != nil {
			return domain.User{}, errors.Wrap(err, "write image part")
		}
	}
	if err := w.Close(); err != nil {
		return domain.User{}, errors.Wrap(err, "close multipart writer")
	}

	env, err := c.api.Do(ctx, apiclient.Request{
		Method:      http.MethodPatch,
		Path:        fmt.Sprintf("/users/update-profile/%d", userID),
		Token:       token,
		Body:        buf,
		ContentType: w.FormDataContentType(),
	})
	if err != nil {
		return domain.User{}, mapErr(err)
	}

	var row userDTO
	if err := apiclient.DecodeData(env, &row); err != nil {
		return domain.User{}, err
	}
	return toDomain(row), nil
}

func toDomain(row userDTO) domain.User {
	u := domain.User{
		ID:          row.ID,
		Name:        row.Nama,
		Email:       row.Email,
		PhoneNumber: row.PhoneNumber,
		Username:    row.Username,
		Level:       row.UserLevel,
	}
	if row.ImageProfile != nil {
		u.ImageProfile = *row.ImageProfile
	}
	if row.Alamat != nil {
		u.Address = *row.Alamat
	}
	return u
}

func mapErr(err error) error {
	switch apiclient.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", app.ErrUnauthorized, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return fmt.Errorf("%w: %w", app.ErrInvalidInput, err)
	}
	return err
}
