package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	authdomain "github.com/dwikikusuma/food-storefront/internal/auth/domain"
)

const maxUploadBytes = 10 << 20

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
}

type messageView struct {
	Message string `json:"message"`
}

// login keeps the API token in the session. The browser only ever sees the
// user profile.
func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	res, err := s.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	sessionFrom(r.Context()).SignIn(res)
	loggerFrom(r.Context()).Info("user signed in")
	writeJSON(w, http.StatusOK, toUserView(res.User))
}

func (s *server) register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	msg, err := s.auth.Register(r.Context(), authdomain.RegisterForm{
		Email:       body.Email,
		FullName:    body.FullName,
		Password:    body.Password,
		PhoneNumber: body.PhoneNumber,
		Username:    body.Username,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageView{Message: msg})
}

// logout also empties the cart, so the next shopper on this browser starts
// clean.
func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(r.Context(), sessionFrom(r.Context()).ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) me(w http.ResponseWriter, r *http.Request) {
	u, _, _ := sessionFrom(r.Context()).User()
	writeJSON(w, http.StatusOK, toUserView(u))
}

func (s *server) updateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErr(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	upd := authdomain.ProfileUpdate{Address: r.FormValue("address")}
	if file, header, err := r.FormFile("image"); err == nil {
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			writeErr(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		upd.Image = data
		upd.Filename = header.Filename
	} else if err != http.ErrMissingFile {
		writeErr(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	sess := sessionFrom(r.Context())
	u, token, _ := sess.User()

	updated, err := s.auth.UpdateProfile(r.Context(), token, u.ID, upd)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	sess.SetUser(updated)
	writeJSON(w, http.StatusOK, toUserView(updated))
}
