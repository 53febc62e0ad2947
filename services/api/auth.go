package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/careerpath/frontend/core/session"
)

// AuthAPI wraps the token-issuing endpoints. Token generation itself is the
// backend's job; we only store what it returns.
type AuthAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *session.User `json:"user"`
}

// Login authenticates and returns the resulting session. When the backend
// omits the user object, it is mirrored from the token claims instead.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (session.Session, error) {
	data, err := a.c.do(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return session.Session{}, err
	}

	var body loginResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return session.Session{}, errors.Wrap(err, "decoding login response")
	}
	if body.Token == "" {
		// enveloped variant
		var env struct {
			Data loginResponse `json:"data"`
		}
		if err := json.Unmarshal(data, &env); err == nil {
			body = env.Data
		}
	}
	if body.Token == "" {
		return session.Session{}, errors.Wrap(errUnexpectedShape, "login response has no token")
	}

	if body.User == nil {
		usr, err := session.UserFromToken(body.Token)
		if err != nil {
			return session.Session{}, err
		}
		body.User = usr
	}
	return session.Session{Token: body.Token, User: body.User}, nil
}
