package handler

import "github.com/clubhub/clubhub-api/internal/core/domain"

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Fields are untyped so the service can tell a missing value from a value
// of the wrong type.
type registerRequest struct {
	Email    any `json:"email"    swaggertype:"string"`
	Password any `json:"password" swaggertype:"string"`
	Username any `json:"username" swaggertype:"string"`
}

type loginRequest struct {
	Email    any `json:"email"    swaggertype:"string"`
	Password any `json:"password" swaggertype:"string"`
}

type registerResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
