package auth

import (
	"github.com/rkartside/quoter-backend/internal/stores"
	"github.com/rkartside/quoter-backend/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens, user, and active store produced by a
// successful login. Store is nil for admins without a store of their own.
type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *users.UserDTO   `json:"user"`
	Store        *stores.StoreDTO `json:"store,omitempty"`
}

// RefreshRequest carries the expired access token plus the refresh token pair.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
