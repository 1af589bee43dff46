package dto

import (
	"time"

	"github.com/KingDaeWon/dw-web/internal/auth"
)

// SignupRequest payload for new members.
type SignupRequest struct {
	LoginName string `json:"loginName"`
	Password  string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	LoginName string `json:"loginName"`
	Password  string `json:"password"`
}

// ReissueRequest payload carrying the current token pair.
type ReissueRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is the token pair returned on login and reissue.
type TokenResponse struct {
	GrantType            string    `json:"grantType"`
	AccessToken          string    `json:"accessToken"`
	RefreshToken         string    `json:"refreshToken"`
	AccessTokenExpiresAt time.Time `json:"accessTokenExpiresAt"`
}

// NewTokenResponse maps a token pair to its response form.
func NewTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		GrantType:            "bearer",
		AccessToken:          pair.AccessToken,
		RefreshToken:         pair.RefreshToken,
		AccessTokenExpiresAt: pair.AccessTokenExpiresAt,
	}
}
