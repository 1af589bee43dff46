package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager handles issuing and validating signed access and refresh tokens.
// Signing key and TTLs are fixed at construction; all methods are safe for
// concurrent use.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL == 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessClaims describes the access token payload.
type AccessClaims struct {
	Authorities []string `json:"auth,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is the unit returned to a client on login and reissue.
type TokenPair struct {
	AccessToken          string
	RefreshToken         string
	AccessTokenExpiresAt time.Time
}

// GenerateAccessToken builds and signs a short-lived access token for the member.
func (tm *TokenManager) GenerateAccessToken(memberID string, authorities []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.accessTTL)
	claims := &AccessClaims{
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// GenerateRefreshToken builds and signs a long-lived refresh token. The token
// carries no member claims; the jti makes every issued value unique so
// rotation always changes the stored value.
func (tm *TokenManager) GenerateRefreshToken() (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.refreshTTL)
	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseAccessToken fully validates an access token and returns its claims.
func (tm *TokenManager) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, translateTokenError(err)
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// ParseAccessClaims verifies the signature of an access token and returns its
// claims without validating expiry. The reissue flow uses it to recover the
// member identity from an access token that is expected to be expired.
func (tm *TokenManager) ParseAccessClaims(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, translateTokenError(err)
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// ParseRefreshToken validates a refresh token signature and expiry.
func (tm *TokenManager) ParseRefreshToken(tokenStr string) error {
	_, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return translateTokenError(err)
	}
	return nil
}

func (tm *TokenManager) keyFunc(_ *jwt.Token) (interface{}, error) {
	return tm.secret, nil
}

func translateTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return ErrTokenMalformed
	}
}
