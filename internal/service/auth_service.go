package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KingDaeWon/dw-web/internal/auth"
	"github.com/KingDaeWon/dw-web/internal/config"
	"github.com/KingDaeWon/dw-web/internal/domain"
	"github.com/KingDaeWon/dw-web/internal/events"
	"github.com/KingDaeWon/dw-web/internal/repository"
)

// AuthService coordinates signup, login, reissue and logout flows.
type AuthService struct {
	members       repository.MemberRepository
	refreshTokens repository.RefreshTokenRepository
	tokenMgr      *auth.TokenManager
	dispatcher    events.Dispatcher
	bcryptCost    int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	MemberRepo       repository.MemberRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Dispatcher       events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		members:       deps.MemberRepo,
		refreshTokens: deps.RefreshTokenRepo,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		dispatcher:    deps.Dispatcher,
		bcryptCost:    cfg.Auth.BcryptCost,
	}
}

// Signup creates a new member account. The member name must not be taken.
func (s *AuthService) Signup(ctx context.Context, memberName, password string) (*domain.Member, error) {
	exists, err := s.members.ExistsByMemberName(ctx, memberName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, auth.ErrAlreadyRegistered
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		MemberName:   memberName,
		Nickname:     memberName,
		PasswordHash: hash,
		Authorities:  []string{domain.AuthorityUser},
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventMemberSignedUp, member.ID, events.MemberSignedUpPayload{MemberName: member.MemberName})
	return member, nil
}

// Login verifies credentials and issues a fresh token pair. Storing the new
// refresh token overwrites any previous session for the member. Unknown member
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, memberName, password string) (*auth.TokenPair, error) {
	member, err := s.members.GetByMemberName(ctx, memberName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrAuthenticationFailed
		}
		return nil, err
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, auth.ErrAuthenticationFailed
	}

	pair, err := s.issueTokenPair(member.ID, member.Authorities)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Upsert(ctx, member.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventMemberLoggedIn, member.ID, nil)
	return pair, nil
}

// Reissue exchanges a valid refresh token plus the (possibly expired) access
// token for a fresh pair. The checks run in order and short-circuit before any
// write; rotation of the stored value is a compare-and-set so a stale or
// replayed refresh token can never rotate the current session.
func (s *AuthService) Reissue(ctx context.Context, accessToken, refreshToken string) (*auth.TokenPair, error) {
	if err := s.tokenMgr.ParseRefreshToken(refreshToken); err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, auth.ErrRefreshExpired
		}
		return nil, auth.ErrRefreshInvalid
	}

	claims, err := s.tokenMgr.ParseAccessClaims(accessToken)
	if err != nil {
		return nil, auth.ErrAccessMalformed
	}
	memberID := claims.Subject

	stored, err := s.refreshTokens.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if stored != refreshToken {
		return nil, auth.ErrRefreshMismatch
	}

	pair, err := s.issueTokenPair(memberID, claims.Authorities)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Rotate(ctx, memberID, refreshToken, pair.RefreshToken); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTokenReissued, memberID, events.TokenReissuedPayload{AccessTokenExpiresAt: pair.AccessTokenExpiresAt})
	return pair, nil
}

// Logout drops the member's refresh session. Deleting an absent session is
// not an error.
func (s *AuthService) Logout(ctx context.Context, memberID string) error {
	if err := s.refreshTokens.Delete(ctx, memberID); err != nil {
		return err
	}
	s.publish(ctx, events.EventMemberLoggedOut, memberID, nil)
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueTokenPair(memberID string, authorities []string) (*auth.TokenPair, error) {
	accessToken, accessExp, err := s.tokenMgr.GenerateAccessToken(memberID, authorities)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokenMgr.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	return &auth.TokenPair{
		AccessToken:          accessToken,
		RefreshToken:         refreshToken,
		AccessTokenExpiresAt: accessExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, memberID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MemberID:  memberID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
