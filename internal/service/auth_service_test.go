package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/KingDaeWon/dw-web/internal/auth"
	"github.com/KingDaeWon/dw-web/internal/config"
	"github.com/KingDaeWon/dw-web/internal/domain"
	"github.com/KingDaeWon/dw-web/internal/repository"
)

const testSecret = "test-secret"

// memberRepoStub is an in-memory MemberRepository used as the member-lookup
// collaborator in tests.
type memberRepoStub struct {
	mu     sync.Mutex
	byID   map[string]*domain.Member
	byName map[string]*domain.Member
	nextID int
}

func newMemberRepoStub() *memberRepoStub {
	return &memberRepoStub{
		byID:   make(map[string]*domain.Member),
		byName: make(map[string]*domain.Member),
	}
}

func (r *memberRepoStub) Create(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	member.ID = "member-" + strconv.Itoa(r.nextID)
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	copied := *member
	r.byID[member.ID] = &copied
	r.byName[member.MemberName] = &copied
	return nil
}

func (r *memberRepoStub) GetByID(_ context.Context, id string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (r *memberRepoStub) GetByMemberName(_ context.Context, memberName string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.byName[memberName]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (r *memberRepoStub) ExistsByMemberName(_ context.Context, memberName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byName[memberName]
	return ok, nil
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             testSecret,
			AccessTokenTTLMinutes: 30,
			RefreshTokenTTLDays:   7,
			BcryptCost:            bcrypt.MinCost,
			StoreTimeoutSeconds:   2,
		},
	}

	return NewAuthService(cfg, AuthDependencies{
		MemberRepo:       newMemberRepoStub(),
		RefreshTokenRepo: repository.NewRefreshTokenRepository(client, cfg.Auth.RefreshTokenTTL(), cfg.Auth.StoreTimeout()),
	})
}

func TestSignup(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	member, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, member.ID)
	require.Equal(t, "alice", member.MemberName)
	require.Equal(t, []string{domain.AuthorityUser}, member.Authorities)
	require.NotEqual(t, "secret123", member.PasswordHash)

	_, err = svc.Signup(ctx, "alice", "another")
	require.ErrorIs(t, err, auth.ErrAlreadyRegistered)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "wrong")
	_, unknownMember := svc.Login(ctx, "nobody", "secret123")

	require.ErrorIs(t, wrongPassword, auth.ErrAuthenticationFailed)
	require.ErrorIs(t, unknownMember, auth.ErrAuthenticationFailed)
	require.Equal(t, wrongPassword, unknownMember, "failure must not reveal whether the member exists")
}

func TestLoginAndReissueScenario(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)

	pair1, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, pair1.AccessToken)
	require.NotEmpty(t, pair1.RefreshToken)
	require.True(t, pair1.AccessTokenExpiresAt.After(time.Now()))

	pair2, err := svc.Reissue(ctx, pair1.AccessToken, pair1.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair1.RefreshToken, pair2.RefreshToken)

	// Replaying the rotated-out refresh token must fail.
	_, err = svc.Reissue(ctx, pair1.AccessToken, pair1.RefreshToken)
	require.ErrorIs(t, err, auth.ErrRefreshMismatch)

	pair3, err := svc.Reissue(ctx, pair2.AccessToken, pair2.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair2.RefreshToken, pair3.RefreshToken)
}

func TestLogin_OverwritesPreviousSession(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)

	pair1, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	pair2, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Reissue(ctx, pair1.AccessToken, pair1.RefreshToken)
	require.ErrorIs(t, err, auth.ErrRefreshMismatch)

	_, err = svc.Reissue(ctx, pair2.AccessToken, pair2.RefreshToken)
	require.NoError(t, err)
}

func TestReissue_ExpiredRefresh(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	expired, _, err := auth.NewTokenManager(testSecret, time.Hour, -time.Minute).GenerateRefreshToken()
	require.NoError(t, err)

	_, err = svc.Reissue(ctx, pair.AccessToken, expired)
	require.ErrorIs(t, err, auth.ErrRefreshExpired)
}

func TestReissue_InvalidRefresh(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	forged, _, err := auth.NewTokenManager("attacker-secret", time.Hour, time.Hour).GenerateRefreshToken()
	require.NoError(t, err)

	_, err = svc.Reissue(ctx, pair.AccessToken, forged)
	require.ErrorIs(t, err, auth.ErrRefreshInvalid)

	_, err = svc.Reissue(ctx, pair.AccessToken, "not.a.jwt")
	require.ErrorIs(t, err, auth.ErrRefreshInvalid)
}

func TestReissue_MalformedAccess(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Reissue(ctx, "not.a.jwt", pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrAccessMalformed)

	forged, _, err := auth.NewTokenManager("attacker-secret", time.Hour, time.Hour).GenerateAccessToken("member-1", nil)
	require.NoError(t, err)
	_, err = svc.Reissue(ctx, forged, pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrAccessMalformed)
}

func TestReissue_AfterLogout(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	member, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, member.ID))
	require.NoError(t, svc.Logout(ctx, member.ID), "logout must be idempotent")

	_, err = svc.Reissue(ctx, pair.AccessToken, pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestReissue_ConcurrentSingleWinner(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "secret123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Reissue(ctx, pair.AccessToken, pair.RefreshToken)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	success := 0
	for err := range results {
		if err == nil {
			success++
			continue
		}
		require.ErrorIs(t, err, auth.ErrRefreshMismatch)
	}
	require.Equal(t, 1, success, "exactly one concurrent reissue may win")
}
