package services

import (
	"context"
	"testing"
	"time"

	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/app/models/dto"
	"github.com/Anuragprasad270204/hostel-management/internal/app/repositories"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/apperrors"
	"github.com/Anuragprasad270204/hostel-management/internal/pkg/auth"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		if role != "" && user.Role != role {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) WithTx(tx pgx.Tx) repositories.IUserRepository { return f }

type storedToken struct {
	userID    int64
	expiry    time.Time
	isRevoked bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	if stored.isRevoked {
		return 0, time.Time{}, true, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.expiry) {
		return 0, time.Time{}, false, apperrors.ErrTokenExpired
	}
	return stored.userID, stored.expiry, false, nil
}

func (f *fakeTokenRepo) RevokeToken(ctx context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.isRevoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, stored := range f.tokens {
		if stored.userID == userID {
			stored.isRevoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	var removed int64
	for token, stored := range f.tokens {
		if time.Now().After(stored.expiry) {
			delete(f.tokens, token)
			removed++
		}
	}
	return removed, nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-for-unit-tests",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hostel-management-test",
	})
}

func newAuthServiceFixture() (AuthService, *fakeUserRepo, *fakeTokenRepo) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	return NewAuthService(users, tokens, newTestJWTService()), users, tokens
}

func TestRegisterDefaultsToStudentRole(t *testing.T) {
	svc, users, tokens := newAuthServiceFixture()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "Asha@Example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.Equal(t, string(models.RoleStudent), resp.User.Role)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Len(t, users.users, 1)
	assert.Contains(t, tokens.tokens, resp.Token.RefreshToken)
}

func TestRegisterAdminRole(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "admin@example.com",
		Password: "strong-password",
		Role:     string(models.RoleAdmin),
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.RoleAdmin), resp.User.Role)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
		Role:     "superuser",
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterRejectsBadEmailAndShortPassword(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "strong-password",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
}

func TestLoginDoesNotRevealAccountExistence(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	// Unknown account and wrong password fail identically.
	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "strong-password",
	})
	_, wrongErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})

	require.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token.RefreshToken, refreshed.RefreshToken)

	// The presented token is revoked on use, so replaying it fails.
	_, err = svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshTokenUnknownToken(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.RefreshToken(context.Background(), "never-issued")
	require.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc, users, tokens := newAuthServiceFixture()

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.User.ID))

	_, err = svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	assert.Len(t, users.users, 1)
	assert.True(t, tokens.tokens[registered.Token.RefreshToken].isRevoked)
}

func TestGetUsersRoleFilter(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "warden@example.com",
		Password: "strong-password",
		Role:     "admin",
	})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	all, err := svc.GetUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	admins, err := svc.GetUsers(context.Background(), "admin")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "warden@example.com", admins[0].Email)

	_, err = svc.GetUsers(context.Background(), "superuser")
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
