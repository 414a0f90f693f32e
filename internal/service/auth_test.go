package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fernhq/fern/api/internal/model"
	"github.com/fernhq/fern/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations

type mockAuthUserRepo struct {
	users      map[string]*model.User
	emailIndex map[string]*model.User
	createErr  error
	getErr     error
}

func newMockAuthUserRepo() *mockAuthUserRepo {
	return &mockAuthUserRepo{
		users:      make(map[string]*model.User),
		emailIndex: make(map[string]*model.User),
	}
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user:" + user.Email
	user.CreatedOn = time.Now()
	user.UpdatedOn = time.Now()
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user
	return nil
}

func (m *mockAuthUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id], nil
}

func (m *mockAuthUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.emailIndex[email], nil
}

type mockSigner struct {
	signErr     error
	validateErr error
	lastClaims  jwt.Claims
	claims      *jwt.Claims
}

func (m *mockSigner) Sign(claims jwt.Claims) (string, error) {
	if m.signErr != nil {
		return "", m.signErr
	}
	m.lastClaims = claims
	return "signed-token", nil
}

func (m *mockSigner) Validate(token string) (*jwt.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func (m *mockSigner) GetExpiration() time.Duration {
	return time.Hour
}

func newAuthService(repo *mockAuthUserRepo, signer *mockSigner) *AuthService {
	if repo == nil {
		repo = newMockAuthUserRepo()
	}
	if signer == nil {
		signer = &mockSigner{}
	}
	return NewAuthService(AuthServiceConfig{UserRepo: repo, Signer: signer})
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
		Username: "alice",
		City:     "Toronto",
	}
}

// ============================================================================
// Register Tests
// ============================================================================

func TestRegister_CreatesUserAndIssuesToken(t *testing.T) {
	t.Parallel()

	repo := newMockAuthUserRepo()
	signer := &mockSigner{}
	svc := newAuthService(repo, signer)

	resp, err := svc.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "Toronto", resp.User.City)

	stored := repo.emailIndex["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.Hash)
	assert.NotEqual(t, "correct horse battery", stored.Hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Hash), []byte("correct horse battery")))

	assert.Equal(t, stored.ID, signer.lastClaims.UserID)
	assert.Equal(t, stored.ID, signer.lastClaims.Subject)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	t.Parallel()

	repo := newMockAuthUserRepo()
	svc := newAuthService(repo, nil)

	req := registerRequest()
	req.Email = "  Alice@Example.COM  "

	resp, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*model.RegisterRequest)
		wantErr error
	}{
		{"bad_email", func(r *model.RegisterRequest) { r.Email = "nope" }, ErrInvalidEmail},
		{"empty_email", func(r *model.RegisterRequest) { r.Email = "" }, ErrInvalidEmail},
		{"empty_password", func(r *model.RegisterRequest) { r.Password = "" }, ErrPasswordRequired},
		{"short_password", func(r *model.RegisterRequest) { r.Password = "short" }, ErrPasswordTooShort},
		{"long_password", func(r *model.RegisterRequest) { r.Password = string(make([]byte, 129)) }, ErrPasswordTooLong},
		{"blank_username", func(r *model.RegisterRequest) { r.Username = "   " }, ErrUsernameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := registerRequest()
			tt.mutate(req)

			_, err := newAuthService(nil, nil).Register(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newMockAuthUserRepo()
	svc := newAuthService(repo, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_Succeeds(t *testing.T) {
	t.Parallel()

	repo := newMockAuthUserRepo()
	svc := newAuthService(repo, nil)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "Alice@example.com",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newMockAuthUserRepo(), nil)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong horse",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newAuthService(nil, nil)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UserWithoutPasswordHash(t *testing.T) {
	t.Parallel()

	repo := newMockAuthUserRepo()
	repo.emailIndex["alice@example.com"] = &model.User{ID: "user:alice", Email: "alice@example.com"}
	svc := newAuthService(repo, nil)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "anything123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ============================================================================
// Token and Lookup Tests
// ============================================================================

func TestValidateAccessToken_MapsClaims(t *testing.T) {
	t.Parallel()

	signer := &mockSigner{claims: &jwt.Claims{
		UserID:   "user:alice",
		Email:    "alice@example.com",
		Username: "alice",
	}}
	svc := newAuthService(nil, signer)

	claims, err := svc.ValidateAccessToken("signed-token")

	require.NoError(t, err)
	assert.Equal(t, "user:alice", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateAccessToken_PropagatesError(t *testing.T) {
	t.Parallel()

	signer := &mockSigner{validateErr: jwt.ErrTokenExpired}
	svc := newAuthService(nil, signer)

	_, err := svc.ValidateAccessToken("stale")

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGetUserByID_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newAuthService(nil, nil)

	_, err := svc.GetUserByID(context.Background(), "user:ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByID_RepositoryErrorPropagates(t *testing.T) {
	t.Parallel()

	repo := newMockAuthUserRepo()
	repo.getErr = errors.New("db down")
	svc := newAuthService(repo, nil)

	_, err := svc.GetUserByID(context.Background(), "user:alice")

	assert.EqualError(t, err, "db down")
}
