package auth

import (
	"context"
	"testing"
	"time"

	"skybook/internal/shared/config"
	"skybook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateUser(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *mockRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}

	repo.On("EmailExists", ctx, "ava@example.com").Return(false, nil).Once()
	repo.On("CreateUser", ctx, mock.MatchedBy(func(u *users.User) bool {
		return u.Email == "ava@example.com" && u.Role == users.RoleUser && u.Password != "secret123"
	})).Return(nil).Once()

	svc := NewService(repo, testConfig())
	resp, err := svc.Register(ctx, &RegisterRequest{
		FirstName: "Ava",
		LastName:  "Traveller",
		Email:     "ava@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "ava@example.com", resp.User.Email)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	repo.On("EmailExists", ctx, "ava@example.com").Return(true, nil).Once()

	svc := NewService(repo, testConfig())
	_, err := svc.Register(ctx, &RegisterRequest{Email: "ava@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrUserAlreadyExists)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	user := &users.User{
		ID:       uuid.New(),
		Email:    "ava@example.com",
		Password: "",
		Role:     users.RoleUser,
	}

	tests := []struct {
		name     string
		password string
		stored   string
		repoErr  error
		wantErr  error
	}{
		{name: "valid credentials", password: "secret123", stored: "secret123"},
		{name: "wrong password", password: "nope", stored: "secret123", wantErr: ErrInvalidCredentials},
		{name: "unknown email", password: "secret123", repoErr: ErrUserNotFound, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			if tt.repoErr != nil {
				repo.On("GetUserByEmail", ctx, user.Email).Return(nil, tt.repoErr).Once()
			} else {
				u := *user
				u.Password = hashedPassword(t, tt.stored)
				repo.On("GetUserByEmail", ctx, user.Email).Return(&u, nil).Once()
			}

			svc := NewService(repo, testConfig())
			resp, err := svc.Login(ctx, &LoginRequest{Email: user.Email, Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, resp.AccessToken)
		})
	}
}

func TestValidateTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	user := &users.User{ID: uuid.New(), Email: "ava@example.com", Role: users.RoleUser}

	repo := &mockRepository{}
	u := *user
	u.Password = hashedPassword(t, "secret123")
	repo.On("GetUserByEmail", ctx, user.Email).Return(&u, nil).Once()

	svc := NewService(repo, testConfig())
	resp, err := svc.Login(ctx, &LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.Equal(t, "access", claims.Type)
	require.Equal(t, "skybook", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(&mockRepository{}, testConfig())

	_, err := svc.ValidateToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	user := &users.User{ID: uuid.New(), Email: "ava@example.com", Role: users.RoleUser}

	repo := &mockRepository{}
	u := *user
	u.Password = hashedPassword(t, "secret123")
	repo.On("GetUserByEmail", ctx, user.Email).Return(&u, nil).Once()
	repo.On("GetUserByID", ctx, user.ID.String()).Return(&u, nil).Once()

	svc := NewService(repo, testConfig())
	resp, err := svc.Login(ctx, &LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	// An access token must not be usable as a refresh token.
	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}
