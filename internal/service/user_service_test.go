package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/image-service/internal/auth"
	"github.com/spec-kit/image-service/internal/domain"
)

// --- helpers ---

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "id-" + user.Username
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newUserService(t *testing.T, repo *fakeUserRepo) *UserService {
	t.Helper()
	tm := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(repo, tm, nil, zap.NewNop(), bcrypt.MinCost)
}

// --- register ---

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newUserService(t, repo)

	err := s.Register(context.Background(), RegisterRequest{
		Username:        "bob",
		Password:        "x",
		ConfirmPassword: "x",
		Age:             30,
		Email:           "b@x.com",
	})
	require.NoError(t, err)

	stored, ok := repo.users["bob"]
	require.True(t, ok)
	require.Equal(t, "b@x.com", stored.Email)
	require.Equal(t, 30, stored.Age)
	require.NotEqual(t, "x", stored.PasswordHash)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "x"))
}

func TestRegister_UsernameTaken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.users["alice"] = &domain.User{Username: "alice"}
	s := newUserService(t, repo)

	err := s.Register(context.Background(), RegisterRequest{
		Username:        "alice",
		Password:        "a",
		ConfirmPassword: "a",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_ExistenceCheckPrecedesPasswordCheck(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.users["alice"] = &domain.User{Username: "alice"}
	s := newUserService(t, repo)

	// mismatched passwords, but the taken username must win
	err := s.Register(context.Background(), RegisterRequest{
		Username:        "alice",
		Password:        "a",
		ConfirmPassword: "b",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newUserService(t, repo)

	err := s.Register(context.Background(), RegisterRequest{
		Username:        "carol",
		Password:        "a",
		ConfirmPassword: "b",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
	require.Empty(t, repo.users)
}

// --- login ---

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newUserService(t, repo)
	require.NoError(t, s.Register(context.Background(), RegisterRequest{
		Username:        "dave",
		Password:        "pw",
		ConfirmPassword: "pw",
	}))

	token, exp, err := s.Login(context.Background(), "dave", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newUserService(t, repo)
	require.NoError(t, s.Register(context.Background(), RegisterRequest{
		Username:        "erin",
		Password:        "pw",
		ConfirmPassword: "pw",
	}))

	token, _, err := s.Login(context.Background(), "erin", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Empty(t, token)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := newUserService(t, repo)

	_, _, errUnknown := s.Login(context.Background(), "ghost", "pw")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
}
