package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/invoicehub/internal/common"
	"github.com/dkotelnikov/invoicehub/internal/server/auth"
	"github.com/dkotelnikov/invoicehub/internal/server/models"
)

// memUsersRepo is an in-memory users.Repository with the same contract as
// the SQL-backed ones (unique username, assigned ids).
type memUsersRepo struct {
	nextID  int64
	byName  map[string]*models.User
	created int
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{nextID: 1, byName: map[string]*models.User{}}
}

func (r *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.byName[user.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := *user
	u.ID = r.nextID
	r.nextID++
	r.byName[u.Username] = &u
	r.created++
	return &u, nil
}

func (r *memUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := r.byName[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func newUserService(repo *memUsersRepo) *UserService {
	return NewUserService(nil, &fakeRepoManager{users: repo})
}

func TestSignup_Validation(t *testing.T) {
	repo := newMemUsersRepo()
	s := newUserService(repo)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "longenough"},
		{"empty password", "alice", ""},
		{"whitespace-only username", "   ", "longenough"},
		{"short password", "alice", "short"},
		{"password short after trim", "alice", "  1234567  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Signup(ctx, tc.username, tc.password)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrorValidation), "got %v", err)
		})
	}

	assert.Zero(t, repo.created, "validation failures must not persist anything")
}

func TestSignup_Success_HashesPassword(t *testing.T) {
	repo := newMemUsersRepo()
	s := newUserService(repo)

	user, err := s.Signup(context.Background(), "  alice  ", "correct horse")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username, "username is trimmed before persisting")
	assert.NotEqual(t, "correct horse", user.PasswordHash, "plaintext must never be stored")
	assert.True(t, auth.CheckPassword(user.PasswordHash, "correct horse"))
}

func TestSignup_DuplicateUsername(t *testing.T) {
	repo := newMemUsersRepo()
	s := newUserService(repo)
	ctx := context.Background()

	_, err := s.Signup(ctx, "alice", "password-one")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "alice", "password-two")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists), "got %v", err)
	assert.Equal(t, 1, repo.created, "exactly one credential record exists afterward")
}

func TestLogin_Success(t *testing.T) {
	repo := newMemUsersRepo()
	s := newUserService(repo)
	ctx := context.Background()

	created, err := s.Signup(ctx, "bob", "longenough")
	require.NoError(t, err)

	user, err := s.Login(ctx, "bob", "longenough")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "bob", user.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMemUsersRepo()
	s := newUserService(repo)
	ctx := context.Background()

	_, err := s.Signup(ctx, "bob", "longenough")
	require.NoError(t, err)

	_, err = s.Login(ctx, "bob", "not-the-password")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized), "got %v", err)
}

func TestLogin_UnknownUser_SameError(t *testing.T) {
	s := newUserService(newMemUsersRepo())

	_, err := s.Login(context.Background(), "nobody", "whatever123")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized),
		"missing user must be indistinguishable from wrong password, got %v", err)
}
