package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/chama-backend/internal/logging"
	"github.com/hongminglow/chama-backend/internal/models"
	"github.com/hongminglow/chama-backend/internal/storage"
	"github.com/hongminglow/chama-backend/internal/storage/memory"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewAuthenticator(store, newTestHasher(), logging.Nop()), store
}

func alice() RegisterInput {
	return RegisterInput{Username: "alice", Email: "a@x.com", Phone: "1", Gender: "f", Password: "pw123"}
}

func TestRegister_Success(t *testing.T) {
	a, store := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, alice())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)

	stored, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", stored.PasswordHash)
	assert.True(t, a.hasher.Verify(ctx, "pw123", stored.PasswordHash))
}

func TestRegister_DistinctIDs(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		in := alice()
		in.Email = email
		u, err := a.Register(ctx, in)
		require.NoError(t, err)
		assert.False(t, seen[u.ID])
		seen[u.ID] = true
	}
}

func TestRegister_MissingFields(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	for name, mutate := range map[string]func(*RegisterInput){
		"username": func(in *RegisterInput) { in.Username = "" },
		"email":    func(in *RegisterInput) { in.Email = "  " },
		"phone":    func(in *RegisterInput) { in.Phone = "" },
		"gender":   func(in *RegisterInput) { in.Gender = "" },
		"password": func(in *RegisterInput) { in.Password = "" },
	} {
		in := alice()
		mutate(&in)
		_, err := a.Register(context.Background(), in)
		require.ErrorIs(t, err, ErrMissingField, name)
		assert.Contains(t, err.Error(), name)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, err := a.Register(ctx, alice())
	require.NoError(t, err)

	second := RegisterInput{Username: "other", Email: " A@X.com ", Phone: "9", Gender: "m", Password: "different", Role: models.RoleAdmin}
	_, err = a.Register(ctx, second)
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_Roles(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	in := alice()
	in.Role = models.RoleSecretary
	u, err := a.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSecretary, u.Role)

	in = alice()
	in.Email = "b@x.com"
	in.Role = "superuser"
	_, err = a.Register(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidRole)
}

// raceStore hides existing users from FindByEmail so CreateUser's uniqueness
// check is the one that fires.
type raceStore struct {
	*memory.Store
}

func (raceStore) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, storage.ErrNotFound
}

func TestRegister_StoreConflictMapsToDuplicate(t *testing.T) {
	store := raceStore{memory.New()}
	a := NewAuthenticator(store, newTestHasher(), logging.Nop())

	_, err := a.Register(context.Background(), alice())
	require.NoError(t, err)
	_, err = a.Register(context.Background(), alice())
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	a, store := newTestAuthenticator(t)
	ctx := context.Background()

	u, err := a.Register(ctx, alice())
	require.NoError(t, err)

	id, err := a.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: u.ID, Email: "a@x.com", Role: models.RoleCustomer}, id)

	_, err = a.Login(ctx, "A@x.com ", "pw123")
	require.NoError(t, err)

	_, err = a.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login(ctx, "nobody@x.com", "pw123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.UpdateRole(ctx, "a@x.com", models.RoleDisabled)
	require.NoError(t, err)

	_, err = a.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials, "disabled account with wrong password must not reveal its state")

	_, err = a.Login(ctx, "a@x.com", "pw123")
	require.ErrorIs(t, err, ErrAccountDisabled)
}

type brokenStore struct {
	*memory.Store
}

func (brokenStore) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, errors.New("connection reset")
}

func TestLogin_StoreFailure(t *testing.T) {
	a := NewAuthenticator(brokenStore{memory.New()}, newTestHasher(), logging.Nop())

	_, err := a.Login(context.Background(), "a@x.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Register(context.Background(), alice())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}
