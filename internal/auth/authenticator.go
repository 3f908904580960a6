package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hongminglow/chama-backend/internal/logging"
	"github.com/hongminglow/chama-backend/internal/models"
	"github.com/hongminglow/chama-backend/internal/storage"
)

// RegisterInput carries the fields accepted at registration. An empty Role
// means models.DefaultRole.
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Gender   string
	Password string
	Role     string
}

// Authenticator registers users and verifies their credentials.
type Authenticator struct {
	users  storage.UserStore
	hasher *PasswordHasher
	logger logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthenticator wires the credential store and password hasher.
func NewAuthenticator(users storage.UserStore, hasher *PasswordHasher, logger logging.Logger) *Authenticator {
	return &Authenticator{users: users, hasher: hasher, logger: logger}
}

// NormalizeEmail trims and lowercases an email so lookups and the unique index
// agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates input, hashes the password and persists a new user.
func (a *Authenticator) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	user := models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    NormalizeEmail(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Gender:   strings.TrimSpace(in.Gender),
		Role:     strings.TrimSpace(in.Role),
	}
	if missing := missingFields(user, in.Password); len(missing) > 0 {
		return models.User{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	if user.Role == "" {
		user.Role = models.DefaultRole
	}
	if !models.IsValidRole(user.Role) {
		return models.User{}, fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}

	// Skips hashing for known duplicates; CreateUser still enforces uniqueness.
	if _, err := a.users.FindByEmail(ctx, user.Email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := a.hasher.Hash(ctx, in.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	a.logger.Info(ctx, "user registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Login verifies email and password. Unknown email and wrong password both
// return ErrInvalidCredentials. The disabled check runs only after the
// password has been verified.
func (a *Authenticator) Login(ctx context.Context, email, password string) (Identity, error) {
	email = NormalizeEmail(email)

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return Identity{}, fmt.Errorf("lookup user: %w", err)
		}
		// Spend the same bcrypt work as a real comparison.
		a.hasher.Verify(ctx, password, a.dummy())
		a.logger.Info(ctx, "login rejected: unknown email", "email", email)
		return Identity{}, ErrInvalidCredentials
	}

	if !a.hasher.Verify(ctx, password, user.PasswordHash) {
		a.logger.Info(ctx, "login rejected: bad password", "user_id", user.ID)
		return Identity{}, ErrInvalidCredentials
	}

	if user.Disabled() {
		a.logger.Warn(ctx, "login rejected: account disabled", "user_id", user.ID)
		return Identity{}, ErrAccountDisabled
	}

	return Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (a *Authenticator) dummy() string {
	a.dummyOnce.Do(func() {
		ctx := context.Background()
		buf := make([]byte, 16)
		_, _ = rand.Read(buf)
		hash, err := a.hasher.Hash(ctx, hex.EncodeToString(buf))
		if err != nil {
			a.logger.Error(ctx, "build dummy hash", "error", err)
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

func missingFields(u models.User, password string) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"username", u.Username},
		{"email", u.Email},
		{"password", password},
		{"phone", u.Phone},
		{"gender", u.Gender},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
