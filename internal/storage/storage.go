package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/chama-backend/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidReference indicates a foreign key points at a missing row.
var ErrInvalidReference = errors.New("referenced record does not exist")

// UserStore is the credential store. Email uniqueness is enforced by the
// implementation, not by callers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdateRole(ctx context.Context, email, role string) (models.User, error)
}

// AttendanceStore persists meeting attendance.
type AttendanceStore interface {
	CreateAttendance(ctx context.Context, a models.Attendance) (models.Attendance, error)
	ListAttendance(ctx context.Context, memberID int64) ([]models.Attendance, error)
}

// ContributionStore persists member contributions.
type ContributionStore interface {
	CreateContribution(ctx context.Context, c models.Contribution) (models.Contribution, error)
	ListContributions(ctx context.Context, memberID int64) ([]models.Contribution, error)
}

// Store bundles every persistence concern the server needs.
type Store interface {
	UserStore
	AttendanceStore
	ContributionStore
	Close()
}
