// Package memory is an in-process implementation of storage.Store. It backs
// tests and STORAGE_DRIVER=memory; data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/chama-backend/internal/models"
	"github.com/hongminglow/chama-backend/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu            sync.RWMutex
	users         map[int64]models.User
	emails        map[string]int64
	attendance    []models.Attendance
	contributions []models.Contribution
	nextUserID    int64
	nextRecordID  int64
	now           func() time.Time
}

func New() *Store {
	return &Store{
		users:  make(map[int64]models.User),
		emails: make(map[string]int64),
		now:    time.Now,
	}
}

func (s *Store) Close() {}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[user.Email]; exists {
		return models.User{}, storage.ErrAlreadyExists
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = s.now().UTC()
	s.users[user.ID] = user
	s.emails[user.Email] = user.ID
	return user, nil
}

func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UpdateRole(_ context.Context, email, role string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	user := s.users[id]
	user.Role = role
	s.users[id] = user
	return user, nil
}

func (s *Store) CreateAttendance(_ context.Context, a models.Attendance) (models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[a.MemberID]; !ok {
		return models.Attendance{}, storage.ErrInvalidReference
	}
	s.nextRecordID++
	a.ID = s.nextRecordID
	s.attendance = append(s.attendance, a)
	return a, nil
}

func (s *Store) ListAttendance(_ context.Context, memberID int64) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Attendance
	for _, a := range s.attendance {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateContribution(_ context.Context, c models.Contribution) (models.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[c.MemberID]; !ok {
		return models.Contribution{}, storage.ErrInvalidReference
	}
	s.nextRecordID++
	c.ID = s.nextRecordID
	s.contributions = append(s.contributions, c)
	return c, nil
}

func (s *Store) ListContributions(_ context.Context, memberID int64) ([]models.Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Contribution
	for _, c := range s.contributions {
		if c.MemberID == memberID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
