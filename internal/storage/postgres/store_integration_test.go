package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/chama-backend/internal/models"
	"github.com/hongminglow/chama-backend/internal/storage"
)

// newIntegrationStore connects to TEST_DATABASE_URL. The tests only run when
// RUN_PG_INTEGRATION=true.
func newIntegrationStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("RUN_PG_INTEGRATION") != "true" {
		t.Skip("set RUN_PG_INTEGRATION=true to run postgres integration tests")
	}
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Overload(path)
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Fatal("TEST_DATABASE_URL is required")
	}

	s, err := NewStore(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func TestStoreIntegration_Users(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()
	email := uniqueEmail("users")

	created, err := s.CreateUser(ctx, models.User{
		Username: "alice", Email: email, Phone: "1", Gender: "f",
		Role: models.RoleCustomer, PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = s.CreateUser(ctx, models.User{
		Username: "mallory", Email: email, Phone: "2", Gender: "m",
		Role: models.RoleCustomer, PasswordHash: "hash",
	})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	byEmail, err := s.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, email, byID.Email)

	updated, err := s.UpdateRole(ctx, email, models.RoleDisabled)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDisabled, updated.Role)

	_, err = s.FindByEmail(ctx, uniqueEmail("ghost"))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreIntegration_ConcurrentRegistration(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()
	email := uniqueEmail("race")

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateUser(ctx, models.User{
				Username: fmt.Sprintf("racer%d", i), Email: email, Phone: "1", Gender: "x",
				Role: models.RoleCustomer, PasswordHash: "hash",
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	ok := 0
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, storage.ErrAlreadyExists)
	}
	assert.Equal(t, 1, ok)
}

func TestStoreIntegration_Records(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	member, err := s.CreateUser(ctx, models.User{
		Username: "bob", Email: uniqueEmail("records"), Phone: "1", Gender: "m",
		Role: models.RoleMember, PasswordHash: "hash",
	})
	require.NoError(t, err)

	d1 := time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)
	d0 := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err = s.CreateAttendance(ctx, models.Attendance{MemberID: member.ID, Date: d1, Status: models.AttendanceAbsent})
	require.NoError(t, err)
	_, err = s.CreateAttendance(ctx, models.Attendance{MemberID: member.ID, Date: d0, Status: models.AttendancePresent})
	require.NoError(t, err)

	list, err := s.ListAttendance(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.AttendancePresent, list[0].Status)

	_, err = s.CreateAttendance(ctx, models.Attendance{MemberID: -1, Date: d0, Status: models.AttendancePresent})
	require.ErrorIs(t, err, storage.ErrInvalidReference)

	c, err := s.CreateContribution(ctx, models.Contribution{MemberID: member.ID, Amount: "150.5", Date: d0})
	require.NoError(t, err)
	assert.Equal(t, "150.50", c.Amount)

	contributions, err := s.ListContributions(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, contributions, 1)
}
