package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/chama-backend/internal/models"
)

// CreateAttendance records a member's attendance. An unknown member yields
// storage.ErrInvalidReference.
func (s *Store) CreateAttendance(ctx context.Context, a models.Attendance) (models.Attendance, error) {
	const query = `
	INSERT INTO attendance (member_id, date, status)
	VALUES ($1, $2, $3)
	RETURNING id, member_id, date, status`
	var out models.Attendance
	err := s.pool.QueryRow(ctx, query, a.MemberID, a.Date, a.Status).Scan(&out.ID, &out.MemberID, &out.Date, &out.Status)
	if err != nil {
		return models.Attendance{}, translate(err)
	}
	return out, nil
}

// ListAttendance returns a member's attendance ordered by date.
func (s *Store) ListAttendance(ctx context.Context, memberID int64) ([]models.Attendance, error) {
	const query = `
	SELECT id, member_id, date, status
	FROM attendance
	WHERE member_id = $1
	ORDER BY date, id`
	rows, err := s.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Attendance, error) {
		var a models.Attendance
		err := row.Scan(&a.ID, &a.MemberID, &a.Date, &a.Status)
		return a, err
	})
}

// CreateContribution records a contribution. Amount travels as text so no
// precision is lost between the API and NUMERIC(10,2).
func (s *Store) CreateContribution(ctx context.Context, c models.Contribution) (models.Contribution, error) {
	const query = `
	INSERT INTO contributions (member_id, amount, date)
	VALUES ($1, $2::numeric, $3)
	RETURNING id, member_id, amount::text, date`
	var out models.Contribution
	err := s.pool.QueryRow(ctx, query, c.MemberID, c.Amount, c.Date).Scan(&out.ID, &out.MemberID, &out.Amount, &out.Date)
	if err != nil {
		return models.Contribution{}, translate(err)
	}
	return out, nil
}

// ListContributions returns a member's contributions ordered by date.
func (s *Store) ListContributions(ctx context.Context, memberID int64) ([]models.Contribution, error) {
	const query = `
	SELECT id, member_id, amount::text, date
	FROM contributions
	WHERE member_id = $1
	ORDER BY date, id`
	rows, err := s.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Contribution, error) {
		var c models.Contribution
		err := row.Scan(&c.ID, &c.MemberID, &c.Amount, &c.Date)
		return c, err
	})
}
