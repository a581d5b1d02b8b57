package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
)

type attemptsRepo struct {
	q dbtx
}

const attemptSelect = `
SELECT a.id, a.user_id, a.climb_id, a.fun_rating, a.comments, a.completed, a.attempted_at,
       g.name, COALESCE(s.name, '')
FROM attempts a
JOIN climbs c ON c.id = a.climb_id
JOIN gyms g ON g.id = c.gym_id
LEFT JOIN styles s ON s.id = c.style_id`

func scanAttempt(row interface{ Scan(...any) error }) (domain.Attempt, error) {
	var (
		a           domain.Attempt
		comments    sql.NullString
		attemptedAt string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.ClimbID, &a.FunRating, &comments, &a.Completed, &attemptedAt, &a.GymName, &a.StyleName)
	if err != nil {
		return domain.Attempt{}, mapNotFound(err)
	}
	a.Comments = mapNullString(comments)
	a.AttemptedAt = parseTime(attemptedAt)
	return a, nil
}

func (r *attemptsRepo) ListAttemptsByUser(ctx context.Context, userID int64) ([]domain.Attempt, error) {
	rows, err := r.q.QueryContext(ctx, attemptSelect+` WHERE a.user_id = ? ORDER BY a.attempted_at, a.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attemptsRepo) CreateAttempt(ctx context.Context, a domain.Attempt) (domain.Attempt, error) {
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now().UTC()
	}

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO attempts (user_id, climb_id, fun_rating, comments, completed, attempted_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.UserID, a.ClimbID, a.FunRating, mapStringNull(a.Comments), a.Completed, formatTime(a.AttemptedAt),
	)
	if err != nil {
		return domain.Attempt{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Attempt{}, err
	}
	return scanAttempt(r.q.QueryRowContext(ctx, attemptSelect+` WHERE a.id = ?`, id))
}
