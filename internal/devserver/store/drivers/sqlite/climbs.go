package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
)

type climbsRepo struct {
	q dbtx
}

const climbSelect = `
SELECT c.id, c.gym_id, c.user_id, c.style_id, c.difficulty_grade, c.set_date,
       g.name, COALESCE(s.name, ''), u.username
FROM climbs c
JOIN gyms g ON g.id = c.gym_id
JOIN users u ON u.id = c.user_id
LEFT JOIN styles s ON s.id = c.style_id`

func scanClimb(row interface{ Scan(...any) error }) (domain.Climb, error) {
	var (
		c       domain.Climb
		styleID sql.NullInt64
		setDate sql.NullString
	)
	err := row.Scan(&c.ID, &c.GymID, &c.UserID, &styleID, &c.DifficultyGrade, &setDate, &c.GymName, &c.StyleName, &c.Username)
	if err != nil {
		return domain.Climb{}, mapNotFound(err)
	}
	c.StyleID = mapNullInt64Ptr(styleID)
	c.SetDate = mapNullDate(setDate)
	return c, nil
}

func (r *climbsRepo) ListClimbs(ctx context.Context) ([]domain.Climb, error) {
	rows, err := r.q.QueryContext(ctx, climbSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Climb
	for rows.Next() {
		c, err := scanClimb(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *climbsRepo) GetClimb(ctx context.Context, id int64) (domain.Climb, error) {
	return scanClimb(r.q.QueryRowContext(ctx, climbSelect+` WHERE c.id = ?`, id))
}

func (r *climbsRepo) CreateClimb(ctx context.Context, c domain.Climb) (domain.Climb, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO climbs (gym_id, user_id, style_id, difficulty_grade, set_date) VALUES (?, ?, ?, ?, ?)`,
		c.GymID, c.UserID, mapOptionalInt64(c.StyleID), c.DifficultyGrade, mapOptionalDate(c.SetDate),
	)
	if err != nil {
		return domain.Climb{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Climb{}, err
	}
	return r.GetClimb(ctx, id)
}
