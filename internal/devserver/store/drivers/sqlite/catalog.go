package sqlite

import (
	"context"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
)

type catalogRepo struct {
	q dbtx
}

func (r *catalogRepo) ListSkillLevels(ctx context.Context) ([]domain.SkillLevel, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, level, description FROM skill_levels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SkillLevel
	for rows.Next() {
		var s domain.SkillLevel
		if err := rows.Scan(&s.ID, &s.Level, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *catalogRepo) ListStyles(ctx context.Context) ([]domain.Style, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, description FROM styles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Style
	for rows.Next() {
		var s domain.Style
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *catalogRepo) ListGyms(ctx context.Context) ([]domain.Gym, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, company_id, name, city, COALESCE(street_address, '') FROM gyms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Gym
	for rows.Next() {
		var g domain.Gym
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.Name, &g.City, &g.StreetAddress); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *catalogRepo) SkillLevelExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, `SELECT COUNT(*) FROM skill_levels WHERE id = ?`, id)
}

func (r *catalogRepo) StyleExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, `SELECT COUNT(*) FROM styles WHERE id = ?`, id)
}

func (r *catalogRepo) GymExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, `SELECT COUNT(*) FROM gyms WHERE id = ?`, id)
}

func (r *catalogRepo) CreateSkillLevel(ctx context.Context, s domain.SkillLevel) (domain.SkillLevel, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO skill_levels (level, description) VALUES (?, ?)`, s.Level, s.Description)
	if err != nil {
		return domain.SkillLevel{}, mapConstraint(err)
	}
	s.ID, err = res.LastInsertId()
	return s, err
}

func (r *catalogRepo) CreateStyle(ctx context.Context, s domain.Style) (domain.Style, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO styles (name, description) VALUES (?, ?)`, s.Name, s.Description)
	if err != nil {
		return domain.Style{}, mapConstraint(err)
	}
	s.ID, err = res.LastInsertId()
	return s, err
}

func (r *catalogRepo) CreateCompany(ctx context.Context, c domain.Company) (domain.Company, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO companies (name, website) VALUES (?, ?)`, c.Name, c.Website)
	if err != nil {
		return domain.Company{}, mapConstraint(err)
	}
	c.ID, err = res.LastInsertId()
	return c, err
}

func (r *catalogRepo) CreateGym(ctx context.Context, g domain.Gym) (domain.Gym, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO gyms (company_id, name, city, street_address) VALUES (?, ?, ?, ?)`,
		g.CompanyID, g.Name, g.City, mapStringNull(g.StreetAddress),
	)
	if err != nil {
		return domain.Gym{}, mapConstraint(err)
	}
	g.ID, err = res.LastInsertId()
	return g, err
}

func (r *catalogRepo) IsEmpty(ctx context.Context) (bool, error) {
	found, err := exists(ctx, r.q, `SELECT COUNT(*) FROM skill_levels`)
	return !found, err
}
