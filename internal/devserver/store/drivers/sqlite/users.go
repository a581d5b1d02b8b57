package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, username, email, password_hash, first_name, last_name, skill_level_id, is_admin, created_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		lastName  sql.NullString
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &lastName, &u.SkillLevelID, &u.IsAdmin, &createdAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.LastName = mapNullString(lastName)
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.q, `SELECT COUNT(*) FROM users WHERE email = ? COLLATE NOCASE`, email)
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.q, `SELECT COUNT(*) FROM users WHERE username = ?`, username)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name, skill_level_id, is_admin, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.FirstName, mapStringNull(u.LastName), u.SkillLevelID, u.IsAdmin, formatTime(u.CreatedAt),
	)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
