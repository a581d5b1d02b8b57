package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are methods so
// a Tx can hand out the same repositories bound to the transaction.
type Store interface {
	Users() Users
	Climbs() Climbs
	Attempts() Attempts
	Catalog() Catalog

	ApplyMigrations() error

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a Store bound to a transaction.
type Tx interface {
	Users() Users
	Climbs() Climbs
	Attempts() Attempts
	Catalog() Catalog
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ExistsByEmail and ExistsByUsername back the duplicate checks on
	// registration.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// CreateUser inserts u and returns it with ID and CreatedAt set.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// DeleteUser cascades to the user's climbs and attempts.
	DeleteUser(ctx context.Context, id int64) error
}

type Climbs interface {
	ListClimbs(ctx context.Context) ([]domain.Climb, error)
	GetClimb(ctx context.Context, id int64) (domain.Climb, error)
	CreateClimb(ctx context.Context, c domain.Climb) (domain.Climb, error)
}

type Attempts interface {
	ListAttemptsByUser(ctx context.Context, userID int64) ([]domain.Attempt, error)
	CreateAttempt(ctx context.Context, a domain.Attempt) (domain.Attempt, error)
}

// Catalog is the reference data: skill levels, styles, companies and gyms.
type Catalog interface {
	ListSkillLevels(ctx context.Context) ([]domain.SkillLevel, error)
	ListStyles(ctx context.Context) ([]domain.Style, error)
	ListGyms(ctx context.Context) ([]domain.Gym, error)

	SkillLevelExists(ctx context.Context, id int64) (bool, error)
	StyleExists(ctx context.Context, id int64) (bool, error)
	GymExists(ctx context.Context, id int64) (bool, error)

	CreateSkillLevel(ctx context.Context, s domain.SkillLevel) (domain.SkillLevel, error)
	CreateStyle(ctx context.Context, s domain.Style) (domain.Style, error)
	CreateCompany(ctx context.Context, c domain.Company) (domain.Company, error)
	CreateGym(ctx context.Context, g domain.Gym) (domain.Gym, error)

	// IsEmpty reports whether no skill levels exist yet, which is how the
	// seeder decides to run.
	IsEmpty(ctx context.Context) (bool, error)
}
