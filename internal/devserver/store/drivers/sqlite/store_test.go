package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
	"github.com/aussiebroadwan/climblog/internal/devserver/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "devserver.sqlite")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fixture struct {
	level domain.SkillLevel
	style domain.Style
	gym   domain.Gym
	user  domain.User
}

func seed(t *testing.T, s *sqlite.Store) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture
	var err error

	f.level, err = s.Catalog().CreateSkillLevel(ctx, domain.SkillLevel{Level: "Beginner", Description: "New to climbing"})
	require.NoError(t, err)
	f.style, err = s.Catalog().CreateStyle(ctx, domain.Style{Name: "Bouldering", Description: "Short routes without ropes"})
	require.NoError(t, err)
	company, err := s.Catalog().CreateCompany(ctx, domain.Company{Name: "Blochaus", Website: "https://blochaus.com.au"})
	require.NoError(t, err)
	f.gym, err = s.Catalog().CreateGym(ctx, domain.Gym{CompanyID: company.ID, Name: "Blochaus Fyshwick", City: "Canberra"})
	require.NoError(t, err)
	f.user, err = s.Users().CreateUser(ctx, domain.User{
		Username:     "sam",
		Email:        "sam@example.com",
		PasswordHash: "argon2id$x",
		FirstName:    "Sam",
		SkillLevelID: f.level.ID,
	})
	require.NoError(t, err)
	return f
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))

	empty, err := s.Catalog().IsEmpty(context.Background())
	require.NoError(t, err)
	require.True(t, empty)
}

func TestUsers(t *testing.T) {
	s := newStore(t)
	f := seed(t, s)
	ctx := context.Background()

	require.NotZero(t, f.user.ID)
	require.False(t, f.user.CreatedAt.IsZero())

	got, err := s.Users().GetUserByUsername(ctx, "sam")
	require.NoError(t, err)
	require.Equal(t, f.user.ID, got.ID)
	require.Equal(t, "", got.LastName)
	require.WithinDuration(t, f.user.CreatedAt, got.CreatedAt, time.Millisecond)

	ok, err := s.Users().ExistsByEmail(ctx, "SAM@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Users().ExistsByUsername(ctx, "alex")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Users().CreateUser(ctx, domain.User{
		Username: "sam", Email: "other@example.com", PasswordHash: "h", FirstName: "S", SkillLevelID: f.level.ID,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByID(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestClimbsAndAttempts(t *testing.T) {
	s := newStore(t)
	f := seed(t, s)
	ctx := context.Background()

	setDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	climb, err := s.Climbs().CreateClimb(ctx, domain.Climb{
		GymID: f.gym.ID, UserID: f.user.ID, StyleID: &f.style.ID, DifficultyGrade: "V3", SetDate: &setDate,
	})
	require.NoError(t, err)
	require.Equal(t, "Blochaus Fyshwick", climb.GymName)
	require.Equal(t, "Bouldering", climb.StyleName)
	require.Equal(t, "sam", climb.Username)
	require.NotNil(t, climb.SetDate)
	require.True(t, setDate.Equal(*climb.SetDate))

	bare, err := s.Climbs().CreateClimb(ctx, domain.Climb{GymID: f.gym.ID, UserID: f.user.ID, DifficultyGrade: "V0"})
	require.NoError(t, err)
	require.Nil(t, bare.StyleID)
	require.Empty(t, bare.StyleName)

	climbs, err := s.Climbs().ListClimbs(ctx)
	require.NoError(t, err)
	require.Len(t, climbs, 2)

	at := time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC)
	attempt, err := s.Attempts().CreateAttempt(ctx, domain.Attempt{
		UserID: f.user.ID, ClimbID: climb.ID, FunRating: 4, Comments: "crimpy", Completed: true, AttemptedAt: at,
	})
	require.NoError(t, err)
	require.Equal(t, "Blochaus Fyshwick", attempt.GymName)
	require.True(t, at.Equal(attempt.AttemptedAt))

	_, err = s.Attempts().CreateAttempt(ctx, domain.Attempt{UserID: f.user.ID, ClimbID: climb.ID, FunRating: 9})
	require.Error(t, err)

	attempts, err := s.Attempts().ListAttemptsByUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.Equal(t, "crimpy", attempts[0].Comments)
}

func TestDeleteUserCascades(t *testing.T) {
	s := newStore(t)
	f := seed(t, s)
	ctx := context.Background()

	climb, err := s.Climbs().CreateClimb(ctx, domain.Climb{GymID: f.gym.ID, UserID: f.user.ID, DifficultyGrade: "V1"})
	require.NoError(t, err)
	_, err = s.Attempts().CreateAttempt(ctx, domain.Attempt{UserID: f.user.ID, ClimbID: climb.ID, FunRating: 3})
	require.NoError(t, err)

	require.NoError(t, s.Users().DeleteUser(ctx, f.user.ID))
	require.ErrorIs(t, s.Users().DeleteUser(ctx, f.user.ID), store.ErrNotFound)

	climbs, err := s.Climbs().ListClimbs(ctx)
	require.NoError(t, err)
	require.Empty(t, climbs)

	attempts, err := s.Attempts().ListAttemptsByUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Empty(t, attempts)
}

func TestWithTxRollsBack(t *testing.T) {
	s := newStore(t)
	f := seed(t, s)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Climbs().CreateClimb(ctx, domain.Climb{GymID: f.gym.ID, UserID: f.user.ID, DifficultyGrade: "V2"})
		require.NoError(t, err)
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	climbs, err := s.Climbs().ListClimbs(ctx)
	require.NoError(t, err)
	require.Empty(t, climbs)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Climbs().CreateClimb(ctx, domain.Climb{GymID: f.gym.ID, UserID: f.user.ID, DifficultyGrade: "V2"})
		return err
	}))
	climbs, err = s.Climbs().ListClimbs(ctx)
	require.NoError(t, err)
	require.Len(t, climbs, 1)
}
