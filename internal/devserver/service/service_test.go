package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/store/drivers/sqlite"
	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/aussiebroadwan/climblog/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *sqlite.Store
	auth     *AuthService
	climbs   *ClimbService
	attempts *AttemptService
	catalog  *CatalogService
	verifier *jwtx.EdDSAVerifier
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "devserver.sqlite")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	seeded, err := Seed(context.Background(), st, slogx.Discard())
	require.NoError(t, err)
	require.True(t, seeded)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	now := time.Now().Truncate(time.Second)
	clock := func() time.Time { return now }

	return &fixture{
		store:    st,
		auth:     &AuthService{Store: st, Signer: signer, Issuer: "climblog-test", AccessTTL: 15 * time.Minute, Now: clock},
		climbs:   &ClimbService{Store: st},
		attempts: &AttemptService{Store: st, Now: clock},
		catalog:  &CatalogService{Store: st},
		verifier: jwtx.NewVerifierEdDSA(keys, "climblog-test", nil),
		now:      now,
	}
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:     "sam",
		Email:        "sam@example.com",
		Password:     "Secure123!",
		FirstName:    "Sam",
		SkillLevelID: 1,
	}
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, field, verr.Field)
}

func TestSeedRunsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeded, err := Seed(ctx, f.store, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.False(t, seeded)

	gyms, err := f.catalog.ListGyms(ctx)
	require.NoError(t, err)
	require.Len(t, gyms, 4)

	styles, err := f.catalog.ListStyles(ctx)
	require.NoError(t, err)
	require.Len(t, styles, len(seedStyles))

	levels, err := f.catalog.ListSkillLevels(ctx)
	require.NoError(t, err)
	require.Equal(t, "Beginner", levels[0].Level)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, token, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	claims, err := f.verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "sam", claims.Username)

	token, err = f.auth.Login(ctx, "sam", "Secure123!")
	require.NoError(t, err)

	decoded, ok := jwtx.Decode(token)
	require.True(t, ok)
	id, ok := decoded.UserID()
	require.True(t, ok)
	require.Equal(t, user.ID, id)
	exp, ok := decoded.Expiry()
	require.True(t, ok)
	require.Equal(t, f.now.Add(15*time.Minute).Unix(), exp.Unix())

	_, err = f.auth.Login(ctx, "sam", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "nobody", "Secure123!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	// Email is checked first even when both collide.
	_, _, err = f.auth.Register(ctx, validRegistration())
	require.ErrorIs(t, err, ErrEmailTaken)

	in := validRegistration()
	in.Email = "other@example.com"
	_, _, err = f.auth.Register(ctx, in)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*RegisterInput)
		field  string
	}{
		"missing username": {func(in *RegisterInput) { in.Username = " " }, "username"},
		"bad email":        {func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		"short password":   {func(in *RegisterInput) { in.Password = "Ab1!" }, "password"},
		"no special":       {func(in *RegisterInput) { in.Password = "Secure1234" }, "password"},
		"no uppercase":     {func(in *RegisterInput) { in.Password = "secure123!" }, "password"},
		"long last name":   {func(in *RegisterInput) { in.LastName = strings.Repeat("x", 101) }, "last_name"},
		"unknown level":    {func(in *RegisterInput) { in.SkillLevelID = 99 }, "skill_level_id"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			_, _, err := f.auth.Register(ctx, in)
			requireValidation(t, err, tc.field)
		})
	}
}

func TestClimbsAndAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, _, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = f.climbs.CreateClimb(ctx, user.ID, ClimbInput{GymID: 99, StyleID: 1, DifficultyGrade: "V2"})
	requireValidation(t, err, "gym_id")
	_, err = f.climbs.CreateClimb(ctx, user.ID, ClimbInput{GymID: 1, StyleID: 1, DifficultyGrade: "V2", SetDate: "yesterday"})
	requireValidation(t, err, "set_date")

	climb, err := f.climbs.CreateClimb(ctx, user.ID, ClimbInput{GymID: 1, StyleID: 2, DifficultyGrade: "V4", SetDate: "2024-05-01"})
	require.NoError(t, err)
	require.Equal(t, "The Gym", climb.GymName)
	require.Equal(t, "Dyno", climb.StyleName)
	require.Equal(t, "sam", climb.Username)

	_, err = f.attempts.CreateAttempt(ctx, user.ID, AttemptInput{ClimbID: climb.ID, FunRating: 6})
	requireValidation(t, err, "fun_rating")
	_, err = f.attempts.CreateAttempt(ctx, user.ID, AttemptInput{ClimbID: climb.ID, FunRating: 3, Comments: strings.Repeat("a", 501)})
	requireValidation(t, err, "comments")
	_, err = f.attempts.CreateAttempt(ctx, user.ID, AttemptInput{ClimbID: 404, FunRating: 3})
	requireValidation(t, err, "climb_id")

	attempt, err := f.attempts.CreateAttempt(ctx, user.ID, AttemptInput{ClimbID: climb.ID, FunRating: 5, Completed: true})
	require.NoError(t, err)
	require.True(t, f.now.Equal(attempt.AttemptedAt))

	attempts, err := f.attempts.ListAttempts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.Equal(t, "Dyno", attempts[0].StyleName)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, _, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	require.NoError(t, f.auth.DeleteAccount(ctx, user.ID))
	require.ErrorIs(t, f.auth.DeleteAccount(ctx, user.ID), ErrUserNotFound)

	_, err = f.auth.User(ctx, user.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
