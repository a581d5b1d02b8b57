package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/aussiebroadwan/climblog/pkg/slogx"
)

// PasswordRequirement is shown whenever a password fails the complexity
// rules.
const PasswordRequirement = "Password be at least 8 letter and contain at least: one uppercase letter, one number and one special character."

const passwordSpecials = `!@#$%^&*()":{}|<>`

type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration

	// Now defaults to time.Now
	Now func() time.Time
}

// RegisterInput is a new account request.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	SkillLevelID int64
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login for unknown user", slog.String("username", username))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login password mismatch", slog.Int64("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	return s.issue(user)
}

// Register validates in, creates the account and returns it with a fresh
// access token. The email check runs before the username check.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := validateRegistration(in); err != nil {
		return domain.User{}, "", err
	}

	ok, err := s.Store.Catalog().SkillLevelExists(ctx, in.SkillLevelID)
	if err != nil {
		return domain.User{}, "", err
	}
	if !ok {
		return domain.User{}, "", invalid("skill_level_id", "Skill level does not exist.")
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, "", err
	}

	var created domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Users().ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		taken, err = tx.Users().ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		created, err = tx.Users().CreateUser(ctx, domain.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			SkillLevelID: in.SkillLevelID,
			CreatedAt:    s.now().UTC(),
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrUsernameTaken
		}
		return err
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issue(created)
	if err != nil {
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user registered", slog.Int64("user_id", created.ID))
	return created, token, nil
}

// DeleteAccount removes the user and everything they own.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.Store.Users().DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// User loads the account a verified token belongs to.
func (s *AuthService) User(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// SkillLevel returns the skill level with id, or false.
func (s *AuthService) SkillLevel(ctx context.Context, id int64) (domain.SkillLevel, bool, error) {
	levels, err := s.Store.Catalog().ListSkillLevels(ctx)
	if err != nil {
		return domain.SkillLevel{}, false, err
	}
	for _, l := range levels {
		if l.ID == id {
			return l, true, nil
		}
	}
	return domain.SkillLevel{}, false, nil
}

func (s *AuthService) issue(u domain.User) (string, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(u.ID, u.Username, ttl, s.Issuer, nil, s.now())
	return s.Signer.Sign(claims)
}

func validateRegistration(in RegisterInput) error {
	switch {
	case in.Username == "":
		return invalid("username", "Missing data for required field.")
	case len(in.Username) > 100:
		return invalid("username", "Username cannot exceed 100 characters")
	case in.Email == "":
		return invalid("email", "Missing data for required field.")
	case len(in.Email) > 254:
		return invalid("email", "Email cannot exceed 254 characters")
	case in.FirstName == "":
		return invalid("first_name", "Missing data for required field.")
	case len(in.FirstName) > 100:
		return invalid("first_name", "First name cannot exceed 100 characters")
	case len(in.LastName) > 100:
		return invalid("last_name", "Last name cannot exceed 100 characters")
	case in.SkillLevelID <= 0:
		return invalid("skill_level_id", "Missing data for required field.")
	}

	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return invalid("email", "Please enter a valid email address")
	}
	if !passwordComplex(in.Password) {
		return invalid("password", PasswordRequirement)
	}
	return nil
}

func passwordComplex(p string) bool {
	if len(p) < 8 {
		return false
	}
	var upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && digit && special
}
