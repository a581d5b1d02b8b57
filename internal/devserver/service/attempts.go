package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
)

type AttemptService struct {
	Store store.Store

	// Now defaults to time.Now
	Now func() time.Time
}

// AttemptInput is a new attempt. A nil AttemptedAt means now.
type AttemptInput struct {
	ClimbID     int64
	FunRating   int
	Comments    string
	Completed   bool
	AttemptedAt *time.Time
}

func (s *AttemptService) ListAttempts(ctx context.Context, userID int64) ([]domain.Attempt, error) {
	return s.Store.Attempts().ListAttemptsByUser(ctx, userID)
}

// CreateAttempt records an attempt by userID. FunRating must be 1 to 5 and
// Comments at most 500 characters.
func (s *AttemptService) CreateAttempt(ctx context.Context, userID int64, in AttemptInput) (domain.Attempt, error) {
	switch {
	case in.ClimbID <= 0:
		return domain.Attempt{}, invalid("climb_id", "Missing data for required field.")
	case in.FunRating < 1 || in.FunRating > 5:
		return domain.Attempt{}, invalid("fun_rating", "Ratings must be between 1-5")
	case utf8.RuneCountInString(in.Comments) > 500:
		return domain.Attempt{}, invalid("comments", "Comments cannot exceed 500 characters")
	}

	if _, err := s.Store.Climbs().GetClimb(ctx, in.ClimbID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Attempt{}, invalid("climb_id", "Climb does not exist.")
		}
		return domain.Attempt{}, err
	}

	at := time.Now()
	if s.Now != nil {
		at = s.Now()
	}
	if in.AttemptedAt != nil {
		at = *in.AttemptedAt
	}

	return s.Store.Attempts().CreateAttempt(ctx, domain.Attempt{
		UserID:      userID,
		ClimbID:     in.ClimbID,
		FunRating:   in.FunRating,
		Comments:    in.Comments,
		Completed:   in.Completed,
		AttemptedAt: at.UTC(),
	})
}
