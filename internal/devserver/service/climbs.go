package service

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
)

type ClimbService struct {
	Store store.Store
}

// ClimbInput is a new climb. SetDate is YYYY-MM-DD or empty.
type ClimbInput struct {
	GymID           int64
	StyleID         int64
	DifficultyGrade string
	SetDate         string
}

func (s *ClimbService) ListClimbs(ctx context.Context) ([]domain.Climb, error) {
	return s.Store.Climbs().ListClimbs(ctx)
}

// CreateClimb records a climb owned by userID.
func (s *ClimbService) CreateClimb(ctx context.Context, userID int64, in ClimbInput) (domain.Climb, error) {
	grade := strings.TrimSpace(in.DifficultyGrade)
	switch {
	case in.GymID <= 0:
		return domain.Climb{}, invalid("gym_id", "Missing data for required field.")
	case in.StyleID <= 0:
		return domain.Climb{}, invalid("style_id", "Missing data for required field.")
	case grade == "":
		return domain.Climb{}, invalid("difficulty_grade", "Missing data for required field.")
	case len(grade) > 32:
		return domain.Climb{}, invalid("difficulty_grade", "Difficulty grade cannot exceed 32 characters")
	}

	var setDate *time.Time
	if in.SetDate != "" {
		d, err := time.Parse(time.DateOnly, in.SetDate)
		if err != nil {
			return domain.Climb{}, invalid("set_date", "Not a valid date.")
		}
		setDate = &d
	}

	if ok, err := s.Store.Catalog().GymExists(ctx, in.GymID); err != nil {
		return domain.Climb{}, err
	} else if !ok {
		return domain.Climb{}, invalid("gym_id", "Gym does not exist.")
	}
	if ok, err := s.Store.Catalog().StyleExists(ctx, in.StyleID); err != nil {
		return domain.Climb{}, err
	} else if !ok {
		return domain.Climb{}, invalid("style_id", "Style does not exist.")
	}

	styleID := in.StyleID
	return s.Store.Climbs().CreateClimb(ctx, domain.Climb{
		GymID:           in.GymID,
		UserID:          userID,
		StyleID:         &styleID,
		DifficultyGrade: grade,
		SetDate:         setDate,
	})
}
