package http

import (
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
)

func toGym(g domain.Gym) climbsdk.Gym {
	return climbsdk.Gym{ID: g.ID, CompanyID: g.CompanyID, Name: g.Name, City: g.City, StreetAddress: g.StreetAddress}
}

func toStyle(s domain.Style) climbsdk.Style {
	return climbsdk.Style{ID: s.ID, Name: s.Name, Description: s.Description}
}

func toSkillLevel(s domain.SkillLevel) climbsdk.SkillLevel {
	return climbsdk.SkillLevel{ID: s.ID, Level: s.Level, Description: s.Description}
}

func toUser(u domain.User) climbsdk.User {
	return climbsdk.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toClimb(c domain.Climb) climbsdk.Climb {
	out := climbsdk.Climb{
		ID:              c.ID,
		GymName:         c.GymName,
		Username:        c.Username,
		StyleName:       c.StyleName,
		DifficultyGrade: c.DifficultyGrade,
	}
	if c.SetDate != nil {
		out.SetDate = c.SetDate.Format(time.DateOnly)
	}
	return out
}

func toAttempt(a domain.Attempt) climbsdk.Attempt {
	return climbsdk.Attempt{
		ID:          a.ID,
		Climb:       climbsdk.AttemptClimb{ID: a.ClimbID, GymName: a.GymName, StyleName: a.StyleName},
		FunRating:   a.FunRating,
		Comments:    a.Comments,
		Completed:   a.Completed,
		AttemptedAt: a.AttemptedAt,
	}
}
