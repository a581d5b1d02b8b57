// Package domain holds the records the dev backend stores.
package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	SkillLevelID int64
	IsAdmin      bool
	CreatedAt    time.Time
}

type SkillLevel struct {
	ID          int64
	Level       string
	Description string
}

type Style struct {
	ID          int64
	Name        string
	Description string
}

type Company struct {
	ID      int64
	Name    string
	Website string
}

type Gym struct {
	ID            int64
	CompanyID     int64
	Name          string
	City          string
	StreetAddress string
}

// Climb is a route logged by a user. GymName, StyleName and Username are
// joined in on reads.
type Climb struct {
	ID              int64
	GymID           int64
	UserID          int64
	StyleID         *int64
	DifficultyGrade string
	SetDate         *time.Time

	GymName   string
	StyleName string
	Username  string
}

// Attempt is one go at a climb. The climb's gym and style names are joined
// in on reads.
type Attempt struct {
	ID          int64
	UserID      int64
	ClimbID     int64
	FunRating   int
	Comments    string
	Completed   bool
	AttemptedAt time.Time

	GymName   string
	StyleName string
}
