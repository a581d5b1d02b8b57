package climbsdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// Token field names the API has used for the bearer token in login and
// registration responses. The first non-empty one wins.
const (
	TokenFieldAccessToken = "access_token"
	TokenFieldDescriptive = "Authentication Bearer token"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	SkillLevelID int64  `json:"skill_level_id"`
}

// RegisterResponse is returned from POST /register.
type RegisterResponse struct {
	Message string `json:"message"`

	// Token is the bearer token issued to the new account
	Token string `json:"access_token"`

	User User `json:"user"`
}

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// User is a climber's public profile.
type User struct {
	ID         int64       `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name,omitempty"`
	SkillLevel *SkillLevel `json:"user_skill_level,omitempty"`
}

// ============================================================================
// Climbing Types
// ============================================================================

// Climb is a route set at a gym.
type Climb struct {
	ID              int64  `json:"id"`
	GymName         string `json:"gym_name"`
	Username        string `json:"username"`
	StyleName       string `json:"style_name"`
	DifficultyGrade string `json:"difficulty_grade"`

	// SetDate is a calendar date (YYYY-MM-DD) or empty
	SetDate string `json:"set_date,omitempty"`
}

// NewClimb is the body of POST /climbs. The owner is taken from the token.
type NewClimb struct {
	GymID           int64  `json:"gym_id"`
	StyleID         int64  `json:"style_id"`
	DifficultyGrade string `json:"difficulty_grade"`
	SetDate         string `json:"set_date,omitempty"`
}

// AttemptClimb is the short form of a climb embedded in an attempt.
type AttemptClimb struct {
	ID        int64  `json:"id"`
	GymName   string `json:"gym_name"`
	StyleName string `json:"style_name"`
}

// Attempt is one go at a climb.
type Attempt struct {
	ID          int64        `json:"id"`
	Climb       AttemptClimb `json:"climb"`
	FunRating   int          `json:"fun_rating"`
	Comments    string       `json:"comments,omitempty"`
	Completed   bool         `json:"completed"`
	AttemptedAt time.Time    `json:"attempted_at"`
}

// AttemptList is returned from GET /attempts.
type AttemptList struct {
	Username string    `json:"username"`
	Attempts []Attempt `json:"attempts"`
}

// NewAttempt is the body of POST /attempts. FunRating is 1 to 5 and
// Comments at most 500 characters. A nil AttemptedAt means now.
type NewAttempt struct {
	ClimbID     int64      `json:"climb_id"`
	FunRating   int        `json:"fun_rating"`
	Comments    string     `json:"comments,omitempty"`
	Completed   bool       `json:"completed"`
	AttemptedAt *time.Time `json:"attempted_at,omitempty"`
}

// ============================================================================
// Reference Types
// ============================================================================

type Gym struct {
	ID            int64  `json:"id"`
	CompanyID     int64  `json:"company_id"`
	Name          string `json:"name"`
	City          string `json:"city"`
	StreetAddress string `json:"street_address"`
}

type Style struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SkillLevel struct {
	ID          int64  `json:"id"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
