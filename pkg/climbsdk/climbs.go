package climbsdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListClimbs returns every climb. It needs no session.
func (c *Client) ListClimbs(ctx context.Context) ([]Climb, error) {
	var climbs []Climb
	if err := c.Request(ctx, http.MethodGet, "/climbs", nil, &climbs); err != nil {
		return nil, fmt.Errorf("error fetching climbs: %w", err)
	}
	return climbs, nil
}

// CreateClimb records a climb owned by the signed-in user.
func (c *Client) CreateClimb(ctx context.Context, in NewClimb) (Climb, error) {
	var climb Climb
	if err := c.Request(ctx, http.MethodPost, "/climbs", in, &climb); err != nil {
		return Climb{}, fmt.Errorf("error adding climb: %w", err)
	}
	return climb, nil
}

// ListAttempts returns the signed-in user's attempts.
func (c *Client) ListAttempts(ctx context.Context) (AttemptList, error) {
	var list AttemptList
	if err := c.Request(ctx, http.MethodGet, "/attempts", nil, &list); err != nil {
		return AttemptList{}, fmt.Errorf("error fetching attempts: %w", err)
	}
	return list, nil
}

// CreateAttempt records an attempt for the signed-in user.
func (c *Client) CreateAttempt(ctx context.Context, in NewAttempt) (Attempt, error) {
	var attempt Attempt
	if err := c.Request(ctx, http.MethodPost, "/attempts", in, &attempt); err != nil {
		return Attempt{}, fmt.Errorf("error adding attempt: %w", err)
	}
	return attempt, nil
}

func (c *Client) ListGyms(ctx context.Context) ([]Gym, error) {
	var gyms []Gym
	if err := c.Request(ctx, http.MethodGet, "/gyms", nil, &gyms); err != nil {
		return nil, fmt.Errorf("error fetching gyms: %w", err)
	}
	return gyms, nil
}

func (c *Client) ListStyles(ctx context.Context) ([]Style, error) {
	var styles []Style
	if err := c.Request(ctx, http.MethodGet, "/learn/styles", nil, &styles); err != nil {
		return nil, fmt.Errorf("error fetching styles: %w", err)
	}
	return styles, nil
}

func (c *Client) ListSkillLevels(ctx context.Context) ([]SkillLevel, error) {
	var levels []SkillLevel
	if err := c.Request(ctx, http.MethodGet, "/learn/skills", nil, &levels); err != nil {
		return nil, fmt.Errorf("error fetching skill levels: %w", err)
	}
	return levels, nil
}
