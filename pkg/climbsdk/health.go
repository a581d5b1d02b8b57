package climbsdk

import (
	"context"
	"fmt"
	"net/http"
)

// Ready queries /readyz. A degraded backend answers 503, which surfaces as
// a KindServer error.
func (c *Client) Ready(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	if err := c.Request(ctx, http.MethodGet, "/readyz", nil, &health); err != nil {
		return HealthResponse{}, fmt.Errorf("error checking readiness: %w", err)
	}
	return health, nil
}
