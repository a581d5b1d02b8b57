package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/climblog/internal/devserver/service"
	"github.com/aussiebroadwan/climblog/pkg/httpx"
	"github.com/aussiebroadwan/climblog/pkg/slogx"
)

// ErrorResponse is the body of validation and server failures.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, ErrorResponse{Error: msg})
}

func writeBadJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "The browser (or proxy) sent a request that this server could not understand.")
}

// writeServiceError maps validation failures to 400 and anything else to
// 500. Conflicts and auth failures are handled by the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: map[string][]string{verr.Field: {verr.Message}},
		})
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", "err", err)
	writeError(w, http.StatusInternalServerError, "An unexpected error has occurred. Please try again later.")
}

// writeUnknownUser answers a valid token whose account no longer exists.
func writeUnknownUser(w http.ResponseWriter, id int64) {
	httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"msg": fmt.Sprintf("Error loading the user %d", id),
	})
}
