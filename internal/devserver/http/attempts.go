package http

import (
	"net/http"

	"github.com/aussiebroadwan/climblog/internal/devserver/service"
	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/httpx"
)

type AttemptsHandler struct {
	AttemptService *service.AttemptService
	AuthService    *service.AuthService
}

// HandleList returns the signed-in user's attempts.
//
//	@Summary	List my attempts
//	@Tags		Attempts
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	climbsdk.AttemptList
//	@Failure	401	{object}	map[string]string
//	@Failure	404	{object}	climbsdk.MessageResponse	"No attempt records found."
//	@Router		/attempts [get].
func (h *AttemptsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.AuthService)
	if !ok {
		return
	}

	attempts, err := h.AttemptService.ListAttempts(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(attempts) == 0 {
		httpx.WriteMessage(w, http.StatusNotFound, "No attempt records found.")
		return
	}

	out := climbsdk.AttemptList{Username: user.Username, Attempts: make([]climbsdk.Attempt, 0, len(attempts))}
	for _, a := range attempts {
		out.Attempts = append(out.Attempts, toAttempt(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate records an attempt for the signed-in user.
//
//	@Summary	Add an attempt
//	@Tags		Attempts
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		climbsdk.NewAttempt	true	"Attempt"
//	@Success	201		{object}	climbsdk.Attempt
//	@Failure	400		{object}	ErrorResponse	"Ratings must be between 1-5 / Comments cannot exceed 500 characters"
//	@Failure	401		{object}	map[string]string
//	@Router		/attempts [post].
func (h *AttemptsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.AuthService)
	if !ok {
		return
	}

	var body climbsdk.NewAttempt
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadJSON(w)
		return
	}

	attempt, err := h.AttemptService.CreateAttempt(r.Context(), user.ID, service.AttemptInput{
		ClimbID:     body.ClimbID,
		FunRating:   body.FunRating,
		Comments:    body.Comments,
		Completed:   body.Completed,
		AttemptedAt: body.AttemptedAt,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAttempt(attempt))
}
