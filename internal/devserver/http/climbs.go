package http

import (
	"net/http"

	"github.com/aussiebroadwan/climblog/internal/devserver/service"
	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/httpx"
)

type ClimbsHandler struct {
	ClimbService *service.ClimbService
	AuthService  *service.AuthService
}

// HandleList returns every climb.
//
//	@Summary	List climbs
//	@Tags		Climbs
//	@Produce	json
//	@Success	200	{array}		climbsdk.Climb
//	@Failure	404	{object}	climbsdk.MessageResponse	"No climb records found."
//	@Router		/climbs [get].
func (h *ClimbsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	climbs, err := h.ClimbService.ListClimbs(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(climbs) == 0 {
		httpx.WriteMessage(w, http.StatusNotFound, "No climb records found.")
		return
	}

	out := make([]climbsdk.Climb, 0, len(climbs))
	for _, c := range climbs {
		out = append(out, toClimb(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate records a climb for the signed-in user.
//
//	@Summary	Add a climb
//	@Tags		Climbs
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		climbsdk.NewClimb	true	"Climb"
//	@Success	201		{object}	climbsdk.Climb
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	map[string]string
//	@Router		/climbs [post].
func (h *ClimbsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.AuthService)
	if !ok {
		return
	}

	var body climbsdk.NewClimb
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadJSON(w)
		return
	}

	climb, err := h.ClimbService.CreateClimb(r.Context(), user.ID, service.ClimbInput{
		GymID:           body.GymID,
		StyleID:         body.StyleID,
		DifficultyGrade: body.DifficultyGrade,
		SetDate:         body.SetDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toClimb(climb))
}
