package http

import (
	"net/http"

	"github.com/aussiebroadwan/climblog/internal/devserver/service"
	"github.com/aussiebroadwan/climblog/pkg/httpx"
)

type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleGyms lists the gyms.
//
//	@Summary	List gyms
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		climbsdk.Gym
//	@Failure	404	{object}	climbsdk.MessageResponse
//	@Router		/gyms [get].
func (h *CatalogHandler) HandleGyms(w http.ResponseWriter, r *http.Request) {
	gyms, err := h.CatalogService.ListGyms(r.Context())
	writeList(w, r, gyms, err, "No gym records found.", toGym)
}

// HandleStyles lists the climbing styles.
//
//	@Summary	List styles
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		climbsdk.Style
//	@Failure	404	{object}	climbsdk.MessageResponse
//	@Router		/learn/styles [get].
func (h *CatalogHandler) HandleStyles(w http.ResponseWriter, r *http.Request) {
	styles, err := h.CatalogService.ListStyles(r.Context())
	writeList(w, r, styles, err, "No styles found", toStyle)
}

// HandleSkills lists the skill levels.
//
//	@Summary	List skill levels
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		climbsdk.SkillLevel
//	@Failure	404	{object}	climbsdk.MessageResponse
//	@Router		/learn/skills [get].
func (h *CatalogHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	levels, err := h.CatalogService.ListSkillLevels(r.Context())
	writeList(w, r, levels, err, "No skills found", toSkillLevel)
}

func writeList[T any, U any](w http.ResponseWriter, r *http.Request, items []T, err error, empty string, conv func(T) U) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(items) == 0 {
		httpx.WriteMessage(w, http.StatusNotFound, empty)
		return
	}

	out := make([]U, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
