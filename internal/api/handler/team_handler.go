package handler

import (
	"encoding/json"
	"net/http"

	"hacktrack/internal/api/middleware"
	"hacktrack/internal/app/service"
	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// TeamHandler serves the team self-service endpoints. Every route
// resolves the team from the session token; a team can only reach its
// own records.
type TeamHandler struct {
	teamService   *service.TeamService
	adviceService *service.AdviceService
}

func NewTeamHandler(ts *service.TeamService, as *service.AdviceService) *TeamHandler {
	return &TeamHandler{teamService: ts, adviceService: as}
}

func (h *TeamHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.TeamOnly)

	r.Get("/me", h.getOwnTeam)
	r.Patch("/me", h.updateInfo)
	r.Patch("/me/tools", h.updateToolUsage)
	r.Patch("/me/progress", h.updateProgress)
	r.Post("/me/milestones/{kind}/request", h.requestMilestone)
	r.Get("/me/advice", h.getAdvice)
}

func (h *TeamHandler) teamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	teamID, ok := middleware.GetTeamIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing team context")
	}
	return teamID, ok
}

func (h *TeamHandler) getOwnTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}
	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) updateInfo(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}
	var req service.UpdateTeamInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	team, err := h.teamService.UpdateInfo(r.Context(), teamID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) updateToolUsage(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}
	var req service.UpdateToolUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	usage, err := h.teamService.UpdateToolUsage(r.Context(), teamID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, usage)
}

func (h *TeamHandler) updateProgress(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}
	var req service.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	progress, err := h.teamService.UpdateProgress(r.Context(), teamID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, progress)
}

func (h *TeamHandler) requestMilestone(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}
	kind, err := model.ParseMilestoneKind(chi.URLParam(r, "kind"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	milestones, err := h.teamService.RequestMilestone(r.Context(), teamID, kind)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, milestones)
}

func (h *TeamHandler) getAdvice(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}
	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	var resp service.AdviceResponse
	if r.URL.Query().Get("kind") == "summary" {
		resp = h.adviceService.ProgressSummary(r.Context(), team)
	} else {
		resp = h.adviceService.PitchAdvice(r.Context(), team)
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
