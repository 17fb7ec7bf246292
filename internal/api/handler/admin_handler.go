package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"hacktrack/internal/api/middleware"
	"hacktrack/internal/app/service"
	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	reviewService *service.ReviewService
}

func NewAdminHandler(rs *service.ReviewService) *AdminHandler {
	return &AdminHandler{reviewService: rs}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.AdminOnly)

	r.Get("/teams", h.listTeams)
	r.Get("/teams/pending-count", h.pendingCount)
	r.Get("/teams/{teamID}", h.getTeam)
	r.Post("/teams/{teamID}/milestones/{kind}/approve", h.approveMilestone)
	r.Post("/teams/{teamID}/milestones/{kind}/reject", h.rejectMilestone)
	r.Put("/teams/{teamID}/milestones/{kind}", h.setMilestone)
	r.Put("/teams/{teamID}/evaluation", h.updateEvaluation)
}

func parseTeamID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
}

func (h *AdminHandler) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.reviewService.ListTeams(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, teams)
}

func (h *AdminHandler) pendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.reviewService.PendingCount(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]int{"pending": count})
}

func (h *AdminHandler) getTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := parseTeamID(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid team id")
		return
	}
	team, err := h.reviewService.GetTeam(r.Context(), teamID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, team)
}

func (h *AdminHandler) approveMilestone(w http.ResponseWriter, r *http.Request) {
	h.milestoneTransition(w, r, h.reviewService.ApproveMilestone)
}

func (h *AdminHandler) rejectMilestone(w http.ResponseWriter, r *http.Request) {
	h.milestoneTransition(w, r, h.reviewService.RejectMilestone)
}

func (h *AdminHandler) milestoneTransition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, teamID int64, kind model.MilestoneKind) (*model.Milestones, error),
) {
	teamID, err := parseTeamID(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid team id")
		return
	}
	kind, err := model.ParseMilestoneKind(chi.URLParam(r, "kind"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	milestones, err := apply(r.Context(), teamID, kind)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, milestones)
}

func (h *AdminHandler) setMilestone(w http.ResponseWriter, r *http.Request) {
	teamID, err := parseTeamID(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid team id")
		return
	}
	kind, err := model.ParseMilestoneKind(chi.URLParam(r, "kind"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	milestones, err := h.reviewService.SetMilestone(r.Context(), teamID, kind, req.Approved)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, milestones)
}

func (h *AdminHandler) updateEvaluation(w http.ResponseWriter, r *http.Request) {
	teamID, err := parseTeamID(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid team id")
		return
	}

	var req service.UpdateEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	eval, err := h.reviewService.UpdateEvaluation(r.Context(), teamID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, eval)
}
