package handler

import (
	"net/http"

	"hacktrack/internal/app/service"
	"hacktrack/internal/common"
	"hacktrack/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(ls *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getLeaderboard) // GET /api/v1/leaderboard?sort=total|elo|progress
}

func (h *LeaderboardHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	key, err := model.ParseLeaderboardSort(r.URL.Query().Get("sort"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.leaderboardService.Get(r.Context(), key)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type LeaderboardResponse struct {
		Sort    model.LeaderboardSort    `json:"sort"`
		Entries []model.LeaderboardEntry `json:"entries"`
	}
	common.RespondWithJSON(w, http.StatusOK, LeaderboardResponse{Sort: key, Entries: entries})
}
