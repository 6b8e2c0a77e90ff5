package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetStableMembers(w http.ResponseWriter, r *http.Request) {
	stableIDParam := chi.URLParam(r, "stableID")
	stableID, err := strconv.ParseInt(stableIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "马厩ID无效")
		return
	}

	members, err := h.repository.ListEligibleMembers(stableID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取马厩成员成功", members)
}

func (h *Handler) GetHistoricalPoints(w http.ResponseWriter, r *http.Request) {
	stableIDParam := chi.URLParam(r, "stableID")
	stableID, err := strconv.ParseInt(stableIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "马厩ID无效")
		return
	}

	// 回溯窗口可以通过查询参数覆盖，默认使用配置中的值
	var query struct {
		HorizonDays int `validate:"omitempty,gte=1"`
	}
	if param := r.URL.Query().Get("horizonDays"); param != "" {
		query.HorizonDays, err = strconv.Atoi(param)
		if err != nil {
			h.errorResponse(w, r, "回溯天数无效")
			return
		}
	}
	if err := h.validate.Struct(query); err != nil {
		h.badRequest(w, r, err)
		return
	}

	horizonDays := query.HorizonDays
	if horizonDays == 0 {
		horizonDays = h.config.Assignment.MemoryHorizonDays
	}

	members, err := h.repository.ListEligibleMembers(stableID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	memberIDs := make([]int64, len(members))
	for i, member := range members {
		memberIDs[i] = member.ID
	}

	points, err := h.assigner.ComputeHistoricalPoints(stableID, memberIDs, horizonDays)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := struct {
		HorizonDays int             `json:"horizonDays"`
		Points      map[int64]int32 `json:"points"`
	}{
		HorizonDays: horizonDays,
		Points:      points,
	}

	h.successResponse(w, r, "获取历史积分成功", data)
}
