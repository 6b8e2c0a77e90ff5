package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/maxton76/stall-bokning-sub012/internal/assigner"
	"github.com/maxton76/stall-bokning-sub012/internal/config"
	"github.com/maxton76/stall-bokning-sub012/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler 创建只够走到参数校验的 handler
// 依赖外部服务的协作组件传 nil，被测路径不会触达它们
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	h, err := NewHandler(&config.Config{}, nil, assigner.New(nil, nil, nil, 0), nil, nil)
	require.NoError(t, err)
	return h
}

func withSchedule(r *http.Request, schedule *domain.Schedule) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ScheduleCtx, schedule))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRunAssignment_RejectsInvalidHorizonOverride(t *testing.T) {
	h := newTestHandler(t)

	body := bytes.NewBufferString(`{"horizonDays": -1}`)
	r := httptest.NewRequest(http.MethodPost, "/schedules/1/assignment-run", body)
	r = withSchedule(r, &domain.Schedule{ID: 1, Status: domain.ScheduleStatusDraft})
	w := httptest.NewRecorder()

	h.RunAssignment(w, r)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestRunAssignment_RejectsMalformedBody(t *testing.T) {
	h := newTestHandler(t)

	body := bytes.NewBufferString(`{"horizonDays": `)
	r := httptest.NewRequest(http.MethodPost, "/schedules/1/assignment-run", body)
	r = withSchedule(r, &domain.Schedule{ID: 1, Status: domain.ScheduleStatusDraft})
	w := httptest.NewRecorder()

	h.RunAssignment(w, r)

	assert.False(t, decodeResponse(t, w).Success)
}

func TestRunAssignment_ArchivedSchedule(t *testing.T) {
	h := newTestHandler(t)

	// 不带请求体时使用默认回溯窗口，校验应该放行
	r := httptest.NewRequest(http.MethodPost, "/schedules/1/assignment-run", nil)
	r = withSchedule(r, &domain.Schedule{ID: 1, Status: domain.ScheduleStatusArchived})
	w := httptest.NewRecorder()

	h.RunAssignment(w, r)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "排班表已归档，无法排班", resp.Message)
}

func TestGetHistoricalPoints_RejectsInvalidHorizon(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name  string
		query string
	}{
		{name: "负数", query: "-3"},
		{name: "不是数字", query: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/stables/1/historical-points?horizonDays="+tt.query, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("stableID", "1")
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			h.GetHistoricalPoints(w, r)

			assert.False(t, decodeResponse(t, w).Success)
		})
	}
}
