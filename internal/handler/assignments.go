package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
	"github.com/maxton76/stall-bokning-sub012/internal/repository"
)

type memberStateResponse struct {
	MemberID          int64  `json:"memberID"`
	DisplayName       string `json:"displayName"`
	HistoricalPoints  int32  `json:"historicalPoints"`
	PreassignedPoints int32  `json:"preassignedPoints"`
	CurrentPoints     int32  `json:"currentPoints"`
	AssignedShifts    int32  `json:"assignedShifts"`
}

type runResponse struct {
	AssignedCount      int                   `json:"assignedCount"`
	UnassignedShiftIDs []int64               `json:"unassignedShiftIDs"`
	UpdatedShifts      []*domain.Shift       `json:"updatedShifts"`
	MemberStates       []memberStateResponse `json:"memberStates"`
}

// RunAssignment 触发一次自动排班
// 读取数据、计算、提交这三个阶段都在排班锁的保护下执行
func (h *Handler) RunAssignment(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	// 请求体是可选的，不传时使用配置的回溯窗口
	var req struct {
		HorizonDays int `json:"horizonDays" validate:"omitempty,gte=1"`
	}
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if schedule.Status == domain.ScheduleStatusArchived {
		h.errorResponse(w, r, "排班表已归档，无法排班")
		return
	}

	// 同一个排班表上的排班必须串行执行
	acquired, err := h.runLock.Acquire(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !acquired {
		h.errorResponse(w, r, "该排班表正在排班中，请稍后再试")
		return
	}
	defer func() {
		if err := h.runLock.Release(schedule.ID); err != nil {
			slog.Error("释放排班锁失败", "scheduleID", schedule.ID, "error", err)
		}
	}()

	// 先一次性读取所需的全部数据，读取失败时直接中止，不会产生任何修改
	input, err := h.assigner.PrepareRun(schedule, req.HorizonDays)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summary := h.assigner.RunAssignment(schedule, input)

	// 把本次新分配的班次一次性提交
	// 提交失败时整个排班视为失败，重新触发即可：已分配的班次不会被覆盖，
	// 历史积分每次都会重新计算
	if len(summary.UpdatedShifts) > 0 {
		updates := make([]*domain.ShiftUpdate, len(summary.UpdatedShifts))
		for i, shift := range summary.UpdatedShifts {
			updates[i] = &domain.ShiftUpdate{
				ShiftID:       shift.ID,
				AssignedTo:    *shift.AssignedTo,
				AssignedName:  shift.AssignedName,
				AssignedEmail: shift.AssignedEmail,
			}
		}

		if err := h.repository.CommitAssignments(updates); err != nil {
			switch {
			case errors.Is(err, repository.ErrShiftsModified):
				h.errorResponse(w, r, err.Error())
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
	}

	// 发布排班完成事件，由外部消费方负责通知成员
	// 此时排班结果已经提交，发布失败只记录日志，不影响响应
	event := &domain.AssignmentRunEvent{
		ScheduleID:      schedule.ID,
		StableID:        schedule.StableID,
		AssignedCount:   summary.AssignedCount,
		UnassignedCount: len(summary.UnassignedShiftIDs),
		MemberDeltas:    make([]domain.MemberPointsDelta, 0),
		FinishedAt:      time.Now(),
	}
	for _, state := range summary.States {
		if state.AssignedShifts == 0 {
			continue
		}
		event.MemberDeltas = append(event.MemberDeltas, domain.MemberPointsDelta{
			MemberID:    state.Member.ID,
			DisplayName: state.Member.DisplayName,
			Points:      state.CurrentPoints,
			Shifts:      state.AssignedShifts,
		})
	}
	if err := h.eventPublisher.PublishRunEvent(event); err != nil {
		slog.Error("发布排班事件失败", "scheduleID", schedule.ID, "error", err)
	}

	data := runResponse{
		AssignedCount:      summary.AssignedCount,
		UnassignedShiftIDs: summary.UnassignedShiftIDs,
		UpdatedShifts:      summary.UpdatedShifts,
		MemberStates:       make([]memberStateResponse, len(summary.States)),
	}
	for i, state := range summary.States {
		data.MemberStates[i] = memberStateResponse{
			MemberID:          state.Member.ID,
			DisplayName:       state.Member.DisplayName,
			HistoricalPoints:  state.HistoricalPoints,
			PreassignedPoints: state.PreassignedPoints,
			CurrentPoints:     state.CurrentPoints,
			AssignedShifts:    state.AssignedShifts,
		}
	}

	h.successResponse(w, r, "排班完成", data)
}
