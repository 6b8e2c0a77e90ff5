package assigner

import (
	"sort"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

// RunAssignment 执行一次排班
// 整个过程是对内存数据的单趟贪心计算：按日期升序遍历未分配的班次，
// 每个班次分配给可用、未达上限且累计积分最低的成员
// 这个方法不会访问存储，结果中的班次由调用方负责提交
func (a *Assigner) RunAssignment(schedule *domain.Schedule, input *RunInput) *RunSummary {
	// 成员状态必须保存在有序切片中
	// 积分相同时选择输入顺序靠前的成员，遍历 map 无法保证这一点
	states := make([]*TrackingState, 0, len(input.Members))
	stateByID := make(map[int64]*TrackingState, len(input.Members))
	for _, member := range input.Members {
		state := &TrackingState{
			Member:           member,
			HistoricalPoints: input.Historical[member.ID],
			ShiftsPerWeek:    make(map[string]int32),
			ShiftsPerMonth:   make(map[string]int32),
		}
		states = append(states, state)
		stateByID[member.ID] = state
	}

	// 先把排班表中已经分配的班次回放到对应成员的状态中
	// 这样部分排完的排班表也能正确地影响后续的选择
	unassigned := make([]*domain.Shift, 0, len(input.Shifts))
	for _, shift := range input.Shifts {
		switch shift.Status {
		case domain.ShiftStatusAssigned:
			if shift.AssignedTo == nil {
				continue
			}
			if state, exists := stateByID[*shift.AssignedTo]; exists {
				a.replayShift(state, shift)
			}
		case domain.ShiftStatusUnassigned:
			unassigned = append(unassigned, shift)
		}
	}

	// 严格按日期升序处理，同一天内按开始时间和 ID 保持稳定顺序
	sort.SliceStable(unassigned, func(i, j int) bool {
		if !unassigned[i].Date.Equal(unassigned[j].Date) {
			return unassigned[i].Date.Before(unassigned[j].Date)
		}
		if unassigned[i].StartTime != unassigned[j].StartTime {
			return unassigned[i].StartTime < unassigned[j].StartTime
		}
		return unassigned[i].ID < unassigned[j].ID
	})

	summary := &RunSummary{
		UnassignedShiftIDs: make([]int64, 0),
		UpdatedShifts:      make([]*domain.Shift, 0),
		States:             states,
	}

	for _, shift := range unassigned {
		var chosen *TrackingState
		for _, state := range states {
			if !IsAvailable(state.Member, shift) {
				continue
			}
			if HasReachedLimit(state, shift) {
				continue
			}
			if chosen == nil || state.TotalPoints() < chosen.TotalPoints() {
				chosen = state
			}
		}

		// 没有任何可用的候选人不算错误，这个班次留待人工处理
		if chosen == nil {
			summary.UnassignedShiftIDs = append(summary.UnassignedShiftIDs, shift.ID)
			continue
		}

		memberID := chosen.Member.ID
		shift.Status = domain.ShiftStatusAssigned
		shift.AssignedTo = &memberID
		shift.AssignedName = chosen.Member.DisplayName
		shift.AssignedEmail = chosen.Member.Email

		a.assignShift(chosen, shift)

		summary.AssignedCount++
		summary.UpdatedShifts = append(summary.UpdatedShifts, shift)
	}

	return summary
}

// replayShift 把排班前已经存在的分配计入成员的运行时状态
// 积分记在 PreassignedPoints 中，CurrentPoints 只属于本次新分配的班次
func (a *Assigner) replayShift(state *TrackingState, shift *domain.Shift) {
	state.PreassignedPoints += a.WeightedPoints(shift.BasePoints, shift.Date)
	state.ShiftsPerWeek[weekKey(shift.Date)]++
	state.ShiftsPerMonth[monthKey(shift.Date)]++
}

// assignShift 把本次新分配的班次计入成员的运行时状态
// 周和月的计数用的是班次自身日期所在的周和月份
func (a *Assigner) assignShift(state *TrackingState, shift *domain.Shift) {
	state.CurrentPoints += a.WeightedPoints(shift.BasePoints, shift.Date)
	state.AssignedShifts++
	state.ShiftsPerWeek[weekKey(shift.Date)]++
	state.ShiftsPerMonth[monthKey(shift.Date)]++
}
