package assigner

import (
	"time"
)

// ComputeHistoricalPoints 统计回溯窗口内各成员在已发布排班表中累计的积分
// 返回的映射中一定包含 memberIDs 中的每个成员，没有历史记录的成员积分为 0
// 这是一个纯读取操作，不会产生任何副作用
func (a *Assigner) ComputeHistoricalPoints(stableID int64, memberIDs []int64, horizonDays int) (map[int64]int32, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultMemoryHorizonDays
	}
	threshold := time.Now().AddDate(0, 0, -horizonDays)

	points := make(map[int64]int32, len(memberIDs))
	for _, id := range memberIDs {
		points[id] = 0
	}

	schedules, err := a.store.ListPublishedSchedules(stableID, threshold)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return points, nil
	}

	scheduleIDs := make([]int64, len(schedules))
	for i, schedule := range schedules {
		scheduleIDs[i] = schedule.ID
	}

	shifts, err := a.store.ListAssignedShifts(scheduleIDs, threshold)
	if err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		if shift.AssignedTo == nil {
			continue
		}
		// 不统计候选集合之外的成员（例如已经离开马厩的成员）
		if _, exists := points[*shift.AssignedTo]; !exists {
			continue
		}
		points[*shift.AssignedTo] += shift.BasePoints
	}

	return points, nil
}
