package assigner

import (
	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

// HasReachedLimit 判断成员在该班次所在的周或月中是否已经达到班次数量上限
// 周和月都以班次自身的日期为准，而不是当前时间
// min 限制在这里不做检查，只有 max 限制会阻止分配
func HasReachedLimit(state *TrackingState, shift *domain.Shift) bool {
	limits := state.Member.Limits

	if limits.MaxShiftsPerWeek != nil {
		if state.ShiftsPerWeek[weekKey(shift.Date)] >= *limits.MaxShiftsPerWeek {
			return true
		}
	}

	if limits.MaxShiftsPerMonth != nil {
		if state.ShiftsPerMonth[monthKey(shift.Date)] >= *limits.MaxShiftsPerMonth {
			return true
		}
	}

	return false
}
