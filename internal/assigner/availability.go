package assigner

import (
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

const timeLayout = "15:04:05"

// IsAvailable 判断成员在某个班次的时间段内是否可以排班
// 只有 never 类型的限制才会让成员不可用，preferred 类型只是参考信息
// 当班次的日期或时间无法解析时宽容处理，把成员当作可用（容忍脏数据）
func IsAvailable(member *domain.Member, shift *domain.Shift) bool {
	if len(member.Restrictions) == 0 {
		return true
	}

	if shift.Date.IsZero() {
		return true
	}
	weekday := isoWeekday(shift.Date)

	start, err := time.Parse(timeLayout, shift.StartTime)
	if err != nil {
		return true
	}

	for _, restriction := range member.Restrictions {
		if restriction.Kind != domain.RestrictionNever {
			continue
		}
		if restriction.Weekday != weekday {
			continue
		}

		restrictionStart, err := time.Parse(timeLayout, restriction.StartTime)
		if err != nil {
			continue
		}
		restrictionEnd, err := time.Parse(timeLayout, restriction.EndTime)
		if err != nil {
			continue
		}

		// 区间为左闭右开：[start, end)
		if !start.Before(restrictionStart) && start.Before(restrictionEnd) {
			return false
		}
	}

	return true
}

// isoWeekday 把 time.Weekday 转换为周一为 1 的 1-7 表示
func isoWeekday(date time.Time) int32 {
	weekday := int32(date.Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}
