package assigner

import (
	"math"
	"time"
)

// WeightedPoints 计算某个日期的班次实际计入公平性总分的积分
// 节假日的班次按日历配置的倍数加权，四舍五入到整数
// 加权只影响运行时的积分统计，不会改动班次本身的 basePoints
func (a *Assigner) WeightedPoints(basePoints int32, date time.Time) int32 {
	if a.calendar == nil {
		return basePoints
	}
	if !a.calendar.IsHoliday(date) {
		return basePoints
	}

	return int32(math.Round(float64(basePoints) * a.calendar.Multiplier()))
}
