package assigner

import (
	"fmt"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

// TrackingState 单次排班中某个成员的运行时状态
// HistoricalPoints 在排班开始时计算一次，之后不再变化
// PreassignedPoints 来自排班表中排班前就已经分配的班次
// CurrentPoints 只统计本次排班新分配的班次
type TrackingState struct {
	Member            *domain.Member
	HistoricalPoints  int32
	PreassignedPoints int32
	CurrentPoints     int32
	AssignedShifts    int32
	ShiftsPerWeek     map[string]int32 // 按班次自身日期所在的 ISO 周计数
	ShiftsPerMonth    map[string]int32 // 按班次自身日期所在的月份计数
}

// TotalPoints 选择候选人时使用的排序依据
func (ts *TrackingState) TotalPoints() int32 {
	return ts.HistoricalPoints + ts.PreassignedPoints + ts.CurrentPoints
}

// RunInput 一次排班的全部输入数据
type RunInput struct {
	Members    []*domain.Member
	Historical map[int64]int32
	Shifts     []*domain.Shift
}

// RunSummary 一次排班的结果
// UpdatedShifts 中只包含本次新分配的班次，由调用方负责持久化
type RunSummary struct {
	AssignedCount      int
	UnassignedShiftIDs []int64
	UpdatedShifts      []*domain.Shift
	States             []*TrackingState
}

func weekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthKey(date time.Time) string {
	return fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
}
