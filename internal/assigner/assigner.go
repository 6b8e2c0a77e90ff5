package assigner

import (
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

// DefaultMemoryHorizonDays 历史积分的默认回溯窗口
const DefaultMemoryHorizonDays = 90

// ScheduleStore 引擎读取和持久化排班数据所依赖的存储接口
type ScheduleStore interface {
	ListPublishedSchedules(stableID int64, since time.Time) ([]*domain.Schedule, error)
	ListAssignedShifts(scheduleIDs []int64, since time.Time) ([]*domain.Shift, error)
	ListShiftsForSchedule(scheduleID int64) ([]*domain.Shift, error)
	CommitAssignments(updates []*domain.ShiftUpdate) error
}

// MemberDirectory 提供参与排班的成员名单
type MemberDirectory interface {
	ListEligibleMembers(stableID int64) ([]*domain.Member, error)
}

// HolidayCalendar 判断某个日期是否为节假日
// 节假日班次的积分会按 Multiplier 加权
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
	Multiplier() float64
}

type Assigner struct {
	store       ScheduleStore
	directory   MemberDirectory
	calendar    HolidayCalendar
	horizonDays int
}

func New(store ScheduleStore, directory MemberDirectory, calendar HolidayCalendar, horizonDays int) *Assigner {
	if horizonDays <= 0 {
		horizonDays = DefaultMemoryHorizonDays
	}

	return &Assigner{
		store:       store,
		directory:   directory,
		calendar:    calendar,
		horizonDays: horizonDays,
	}
}

// PrepareRun 读取一次排班所需的全部数据
// 这里是唯一会发生 IO 的阶段，之后的计算阶段不会再访问存储
// horizonDays 不大于 0 时使用配置的回溯窗口
func (a *Assigner) PrepareRun(schedule *domain.Schedule, horizonDays int) (*RunInput, error) {
	if horizonDays <= 0 {
		horizonDays = a.horizonDays
	}

	members, err := a.directory.ListEligibleMembers(schedule.StableID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]int64, len(members))
	for i, member := range members {
		memberIDs[i] = member.ID
	}

	historical, err := a.ComputeHistoricalPoints(schedule.StableID, memberIDs, horizonDays)
	if err != nil {
		return nil, err
	}

	shifts, err := a.store.ListShiftsForSchedule(schedule.ID)
	if err != nil {
		return nil, err
	}

	return &RunInput{
		Members:    members,
		Historical: historical,
		Shifts:     shifts,
	}, nil
}
