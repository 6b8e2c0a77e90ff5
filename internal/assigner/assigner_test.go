package assigner

import (
	"slices"
	"testing"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	schedules []*domain.Schedule
	shifts    []*domain.Shift
	committed [][]*domain.ShiftUpdate
}

func (s *fakeStore) ListPublishedSchedules(stableID int64, since time.Time) ([]*domain.Schedule, error) {
	result := make([]*domain.Schedule, 0)
	for _, schedule := range s.schedules {
		if schedule.StableID != stableID || schedule.Status != domain.ScheduleStatusPublished {
			continue
		}
		if schedule.EndDate.Before(since) {
			continue
		}
		result = append(result, schedule)
	}
	return result, nil
}

func (s *fakeStore) ListAssignedShifts(scheduleIDs []int64, since time.Time) ([]*domain.Shift, error) {
	result := make([]*domain.Shift, 0)
	for _, shift := range s.shifts {
		if !slices.Contains(scheduleIDs, shift.ScheduleID) {
			continue
		}
		if shift.Status != domain.ShiftStatusAssigned || shift.Date.Before(since) {
			continue
		}
		result = append(result, shift)
	}
	return result, nil
}

func (s *fakeStore) ListShiftsForSchedule(scheduleID int64) ([]*domain.Shift, error) {
	result := make([]*domain.Shift, 0)
	for _, shift := range s.shifts {
		if shift.ScheduleID == scheduleID {
			result = append(result, shift)
		}
	}
	return result, nil
}

func (s *fakeStore) CommitAssignments(updates []*domain.ShiftUpdate) error {
	s.committed = append(s.committed, updates)
	return nil
}

type fakeDirectory struct {
	members []*domain.Member
}

func (d *fakeDirectory) ListEligibleMembers(stableID int64) ([]*domain.Member, error) {
	return d.members, nil
}

type fakeCalendar struct {
	holidays   map[string]bool
	multiplier float64
}

func (c *fakeCalendar) IsHoliday(date time.Time) bool {
	return c.holidays[date.Format("2006-01-02")]
}

func (c *fakeCalendar) Multiplier() float64 {
	return c.multiplier
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newMember(id int64, name string) *domain.Member {
	return &domain.Member{
		ID:          id,
		StableID:    1,
		DisplayName: name,
		Email:       name + "@example.se",
		IsActive:    true,
	}
}

func newShift(id int64, date time.Time, points int32) *domain.Shift {
	return &domain.Shift{
		ID:         id,
		ScheduleID: 1,
		StableID:   1,
		Date:       date,
		StartTime:  "06:00:00",
		EndTime:    "08:00:00",
		BasePoints: points,
		Status:     domain.ShiftStatusUnassigned,
	}
}

func testSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:        1,
		StableID:  1,
		Name:      "Utkast-v40",
		StartDate: day(2025, time.September, 8),
		EndDate:   day(2025, time.September, 14),
		Status:    domain.ScheduleStatusDraft,
	}
}

func TestRunAssignment_PrefersLowestTotalPoints(t *testing.T) {
	x := newMember(1, "anna.berg")
	y := newMember(2, "erik.lund")

	input := &RunInput{
		Members:    []*domain.Member{x, y},
		Historical: map[int64]int32{1: 0, 2: 10},
		Shifts: []*domain.Shift{
			newShift(1, day(2025, time.September, 8), 5),
			newShift(2, day(2025, time.September, 9), 5),
		},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	require.Equal(t, 2, summary.AssignedCount)
	require.Len(t, summary.UpdatedShifts, 2)

	// 两个班次都应该分给历史积分更低的 x
	for _, shift := range summary.UpdatedShifts {
		require.NotNil(t, shift.AssignedTo)
		assert.Equal(t, int64(1), *shift.AssignedTo)
		assert.Equal(t, domain.ShiftStatusAssigned, shift.Status)
		assert.Equal(t, "anna.berg", shift.AssignedName)
	}

	stateX := summary.States[0]
	stateY := summary.States[1]
	assert.Equal(t, int32(10), stateX.CurrentPoints)
	assert.Equal(t, int32(0), stateY.CurrentPoints)
	// 排班结束时两人的累计积分应该持平
	assert.Equal(t, stateX.TotalPoints(), stateY.TotalPoints())
}

func TestRunAssignment_TieBrokenByInputOrder(t *testing.T) {
	first := newMember(7, "first")
	second := newMember(3, "second") // ID 故意比 first 小，顺序只能来自输入

	input := &RunInput{
		Members:    []*domain.Member{first, second},
		Historical: map[int64]int32{},
		Shifts: []*domain.Shift{
			newShift(1, day(2025, time.September, 8), 5),
			newShift(2, day(2025, time.September, 9), 5),
		},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	require.Equal(t, 2, summary.AssignedCount)
	assert.Equal(t, int64(7), *summary.UpdatedShifts[0].AssignedTo)
	// first 拿到第一个班次后积分领先，第二个班次轮到 second
	assert.Equal(t, int64(3), *summary.UpdatedShifts[1].AssignedTo)
}

func TestRunAssignment_WeeklyLimitLeavesShiftUnassigned(t *testing.T) {
	maxPerWeek := int32(1)
	z := newMember(1, "zara")
	z.Limits.MaxShiftsPerWeek = &maxPerWeek

	assigned := newShift(1, day(2025, time.September, 8), 5)
	assigned.Status = domain.ShiftStatusAssigned
	memberID := int64(1)
	assigned.AssignedTo = &memberID

	pending := newShift(2, day(2025, time.September, 10), 5) // 同一周

	input := &RunInput{
		Members:    []*domain.Member{z},
		Historical: map[int64]int32{1: 0},
		Shifts:     []*domain.Shift{assigned, pending},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	assert.Equal(t, 0, summary.AssignedCount)
	assert.Equal(t, []int64{2}, summary.UnassignedShiftIDs)
	assert.Equal(t, domain.ShiftStatusUnassigned, pending.Status)
	assert.Nil(t, pending.AssignedTo)
}

func TestRunAssignment_HolidayWeighting(t *testing.T) {
	m := newMember(1, "malin")

	holiday := day(2025, time.December, 25)
	input := &RunInput{
		Members:    []*domain.Member{m},
		Historical: map[int64]int32{1: 0},
		Shifts:     []*domain.Shift{newShift(1, holiday, 10)},
	}

	calendar := &fakeCalendar{
		holidays:   map[string]bool{"2025-12-25": true},
		multiplier: 1.5,
	}
	a := New(&fakeStore{}, &fakeDirectory{}, calendar, 0)
	summary := a.RunAssignment(testSchedule(), input)

	require.Equal(t, 1, summary.AssignedCount)
	// 节假日班次按 1.5 倍计入积分，但 basePoints 本身不变
	assert.Equal(t, int32(15), summary.States[0].CurrentPoints)
	assert.Equal(t, int32(10), summary.UpdatedShifts[0].BasePoints)
}

func TestRunAssignment_RunDeltaInvariant(t *testing.T) {
	members := []*domain.Member{
		newMember(1, "a"),
		newMember(2, "b"),
		newMember(3, "c"),
	}

	preassigned := newShift(1, day(2025, time.September, 8), 10)
	preassigned.Status = domain.ShiftStatusAssigned
	memberID := int64(2)
	preassigned.AssignedTo = &memberID

	input := &RunInput{
		Members:    members,
		Historical: map[int64]int32{1: 3, 2: 0, 3: 8},
		Shifts: []*domain.Shift{
			preassigned,
			newShift(2, day(2025, time.September, 9), 5),
			newShift(3, day(2025, time.September, 10), 15),
			newShift(4, day(2025, time.September, 11), 10),
		},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	var currentSum, assignedSum int32
	for _, state := range summary.States {
		currentSum += state.CurrentPoints
	}
	for _, shift := range summary.UpdatedShifts {
		assignedSum += a.WeightedPoints(shift.BasePoints, shift.Date)
	}

	// 所有成员本次新增积分之和必须等于本次分配出去的加权积分之和
	assert.Equal(t, assignedSum, currentSum)
	// 排班前已存在的分配不计入 CurrentPoints
	assert.Equal(t, int32(30), currentSum)
}

func TestRunAssignment_RerunIsNoop(t *testing.T) {
	m := newMember(1, "a")

	assigned := newShift(1, day(2025, time.September, 8), 5)
	assigned.Status = domain.ShiftStatusAssigned
	memberID := int64(1)
	assigned.AssignedTo = &memberID
	assigned.AssignedName = m.DisplayName

	input := &RunInput{
		Members:    []*domain.Member{m},
		Historical: map[int64]int32{1: 0},
		Shifts:     []*domain.Shift{assigned},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	assert.Equal(t, 0, summary.AssignedCount)
	assert.Empty(t, summary.UpdatedShifts)
	assert.Empty(t, summary.UnassignedShiftIDs)
	// 已有的分配保持原样
	assert.Equal(t, int64(1), *assigned.AssignedTo)
	assert.Equal(t, domain.ShiftStatusAssigned, assigned.Status)
}

func TestRunAssignment_ProcessesShiftsInDateOrder(t *testing.T) {
	maxPerWeek := int32(1)
	m := newMember(1, "a")
	m.Limits.MaxShiftsPerWeek = &maxPerWeek

	// 输入顺序故意颠倒，引擎必须先处理日期更早的班次
	later := newShift(1, day(2025, time.September, 11), 5)
	earlier := newShift(2, day(2025, time.September, 9), 5)

	input := &RunInput{
		Members:    []*domain.Member{m},
		Historical: map[int64]int32{1: 0},
		Shifts:     []*domain.Shift{later, earlier},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	require.Equal(t, 1, summary.AssignedCount)
	assert.Equal(t, domain.ShiftStatusAssigned, earlier.Status)
	assert.Equal(t, domain.ShiftStatusUnassigned, later.Status)
}

func TestRunAssignment_NeverAvailableRespected(t *testing.T) {
	restricted := newMember(1, "restricted")
	restricted.Restrictions = []domain.AvailabilityRestriction{
		{Weekday: 1, StartTime: "06:00:00", EndTime: "08:00:00", Kind: domain.RestrictionNever},
	}
	free := newMember(2, "free")

	// 2025-09-08 是周一，正好落在 restricted 的限制时段内
	shift := newShift(1, day(2025, time.September, 8), 5)

	input := &RunInput{
		Members:    []*domain.Member{restricted, free},
		Historical: map[int64]int32{1: 0, 2: 100},
		Shifts:     []*domain.Shift{shift},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	require.Equal(t, 1, summary.AssignedCount)
	// 即使 free 的历史积分高得多，也不能把班次分给不可用的成员
	assert.Equal(t, int64(2), *shift.AssignedTo)
}

func TestRunAssignment_PreassignedBiasesSelection(t *testing.T) {
	x := newMember(1, "x")
	y := newMember(2, "y")

	preassigned := newShift(1, day(2025, time.September, 8), 10)
	preassigned.Status = domain.ShiftStatusAssigned
	memberID := int64(1)
	preassigned.AssignedTo = &memberID

	pending := newShift(2, day(2025, time.September, 9), 5)

	input := &RunInput{
		Members:    []*domain.Member{x, y},
		Historical: map[int64]int32{1: 0, 2: 0},
		Shifts:     []*domain.Shift{preassigned, pending},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	require.Equal(t, 1, summary.AssignedCount)
	// x 已经背了 10 分的旧分配，新班次应该轮到 y
	assert.Equal(t, int64(2), *pending.AssignedTo)
	assert.Equal(t, int32(10), summary.States[0].PreassignedPoints)
	assert.Equal(t, int32(0), summary.States[0].CurrentPoints)
}

func TestRunAssignment_IgnoresAssigneeOutsidePool(t *testing.T) {
	m := newMember(1, "a")

	// 已分配给一个不在候选名单中的成员（例如已离职）
	orphan := newShift(1, day(2025, time.September, 8), 10)
	orphan.Status = domain.ShiftStatusAssigned
	outsider := int64(99)
	orphan.AssignedTo = &outsider

	pending := newShift(2, day(2025, time.September, 9), 5)

	input := &RunInput{
		Members:    []*domain.Member{m},
		Historical: map[int64]int32{1: 0},
		Shifts:     []*domain.Shift{orphan, pending},
	}

	a := New(&fakeStore{}, &fakeDirectory{}, nil, 0)
	summary := a.RunAssignment(testSchedule(), input)

	require.Equal(t, 1, summary.AssignedCount)
	assert.Equal(t, int64(1), *pending.AssignedTo)
	// 离职成员的班次不会被重新分配
	assert.Equal(t, int64(99), *orphan.AssignedTo)
}

func TestPrepareRun_LoadsAllInputs(t *testing.T) {
	store := &fakeStore{
		schedules: []*domain.Schedule{
			{
				ID:       10,
				StableID: 1,
				Status:   domain.ScheduleStatusPublished,
				EndDate:  time.Now().AddDate(0, 0, -7),
			},
		},
	}

	published := newShift(1, time.Now().AddDate(0, 0, -10), 10)
	published.ScheduleID = 10
	published.Status = domain.ShiftStatusAssigned
	memberID := int64(1)
	published.AssignedTo = &memberID

	pending := newShift(2, time.Now().AddDate(0, 0, 3), 5)
	pending.ScheduleID = 2
	store.shifts = []*domain.Shift{published, pending}

	directory := &fakeDirectory{
		members: []*domain.Member{newMember(1, "a"), newMember(2, "b")},
	}

	a := New(store, directory, nil, 90)
	input, err := a.PrepareRun(&domain.Schedule{ID: 2, StableID: 1}, 0)

	require.NoError(t, err)
	assert.Len(t, input.Members, 2)
	assert.Equal(t, int32(10), input.Historical[1])
	assert.Equal(t, int32(0), input.Historical[2])
	require.Len(t, input.Shifts, 1)
	assert.Equal(t, int64(2), input.Shifts[0].ID)
}

func TestPrepareRun_HorizonOverride(t *testing.T) {
	store := &fakeStore{
		schedules: []*domain.Schedule{
			{
				ID:       10,
				StableID: 1,
				Status:   domain.ScheduleStatusPublished,
				EndDate:  time.Now().AddDate(0, 0, -30),
			},
		},
	}

	old := newShift(1, time.Now().AddDate(0, 0, -30), 10)
	old.ScheduleID = 10
	old.Status = domain.ShiftStatusAssigned
	memberID := int64(1)
	old.AssignedTo = &memberID
	store.shifts = []*domain.Shift{old}

	directory := &fakeDirectory{members: []*domain.Member{newMember(1, "a")}}

	a := New(store, directory, nil, 90)

	// 默认回溯 90 天时能看到 30 天前的班次
	input, err := a.PrepareRun(&domain.Schedule{ID: 2, StableID: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(10), input.Historical[1])

	// 回溯窗口缩小到 7 天后这个班次就不再计入
	input, err = a.PrepareRun(&domain.Schedule{ID: 2, StableID: 1}, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(0), input.Historical[1])
}
