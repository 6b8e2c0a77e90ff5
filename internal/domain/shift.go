package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusUnassigned ShiftStatus = "unassigned"
	ShiftStatusAssigned   ShiftStatus = "assigned"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"
	ShiftStatusMissed     ShiftStatus = "missed"
)

type Shift struct {
	ID            int64       `json:"id"`
	ScheduleID    int64       `json:"scheduleID"`
	StableID      int64       `json:"stableID"`
	Date          time.Time   `json:"date"` // 只使用日期部分
	StartTime     string      `json:"startTime"`
	EndTime       string      `json:"endTime"`
	BasePoints    int32       `json:"basePoints"`
	Status        ShiftStatus `json:"status"`
	AssignedTo    *int64      `json:"assignedTo"` // 为 nil 时表示该班次还没有分配给任何成员
	AssignedName  string      `json:"assignedName"`
	AssignedEmail string      `json:"assignedEmail"`
	CreatedAt     time.Time   `json:"createdAt"`
	Version       int32       `json:"-"`
}

// ShiftUpdate 引擎对单个班次的分配结果，由调用方批量持久化
type ShiftUpdate struct {
	ShiftID       int64  `json:"shiftID"`
	AssignedTo    int64  `json:"assignedTo"`
	AssignedName  string `json:"assignedName"`
	AssignedEmail string `json:"assignedEmail"`
}
