package domain

import "time"

// MemberPointsDelta 单次排班中某个成员新增的积分
type MemberPointsDelta struct {
	MemberID    int64  `json:"memberID"`
	DisplayName string `json:"displayName"`
	Points      int32  `json:"points"`
	Shifts      int32  `json:"shifts"`
}

// AssignmentRunEvent 一次排班完成后发往消息队列的事件
// 事件的消费方（例如通知服务）不属于本服务
type AssignmentRunEvent struct {
	ScheduleID      int64               `json:"scheduleID"`
	StableID        int64               `json:"stableID"`
	AssignedCount   int                 `json:"assignedCount"`
	UnassignedCount int                 `json:"unassignedCount"`
	MemberDeltas    []MemberPointsDelta `json:"memberDeltas"`
	FinishedAt      time.Time           `json:"finishedAt"`
}
