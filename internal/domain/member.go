package domain

import (
	"time"
)

type RestrictionKind string

const (
	RestrictionNever     RestrictionKind = "never"
	RestrictionPreferred RestrictionKind = "preferred"
)

// AvailabilityRestriction 成员申报的按周重复的时间限制
// kind 为 never 时表示该时间段内绝对不能给该成员排班
// kind 为 preferred 时仅作为参考信息，引擎不做强制
type AvailabilityRestriction struct {
	ID        int64           `json:"id"`
	Weekday   int32           `json:"weekday"` // 1-7，周一为 1
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Kind      RestrictionKind `json:"kind"`
}

// MemberLimits 成员的班次数量上下限，nil 表示未设置
// 注意 min 字段目前只做存储，引擎不强制执行
type MemberLimits struct {
	MaxShiftsPerWeek  *int32 `json:"maxShiftsPerWeek"`
	MinShiftsPerWeek  *int32 `json:"minShiftsPerWeek"`
	MaxShiftsPerMonth *int32 `json:"maxShiftsPerMonth"`
	MinShiftsPerMonth *int32 `json:"minShiftsPerMonth"`
}

type Member struct {
	ID           int64                     `json:"id"`
	StableID     int64                     `json:"stableID"`
	DisplayName  string                    `json:"displayName"`
	Email        string                    `json:"email"`
	IsActive     bool                      `json:"isActive"`
	Restrictions []AvailabilityRestriction `json:"restrictions"`
	Limits       MemberLimits              `json:"limits"`
	CreatedAt    time.Time                 `json:"createdAt"`
	Version      int32                     `json:"-"`
}
