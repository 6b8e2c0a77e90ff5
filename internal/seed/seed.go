package seed

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maxton76/stall-bokning-sub012/internal/domain"
	"github.com/maxton76/stall-bokning-sub012/internal/repository"
	"github.com/maxton76/stall-bokning-sub012/internal/utils"
)

// SeedMembers 插入 n 个随机成员
// 随机生成的邮箱可能撞上唯一索引，撞上时重新生成一个成员再试
func SeedMembers(r *repository.Repository, stableID int64, n int) {
	inserted := 0
	for inserted < n {
		member := utils.GenerateRandomMember(stableID)
		if err := r.CreateMember(member); err != nil {
			if isDuplicateEmail(err) {
				slog.Info("随机邮箱重复，重新生成", "email", member.Email)
				continue
			}
			slog.Error("插入成员失败", "error", err)
			return
		}
		inserted++
	}

	slog.Info("插入随机成员成功", "count", n)
}

// isDuplicateEmail 判断插入失败是否由邮箱唯一索引冲突引起
func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.ConstraintName == "members_email_key"
}

// SeedHistory 为过去 weeks 周各插入一张已发布的排班表
// 班次随机分配给现有成员，用来给历史积分统计提供数据
func SeedHistory(r *repository.Repository, stableID int64, weeks int) {
	members, err := r.ListEligibleMembers(stableID)
	if err != nil {
		slog.Error("获取马厩成员失败", "error", err)
		return
	}
	if len(members) == 0 {
		slog.Error("马厩中没有成员，请先插入成员")
		return
	}

	for w := weeks; w >= 1; w-- {
		start := mondayOfWeek(time.Now().AddDate(0, 0, -7*w))
		schedule := &domain.Schedule{
			StableID:  stableID,
			Name:      utils.GenerateScheduleName("Vecka"),
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 6),
			Status:    domain.ScheduleStatusPublished,
		}
		if err := r.CreateSchedule(schedule); err != nil {
			slog.Error("插入排班表失败", "error", err)
			return
		}

		for day := 0; day < 7; day++ {
			date := start.AddDate(0, 0, day)
			for _, slot := range utils.ShiftSlots {
				member := members[rand.Intn(len(members))]
				shift := &domain.Shift{
					ScheduleID:    schedule.ID,
					StableID:      stableID,
					Date:          date,
					StartTime:     slot.StartTime,
					EndTime:       slot.EndTime,
					BasePoints:    slot.BasePoints,
					Status:        domain.ShiftStatusAssigned,
					AssignedTo:    &member.ID,
					AssignedName:  member.DisplayName,
					AssignedEmail: member.Email,
				}
				if err := r.CreateShift(shift); err != nil {
					slog.Error("插入班次失败", "error", err)
					return
				}
			}
		}
	}

	slog.Info("插入历史排班表成功", "weeks", weeks)
}

// SeedDraftSchedule 插入一张从下周一开始的草稿排班表，班次全部未分配
func SeedDraftSchedule(r *repository.Repository, stableID int64, days int) {
	start := mondayOfWeek(time.Now().AddDate(0, 0, 7))
	schedule := &domain.Schedule{
		StableID:  stableID,
		Name:      utils.GenerateScheduleName("Utkast"),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, days-1),
		Status:    domain.ScheduleStatusDraft,
	}
	if err := r.CreateSchedule(schedule); err != nil {
		slog.Error("插入排班表失败", "error", err)
		return
	}

	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		for _, slot := range utils.ShiftSlots {
			shift := &domain.Shift{
				ScheduleID: schedule.ID,
				StableID:   stableID,
				Date:       date,
				StartTime:  slot.StartTime,
				EndTime:    slot.EndTime,
				BasePoints: slot.BasePoints,
				Status:     domain.ShiftStatusUnassigned,
			}
			if err := r.CreateShift(shift); err != nil {
				slog.Error("插入班次失败", "error", err)
				return
			}
		}
	}

	slog.Info("插入草稿排班表成功", "scheduleID", schedule.ID, "days", days)
}

// mondayOfWeek 返回日期所在周的周一（零点）
func mondayOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, 1-weekday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
