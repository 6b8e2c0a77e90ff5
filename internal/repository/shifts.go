package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

// ErrShiftsModified 提交分配结果时发现有班次已经不再是未分配状态
// 说明有并发操作修改了排班表，整个提交都会被回滚，调用方需要重新排班
var ErrShiftsModified = errors.New("部分班次在排班过程中被其他操作修改，提交已回滚")

const shiftColumns = `
	id, schedule_id, stable_id, date, start_time, end_time,
	base_points, status, assigned_to, assigned_name, assigned_email,
	created_at, version
`

func scanShift(dst interface{ Scan(...any) error }) (*domain.Shift, error) {
	shift := &domain.Shift{}
	fields := []any{
		&shift.ID,
		&shift.ScheduleID,
		&shift.StableID,
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&shift.BasePoints,
		&shift.Status,
		&shift.AssignedTo,
		&shift.AssignedName,
		&shift.AssignedEmail,
		&shift.CreatedAt,
		&shift.Version,
	}
	if err := dst.Scan(fields...); err != nil {
		return nil, err
	}
	return shift, nil
}

// ListShiftsForSchedule 获取排班表中的所有班次，按日期升序排列
func (r *Repository) ListShiftsForSchedule(scheduleID int64) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE schedule_id = $1
		ORDER BY date, start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListAssignedShifts 获取若干排班表中日期不早于 since 的已分配班次
// 历史积分统计只关心这部分班次
func (r *Repository) ListAssignedShifts(scheduleIDs []int64, since time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE schedule_id = ANY($1) AND status = 'assigned' AND date >= $2
		ORDER BY date, start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleIDs, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// CommitAssignments 在一个事务中批量提交排班结果
// 更新按 CommitBatchSize 分批执行，但所有批次共享同一个事务，
// 任何一批失败都会回滚全部修改，其他读取方不会看到部分提交的中间状态
// 只有仍处于未分配状态的班次才会被更新，保证重复排班不会覆盖已有的分配
func (r *Repository) CommitAssignments(updates []*domain.ShiftUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batchSize := r.cfg.Assignment.CommitBatchSize
	if batchSize <= 0 {
		batchSize = 450
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shifts AS s
		SET
			status = 'assigned',
			assigned_to = u.assigned_to,
			assigned_name = u.assigned_name,
			assigned_email = u.assigned_email,
			version = s.version + 1
		FROM (
			SELECT
				unnest($1::bigint[]) AS id,
				unnest($2::bigint[]) AS assigned_to,
				unnest($3::text[]) AS assigned_name,
				unnest($4::text[]) AS assigned_email
		) AS u
		WHERE s.id = u.id AND s.status = 'unassigned'
	`

	for start := 0; start < len(updates); start += batchSize {
		end := min(start+batchSize, len(updates))
		batch := updates[start:end]

		ids := make([]int64, len(batch))
		assignees := make([]int64, len(batch))
		names := make([]string, len(batch))
		emails := make([]string, len(batch))
		for i, update := range batch {
			ids[i] = update.ShiftID
			assignees[i] = update.AssignedTo
			names[i] = update.AssignedName
			emails[i] = update.AssignedEmail
		}

		result, err := tx.ExecContext(ctx, query, ids, assignees, names, emails)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected != int64(len(batch)) {
			return ErrShiftsModified
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// CreateShift 插入班次，仅用于种子数据工具
func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (
			schedule_id,
			stable_id,
			date,
			start_time,
			end_time,
			base_points,
			status,
			assigned_to,
			assigned_name,
			assigned_email
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{
		shift.ScheduleID,
		shift.StableID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.BasePoints,
		shift.Status,
		shift.AssignedTo,
		shift.AssignedName,
		shift.AssignedEmail,
	}
	dst := []any{&shift.ID, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}
