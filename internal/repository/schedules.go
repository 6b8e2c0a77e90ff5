package repository

import (
	"context"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

// ListPublishedSchedules 获取结束日期落在回溯窗口内的已发布排班表
func (r *Repository) ListPublishedSchedules(stableID int64, since time.Time) ([]*domain.Schedule, error) {
	query := `
		SELECT id, name, start_date, end_date, status, created_at, version
		FROM schedules
		WHERE stable_id = $1 AND status = 'published' AND end_date >= $2
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stableID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule := &domain.Schedule{
			StableID: stableID,
		}
		dst := []any{
			&schedule.ID,
			&schedule.Name,
			&schedule.StartDate,
			&schedule.EndDate,
			&schedule.Status,
			&schedule.CreatedAt,
			&schedule.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	query := `
		SELECT stable_id, name, start_date, end_date, status, created_at, version
		FROM schedules
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	schedule := &domain.Schedule{
		ID: id,
	}

	dst := []any{
		&schedule.StableID,
		&schedule.Name,
		&schedule.StartDate,
		&schedule.EndDate,
		&schedule.Status,
		&schedule.CreatedAt,
		&schedule.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) GetAllSchedules() ([]*domain.Schedule, error) {
	query := `
		SELECT id, stable_id, name, start_date, end_date, status, created_at, version
		FROM schedules
		ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule := &domain.Schedule{}
		dst := []any{
			&schedule.ID,
			&schedule.StableID,
			&schedule.Name,
			&schedule.StartDate,
			&schedule.EndDate,
			&schedule.Status,
			&schedule.CreatedAt,
			&schedule.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// CreateSchedule 插入排班表，仅用于种子数据工具
func (r *Repository) CreateSchedule(schedule *domain.Schedule) error {
	query := `
		INSERT INTO schedules (stable_id, name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{schedule.StableID, schedule.Name, schedule.StartDate, schedule.EndDate, schedule.Status}
	dst := []any{&schedule.ID, &schedule.CreatedAt, &schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}
