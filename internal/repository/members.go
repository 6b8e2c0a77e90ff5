package repository

import (
	"context"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

// ListEligibleMembers 获取马厩中所有在职成员及其时间限制和班次上限
// 返回的切片按成员 ID 升序排列，排班引擎依赖这个顺序来保证平局时的确定性
func (r *Repository) ListEligibleMembers(stableID int64) ([]*domain.Member, error) {
	query := `
		SELECT
			m.id,
			m.display_name,
			m.email,
			m.is_active,
			m.max_shifts_per_week,
			m.min_shifts_per_week,
			m.max_shifts_per_month,
			m.min_shifts_per_month,
			m.created_at,
			m.version,
			r.id,
			r.weekday,
			r.start_time,
			r.end_time,
			r.kind
		FROM members m
		LEFT JOIN member_restrictions r ON m.id = r.member_id
		WHERE m.stable_id = $1 AND m.is_active = TRUE
		ORDER BY m.id, r.weekday, r.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	var current *domain.Member

	for rows.Next() {
		var row struct {
			id                int64
			displayName       string
			email             string
			isActive          bool
			maxShiftsPerWeek  *int32
			minShiftsPerWeek  *int32
			maxShiftsPerMonth *int32
			minShiftsPerMonth *int32
			createdAt         time.Time
			version           int32
			restrictionID     *int64
			weekday           *int32
			startTime         *string
			endTime           *string
			kind              *string
		}

		dst := []any{
			&row.id,
			&row.displayName,
			&row.email,
			&row.isActive,
			&row.maxShiftsPerWeek,
			&row.minShiftsPerWeek,
			&row.maxShiftsPerMonth,
			&row.minShiftsPerMonth,
			&row.createdAt,
			&row.version,
			&row.restrictionID,
			&row.weekday,
			&row.startTime,
			&row.endTime,
			&row.kind,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		// 结果按成员 ID 排好了序，同一个成员的限制行是连续的
		if current == nil || current.ID != row.id {
			current = &domain.Member{
				ID:          row.id,
				StableID:    stableID,
				DisplayName: row.displayName,
				Email:       row.email,
				IsActive:    row.isActive,
				Limits: domain.MemberLimits{
					MaxShiftsPerWeek:  row.maxShiftsPerWeek,
					MinShiftsPerWeek:  row.minShiftsPerWeek,
					MaxShiftsPerMonth: row.maxShiftsPerMonth,
					MinShiftsPerMonth: row.minShiftsPerMonth,
				},
				Restrictions: make([]domain.AvailabilityRestriction, 0),
				CreatedAt:    row.createdAt,
				Version:      row.version,
			}
			members = append(members, current)
		}

		if row.restrictionID == nil {
			// 这个成员没有任何时间限制
			continue
		}

		current.Restrictions = append(current.Restrictions, domain.AvailabilityRestriction{
			ID:        *row.restrictionID,
			Weekday:   *row.weekday,
			StartTime: *row.startTime,
			EndTime:   *row.endTime,
			Kind:      domain.RestrictionKind(*row.kind),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

// CreateMember 插入成员及其时间限制，仅用于种子数据工具
func (r *Repository) CreateMember(member *domain.Member) error {
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
		INSERT INTO members (
			stable_id,
			display_name,
			email,
			is_active,
			max_shifts_per_week,
			min_shifts_per_week,
			max_shifts_per_month,
			min_shifts_per_month
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	params := []any{
		member.StableID,
		member.DisplayName,
		member.Email,
		member.IsActive,
		member.Limits.MaxShiftsPerWeek,
		member.Limits.MinShiftsPerWeek,
		member.Limits.MaxShiftsPerMonth,
		member.Limits.MinShiftsPerMonth,
	}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&member.ID, &member.CreatedAt, &member.Version); err != nil {
		return err
	}

	for i := range member.Restrictions {
		restriction := &member.Restrictions[i]

		query := `
			INSERT INTO member_restrictions (member_id, weekday, start_time, end_time, kind)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		params := []any{member.ID, restriction.Weekday, restriction.StartTime, restriction.EndTime, restriction.Kind}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&restriction.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
