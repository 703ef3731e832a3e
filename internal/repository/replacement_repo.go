package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"driver-roster/backend/internal/model"
)

// ReplacementRepository 替班数据访问接口
type ReplacementRepository interface {
	Create(ctx context.Context, replacement *model.Replacement) error
	GetByID(ctx context.Context, id string) (*model.Replacement, error)
	GetByScheduleAndShift(ctx context.Context, scheduleID, shiftID string) (*model.Replacement, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.Replacement, error)
	ListByDriverAndRange(ctx context.Context, driverID string, from, to time.Time) ([]model.Replacement, error)
	Update(ctx context.Context, replacement *model.Replacement) error
	Delete(ctx context.Context, id string) error
	CountBySchedule(ctx context.Context, scheduleID string) (int64, error)
}

type replacementRepo struct {
	db *gorm.DB
}

// NewReplacementRepo 创建 ReplacementRepository 实例
func NewReplacementRepo(db *gorm.DB) ReplacementRepository {
	return &replacementRepo{db: db}
}

func (r *replacementRepo) Create(ctx context.Context, replacement *model.Replacement) error {
	return r.db.WithContext(ctx).Create(replacement).Error
}

func (r *replacementRepo) GetByID(ctx context.Context, id string) (*model.Replacement, error) {
	var replacement model.Replacement
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("ReplacementDriver").
		Preload("Shift").
		Where("replacement_id = ?", id).
		First(&replacement).Error
	if err != nil {
		return nil, err
	}
	return &replacement, nil
}

func (r *replacementRepo) GetByScheduleAndShift(ctx context.Context, scheduleID, shiftID string) (*model.Replacement, error) {
	var replacement model.Replacement
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND shift_id = ?", scheduleID, shiftID).
		First(&replacement).Error
	if err != nil {
		return nil, err
	}
	return &replacement, nil
}

func (r *replacementRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.Replacement, error) {
	var replacements []model.Replacement
	err := r.db.WithContext(ctx).
		Preload("ReplacementDriver").
		Preload("Shift").
		Where("schedule_id = ?", scheduleID).
		Find(&replacements).Error
	return replacements, err
}

// ListByDriverAndRange 列出司机在区间内承接的替班（按缺勤日程的日期过滤）
func (r *replacementRepo) ListByDriverAndRange(ctx context.Context, driverID string, from, to time.Time) ([]model.Replacement, error) {
	var replacements []model.Replacement
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("Schedule.Driver").
		Preload("Shift").
		Joins("JOIN schedules ON schedules.schedule_id = replacements.schedule_id").
		Where("replacements.replacement_driver_id = ? AND schedules.date BETWEEN ? AND ?",
			driverID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("schedules.date ASC").
		Find(&replacements).Error
	return replacements, err
}

func (r *replacementRepo) Update(ctx context.Context, replacement *model.Replacement) error {
	return r.db.WithContext(ctx).Save(replacement).Error
}

func (r *replacementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("replacement_id = ?", id).
		Delete(&model.Replacement{}).Error
}

func (r *replacementRepo) CountBySchedule(ctx context.Context, scheduleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Replacement{}).
		Where("schedule_id = ?", scheduleID).
		Count(&count).Error
	return count, err
}
