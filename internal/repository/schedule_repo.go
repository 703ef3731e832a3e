package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"driver-roster/backend/internal/model"
)

// ScheduleRepository 日程状态数据访问接口
// (driver_id, date) 唯一；写入方通过 GetByDriverAndDate + Create/Update
// 实现"存在即更新"语义。
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	GetByDriverAndDate(ctx context.Context, driverID string, date time.Time) (*model.Schedule, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.Schedule, error)
	ListByDriverAndRange(ctx context.Context, driverID string, from, to time.Time) ([]model.Schedule, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string) error
	DeleteDayOffInRange(ctx context.Context, driverID string, from, to time.Time) (int64, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Replacements").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) GetByDriverAndDate(ctx context.Context, driverID string, date time.Time) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date = ?", driverID, date.Format("2006-01-02")).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListByDate(ctx context.Context, date time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Replacements").
		Preload("Replacements.ReplacementDriver").
		Preload("Replacements.Shift").
		Where("date = ?", date.Format("2006-01-02")).
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByDriverAndRange(ctx context.Context, driverID string, from, to time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date BETWEEN ? AND ?",
			driverID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{}).Error
}

// DeleteDayOffInRange 删除区间内 is_day_off=true 的日程行，返回删除数量
func (r *scheduleRepo) DeleteDayOffInRange(ctx context.Context, driverID string, from, to time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("driver_id = ? AND is_day_off = ? AND date BETWEEN ? AND ?",
			driverID, true, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Delete(&model.Schedule{})
	return result.RowsAffected, result.Error
}
