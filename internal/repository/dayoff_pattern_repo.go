package repository

import (
	"context"

	"gorm.io/gorm"

	"driver-roster/backend/internal/model"
)

// DayoffPatternRepository 月度休息日规律数据访问接口
type DayoffPatternRepository interface {
	Create(ctx context.Context, pattern *model.MonthlyDayoffPattern) error
	GetByID(ctx context.Context, id string) (*model.MonthlyDayoffPattern, error)
	GetByDriverMonthYear(ctx context.Context, driverID string, month, year int) (*model.MonthlyDayoffPattern, error)
	ListByMonthYear(ctx context.Context, month, year int) ([]model.MonthlyDayoffPattern, error)
	Update(ctx context.Context, pattern *model.MonthlyDayoffPattern) error
	Delete(ctx context.Context, id string) error
}

type dayoffPatternRepo struct {
	db *gorm.DB
}

// NewDayoffPatternRepo 创建 DayoffPatternRepository 实例
func NewDayoffPatternRepo(db *gorm.DB) DayoffPatternRepository {
	return &dayoffPatternRepo{db: db}
}

func (r *dayoffPatternRepo) Create(ctx context.Context, pattern *model.MonthlyDayoffPattern) error {
	return r.db.WithContext(ctx).Create(pattern).Error
}

func (r *dayoffPatternRepo) GetByID(ctx context.Context, id string) (*model.MonthlyDayoffPattern, error) {
	var pattern model.MonthlyDayoffPattern
	err := r.db.WithContext(ctx).
		Where("pattern_id = ?", id).
		First(&pattern).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *dayoffPatternRepo) GetByDriverMonthYear(ctx context.Context, driverID string, month, year int) (*model.MonthlyDayoffPattern, error) {
	var pattern model.MonthlyDayoffPattern
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND month = ? AND year = ?", driverID, month, year).
		First(&pattern).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *dayoffPatternRepo) ListByMonthYear(ctx context.Context, month, year int) ([]model.MonthlyDayoffPattern, error) {
	var patterns []model.MonthlyDayoffPattern
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Where("month = ? AND year = ?", month, year).
		Find(&patterns).Error
	return patterns, err
}

func (r *dayoffPatternRepo) Update(ctx context.Context, pattern *model.MonthlyDayoffPattern) error {
	return r.db.WithContext(ctx).Save(pattern).Error
}

func (r *dayoffPatternRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("pattern_id = ?", id).
		Delete(&model.MonthlyDayoffPattern{}).Error
}
