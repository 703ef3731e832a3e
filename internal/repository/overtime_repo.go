package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"driver-roster/backend/internal/model"
)

// OvertimeRepository 加班记录数据访问接口
// (driver_id, date, ot_type) 唯一，合并累加由 Service 层完成。
type OvertimeRepository interface {
	Create(ctx context.Context, record *model.OvertimeRecord) error
	GetByDriverDateType(ctx context.Context, driverID string, date time.Time, otType string) (*model.OvertimeRecord, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.OvertimeRecord, error)
	ListByDriverAndRange(ctx context.Context, driverID string, from, to time.Time) ([]model.OvertimeRecord, error)
	Update(ctx context.Context, record *model.OvertimeRecord) error
	Delete(ctx context.Context, id string) error
}

type overtimeRepo struct {
	db *gorm.DB
}

// NewOvertimeRepo 创建 OvertimeRepository 实例
func NewOvertimeRepo(db *gorm.DB) OvertimeRepository {
	return &overtimeRepo{db: db}
}

func (r *overtimeRepo) Create(ctx context.Context, record *model.OvertimeRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *overtimeRepo) GetByDriverDateType(ctx context.Context, driverID string, date time.Time, otType string) (*model.OvertimeRecord, error) {
	var record model.OvertimeRecord
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date = ? AND ot_type = ?",
			driverID, date.Format("2006-01-02"), otType).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *overtimeRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.OvertimeRecord, error) {
	var records []model.OvertimeRecord
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *overtimeRepo) ListByDriverAndRange(ctx context.Context, driverID string, from, to time.Time) ([]model.OvertimeRecord, error) {
	var records []model.OvertimeRecord
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Where("driver_id = ? AND date BETWEEN ? AND ?",
			driverID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *overtimeRepo) Update(ctx context.Context, record *model.OvertimeRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *overtimeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("overtime_id = ?", id).
		Delete(&model.OvertimeRecord{}).Error
}
