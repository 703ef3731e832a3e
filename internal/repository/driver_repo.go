package repository

import (
	"context"

	"gorm.io/gorm"

	"driver-roster/backend/internal/model"
)

// DriverRepository 司机数据访问接口
type DriverRepository interface {
	Create(ctx context.Context, driver *model.Driver) error
	GetByID(ctx context.Context, id string) (*model.Driver, error)
	GetByStaffID(ctx context.Context, staffID string) (*model.Driver, error)
	List(ctx context.Context, keyword string, offset, limit int) ([]model.Driver, int64, error)
	ListAll(ctx context.Context) ([]model.Driver, error)
	Update(ctx context.Context, driver *model.Driver) error
	Delete(ctx context.Context, id string) error
}

// DriverShiftRepository 司机-班次分配数据访问接口
type DriverShiftRepository interface {
	ListByDriver(ctx context.Context, driverID string) ([]model.DriverShift, error)
	ReplaceForDriver(ctx context.Context, driverID string, assignments []model.DriverShift) error
}

// ── Driver Repository 实现 ──

type driverRepo struct {
	db *gorm.DB
}

// NewDriverRepo 创建 DriverRepository 实例
func NewDriverRepo(db *gorm.DB) DriverRepository {
	return &driverRepo{db: db}
}

func (r *driverRepo) Create(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).
		Preload("Shifts").Preload("Shifts.Shift").
		Where("driver_id = ?", id).
		First(&driver).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepo) GetByStaffID(ctx context.Context, staffID string) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		First(&driver).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepo) List(ctx context.Context, keyword string, offset, limit int) ([]model.Driver, int64, error) {
	var drivers []model.Driver
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Driver{})
	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("name ILIKE ? OR staff_id ILIKE ? OR car_number ILIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Shifts").Preload("Shifts.Shift").
		Offset(offset).Limit(limit).
		Order("staff_id ASC").
		Find(&drivers).Error
	return drivers, total, err
}

func (r *driverRepo) ListAll(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).
		Preload("Shifts").Preload("Shifts.Shift").
		Order("staff_id ASC").
		Find(&drivers).Error
	return drivers, err
}

func (r *driverRepo) Update(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

func (r *driverRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("driver_id = ?", id).
		Delete(&model.Driver{}).Error
}

// ── DriverShift Repository 实现 ──

type driverShiftRepo struct {
	db *gorm.DB
}

// NewDriverShiftRepo 创建 DriverShiftRepository 实例
func NewDriverShiftRepo(db *gorm.DB) DriverShiftRepository {
	return &driverShiftRepo{db: db}
}

func (r *driverShiftRepo) ListByDriver(ctx context.Context, driverID string) ([]model.DriverShift, error) {
	var assignments []model.DriverShift
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Where("driver_id = ?", driverID).
		Order("is_primary DESC").
		Find(&assignments).Error
	return assignments, err
}

// ReplaceForDriver 整体替换司机的班次分配（删旧插新，单事务）
func (r *driverShiftRepo) ReplaceForDriver(ctx context.Context, driverID string, assignments []model.DriverShift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("driver_id = ?", driverID).Delete(&model.DriverShift{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.Create(&assignments).Error
	})
}
