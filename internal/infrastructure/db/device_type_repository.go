package db

import (
	"context"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type deviceTypeRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeviceTypeRepository(db *gorm.DB, log *logger.Logger) ports.DeviceTypeRepository {
	return &deviceTypeRepository{db: db, log: log}
}

func (r *deviceTypeRepository) Create(ctx context.Context, dt *domain.DeviceType) error {
	if err := r.db.WithContext(ctx).Create(dt).Error; err != nil {
		r.log.Errorw("device_type_repo_create_failed", "name", dt.Name, "error", err)
		return err
	}
	r.log.Infow("device_type_repo_create_ok", "id", dt.ID, "name", dt.Name)
	return nil
}

func (r *deviceTypeRepository) GetByID(ctx context.Context, id uint) (*domain.DeviceType, error) {
	var dt domain.DeviceType
	if err := r.db.WithContext(ctx).First(&dt, id).Error; err != nil {
		r.log.Errorw("device_type_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &dt, nil
}

func (r *deviceTypeRepository) List(ctx context.Context, page, pageSize int) ([]domain.DeviceType, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.DeviceType{}).Count(&total).Error; err != nil {
		r.log.Errorw("device_type_repo_count_failed", "error", err)
		return nil, 0, err
	}

	var items []domain.DeviceType
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		r.log.Errorw("device_type_repo_list_failed", "error", err)
		return nil, 0, err
	}
	r.log.Infow("device_type_repo_list_ok", "count", len(items), "total", total)
	return items, total, nil
}

func (r *deviceTypeRepository) Update(ctx context.Context, dt *domain.DeviceType) error {
	if err := r.db.WithContext(ctx).Save(dt).Error; err != nil {
		r.log.Errorw("device_type_repo_update_failed", "id", dt.ID, "error", err)
		return err
	}
	r.log.Infow("device_type_repo_update_ok", "id", dt.ID)
	return nil
}

func (r *deviceTypeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.DeviceType{}, id).Error; err != nil {
		r.log.Errorw("device_type_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("device_type_repo_delete_ok", "id", id)
	return nil
}
