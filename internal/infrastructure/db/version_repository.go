package db

import (
	"context"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type versionRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVersionRepository(db *gorm.DB, log *logger.Logger) ports.VersionRepository {
	return &versionRepository{db: db, log: log}
}

func (r *versionRepository) Create(ctx context.Context, v *domain.FirmwareVersion) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		r.log.Errorw("version_repo_create_failed", "version", v.VersionNumber, "error", err)
		return err
	}
	r.log.Infow("version_repo_create_ok", "id", v.ID, "version", v.VersionNumber)
	return nil
}

func (r *versionRepository) GetByID(ctx context.Context, id uint) (*domain.FirmwareVersion, error) {
	var v domain.FirmwareVersion
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		r.log.Errorw("version_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &v, nil
}

func (r *versionRepository) GetByVersionNumber(ctx context.Context, versionNumber string) (*domain.FirmwareVersion, error) {
	var v domain.FirmwareVersion
	if err := r.db.WithContext(ctx).Where("version_number = ?", versionNumber).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *versionRepository) List(ctx context.Context, page, pageSize int) ([]domain.FirmwareVersion, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.FirmwareVersion{}).Count(&total).Error; err != nil {
		r.log.Errorw("version_repo_count_failed", "error", err)
		return nil, 0, err
	}

	var items []domain.FirmwareVersion
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		r.log.Errorw("version_repo_list_failed", "error", err)
		return nil, 0, err
	}
	r.log.Infow("version_repo_list_ok", "count", len(items), "total", total)
	return items, total, nil
}

func (r *versionRepository) Update(ctx context.Context, v *domain.FirmwareVersion) error {
	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		r.log.Errorw("version_repo_update_failed", "id", v.ID, "error", err)
		return err
	}
	r.log.Infow("version_repo_update_ok", "id", v.ID)
	return nil
}

func (r *versionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.FirmwareVersion{}, id).Error; err != nil {
		r.log.Errorw("version_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("version_repo_delete_ok", "id", id)
	return nil
}
