package db

import (
	"context"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type flashRecordRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlashRecordRepository(db *gorm.DB, log *logger.Logger) ports.FlashRecordRepository {
	return &flashRecordRepository{db: db, log: log}
}

func (r *flashRecordRepository) Create(ctx context.Context, rec *domain.FlashRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		r.log.Errorw("flash_record_repo_create_failed", "ip", rec.DeviceIP, "error", err)
		return err
	}
	r.log.Infow("flash_record_repo_create_ok", "id", rec.ID, "ip", rec.DeviceIP, "status", rec.Status)
	return nil
}

func (r *flashRecordRepository) GetByID(ctx context.Context, id string) (*domain.FlashRecord, error) {
	var rec domain.FlashRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		r.log.Errorw("flash_record_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &rec, nil
}

func (r *flashRecordRepository) List(ctx context.Context, page, pageSize int, status domain.FlashRecordStatus) ([]domain.FlashRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.FlashRecord{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.log.Errorw("flash_record_repo_count_failed", "error", err)
		return nil, 0, err
	}

	var items []domain.FlashRecord
	err := query.
		Order("start_time desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		r.log.Errorw("flash_record_repo_list_failed", "error", err)
		return nil, 0, err
	}
	r.log.Infow("flash_record_repo_list_ok", "count", len(items), "total", total)
	return items, total, nil
}

func (r *flashRecordRepository) Update(ctx context.Context, rec *domain.FlashRecord) error {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		r.log.Errorw("flash_record_repo_update_failed", "id", rec.ID, "error", err)
		return err
	}
	r.log.Infow("flash_record_repo_update_ok", "id", rec.ID)
	return nil
}

func (r *flashRecordRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.FlashRecord{}).Error; err != nil {
		r.log.Errorw("flash_record_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("flash_record_repo_delete_ok", "id", id)
	return nil
}
