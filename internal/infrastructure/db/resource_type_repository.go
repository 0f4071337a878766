package db

import (
	"context"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type resourceTypeRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceTypeRepository(db *gorm.DB, log *logger.Logger) ports.ResourceTypeRepository {
	return &resourceTypeRepository{db: db, log: log}
}

func (r *resourceTypeRepository) Create(ctx context.Context, rt *domain.ResourceType) error {
	if err := r.db.WithContext(ctx).Create(rt).Error; err != nil {
		r.log.Errorw("resource_type_repo_create_failed", "name", rt.Name, "category", rt.Category, "error", err)
		return err
	}
	r.log.Infow("resource_type_repo_create_ok", "id", rt.ID, "name", rt.Name, "category", rt.Category)
	return nil
}

func (r *resourceTypeRepository) GetByID(ctx context.Context, id uint) (*domain.ResourceType, error) {
	var rt domain.ResourceType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		r.log.Errorw("resource_type_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &rt, nil
}

func (r *resourceTypeRepository) List(ctx context.Context, page, pageSize int, category domain.ResourceCategory) ([]domain.ResourceType, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.ResourceType{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.log.Errorw("resource_type_repo_count_failed", "error", err)
		return nil, 0, err
	}

	var items []domain.ResourceType
	err := query.
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		r.log.Errorw("resource_type_repo_list_failed", "error", err)
		return nil, 0, err
	}
	r.log.Infow("resource_type_repo_list_ok", "count", len(items), "total", total, "category", category)
	return items, total, nil
}

func (r *resourceTypeRepository) Update(ctx context.Context, rt *domain.ResourceType) error {
	if err := r.db.WithContext(ctx).Save(rt).Error; err != nil {
		r.log.Errorw("resource_type_repo_update_failed", "id", rt.ID, "error", err)
		return err
	}
	r.log.Infow("resource_type_repo_update_ok", "id", rt.ID)
	return nil
}

func (r *resourceTypeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ResourceType{}, id).Error; err != nil {
		r.log.Errorw("resource_type_repo_delete_failed", "id", id, "error", err)
		return err
	}
	r.log.Infow("resource_type_repo_delete_ok", "id", id)
	return nil
}
