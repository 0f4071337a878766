package ports

import (
	"context"

	"github.com/fleetflash/backend/internal/domain"
)

type DeviceTypeRepository interface {
	Create(ctx context.Context, dt *domain.DeviceType) error
	GetByID(ctx context.Context, id uint) (*domain.DeviceType, error)
	List(ctx context.Context, page, pageSize int) ([]domain.DeviceType, int64, error)
	Update(ctx context.Context, dt *domain.DeviceType) error
	Delete(ctx context.Context, id uint) error
}

type ResourceTypeRepository interface {
	Create(ctx context.Context, rt *domain.ResourceType) error
	GetByID(ctx context.Context, id uint) (*domain.ResourceType, error)
	List(ctx context.Context, page, pageSize int, category domain.ResourceCategory) ([]domain.ResourceType, int64, error)
	Update(ctx context.Context, rt *domain.ResourceType) error
	Delete(ctx context.Context, id uint) error
}

type VersionRepository interface {
	Create(ctx context.Context, v *domain.FirmwareVersion) error
	GetByID(ctx context.Context, id uint) (*domain.FirmwareVersion, error)
	GetByVersionNumber(ctx context.Context, versionNumber string) (*domain.FirmwareVersion, error)
	List(ctx context.Context, page, pageSize int) ([]domain.FirmwareVersion, int64, error)
	Update(ctx context.Context, v *domain.FirmwareVersion) error
	Delete(ctx context.Context, id uint) error
}

type FlashRecordRepository interface {
	Create(ctx context.Context, rec *domain.FlashRecord) error
	GetByID(ctx context.Context, id string) (*domain.FlashRecord, error)
	List(ctx context.Context, page, pageSize int, status domain.FlashRecordStatus) ([]domain.FlashRecord, int64, error)
	Update(ctx context.Context, rec *domain.FlashRecord) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}
