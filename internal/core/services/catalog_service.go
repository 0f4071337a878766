package services

import (
	"context"
	"errors"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// Catalog services are thin validation layers over the repositories; the
// handlers own HTTP mapping, the repositories own persistence.

type DeviceTypeService struct {
	repo ports.DeviceTypeRepository
	log  *logger.Logger
}

func NewDeviceTypeService(repo ports.DeviceTypeRepository, log *logger.Logger) *DeviceTypeService {
	return &DeviceTypeService{repo: repo, log: log}
}

func (s *DeviceTypeService) Create(ctx context.Context, dt *domain.DeviceType) error {
	if dt.Name == "" || dt.Model == "" || dt.Manufacturer == "" {
		return ErrInvalidInput
	}
	return s.repo.Create(ctx, dt)
}

func (s *DeviceTypeService) Get(ctx context.Context, id uint) (*domain.DeviceType, error) {
	dt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceTypeNotFound
		}
		return nil, err
	}
	return dt, nil
}

func (s *DeviceTypeService) List(ctx context.Context, page, pageSize int) ([]domain.DeviceType, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

func (s *DeviceTypeService) Update(ctx context.Context, id uint, mutate func(*domain.DeviceType)) (*domain.DeviceType, error) {
	dt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(dt)
	if dt.Name == "" || dt.Model == "" || dt.Manufacturer == "" {
		return nil, ErrInvalidInput
	}
	if err := s.repo.Update(ctx, dt); err != nil {
		return nil, err
	}
	return dt, nil
}

func (s *DeviceTypeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type ResourceTypeService struct {
	repo ports.ResourceTypeRepository
	log  *logger.Logger
}

func NewResourceTypeService(repo ports.ResourceTypeRepository, log *logger.Logger) *ResourceTypeService {
	return &ResourceTypeService{repo: repo, log: log}
}

func validCategory(c domain.ResourceCategory) bool {
	switch c {
	case domain.ResourceCategoryDevice, domain.ResourceCategorySoftware,
		domain.ResourceCategorySystem, domain.ResourceCategoryConfig:
		return true
	}
	return false
}

func (s *ResourceTypeService) Create(ctx context.Context, rt *domain.ResourceType) error {
	if rt.Name == "" || !validCategory(rt.Category) {
		return ErrInvalidInput
	}
	return s.repo.Create(ctx, rt)
}

func (s *ResourceTypeService) Get(ctx context.Context, id uint) (*domain.ResourceType, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceTypeNotFound
		}
		return nil, err
	}
	return rt, nil
}

func (s *ResourceTypeService) List(ctx context.Context, page, pageSize int, category domain.ResourceCategory) ([]domain.ResourceType, int64, error) {
	if category != "" && !validCategory(category) {
		return nil, 0, ErrInvalidInput
	}
	return s.repo.List(ctx, page, pageSize, category)
}

func (s *ResourceTypeService) Update(ctx context.Context, id uint, mutate func(*domain.ResourceType)) (*domain.ResourceType, error) {
	rt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(rt)
	if rt.Name == "" || !validCategory(rt.Category) {
		return nil, ErrInvalidInput
	}
	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *ResourceTypeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type VersionService struct {
	repo ports.VersionRepository
	log  *logger.Logger
}

func NewVersionService(repo ports.VersionRepository, log *logger.Logger) *VersionService {
	return &VersionService{repo: repo, log: log}
}

func (s *VersionService) Create(ctx context.Context, v *domain.FirmwareVersion) error {
	if v.VersionNumber == "" {
		return ErrInvalidInput
	}
	if existing, err := s.repo.GetByVersionNumber(ctx, v.VersionNumber); err == nil && existing != nil {
		return ErrVersionExists
	}
	return s.repo.Create(ctx, v)
}

func (s *VersionService) Get(ctx context.Context, id uint) (*domain.FirmwareVersion, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *VersionService) List(ctx context.Context, page, pageSize int) ([]domain.FirmwareVersion, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

func (s *VersionService) Update(ctx context.Context, id uint, mutate func(*domain.FirmwareVersion)) (*domain.FirmwareVersion, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(v)
	if v.VersionNumber == "" {
		return nil, ErrInvalidInput
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VersionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type FlashRecordService struct {
	repo ports.FlashRecordRepository
	log  *logger.Logger
}

func NewFlashRecordService(repo ports.FlashRecordRepository, log *logger.Logger) *FlashRecordService {
	return &FlashRecordService{repo: repo, log: log}
}

func (s *FlashRecordService) Get(ctx context.Context, id string) (*domain.FlashRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlashRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *FlashRecordService) List(ctx context.Context, page, pageSize int, status domain.FlashRecordStatus) ([]domain.FlashRecord, int64, error) {
	return s.repo.List(ctx, page, pageSize, status)
}

func (s *FlashRecordService) Update(ctx context.Context, id string, mutate func(*domain.FlashRecord)) (*domain.FlashRecord, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(rec)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FlashRecordService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type UserService struct {
	repo ports.UserRepository
	log  *logger.Logger
}

func NewUserService(repo ports.UserRepository, log *logger.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Create(ctx context.Context, user *domain.User, password string) error {
	if user.Username == "" || password == "" {
		return ErrInvalidInput
	}
	if existing, err := s.repo.GetByUsername(ctx, user.Username); err == nil && existing != nil {
		return ErrUserExists
	}
	user.PasswordHash = HashPassword(password)
	if user.Role == "" {
		user.Role = domain.UserRoleViewer
	}
	if user.Status == "" {
		user.Status = domain.UserStatusActive
	}
	return s.repo.Create(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

func (s *UserService) Update(ctx context.Context, id uint, mutate func(*domain.User)) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(user)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
