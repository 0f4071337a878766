package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ==================== ENUMS ====================

type ResourceCategory string

const (
	ResourceCategoryDevice   ResourceCategory = "device"
	ResourceCategorySoftware ResourceCategory = "software"
	ResourceCategorySystem   ResourceCategory = "system"
	ResourceCategoryConfig   ResourceCategory = "config"
)

type FlashRecordStatus string

const (
	FlashRecordStatusPending    FlashRecordStatus = "pending"
	FlashRecordStatusProcessing FlashRecordStatus = "processing"
	FlashRecordStatusSuccess    FlashRecordStatus = "success"
	FlashRecordStatusFailed     FlashRecordStatus = "failed"
	FlashRecordStatusCancelled  FlashRecordStatus = "cancelled"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOperator UserRole = "operator"
	UserRoleViewer   UserRole = "viewer"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// ==================== JSONB TYPES ====================

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan JSONB: invalid type")
	}
	return json.Unmarshal(bytes, j)
}

// StringList is stored as a JSON array column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringList: invalid type")
	}
	return json.Unmarshal(bytes, s)
}

// ==================== ENTITIES ====================

type DeviceType struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name           string `gorm:"size:255;not null" json:"name"`
	Model          string `gorm:"size:255;not null" json:"model"`
	Manufacturer   string `gorm:"size:255;not null" json:"manufacturer"`
	Description    string `gorm:"type:text" json:"description,omitempty"`
	Specifications JSONB  `gorm:"type:jsonb" json:"specifications,omitempty"`
	ImageURL       string `gorm:"size:512" json:"image_url,omitempty"`
}

type ResourceType struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string           `gorm:"size:255;not null" json:"name"`
	Category    ResourceCategory `gorm:"size:20;not null;index" json:"category"`
	Description string           `gorm:"type:text" json:"description,omitempty"`

	// Device category
	Model          string `gorm:"size:255" json:"model,omitempty"`
	Manufacturer   string `gorm:"size:255" json:"manufacturer,omitempty"`
	Specifications JSONB  `gorm:"type:jsonb" json:"specifications,omitempty"`

	// Software category
	Version     string     `gorm:"size:64" json:"version,omitempty"`
	Type        string     `gorm:"size:64" json:"type,omitempty"`
	SupportedOS StringList `gorm:"type:jsonb" json:"supported_os,omitempty"`

	// System category
	OSType       string `gorm:"size:64" json:"os_type,omitempty"`
	Architecture string `gorm:"size:32" json:"architecture,omitempty"`

	// Config category
	ConfigType string `gorm:"size:64" json:"config_type,omitempty"`

	FileSize    string `gorm:"size:32" json:"file_size,omitempty"`
	FilePath    string `gorm:"size:512" json:"file_path,omitempty"`
	DownloadURL string `gorm:"size:512" json:"download_url,omitempty"`
}

type FirmwareVersion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	VersionNumber string `gorm:"size:64;not null;uniqueIndex" json:"version_number"`
	ReleaseDate   string `gorm:"size:32" json:"release_date"`
	Description   string `gorm:"type:text" json:"description"`
	Changelog     string `gorm:"type:text" json:"changelog,omitempty"`

	FileName    string `gorm:"size:255" json:"file_name,omitempty"`
	FilePath    string `gorm:"size:512" json:"file_path,omitempty"`
	FileSize    string `gorm:"size:32" json:"file_size,omitempty"`
	FileMD5     string `gorm:"size:64" json:"file_md5,omitempty"`
	DownloadURL string `gorm:"size:512" json:"download_url,omitempty"`

	SupportedDevices StringList `gorm:"type:jsonb" json:"supported_devices,omitempty"`
	MinSystemVersion string     `gorm:"size:64" json:"min_system_version,omitempty"`
	MaxSystemVersion string     `gorm:"size:64" json:"max_system_version,omitempty"`

	IsBeta   bool       `gorm:"default:false" json:"is_beta"`
	IsStable bool       `gorm:"default:true" json:"is_stable"`
	Tags     StringList `gorm:"type:jsonb" json:"tags,omitempty"`
}

type FlashRecord struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	DeviceTypeID       string `gorm:"size:64;index" json:"device_type_id"`
	VersionID          string `gorm:"size:64;index" json:"version_id"`
	DeviceSerialNumber string `gorm:"size:64" json:"device_serial_number"`
	DeviceIP           string `gorm:"size:45;not null" json:"device_ip"`
	DevicePort         string `gorm:"size:8" json:"device_port"`
	DeviceUsername     string `gorm:"size:64" json:"device_username"`

	Status      FlashRecordStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Progress    int               `gorm:"default:0" json:"progress"`
	CurrentStep string            `gorm:"size:255" json:"current_step"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  int64      `json:"duration,omitempty"` // milliseconds

	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	Logs         StringList `gorm:"type:jsonb" json:"logs"`

	Operator string `gorm:"size:64" json:"operator,omitempty"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255" json:"email"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	Role         UserRole   `gorm:"size:20;not null;default:'viewer'" json:"role"`
	Status       UserStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	FullName     string     `gorm:"size:255" json:"full_name,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
