package dto

import (
	"github.com/fleetflash/backend/internal/domain"
)

type DeviceTypeRequest struct {
	Name           string       `json:"name"`
	Model          string       `json:"model"`
	Manufacturer   string       `json:"manufacturer"`
	Description    string       `json:"description,omitempty"`
	Specifications domain.JSONB `json:"specifications,omitempty"`
	ImageURL       string       `json:"image_url,omitempty"`
}

func (r *DeviceTypeRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Model == "" {
		errs = append(errs, "model is required")
	}
	if r.Manufacturer == "" {
		errs = append(errs, "manufacturer is required")
	}
	return errs
}

func (r *DeviceTypeRequest) Apply(dt *domain.DeviceType) {
	dt.Name = r.Name
	dt.Model = r.Model
	dt.Manufacturer = r.Manufacturer
	dt.Description = r.Description
	dt.Specifications = r.Specifications
	dt.ImageURL = r.ImageURL
}

type ResourceTypeRequest struct {
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	Description    string       `json:"description,omitempty"`
	Model          string       `json:"model,omitempty"`
	Manufacturer   string       `json:"manufacturer,omitempty"`
	Specifications domain.JSONB `json:"specifications,omitempty"`
	Version        string       `json:"version,omitempty"`
	Type           string       `json:"type,omitempty"`
	SupportedOS    []string     `json:"supported_os,omitempty"`
	OSType         string       `json:"os_type,omitempty"`
	Architecture   string       `json:"architecture,omitempty"`
	ConfigType     string       `json:"config_type,omitempty"`
	FileSize       string       `json:"file_size,omitempty"`
	FilePath       string       `json:"file_path,omitempty"`
	DownloadURL    string       `json:"download_url,omitempty"`
}

func (r *ResourceTypeRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	switch domain.ResourceCategory(r.Category) {
	case domain.ResourceCategoryDevice, domain.ResourceCategorySoftware,
		domain.ResourceCategorySystem, domain.ResourceCategoryConfig:
	default:
		errs = append(errs, "category must be one of: device, software, system, config")
	}
	return errs
}

func (r *ResourceTypeRequest) Apply(rt *domain.ResourceType) {
	rt.Name = r.Name
	rt.Category = domain.ResourceCategory(r.Category)
	rt.Description = r.Description
	rt.Model = r.Model
	rt.Manufacturer = r.Manufacturer
	rt.Specifications = r.Specifications
	rt.Version = r.Version
	rt.Type = r.Type
	rt.SupportedOS = domain.StringList(r.SupportedOS)
	rt.OSType = r.OSType
	rt.Architecture = r.Architecture
	rt.ConfigType = r.ConfigType
	rt.FileSize = r.FileSize
	rt.FilePath = r.FilePath
	rt.DownloadURL = r.DownloadURL
}

type VersionRequest struct {
	VersionNumber    string   `json:"version_number"`
	ReleaseDate      string   `json:"release_date"`
	Description      string   `json:"description"`
	Changelog        string   `json:"changelog,omitempty"`
	FileName         string   `json:"file_name,omitempty"`
	FilePath         string   `json:"file_path,omitempty"`
	FileSize         string   `json:"file_size,omitempty"`
	FileMD5          string   `json:"file_md5,omitempty"`
	DownloadURL      string   `json:"download_url,omitempty"`
	SupportedDevices []string `json:"supported_devices,omitempty"`
	MinSystemVersion string   `json:"min_system_version,omitempty"`
	MaxSystemVersion string   `json:"max_system_version,omitempty"`
	IsBeta           bool     `json:"is_beta"`
	IsStable         bool     `json:"is_stable"`
	Tags             []string `json:"tags,omitempty"`
}

func (r *VersionRequest) Validate() []string {
	var errs []string
	if r.VersionNumber == "" {
		errs = append(errs, "version_number is required")
	}
	return errs
}

func (r *VersionRequest) Apply(v *domain.FirmwareVersion) {
	v.VersionNumber = r.VersionNumber
	v.ReleaseDate = r.ReleaseDate
	v.Description = r.Description
	v.Changelog = r.Changelog
	v.FileName = r.FileName
	v.FilePath = r.FilePath
	v.FileSize = r.FileSize
	v.FileMD5 = r.FileMD5
	v.DownloadURL = r.DownloadURL
	v.SupportedDevices = domain.StringList(r.SupportedDevices)
	v.MinSystemVersion = r.MinSystemVersion
	v.MaxSystemVersion = r.MaxSystemVersion
	v.IsBeta = r.IsBeta
	v.IsStable = r.IsStable
	v.Tags = domain.StringList(r.Tags)
}

type FlashRecordUpdateRequest struct {
	Notes    string `json:"notes,omitempty"`
	Operator string `json:"operator,omitempty"`
}

type UserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

func (r *UserRequest) Validate(requirePassword bool) []string {
	var errs []string
	if r.Username == "" {
		errs = append(errs, "username is required")
	}
	if requirePassword && r.Password == "" {
		errs = append(errs, "password is required")
	}
	if r.Role != "" {
		switch domain.UserRole(r.Role) {
		case domain.UserRoleAdmin, domain.UserRoleOperator, domain.UserRoleViewer:
		default:
			errs = append(errs, "role must be one of: admin, operator, viewer")
		}
	}
	return errs
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
