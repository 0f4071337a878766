package ports

import (
	"context"

	"github.com/fleetflash/backend/internal/domain"
)

type CreateTaskInput struct {
	Mode               domain.FlashMode
	DeviceTypeID       string
	VersionID          string
	DeviceSerialNumber string
	SoftwareIDs        []string
	DeviceIP           string
	DevicePort         string
	DeviceUsername     string
	DevicePassword     string
	Operator           string
	Priority           string
}

type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(token string)
	Validate(token string) (*domain.User, error)
}
