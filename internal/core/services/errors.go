package services

import "errors"

// Task errors
var (
	ErrTaskNotFound          = errors.New("task: not found")
	ErrTaskInvalidInput      = errors.New("task: invalid input")
	ErrTaskIllegalTransition = errors.New("task: illegal status transition")
)

// Auth errors
var (
	ErrAuthInvalidCredentials = errors.New("auth: invalid username or password")
	ErrAuthUserSuspended      = errors.New("auth: user is not active")
	ErrAuthInvalidToken       = errors.New("auth: invalid or expired token")
)

// Catalog errors
var (
	ErrDeviceTypeNotFound   = errors.New("device_type: not found")
	ErrResourceTypeNotFound = errors.New("resource_type: not found")
	ErrVersionNotFound      = errors.New("version: not found")
	ErrVersionExists        = errors.New("version: version number already exists")
	ErrFlashRecordNotFound  = errors.New("flash_record: not found")
	ErrUserNotFound         = errors.New("user: not found")
	ErrUserExists           = errors.New("user: username already exists")
	ErrInvalidInput         = errors.New("catalog: invalid input")
)
