package dto

import (
	"net"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
)

type CreateTaskRequest struct {
	Mode               string   `json:"mode"`
	DeviceTypeID       string   `json:"device_type_id,omitempty"`
	VersionID          string   `json:"version_id,omitempty"`
	DeviceSerialNumber string   `json:"device_serial_number,omitempty"`
	SoftwareIDs        []string `json:"software_ids,omitempty"`
	DeviceIP           string   `json:"device_ip"`
	DevicePort         string   `json:"device_port"`
	DeviceUsername     string   `json:"device_username"`
	DevicePassword     string   `json:"device_password,omitempty"`
	Operator           string   `json:"operator,omitempty"`
	Priority           string   `json:"priority,omitempty"`
}

func (r *CreateTaskRequest) Validate() []string {
	var errs []string

	switch domain.FlashMode(r.Mode) {
	case domain.FlashModeRobot:
		if r.DeviceTypeID == "" {
			errs = append(errs, "device_type_id is required in robot mode")
		}
		if r.VersionID == "" {
			errs = append(errs, "version_id is required in robot mode")
		}
	case domain.FlashModeServer:
		if len(r.SoftwareIDs) == 0 {
			errs = append(errs, "software_ids is required in server mode")
		}
	default:
		errs = append(errs, "mode must be one of: robot, server")
	}

	if r.DeviceIP == "" {
		errs = append(errs, "device_ip is required")
	} else if net.ParseIP(r.DeviceIP) == nil {
		errs = append(errs, "device_ip is not a valid IP address")
	}
	if r.DeviceUsername == "" {
		errs = append(errs, "device_username is required")
	}

	return errs
}

func (r *CreateTaskRequest) ToInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Mode:               domain.FlashMode(r.Mode),
		DeviceTypeID:       r.DeviceTypeID,
		VersionID:          r.VersionID,
		DeviceSerialNumber: r.DeviceSerialNumber,
		SoftwareIDs:        r.SoftwareIDs,
		DeviceIP:           r.DeviceIP,
		DevicePort:         r.DevicePort,
		DeviceUsername:     r.DeviceUsername,
		DevicePassword:     r.DevicePassword,
		Operator:           r.Operator,
		Priority:           r.Priority,
	}
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateTaskStatusRequest) Validate() []string {
	switch domain.TaskStatus(r.Status) {
	case domain.TaskStatusRunning, domain.TaskStatusPaused, domain.TaskStatusSuccess,
		domain.TaskStatusFailed, domain.TaskStatusCancelled:
		return nil
	}
	return []string{"status must be one of: running, paused, success, failed, cancelled"}
}
