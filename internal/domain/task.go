package domain

import "time"

type FlashMode string

const (
	FlashModeRobot  FlashMode = "robot"
	FlashModeServer FlashMode = "server"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusPaused    TaskStatus = "paused"
	TaskStatusSuccess   TaskStatus = "success"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are permitted.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusSuccess || s == TaskStatusFailed || s == TaskStatusCancelled
}

// FlashTask is the unit of work for one flashing operation. Tasks live in
// the in-memory task store only; completed runs are archived as FlashRecord
// rows. The device password is accepted on creation but never kept on the
// record.
type FlashTask struct {
	ID   string    `json:"id"`
	Mode FlashMode `json:"mode"`

	// Robot mode
	DeviceTypeID       string `json:"device_type_id,omitempty"`
	VersionID          string `json:"version_id,omitempty"`
	DeviceSerialNumber string `json:"device_serial_number,omitempty"`

	// Server mode
	SoftwareIDs []string `json:"software_ids,omitempty"`

	DeviceIP       string `json:"device_ip"`
	DevicePort     string `json:"device_port"`
	DeviceUsername string `json:"device_username"`

	Status      TaskStatus `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"current_step"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	Logs      []string `json:"logs"`
	CanCancel bool     `json:"can_cancel"`
	CanResume bool     `json:"can_resume"`

	ErrorMessage string `json:"error_message,omitempty"`
	Operator     string `json:"operator,omitempty"`
	Priority     string `json:"priority,omitempty"`
}

// Clone returns a deep copy so callers can hand snapshots across goroutine
// boundaries without aliasing the canonical record's slices.
func (t *FlashTask) Clone() *FlashTask {
	cp := *t
	if t.SoftwareIDs != nil {
		cp.SoftwareIDs = append([]string(nil), t.SoftwareIDs...)
	}
	if t.Logs != nil {
		cp.Logs = append([]string(nil), t.Logs...)
	}
	if t.EndTime != nil {
		end := *t.EndTime
		cp.EndTime = &end
	}
	return &cp
}
