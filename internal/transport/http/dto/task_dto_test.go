package dto

import "testing"

func validRobotRequest() CreateTaskRequest {
	return CreateTaskRequest{
		Mode:           "robot",
		DeviceTypeID:   "1",
		VersionID:      "2",
		DeviceIP:       "192.168.1.10",
		DeviceUsername: "root",
	}
}

func TestCreateTaskRequestValid(t *testing.T) {
	req := validRobotRequest()
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	server := CreateTaskRequest{
		Mode:           "server",
		SoftwareIDs:    []string{"1"},
		DeviceIP:       "10.0.0.2",
		DeviceUsername: "deploy",
	}
	if errs := server.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestCreateTaskRequestModeRules(t *testing.T) {
	robot := validRobotRequest()
	robot.DeviceTypeID = ""
	robot.VersionID = ""
	if errs := robot.Validate(); len(errs) != 2 {
		t.Errorf("robot missing ids: expected 2 errors, got %v", errs)
	}

	server := CreateTaskRequest{
		Mode:           "server",
		DeviceIP:       "10.0.0.2",
		DeviceUsername: "deploy",
	}
	if errs := server.Validate(); len(errs) != 1 {
		t.Errorf("server without software: expected 1 error, got %v", errs)
	}

	bad := validRobotRequest()
	bad.Mode = "drone"
	if errs := bad.Validate(); len(errs) != 1 {
		t.Errorf("bad mode: expected 1 error, got %v", errs)
	}
}

func TestCreateTaskRequestIPValidation(t *testing.T) {
	req := validRobotRequest()
	req.DeviceIP = "not-an-ip"
	if errs := req.Validate(); len(errs) != 1 {
		t.Errorf("bad ip: expected 1 error, got %v", errs)
	}

	req.DeviceIP = ""
	if errs := req.Validate(); len(errs) != 1 {
		t.Errorf("empty ip: expected 1 error, got %v", errs)
	}

	req = validRobotRequest()
	req.DeviceIP = "fd00::1"
	if errs := req.Validate(); len(errs) != 0 {
		t.Errorf("ipv6 should be accepted, got %v", errs)
	}
}

func TestUpdateTaskStatusRequestValidate(t *testing.T) {
	for _, status := range []string{"running", "paused", "success", "failed", "cancelled"} {
		req := UpdateTaskStatusRequest{Status: status}
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("%s: expected valid, got %v", status, errs)
		}
	}

	for _, status := range []string{"", "pending", "done"} {
		req := UpdateTaskStatusRequest{Status: status}
		if errs := req.Validate(); len(errs) != 1 {
			t.Errorf("%q: expected rejected, got %v", status, errs)
		}
	}
}
