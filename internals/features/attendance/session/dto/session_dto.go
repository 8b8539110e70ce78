package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "hadirku_backend/internals/features/attendance/session/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Koordinat yang dilaporkan device. Lat/lng 0 valid (teluk Guinea),
// jadi tidak pakai required — cukup range check.
type LocationRequest struct {
	Latitude       float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64 `json:"longitude" validate:"min=-180,max=180"`
	AccuracyMeters float64 `json:"accuracy_m" validate:"min=0"`
}

// Check-in (JSON). employee_id & tenant_id diambil dari token, bukan body.
type CheckInRequest struct {
	Location LocationRequest `json:"location" validate:"required"`

	// Metadata device apa adanya: {device_type, device_name, os_version, app_version}
	DeviceInfo datatypes.JSON `json:"device_info,omitempty"`

	PhotoRef *string `json:"photo_ref,omitempty" validate:"omitempty,max=500"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type CheckOutRequest struct {
	SessionID uuid.UUID       `json:"session_id" validate:"required"`
	Location  LocationRequest `json:"location" validate:"required"`
	PhotoRef  *string         `json:"photo_ref,omitempty" validate:"omitempty,max=500"`
	Notes     *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type BreakStartRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	BreakType string    `json:"break_type,omitempty" validate:"omitempty,max=40"`
}

type BreakEndRequest struct {
	BreakID uuid.UUID `json:"break_id" validate:"required"`
	Notes   *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type CheckInResponse struct {
	SessionID   uuid.UUID `json:"session_id"`
	CheckInTime time.Time `json:"check_in_time"`
}

type CheckOutResponse struct {
	WorkHours     float64   `json:"work_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	CheckOutTime  time.Time `json:"check_out_time"`
}

type BreakStartResponse struct {
	BreakID uuid.UUID `json:"break_id"`
}

type BreakEndResponse struct {
	DurationMinutes int `json:"duration_minutes"`
}

type SessionResponse struct {
	SessionID  uuid.UUID `json:"session_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Status     string    `json:"status"`

	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`

	CheckInLat       float64  `json:"check_in_lat"`
	CheckInLng       float64  `json:"check_in_lng"`
	CheckInAccuracyM float64  `json:"check_in_accuracy_m"`
	CheckOutLat      *float64 `json:"check_out_lat,omitempty"`
	CheckOutLng      *float64 `json:"check_out_lng,omitempty"`

	WorkHours     *float64 `json:"work_hours,omitempty"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`

	DeviceInfo datatypes.JSON `json:"device_info,omitempty"`

	PhotoCheckInRef  *string `json:"photo_check_in_ref,omitempty"`
	PhotoCheckOutRef *string `json:"photo_check_out_ref,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	SyncStatus string `json:"sync_status"`
}

func NewSessionResponse(mdl m.AttendanceSessionModel) SessionResponse {
	return SessionResponse{
		SessionID:        mdl.AttendanceSessionId,
		EmployeeID:       mdl.AttendanceSessionEmployeeId,
		Status:           mdl.AttendanceSessionStatus,
		CheckInTime:      mdl.AttendanceSessionCheckInTime,
		CheckOutTime:     mdl.AttendanceSessionCheckOutTime,
		CheckInLat:       mdl.AttendanceSessionCheckInLat,
		CheckInLng:       mdl.AttendanceSessionCheckInLng,
		CheckInAccuracyM: mdl.AttendanceSessionCheckInAccuracyM,
		CheckOutLat:      mdl.AttendanceSessionCheckOutLat,
		CheckOutLng:      mdl.AttendanceSessionCheckOutLng,
		WorkHours:        mdl.AttendanceSessionWorkHours,
		OvertimeHours:    mdl.AttendanceSessionOvertimeHours,
		DeviceInfo:       mdl.AttendanceSessionDeviceInfo,
		PhotoCheckInRef:  mdl.AttendanceSessionPhotoCheckInRef,
		PhotoCheckOutRef: mdl.AttendanceSessionPhotoCheckOutRef,
		Notes:            mdl.AttendanceSessionNotes,
		SyncStatus:       mdl.AttendanceSessionSyncStatus,
	}
}

func NewSessionResponses(models []m.AttendanceSessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewSessionResponse(mdl))
	}
	return out
}
