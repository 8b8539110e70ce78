package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// LocalBreakRecord: break yang sudah ditutup klien saat offline.
type LocalBreakRecord struct {
	BreakStart time.Time `json:"break_start" validate:"required"`
	BreakEnd   time.Time `json:"break_end" validate:"required"`
	BreakType  string    `json:"break_type" validate:"omitempty,max=40"`
}

// LocalSessionRecord: satu sesi yang direkam klien saat offline, sudah
// final (check-in + check-out) dan tervalidasi geofence di sisi klien.
// local_id dibuat klien; server id belum ada — makanya merge pakai
// natural key (employee_id + check_in_time).
type LocalSessionRecord struct {
	LocalID string `json:"local_id" validate:"required,max=80"`

	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`

	CheckInTime  time.Time  `json:"check_in_time" validate:"required"`
	CheckOutTime *time.Time `json:"check_out_time" validate:"required"`

	CheckInLat       float64 `json:"check_in_lat"`
	CheckInLng       float64 `json:"check_in_lng"`
	CheckInAccuracyM float64 `json:"check_in_accuracy_m"`

	CheckOutLat       *float64 `json:"check_out_lat,omitempty"`
	CheckOutLng       *float64 `json:"check_out_lng,omitempty"`
	CheckOutAccuracyM *float64 `json:"check_out_accuracy_m,omitempty"`

	DeviceInfo datatypes.JSON `json:"device_info,omitempty"`

	PhotoCheckInRef  *string `json:"photo_check_in_ref,omitempty"`
	PhotoCheckOutRef *string `json:"photo_check_out_ref,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	Breaks []LocalBreakRecord `json:"breaks,omitempty" validate:"dive"`
}

type ReconcileBatchRequest struct {
	Records []LocalSessionRecord `json:"records" validate:"required,min=1,max=500,dive"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

// SyncResult per record — caller bisa re-queue hanya subset yang gagal.
type SyncResult struct {
	LocalID  string     `json:"local_id"`
	Success  bool       `json:"success"`
	ServerID *uuid.UUID `json:"server_id,omitempty"`
	Error    string     `json:"error,omitempty"`
}

type ReconcileBatchResponse struct {
	Results []SyncResult `json:"results"`
}
