package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
 * ENUMS (disimpan sebagai string di kolom)
 * ========================================================= */

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"

	SyncStatusLive   = "live"
	SyncStatusSynced = "synced"
)

/* =========================================================
 * ATTENDANCE SESSION
 * ========================================================= */

// AttendanceSessionModel: satu rekaman kehadiran check-in → check-out.
// Append-only: tidak ada soft delete; koreksi dibuat sebagai sesi baru
// oleh proses administratif di luar engine ini.
type AttendanceSessionModel struct {
	AttendanceSessionId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_session_id" json:"attendance_session_id"`

	AttendanceSessionTenantId   uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_sessions_tenant_checkin,priority:1;column:attendance_session_tenant_id" json:"attendance_session_tenant_id"`
	AttendanceSessionEmployeeId uuid.UUID `gorm:"type:uuid;not null;column:attendance_session_employee_id" json:"attendance_session_employee_id"`

	// active | completed — index partial "satu active per employee" dibuat di migrasi
	AttendanceSessionStatus string `gorm:"type:varchar(20);not null;default:'active';column:attendance_session_status" json:"attendance_session_status"`

	AttendanceSessionCheckInTime  time.Time  `gorm:"not null;index:idx_attendance_sessions_tenant_checkin,priority:2;column:attendance_session_check_in_time" json:"attendance_session_check_in_time"`
	AttendanceSessionCheckOutTime *time.Time `gorm:"column:attendance_session_check_out_time" json:"attendance_session_check_out_time,omitempty"`

	AttendanceSessionCheckInLat       float64 `gorm:"type:double precision;not null;column:attendance_session_check_in_lat" json:"attendance_session_check_in_lat"`
	AttendanceSessionCheckInLng       float64 `gorm:"type:double precision;not null;column:attendance_session_check_in_lng" json:"attendance_session_check_in_lng"`
	AttendanceSessionCheckInAccuracyM float64 `gorm:"type:double precision;not null;default:0;column:attendance_session_check_in_accuracy_m" json:"attendance_session_check_in_accuracy_m"`

	AttendanceSessionCheckOutLat       *float64 `gorm:"type:double precision;column:attendance_session_check_out_lat" json:"attendance_session_check_out_lat,omitempty"`
	AttendanceSessionCheckOutLng       *float64 `gorm:"type:double precision;column:attendance_session_check_out_lng" json:"attendance_session_check_out_lng,omitempty"`
	AttendanceSessionCheckOutAccuracyM *float64 `gorm:"type:double precision;column:attendance_session_check_out_accuracy_m" json:"attendance_session_check_out_accuracy_m,omitempty"`

	// Metadata device apa adanya (tidak divalidasi engine)
	AttendanceSessionDeviceInfo datatypes.JSON `gorm:"type:jsonb;column:attendance_session_device_info" json:"attendance_session_device_info,omitempty"`

	// Terisi hanya saat sesi selesai
	AttendanceSessionWorkHours     *float64 `gorm:"type:numeric(6,2);column:attendance_session_work_hours" json:"attendance_session_work_hours,omitempty"`
	AttendanceSessionOvertimeHours *float64 `gorm:"type:numeric(6,2);column:attendance_session_overtime_hours" json:"attendance_session_overtime_hours,omitempty"`

	// Referensi blob eksternal, opaque
	AttendanceSessionPhotoCheckInRef  *string `gorm:"column:attendance_session_photo_check_in_ref" json:"attendance_session_photo_check_in_ref,omitempty"`
	AttendanceSessionPhotoCheckOutRef *string `gorm:"column:attendance_session_photo_check_out_ref" json:"attendance_session_photo_check_out_ref,omitempty"`

	AttendanceSessionNotes *string `gorm:"column:attendance_session_notes" json:"attendance_session_notes,omitempty"`

	// live | synced — membedakan rekaman langsung vs hasil merge batch offline
	AttendanceSessionSyncStatus string `gorm:"type:varchar(10);not null;default:'live';column:attendance_session_sync_status" json:"attendance_session_sync_status"`

	AttendanceSessionCreatedAt time.Time  `gorm:"column:attendance_session_created_at;autoCreateTime" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt *time.Time `gorm:"column:attendance_session_updated_at;autoUpdateTime" json:"attendance_session_updated_at,omitempty"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

func (m *AttendanceSessionModel) IsActive() bool {
	return m.AttendanceSessionStatus == SessionStatusActive
}
