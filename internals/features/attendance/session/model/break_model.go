package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceBreakModel: jeda di dalam satu sesi. Lifetime break ⊆ lifetime sesi.
// Maksimal satu break terbuka (break_end IS NULL) per sesi — index partial di migrasi.
type AttendanceBreakModel struct {
	AttendanceBreakId        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_break_id" json:"attendance_break_id"`
	AttendanceBreakSessionId uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_break_session_id" json:"attendance_break_session_id"`

	AttendanceBreakStart time.Time  `gorm:"not null;column:attendance_break_start" json:"attendance_break_start"`
	AttendanceBreakEnd   *time.Time `gorm:"column:attendance_break_end" json:"attendance_break_end,omitempty"`

	// Tag bebas: "regular", "prayer", "meal", ... — opaque untuk engine
	AttendanceBreakType string `gorm:"type:varchar(40);not null;default:'regular';column:attendance_break_type" json:"attendance_break_type"`

	// Terisi saat break diakhiri
	AttendanceBreakDurationMinutes *int    `gorm:"column:attendance_break_duration_minutes" json:"attendance_break_duration_minutes,omitempty"`
	AttendanceBreakNotes           *string `gorm:"column:attendance_break_notes" json:"attendance_break_notes,omitempty"`

	AttendanceBreakCreatedAt time.Time `gorm:"column:attendance_break_created_at;autoCreateTime" json:"attendance_break_created_at"`
}

func (AttendanceBreakModel) TableName() string { return "attendance_breaks" }

func (m *AttendanceBreakModel) IsOpen() bool { return m.AttendanceBreakEnd == nil }
