package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sessionModel "hadirku_backend/internals/features/attendance/session/model"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func closedBreak(t *testing.T, start, end string) sessionModel.AttendanceBreakModel {
	t.Helper()
	e := ts(t, end)
	return sessionModel.AttendanceBreakModel{
		AttendanceBreakStart: ts(t, start),
		AttendanceBreakEnd:   &e,
	}
}

func TestCompute_StandardDayWithBreak(t *testing.T) {
	calc := NewCalculator(0)

	// 09:00 → 17:30 dengan break 30 menit = 8 jam kerja, 0 lembur
	work, overtime := calc.Compute(
		ts(t, "2025-03-10T09:00:00Z"),
		ts(t, "2025-03-10T17:30:00Z"),
		[]sessionModel.AttendanceBreakModel{
			closedBreak(t, "2025-03-10T12:00:00Z", "2025-03-10T12:30:00Z"),
		},
	)
	assert.Equal(t, 8.00, work)
	assert.Equal(t, 0.00, overtime)
}

func TestCompute_OvertimeNoBreaks(t *testing.T) {
	calc := NewCalculator(0)

	// 08:00 → 19:00 tanpa break = 11 jam kerja, 3 jam lembur
	work, overtime := calc.Compute(
		ts(t, "2025-03-10T08:00:00Z"),
		ts(t, "2025-03-10T19:00:00Z"),
		nil,
	)
	assert.Equal(t, 11.00, work)
	assert.Equal(t, 3.00, overtime)
}

func TestCompute_OpenBreakIgnored(t *testing.T) {
	calc := NewCalculator(0)

	work, overtime := calc.Compute(
		ts(t, "2025-03-10T09:00:00Z"),
		ts(t, "2025-03-10T17:00:00Z"),
		[]sessionModel.AttendanceBreakModel{
			{AttendanceBreakStart: ts(t, "2025-03-10T12:00:00Z")}, // masih terbuka
		},
	)
	assert.Equal(t, 8.00, work)
	assert.Equal(t, 0.00, overtime)
}

func TestCompute_NegativeDurationFloorsAtZero(t *testing.T) {
	calc := NewCalculator(0)

	// total break > durasi sesi → 0.00, bukan negatif
	work, overtime := calc.Compute(
		ts(t, "2025-03-10T09:00:00Z"),
		ts(t, "2025-03-10T10:00:00Z"),
		[]sessionModel.AttendanceBreakModel{
			closedBreak(t, "2025-03-10T09:00:00Z", "2025-03-10T11:30:00Z"),
		},
	)
	assert.Equal(t, 0.00, work)
	assert.Equal(t, 0.00, overtime)
}

func TestCompute_CustomThreshold(t *testing.T) {
	calc := NewCalculator(7.5)

	work, overtime := calc.Compute(
		ts(t, "2025-03-10T08:00:00Z"),
		ts(t, "2025-03-10T17:00:00Z"),
		nil,
	)
	assert.Equal(t, 9.00, work)
	assert.Equal(t, 1.50, overtime)
}

func TestCompute_Rounding(t *testing.T) {
	calc := NewCalculator(0)

	// 8 jam 20 menit = 8.333... → 8.33
	work, _ := calc.Compute(
		ts(t, "2025-03-10T09:00:00Z"),
		ts(t, "2025-03-10T17:20:00Z"),
		nil,
	)
	assert.Equal(t, 8.33, work)
}

func TestBreakDurationMinutes(t *testing.T) {
	assert.Equal(t, 30, BreakDurationMinutes(ts(t, "2025-03-10T12:00:00Z"), ts(t, "2025-03-10T12:30:00Z")))
	// 29 menit 30 detik dibulatkan ke 30
	assert.Equal(t, 30, BreakDurationMinutes(ts(t, "2025-03-10T12:00:00Z"), ts(t, "2025-03-10T12:29:30Z")))
	assert.Equal(t, 0, BreakDurationMinutes(ts(t, "2025-03-10T12:00:00Z"), ts(t, "2025-03-10T12:00:10Z")))
}
