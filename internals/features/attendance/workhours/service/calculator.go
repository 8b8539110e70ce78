package service

import (
	"math"
	"time"

	sessionModel "hadirku_backend/internals/features/attendance/session/model"
)

// DefaultOvertimeThresholdHours: hari kerja standar 8 jam.
const DefaultOvertimeThresholdHours = 8.0

// Calculator menghitung jam kerja & lembur dari pasangan check-in/check-out
// plus daftar break sesi tersebut. Pure function, tidak menyentuh store.
type Calculator struct {
	// Ambang lembur dalam jam; 0 atau negatif → pakai default 8.0
	OvertimeThresholdHours float64
}

func NewCalculator(threshold float64) *Calculator {
	if threshold <= 0 {
		threshold = DefaultOvertimeThresholdHours
	}
	return &Calculator{OvertimeThresholdHours: threshold}
}

// Compute: rawHours dikurangi total durasi break yang SUDAH tertutup.
// Break yang masih terbuka saat check-out dihitung nol (dilewati) — klien yang
// benar menutup break sebelum check-out, tapi kalkulator tidak boleh gagal
// karena break menggantung.
func (calc *Calculator) Compute(checkIn, checkOut time.Time, breaks []sessionModel.AttendanceBreakModel) (workHours, overtimeHours float64) {
	raw := checkOut.Sub(checkIn).Hours()

	for _, b := range breaks {
		if b.AttendanceBreakEnd == nil {
			continue
		}
		raw -= b.AttendanceBreakEnd.Sub(b.AttendanceBreakStart).Hours()
	}

	// Floor di nol: break melebihi durasi sesi tidak boleh menghasilkan jam negatif
	workHours = math.Max(0, raw)
	overtimeHours = math.Max(0, workHours-calc.OvertimeThresholdHours)

	workHours = Round2(workHours)
	overtimeHours = Round2(overtimeHours)
	return workHours, overtimeHours
}

// BreakDurationMinutes: durasi break dalam menit, dibulatkan ke menit terdekat.
func BreakDurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// Round2: pembulatan 2 desimal, half-up.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
