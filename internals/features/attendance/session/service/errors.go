package service

import "errors"

// Error domain yang deterministik & bisa dikoreksi caller — tidak pernah
// di-retry otomatis oleh engine. Controller yang memetakan ke HTTP status.
var (
	// Check-in di luar semua fence aktif tenant
	ErrOutOfBounds = errors.New("location outside allowed geofence")

	// Sudah ada sesi active untuk employee tsb (ditegakkan index partial di DB)
	ErrDuplicateActiveSession = errors.New("employee already has an active session")

	ErrSessionNotFound = errors.New("attendance session not found")

	// Operasi check-out/break pada sesi yang bukan active
	ErrSessionNotActive = errors.New("attendance session is not active")

	ErrBreakNotFound = errors.New("break not found")

	// Start break kedua saat masih ada break terbuka
	ErrBreakAlreadyOpen = errors.New("session already has an open break")

	// End break tanpa break terbuka
	ErrNoOpenBreak = errors.New("no open break on session")

	// Natural key (employee_id + check_in_time) sudah ada — record server menang
	ErrDuplicateNaturalKey = errors.New("duplicate")
)
