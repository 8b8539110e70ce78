package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/session/model"
)

// SessionFilter: filter list sesi (tenant wajib, sisanya opsional).
type SessionFilter struct {
	TenantID    uuid.UUID
	EmployeeIDs []uuid.UUID
	From        *time.Time
	To          *time.Time
}

// SessionStore: batas persistensi engine. Satu-satunya pemilik invariant
// "maksimal satu sesi active per employee" — komponen lain tidak boleh
// menulis tabel sesi lewat jalur lain. Implementasi produksi pakai GORM;
// test pakai fake in-memory.
type SessionStore interface {
	// CreateActive menyisipkan sesi baru berstatus active secara atomik.
	// Mengembalikan ErrDuplicateActiveSession bila employee sudah punya
	// sesi active (race antar device ditangkap unique index, bukan lock aplikasi).
	CreateActive(ctx context.Context, s *model.AttendanceSessionModel) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.AttendanceSessionModel, error)
	GetActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*model.AttendanceSessionModel, error)
	Update(ctx context.Context, s *model.AttendanceSessionModel) error
	List(ctx context.Context, f SessionFilter, limit, offset int) ([]model.AttendanceSessionModel, int64, error)

	// CreateBreak mengembalikan ErrBreakAlreadyOpen bila masih ada break terbuka.
	CreateBreak(ctx context.Context, b *model.AttendanceBreakModel) error
	GetBreakByID(ctx context.Context, id uuid.UUID) (*model.AttendanceBreakModel, error)
	GetOpenBreak(ctx context.Context, sessionID uuid.UUID) (*model.AttendanceBreakModel, error)
	ListBreaks(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceBreakModel, error)
	UpdateBreak(ctx context.Context, b *model.AttendanceBreakModel) error

	// InsertSynced: insert idempoten by natural key (employee_id + check_in_time)
	// untuk rekonsiliasi batch offline. Sesi + break-nya masuk dalam satu
	// transaksi — gagal di tengah tidak boleh meninggalkan sesi tanpa break,
	// karena retry berikutnya akan terjawab duplicate selamanya.
	// Mengembalikan ErrDuplicateNaturalKey bila record dengan natural key
	// sama sudah ada (record server menang).
	InsertSynced(ctx context.Context, s *model.AttendanceSessionModel, breaks []model.AttendanceBreakModel) error
}
