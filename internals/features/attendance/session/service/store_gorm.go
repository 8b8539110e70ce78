package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/session/model"
)

// GormSessionStore: implementasi SessionStore di atas Postgres.
type GormSessionStore struct {
	DB *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{DB: db}
}

func (st *GormSessionStore) CreateActive(ctx context.Context, s *model.AttendanceSessionModel) error {
	s.AttendanceSessionStatus = model.SessionStatusActive
	if err := st.DB.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			// Index mana yang kena menentukan errornya
			if strings.Contains(err.Error(), "uq_attendance_sessions_natural_key") {
				return ErrDuplicateNaturalKey
			}
			return ErrDuplicateActiveSession
		}
		return err
	}
	return nil
}

func (st *GormSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*model.AttendanceSessionModel, error) {
	var s model.AttendanceSessionModel
	err := st.DB.WithContext(ctx).
		Where("attendance_session_id = ?", id).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *GormSessionStore) GetActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*model.AttendanceSessionModel, error) {
	var s model.AttendanceSessionModel
	err := st.DB.WithContext(ctx).
		Where("attendance_session_employee_id = ? AND attendance_session_status = ?", employeeID, model.SessionStatusActive).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *GormSessionStore) Update(ctx context.Context, s *model.AttendanceSessionModel) error {
	return st.DB.WithContext(ctx).Save(s).Error
}

func (st *GormSessionStore) List(ctx context.Context, f SessionFilter, limit, offset int) ([]model.AttendanceSessionModel, int64, error) {
	q := st.DB.WithContext(ctx).Model(&model.AttendanceSessionModel{}).
		Where("attendance_session_tenant_id = ?", f.TenantID)

	if len(f.EmployeeIDs) > 0 {
		ids := make([]string, 0, len(f.EmployeeIDs))
		for _, id := range f.EmployeeIDs {
			ids = append(ids, id.String())
		}
		q = q.Where("attendance_session_employee_id = ANY(?)", pq.Array(ids))
	}
	if f.From != nil {
		q = q.Where("attendance_session_check_in_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("attendance_session_check_in_time < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceSessionModel
	if err := q.Order("attendance_session_check_in_time DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (st *GormSessionStore) CreateBreak(ctx context.Context, b *model.AttendanceBreakModel) error {
	if err := st.DB.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrBreakAlreadyOpen
		}
		return err
	}
	return nil
}

func (st *GormSessionStore) GetBreakByID(ctx context.Context, id uuid.UUID) (*model.AttendanceBreakModel, error) {
	var b model.AttendanceBreakModel
	err := st.DB.WithContext(ctx).
		Where("attendance_break_id = ?", id).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBreakNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (st *GormSessionStore) GetOpenBreak(ctx context.Context, sessionID uuid.UUID) (*model.AttendanceBreakModel, error) {
	var b model.AttendanceBreakModel
	err := st.DB.WithContext(ctx).
		Where("attendance_break_session_id = ? AND attendance_break_end IS NULL", sessionID).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOpenBreak
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (st *GormSessionStore) ListBreaks(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceBreakModel, error) {
	var rows []model.AttendanceBreakModel
	if err := st.DB.WithContext(ctx).
		Where("attendance_break_session_id = ?", sessionID).
		Order("attendance_break_start ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (st *GormSessionStore) UpdateBreak(ctx context.Context, b *model.AttendanceBreakModel) error {
	return st.DB.WithContext(ctx).Save(b).Error
}

func (st *GormSessionStore) InsertSynced(ctx context.Context, s *model.AttendanceSessionModel, breaks []model.AttendanceBreakModel) error {
	s.AttendanceSessionSyncStatus = model.SyncStatusSynced
	err := st.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		for i := range breaks {
			breaks[i].AttendanceBreakSessionId = s.AttendanceSessionId
			if err := tx.Create(&breaks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Natural key atau partial-active yang kena — dua-duanya berarti
			// sudah ada record server, dan record server menang.
			return ErrDuplicateNaturalKey
		}
		return err
	}
	return nil
}

// Deteksi unique violation Postgres (kode "23505")
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	type sqlStater interface{ SQLState() string }
	var se sqlStater
	if errors.As(err, &se) && se.SQLState() == "23505" {
		return true
	}
	// string fallback (kompatibel untuk lib/pq & pgx yang dibungkus)
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "23505")
}
