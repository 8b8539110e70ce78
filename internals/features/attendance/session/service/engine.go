package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	geofence "hadirku_backend/internals/features/attendance/geofence/service"
	"hadirku_backend/internals/features/attendance/session/model"
	workhours "hadirku_backend/internals/features/attendance/workhours/service"
)

/* =========================================================
 * INPUT / OUTPUT
 * ========================================================= */

type LocationInput struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
}

type CheckInInput struct {
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Location   LocationInput
	DeviceInfo datatypes.JSON
	PhotoRef   *string
	Notes      *string
}

type CheckInResult struct {
	SessionID   uuid.UUID
	CheckInTime time.Time
}

type CheckOutInput struct {
	SessionID  uuid.UUID
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Location   LocationInput
	PhotoRef   *string
	Notes      *string
}

type CheckOutResult struct {
	WorkHours     float64
	OvertimeHours float64
	CheckOutTime  time.Time
}

type BreakStartInput struct {
	SessionID  uuid.UUID
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	BreakType  string
}

type BreakEndInput struct {
	BreakID    uuid.UUID
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Notes      *string
}

/* =========================================================
 * ENGINE
 * ========================================================= */

// Engine mengawal state machine sesi kehadiran:
// NoActiveSession → Active → Completed (terminal), break sebagai sub-state.
// Semua invariant lintas-request (satu active per employee, satu break terbuka
// per sesi) ditegakkan store secara atomik, bukan lock di sini.
type Engine struct {
	Store  SessionStore
	Fences geofence.FenceProvider
	Calc   *workhours.Calculator

	nowFn func() time.Time
}

func NewEngine(store SessionStore, fences geofence.FenceProvider, calc *workhours.Calculator) *Engine {
	return &Engine{
		Store:  store,
		Fences: fences,
		Calc:   calc,
		nowFn:  time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.nowFn != nil {
		return e.nowFn()
	}
	return time.Now()
}

// CheckIn: validasi geofence → insert sesi active.
// Gagal dengan ErrOutOfBounds atau ErrDuplicateActiveSession.
func (e *Engine) CheckIn(ctx context.Context, in CheckInInput) (*CheckInResult, error) {
	fences, err := e.Fences.ActiveFences(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	point := geofence.Point{Latitude: in.Location.Latitude, Longitude: in.Location.Longitude}
	if !geofence.IsWithinAnyFence(point, fences) {
		return nil, ErrOutOfBounds
	}

	now := e.now()
	s := &model.AttendanceSessionModel{
		AttendanceSessionTenantId:         in.TenantID,
		AttendanceSessionEmployeeId:       in.EmployeeID,
		AttendanceSessionStatus:           model.SessionStatusActive,
		AttendanceSessionCheckInTime:      now,
		AttendanceSessionCheckInLat:       in.Location.Latitude,
		AttendanceSessionCheckInLng:       in.Location.Longitude,
		AttendanceSessionCheckInAccuracyM: in.Location.AccuracyMeters,
		AttendanceSessionDeviceInfo:       in.DeviceInfo,
		AttendanceSessionPhotoCheckInRef:  in.PhotoRef,
		AttendanceSessionNotes:            in.Notes,
		AttendanceSessionSyncStatus:       model.SyncStatusLive,
	}
	if err := e.Store.CreateActive(ctx, s); err != nil {
		return nil, err
	}

	return &CheckInResult{SessionID: s.AttendanceSessionId, CheckInTime: now}, nil
}

// ownedSession memuat sesi dan memastikan miliknya caller. Sesi orang lain
// tidak dibedakan dari sesi yang tidak ada — UUID bocor tidak boleh jadi
// kanal enumerasi lintas tenant.
func (e *Engine) ownedSession(ctx context.Context, sessionID, tenantID, employeeID uuid.UUID) (*model.AttendanceSessionModel, error) {
	s, err := e.Store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.AttendanceSessionTenantId != tenantID || s.AttendanceSessionEmployeeId != employeeID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// CheckOut: sesi harus active dan milik caller. Geofence sengaja TIDAK dicek
// ulang di sini — karyawan boleh check-out setelah meninggalkan lokasi
// (perjalanan akhir shift).
func (e *Engine) CheckOut(ctx context.Context, in CheckOutInput) (*CheckOutResult, error) {
	s, err := e.ownedSession(ctx, in.SessionID, in.TenantID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !s.IsActive() {
		return nil, ErrSessionNotActive
	}

	breaks, err := e.Store.ListBreaks(ctx, s.AttendanceSessionId)
	if err != nil {
		return nil, err
	}

	now := e.now()
	work, overtime := e.Calc.Compute(s.AttendanceSessionCheckInTime, now, breaks)

	s.AttendanceSessionStatus = model.SessionStatusCompleted
	s.AttendanceSessionCheckOutTime = &now
	s.AttendanceSessionCheckOutLat = &in.Location.Latitude
	s.AttendanceSessionCheckOutLng = &in.Location.Longitude
	s.AttendanceSessionCheckOutAccuracyM = &in.Location.AccuracyMeters
	s.AttendanceSessionWorkHours = &work
	s.AttendanceSessionOvertimeHours = &overtime
	if in.PhotoRef != nil {
		s.AttendanceSessionPhotoCheckOutRef = in.PhotoRef
	}
	if in.Notes != nil {
		s.AttendanceSessionNotes = in.Notes
	}

	if err := e.Store.Update(ctx, s); err != nil {
		return nil, err
	}

	return &CheckOutResult{WorkHours: work, OvertimeHours: overtime, CheckOutTime: now}, nil
}

// StartBreak: sesi active milik caller + belum ada break terbuka.
func (e *Engine) StartBreak(ctx context.Context, in BreakStartInput) (*model.AttendanceBreakModel, error) {
	s, err := e.ownedSession(ctx, in.SessionID, in.TenantID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !s.IsActive() {
		return nil, ErrSessionNotActive
	}

	// Pre-check murah; race antar request tetap ditangkap unique index
	// lewat CreateBreak.
	if _, err := e.Store.GetOpenBreak(ctx, in.SessionID); err == nil {
		return nil, ErrBreakAlreadyOpen
	} else if !errors.Is(err, ErrNoOpenBreak) {
		return nil, err
	}

	breakType := in.BreakType
	if breakType == "" {
		breakType = "regular"
	}
	b := &model.AttendanceBreakModel{
		AttendanceBreakSessionId: in.SessionID,
		AttendanceBreakStart:     e.now(),
		AttendanceBreakType:      breakType,
	}
	if err := e.Store.CreateBreak(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// EndBreak: break harus ada, masih terbuka, dan sesinya milik caller;
// durasi dibulatkan ke menit.
func (e *Engine) EndBreak(ctx context.Context, in BreakEndInput) (int, error) {
	b, err := e.Store.GetBreakByID(ctx, in.BreakID)
	if err != nil {
		return 0, err
	}
	if _, err := e.ownedSession(ctx, b.AttendanceBreakSessionId, in.TenantID, in.EmployeeID); err != nil {
		// break milik sesi orang lain → tampak tidak ada
		return 0, ErrBreakNotFound
	}
	if !b.IsOpen() {
		return 0, ErrNoOpenBreak
	}

	now := e.now()
	duration := workhours.BreakDurationMinutes(b.AttendanceBreakStart, now)

	b.AttendanceBreakEnd = &now
	b.AttendanceBreakDurationMinutes = &duration
	if in.Notes != nil {
		b.AttendanceBreakNotes = in.Notes
	}

	if err := e.Store.UpdateBreak(ctx, b); err != nil {
		return 0, err
	}
	return duration, nil
}
