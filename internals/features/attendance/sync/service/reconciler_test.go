package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionModel "hadirku_backend/internals/features/attendance/session/model"
	sessionService "hadirku_backend/internals/features/attendance/session/service"
	"hadirku_backend/internals/features/attendance/sync/dto"
	workhours "hadirku_backend/internals/features/attendance/workhours/service"
)

// syncFakeStore: fake minimal SessionStore untuk jalur rekonsiliasi
// (InsertSynced saja), dengan natural key in-memory. InsertSynced meniru
// semantik transaksional store asli: gagal → tidak ada baris yang tersisa.
type syncFakeStore struct {
	mu       sync.Mutex
	sessions []sessionModel.AttendanceSessionModel
	breaks   []sessionModel.AttendanceBreakModel

	failWith error // bila di-set, InsertSynced gagal tanpa menulis apa pun
}

func (st *syncFakeStore) InsertSynced(_ context.Context, s *sessionModel.AttendanceSessionModel, breaks []sessionModel.AttendanceBreakModel) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.failWith != nil {
		return st.failWith
	}
	for _, existing := range st.sessions {
		if existing.AttendanceSessionEmployeeId == s.AttendanceSessionEmployeeId &&
			existing.AttendanceSessionCheckInTime.Equal(s.AttendanceSessionCheckInTime) {
			return sessionService.ErrDuplicateNaturalKey
		}
	}
	s.AttendanceSessionId = uuid.New()
	s.AttendanceSessionSyncStatus = sessionModel.SyncStatusSynced
	st.sessions = append(st.sessions, *s)
	for i := range breaks {
		breaks[i].AttendanceBreakId = uuid.New()
		breaks[i].AttendanceBreakSessionId = s.AttendanceSessionId
		st.breaks = append(st.breaks, breaks[i])
	}
	return nil
}

func (st *syncFakeStore) sessionCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *syncFakeStore) breakCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.breaks)
}

// sisanya tidak dipakai reconciler
func (st *syncFakeStore) CreateActive(context.Context, *sessionModel.AttendanceSessionModel) error {
	panic("not used by reconciler")
}
func (st *syncFakeStore) CreateBreak(context.Context, *sessionModel.AttendanceBreakModel) error {
	panic("not used by reconciler")
}
func (st *syncFakeStore) GetByID(context.Context, uuid.UUID) (*sessionModel.AttendanceSessionModel, error) {
	panic("not used by reconciler")
}
func (st *syncFakeStore) GetActiveByEmployee(context.Context, uuid.UUID) (*sessionModel.AttendanceSessionModel, error) {
	panic("not used by reconciler")
}
func (st *syncFakeStore) Update(context.Context, *sessionModel.AttendanceSessionModel) error {
	panic("not used by reconciler")
}
func (st *syncFakeStore) List(context.Context, sessionService.SessionFilter, int, int) ([]sessionModel.AttendanceSessionModel, int64, error) {
	panic("not used by reconciler")
}
func (st *syncFakeStore) GetBreakByID(context.Context, uuid.UUID) (*sessionModel.AttendanceBreakModel, error) {
	panic("not used by reconciler")
}
func (st *syncFakeStore) GetOpenBreak(context.Context, uuid.UUID) (*sessionModel.AttendanceBreakModel, error) {
	panic("not used by reconciler")
}
func (st *syncFakeStore) ListBreaks(context.Context, uuid.UUID) ([]sessionModel.AttendanceBreakModel, error) {
	panic("not used by reconciler")
}
func (st *syncFakeStore) UpdateBreak(context.Context, *sessionModel.AttendanceBreakModel) error {
	panic("not used by reconciler")
}

func record(localID string, employee uuid.UUID, checkIn time.Time, hours time.Duration) dto.LocalSessionRecord {
	out := checkIn.Add(hours)
	return dto.LocalSessionRecord{
		LocalID:      localID,
		EmployeeID:   employee,
		CheckInTime:  checkIn,
		CheckOutTime: &out,
		CheckInLat:   24.7136,
		CheckInLng:   46.6753,
	}
}

func TestReconcile_InsertsBatch(t *testing.T) {
	store := &syncFakeStore{}
	r := NewReconciler(store, workhours.NewCalculator(0))

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	batch := []dto.LocalSessionRecord{
		record("loc-1", uuid.New(), base, 9*time.Hour),
		record("loc-2", uuid.New(), base, 8*time.Hour),
		record("loc-3", uuid.New(), base, 10*time.Hour),
	}

	results := r.Reconcile(context.Background(), uuid.New(), batch)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, batch[i].LocalID, res.LocalID)
		assert.True(t, res.Success)
		assert.NotNil(t, res.ServerID)
		assert.Empty(t, res.Error)
	}
	assert.Equal(t, 3, store.sessionCount())
}

// Idempotensi: batch yang sama dua kali → pass kedua semua duplicate,
// tidak ada baris baru.
func TestReconcile_SecondPassAllDuplicates(t *testing.T) {
	store := &syncFakeStore{}
	r := NewReconciler(store, workhours.NewCalculator(0))

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	batch := []dto.LocalSessionRecord{
		record("loc-1", uuid.New(), base, 9*time.Hour),
		record("loc-2", uuid.New(), base, 8*time.Hour),
	}

	first := r.Reconcile(context.Background(), uuid.New(), batch)
	for _, res := range first {
		require.True(t, res.Success)
	}

	second := r.Reconcile(context.Background(), uuid.New(), batch)
	for _, res := range second {
		assert.False(t, res.Success)
		assert.Equal(t, "duplicate", res.Error)
		assert.Nil(t, res.ServerID)
	}
	assert.Equal(t, 2, store.sessionCount())
}

// Partial failure: record rusak tidak menghentikan record lain.
func TestReconcile_PartialFailure(t *testing.T) {
	store := &syncFakeStore{}
	r := NewReconciler(store, workhours.NewCalculator(0))

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	bad := record("loc-bad", uuid.New(), base, 9*time.Hour)
	bad.CheckOutTime = nil

	batch := []dto.LocalSessionRecord{
		record("loc-1", uuid.New(), base, 9*time.Hour),
		bad,
		record("loc-3", uuid.New(), base, 8*time.Hour),
	}

	results := r.Reconcile(context.Background(), uuid.New(), batch)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "check_out_time")
	assert.True(t, results[2].Success)
	assert.Equal(t, 2, store.sessionCount())
}

// Jam kerja dihitung ulang server-side dari break yang dibawa record.
func TestReconcile_RecomputesWorkHours(t *testing.T) {
	store := &syncFakeStore{}
	r := NewReconciler(store, workhours.NewCalculator(0))

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := record("loc-1", uuid.New(), base, 8*time.Hour+30*time.Minute)
	rec.Breaks = []dto.LocalBreakRecord{{
		BreakStart: base.Add(3 * time.Hour),
		BreakEnd:   base.Add(3*time.Hour + 30*time.Minute),
		BreakType:  "meal",
	}}

	results := r.Reconcile(context.Background(), uuid.New(), []dto.LocalSessionRecord{rec})
	require.Len(t, results, 1)
	require.True(t, results[0].Success)

	require.Equal(t, 1, store.sessionCount())
	s := store.sessions[0]
	require.NotNil(t, s.AttendanceSessionWorkHours)
	assert.Equal(t, 8.00, *s.AttendanceSessionWorkHours)
	assert.Equal(t, 0.00, *s.AttendanceSessionOvertimeHours)
	assert.Equal(t, sessionModel.SyncStatusSynced, s.AttendanceSessionSyncStatus)

	require.Len(t, store.breaks, 1)
	require.NotNil(t, store.breaks[0].AttendanceBreakDurationMinutes)
	assert.Equal(t, 30, *store.breaks[0].AttendanceBreakDurationMinutes)
}

// Interval break kebalik (end sebelum start) harus ditolak — kalau lolos,
// recompute malah MENAMBAH jam kerja, bukan mengurangi.
func TestReconcile_ReversedBreakRejected(t *testing.T) {
	store := &syncFakeStore{}
	r := NewReconciler(store, workhours.NewCalculator(0))

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := record("loc-1", uuid.New(), base, 8*time.Hour)
	rec.Breaks = []dto.LocalBreakRecord{{
		BreakStart: base.Add(4 * time.Hour),
		BreakEnd:   base.Add(1 * time.Hour), // kebalik
	}}

	results := r.Reconcile(context.Background(), uuid.New(), []dto.LocalSessionRecord{rec})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "break_end before break_start")
	assert.Equal(t, 0, store.sessionCount())
}

// Break di luar jendela [check_in, check_out] juga ditolak.
func TestReconcile_BreakOutsideWindowRejected(t *testing.T) {
	store := &syncFakeStore{}
	r := NewReconciler(store, workhours.NewCalculator(0))

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := record("loc-1", uuid.New(), base, 8*time.Hour)
	rec.Breaks = []dto.LocalBreakRecord{{
		BreakStart: base.Add(7 * time.Hour),
		BreakEnd:   base.Add(9 * time.Hour), // melewati check-out
	}}

	results := r.Reconcile(context.Background(), uuid.New(), []dto.LocalSessionRecord{rec})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "outside check_in/check_out window")
	assert.Equal(t, 0, store.sessionCount())
}

// Tulis sesi+break atomik: store gagal → tidak ada state parsial, dan
// retry setelah store pulih berhasil lengkap (bukan duplicate selamanya).
func TestReconcile_FailedWriteLeavesNoPartialState(t *testing.T) {
	store := &syncFakeStore{failWith: errors.New("transient db error")}
	r := NewReconciler(store, workhours.NewCalculator(0))

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := record("loc-1", uuid.New(), base, 8*time.Hour+30*time.Minute)
	rec.Breaks = []dto.LocalBreakRecord{{
		BreakStart: base.Add(3 * time.Hour),
		BreakEnd:   base.Add(3*time.Hour + 30*time.Minute),
	}}

	first := r.Reconcile(context.Background(), uuid.New(), []dto.LocalSessionRecord{rec})
	require.Len(t, first, 1)
	assert.False(t, first[0].Success)
	assert.Contains(t, first[0].Error, "transient db error")
	assert.Equal(t, 0, store.sessionCount())
	assert.Equal(t, 0, store.breakCount())

	// store pulih → retry record yang sama harus sukses, lengkap dengan break
	store.mu.Lock()
	store.failWith = nil
	store.mu.Unlock()

	second := r.Reconcile(context.Background(), uuid.New(), []dto.LocalSessionRecord{rec})
	require.Len(t, second, 1)
	assert.True(t, second[0].Success)
	assert.NotNil(t, second[0].ServerID)
	assert.Equal(t, 1, store.sessionCount())
	assert.Equal(t, 1, store.breakCount())
}

// Batch besar dengan paralelisme terbatas tetap mengembalikan hasil
// pada indeks yang benar.
func TestReconcile_LargeBatchKeepsOrder(t *testing.T) {
	store := &syncFakeStore{}
	r := NewReconciler(store, workhours.NewCalculator(0))
	r.Workers = 4

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	var batch []dto.LocalSessionRecord
	for i := 0; i < 50; i++ {
		batch = append(batch, record(
			"loc-"+uuid.NewString(),
			uuid.New(),
			base.Add(time.Duration(i)*time.Minute),
			8*time.Hour,
		))
	}

	results := r.Reconcile(context.Background(), uuid.New(), batch)
	require.Len(t, results, 50)
	for i, res := range results {
		assert.Equal(t, batch[i].LocalID, res.LocalID)
		assert.True(t, res.Success)
	}
	assert.Equal(t, 50, store.sessionCount())
}
