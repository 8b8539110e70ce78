package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	sessionModel "hadirku_backend/internals/features/attendance/session/model"
	sessionService "hadirku_backend/internals/features/attendance/session/service"
	"hadirku_backend/internals/features/attendance/sync/dto"
	workhours "hadirku_backend/internals/features/attendance/workhours/service"
)

// defaultWorkers: paralelisme internal batch. Record independen satu sama
// lain begitu upsert per-record atomik, jadi urutan tidak dijamin.
const defaultWorkers = 8

// Reconciler meng-merge batch rekaman offline ke store.
// Geofence TIDAK divalidasi ulang di sini — keputusan fence sudah diambil
// klien saat check-in offline (trust boundary yang disengaja); audit
// anomali adalah urusan proses lain.
type Reconciler struct {
	Store   sessionService.SessionStore
	Calc    *workhours.Calculator
	Workers int
}

func NewReconciler(store sessionService.SessionStore, calc *workhours.Calculator) *Reconciler {
	return &Reconciler{Store: store, Calc: calc, Workers: defaultWorkers}
}

// Reconcile memproses tiap record secara independen: kegagalan satu record
// tidak menghentikan sisanya. Hasil dikembalikan per record, urutan sama
// dengan urutan batch.
func (r *Reconciler) Reconcile(ctx context.Context, tenantID uuid.UUID, records []dto.LocalSessionRecord) []dto.SyncResult {
	results := make([]dto.SyncResult, len(records))

	workers := r.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range records {
		i := i
		g.Go(func() error {
			results[i] = r.reconcileOne(gctx, tenantID, records[i])
			return nil
		})
	}
	_ = g.Wait() // worker tidak pernah mengembalikan error; kegagalan ada di results

	return results
}

func (r *Reconciler) reconcileOne(ctx context.Context, tenantID uuid.UUID, rec dto.LocalSessionRecord) dto.SyncResult {
	res := dto.SyncResult{LocalID: rec.LocalID}

	if rec.EmployeeID == uuid.Nil || rec.CheckInTime.IsZero() {
		res.Error = "invalid record: employee_id and check_in_time are required"
		return res
	}
	if rec.CheckOutTime == nil || rec.CheckOutTime.Before(rec.CheckInTime) {
		res.Error = "invalid record: check_out_time missing or before check_in_time"
		return res
	}
	// Interval break kebalik atau keluar jendela sesi → recompute server-side
	// malah menambah jam kerja. Data seperti ini hanya lahir dari clock klien
	// yang rusak atau payload dimanipulasi — tolak, jangan dikoreksi diam-diam.
	for _, b := range rec.Breaks {
		if b.BreakEnd.Before(b.BreakStart) {
			res.Error = "invalid record: break_end before break_start"
			return res
		}
		if b.BreakStart.Before(rec.CheckInTime) || b.BreakEnd.After(*rec.CheckOutTime) {
			res.Error = "invalid record: break outside check_in/check_out window"
			return res
		}
	}

	// Jam kerja dihitung ulang di server dari data mentah record supaya
	// konsisten dengan sesi live — angka hasil hitungan klien tidak dipercaya.
	breaks := make([]sessionModel.AttendanceBreakModel, 0, len(rec.Breaks))
	for _, b := range rec.Breaks {
		end := b.BreakEnd
		d := workhours.BreakDurationMinutes(b.BreakStart, end)
		breaks = append(breaks, sessionModel.AttendanceBreakModel{
			AttendanceBreakStart:           b.BreakStart,
			AttendanceBreakEnd:             &end,
			AttendanceBreakType:            breakTypeOrDefault(b.BreakType),
			AttendanceBreakDurationMinutes: &d,
		})
	}
	work, overtime := r.Calc.Compute(rec.CheckInTime, *rec.CheckOutTime, breaks)

	s := &sessionModel.AttendanceSessionModel{
		AttendanceSessionTenantId:          tenantID,
		AttendanceSessionEmployeeId:        rec.EmployeeID,
		AttendanceSessionStatus:            sessionModel.SessionStatusCompleted,
		AttendanceSessionCheckInTime:       rec.CheckInTime,
		AttendanceSessionCheckOutTime:      rec.CheckOutTime,
		AttendanceSessionCheckInLat:        rec.CheckInLat,
		AttendanceSessionCheckInLng:        rec.CheckInLng,
		AttendanceSessionCheckInAccuracyM:  rec.CheckInAccuracyM,
		AttendanceSessionCheckOutLat:       rec.CheckOutLat,
		AttendanceSessionCheckOutLng:       rec.CheckOutLng,
		AttendanceSessionCheckOutAccuracyM: rec.CheckOutAccuracyM,
		AttendanceSessionDeviceInfo:        rec.DeviceInfo,
		AttendanceSessionWorkHours:         &work,
		AttendanceSessionOvertimeHours:     &overtime,
		AttendanceSessionPhotoCheckInRef:   rec.PhotoCheckInRef,
		AttendanceSessionPhotoCheckOutRef:  rec.PhotoCheckOutRef,
		AttendanceSessionNotes:             rec.Notes,
		AttendanceSessionSyncStatus:        sessionModel.SyncStatusSynced,
	}

	// Sesi + break masuk dalam satu transaksi store. Gagal total atau sukses
	// total — tidak pernah ada sesi tanpa break yang bikin retry klien
	// mentok duplicate selamanya.
	if err := r.Store.InsertSynced(ctx, s, breaks); err != nil {
		if errors.Is(err, sessionService.ErrDuplicateNaturalKey) {
			// Record server menang — last-write-wins sengaja ditolak supaya
			// koreksi sisi server tidak tertimpa data lama klien.
			res.Error = "duplicate"
			return res
		}
		res.Error = err.Error()
		return res
	}

	id := s.AttendanceSessionId
	res.Success = true
	res.ServerID = &id
	return res
}

func breakTypeOrDefault(t string) string {
	if t == "" {
		return "regular"
	}
	return t
}
