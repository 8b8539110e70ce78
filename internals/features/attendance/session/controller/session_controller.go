package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/session/dto"
	"hadirku_backend/internals/features/attendance/session/service"
	helper "hadirku_backend/internals/helpers"
)

type AttendanceSessionController struct {
	Engine *service.Engine
	Store  service.SessionStore
}

func NewAttendanceSessionController(engine *service.Engine, store service.SessionStore) *AttendanceSessionController {
	return &AttendanceSessionController{Engine: engine, Store: store}
}

var validate = validator.New()

/* ===================== CHECK-IN ===================== */
// POST /api/u/attendance/check-in
func (ctrl *AttendanceSessionController) CheckIn(c *fiber.Ctx) error {
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctrl.Engine.CheckIn(c.UserContext(), service.CheckInInput{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Location: service.LocationInput{
			Latitude:       req.Location.Latitude,
			Longitude:      req.Location.Longitude,
			AccuracyMeters: req.Location.AccuracyMeters,
		},
		DeviceInfo: req.DeviceInfo,
		PhotoRef:   req.PhotoRef,
		Notes:      req.Notes,
	})
	if err != nil {
		return mapEngineError(c, err)
	}

	return helper.JsonCreated(c, "Check-in berhasil", dto.CheckInResponse{
		SessionID:   res.SessionID,
		CheckInTime: res.CheckInTime,
	})
}

/* ===================== CHECK-OUT ===================== */
// POST /api/u/attendance/check-out
func (ctrl *AttendanceSessionController) CheckOut(c *fiber.Ctx) error {
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctrl.Engine.CheckOut(c.UserContext(), service.CheckOutInput{
		SessionID:  req.SessionID,
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Location: service.LocationInput{
			Latitude:       req.Location.Latitude,
			Longitude:      req.Location.Longitude,
			AccuracyMeters: req.Location.AccuracyMeters,
		},
		PhotoRef: req.PhotoRef,
		Notes:    req.Notes,
	})
	if err != nil {
		return mapEngineError(c, err)
	}

	return helper.JsonOK(c, "Check-out berhasil", dto.CheckOutResponse{
		WorkHours:     res.WorkHours,
		OvertimeHours: res.OvertimeHours,
		CheckOutTime:  res.CheckOutTime,
	})
}

/* ===================== BREAKS ===================== */
// POST /api/u/attendance/breaks/start
func (ctrl *AttendanceSessionController) StartBreak(c *fiber.Ctx) error {
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BreakStartRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	b, err := ctrl.Engine.StartBreak(c.UserContext(), service.BreakStartInput{
		SessionID:  req.SessionID,
		TenantID:   tenantID,
		EmployeeID: employeeID,
		BreakType:  req.BreakType,
	})
	if err != nil {
		return mapEngineError(c, err)
	}

	return helper.JsonCreated(c, "Break dimulai", dto.BreakStartResponse{BreakID: b.AttendanceBreakId})
}

// POST /api/u/attendance/breaks/end
func (ctrl *AttendanceSessionController) EndBreak(c *fiber.Ctx) error {
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BreakEndRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	duration, err := ctrl.Engine.EndBreak(c.UserContext(), service.BreakEndInput{
		BreakID:    req.BreakID,
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Notes:      req.Notes,
	})
	if err != nil {
		return mapEngineError(c, err)
	}

	return helper.JsonOK(c, "Break selesai", dto.BreakEndResponse{DurationMinutes: duration})
}

/* ===================== QUERIES ===================== */
// GET /api/u/attendance/sessions/active — sesi berjalan milik caller
func (ctrl *AttendanceSessionController) GetActiveSession(c *fiber.Ctx) error {
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}

	s, err := ctrl.Store.GetActiveByEmployee(c.UserContext(), employeeID)
	if errors.Is(err, service.ErrSessionNotFound) {
		return helper.JsonOK(c, "Tidak ada sesi aktif", nil)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca sesi")
	}

	return helper.JsonOK(c, "ok", dto.NewSessionResponse(*s))
}

// GET /api/u/attendance/sessions — riwayat sesi milik caller
func (ctrl *AttendanceSessionController) ListMySessions(c *fiber.Ctx) error {
	employeeID, err := helper.GetEmployeeIDFromToken(c)
	if err != nil {
		return err
	}
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	filter := service.SessionFilter{
		TenantID:    tenantID,
		EmployeeIDs: []uuid.UUID{employeeID},
	}
	if err := applyRangeQuery(c, &filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return ctrl.list(c, filter)
}

// GET /api/a/attendance/sessions — list tenant-wide (admin),
// filter opsional ?employee_ids=a,b,c&from=...&to=...
func (ctrl *AttendanceSessionController) ListSessions(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	filter := service.SessionFilter{TenantID: tenantID}
	if raw := strings.TrimSpace(c.Query("employee_ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "employee_ids tidak valid")
			}
			filter.EmployeeIDs = append(filter.EmployeeIDs, id)
		}
	}
	if err := applyRangeQuery(c, &filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return ctrl.list(c, filter)
}

func (ctrl *AttendanceSessionController) list(c *fiber.Ctx, filter service.SessionFilter) error {
	p := helper.ResolvePaging(c, 25, 200)

	rows, total, err := ctrl.Store.List(c.UserContext(), filter, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca sesi")
	}

	return helper.JsonList(c, "ok", dto.NewSessionResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =======================================================
   HELPERS
   ======================================================= */

func applyRangeQuery(c *fiber.Ctx, filter *service.SessionFilter) error {
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := parseDateOrTime(raw)
		if err != nil {
			return errors.New("from tidak valid (pakai YYYY-MM-DD atau RFC3339)")
		}
		filter.From = &t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := parseDateOrTime(raw)
		if err != nil {
			return errors.New("to tidak valid (pakai YYYY-MM-DD atau RFC3339)")
		}
		filter.To = &t
	}
	return nil
}

func parseDateOrTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// mapEngineError memetakan sentinel engine ke envelope JSON + kode domain.
// Error validasi deterministik — tidak pernah di-retry otomatis.
func mapEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrOutOfBounds):
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, "OUT_OF_BOUNDS", "Di luar lokasi yang diizinkan")
	case errors.Is(err, service.ErrDuplicateActiveSession):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "DUPLICATE_ACTIVE_SESSION", "Masih ada sesi aktif untuk karyawan ini")
	case errors.Is(err, service.ErrSessionNotFound):
		return helper.JsonErrorCode(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "Sesi tidak ditemukan")
	case errors.Is(err, service.ErrSessionNotActive):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "SESSION_NOT_ACTIVE", "Sesi sudah selesai / tidak aktif")
	case errors.Is(err, service.ErrBreakNotFound):
		return helper.JsonErrorCode(c, fiber.StatusNotFound, "BREAK_NOT_FOUND", "Break tidak ditemukan")
	case errors.Is(err, service.ErrBreakAlreadyOpen):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "BREAK_ALREADY_OPEN", "Masih ada break yang terbuka")
	case errors.Is(err, service.ErrNoOpenBreak):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "NO_OPEN_BREAK", "Tidak ada break terbuka pada sesi ini")
	default:
		// Error transien (timeout store dsb) — retryable oleh caller dengan backoff
		return helper.JsonError(c, fiber.StatusInternalServerError, "Operasi gagal, silakan coba lagi")
	}
}
