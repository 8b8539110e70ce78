package route

import (
	"github.com/gofiber/fiber/v2"

	sessionController "hadirku_backend/internals/features/attendance/session/controller"
	"hadirku_backend/internals/middlewares"
)

// AttendanceSessionUserRoutes: endpoint karyawan (group /api/u/attendance)
func AttendanceSessionUserRoutes(api fiber.Router, ctrl *sessionController.AttendanceSessionController) {
	attendance := api.Group("/attendance")

	// mutasi absensi dibatasi limiter khusus
	attendance.Post("/check-in", middlewares.AttendanceRateLimiter(), ctrl.CheckIn)
	attendance.Post("/check-out", middlewares.AttendanceRateLimiter(), ctrl.CheckOut)
	attendance.Post("/breaks/start", ctrl.StartBreak)
	attendance.Post("/breaks/end", ctrl.EndBreak)

	attendance.Get("/sessions", ctrl.ListMySessions)
	attendance.Get("/sessions/active", ctrl.GetActiveSession)
}

// AttendanceSessionAdminRoutes: endpoint admin (group /api/a/attendance)
func AttendanceSessionAdminRoutes(api fiber.Router, ctrl *sessionController.AttendanceSessionController) {
	attendance := api.Group("/attendance")
	attendance.Get("/sessions", ctrl.ListSessions)
}
