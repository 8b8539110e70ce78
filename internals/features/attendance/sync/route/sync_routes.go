package route

import (
	"github.com/gofiber/fiber/v2"

	syncController "hadirku_backend/internals/features/attendance/sync/controller"
	"hadirku_backend/internals/middlewares"
)

// SyncUserRoutes: batch rekonsiliasi offline (group /api/u/attendance)
func SyncUserRoutes(api fiber.Router, ctrl *syncController.SyncController) {
	attendance := api.Group("/attendance")
	attendance.Post("/sync", middlewares.SyncRateLimiter(), ctrl.ReconcileBatch)
}
