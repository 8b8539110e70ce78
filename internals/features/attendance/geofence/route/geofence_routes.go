package route

import (
	"github.com/gofiber/fiber/v2"

	geofenceController "hadirku_backend/internals/features/attendance/geofence/controller"
)

// GeofenceUserRoutes: karyawan hanya boleh membaca fence aktif tenant-nya
func GeofenceUserRoutes(api fiber.Router, ctrl *geofenceController.GeofenceLocationController) {
	attendance := api.Group("/attendance")
	attendance.Get("/locations", ctrl.ListActiveLocations)
}

// GeofenceAdminRoutes: administrasi site mengelola fence
func GeofenceAdminRoutes(api fiber.Router, ctrl *geofenceController.GeofenceLocationController) {
	attendance := api.Group("/attendance")
	attendance.Post("/locations", ctrl.CreateLocation)
	attendance.Patch("/locations/:id", ctrl.UpdateLocation)
	attendance.Delete("/locations/:id", ctrl.DeactivateLocation)
}
