package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	authmw "hadirku_backend/internals/middlewares/auth"

	geofenceController "hadirku_backend/internals/features/attendance/geofence/controller"
	geofenceRoute "hadirku_backend/internals/features/attendance/geofence/route"
	geofenceService "hadirku_backend/internals/features/attendance/geofence/service"
	sessionController "hadirku_backend/internals/features/attendance/session/controller"
	sessionRoute "hadirku_backend/internals/features/attendance/session/route"
	sessionService "hadirku_backend/internals/features/attendance/session/service"
	syncController "hadirku_backend/internals/features/attendance/sync/controller"
	syncRoute "hadirku_backend/internals/features/attendance/sync/route"
	syncService "hadirku_backend/internals/features/attendance/sync/service"
	workhours "hadirku_backend/internals/features/attendance/workhours/service"
)

// SetupRoutes merakit dependency domain sekali, lalu mendaftarkan dua group:
//
//	/api/u — karyawan login (check-in/out, break, sync, riwayat sendiri)
//	/api/a — admin site (monitoring sesi lintas karyawan, kelola lokasi)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	/* ===================== DEPENDENCIES ===================== */
	store := sessionService.NewGormSessionStore(db)
	fences := geofenceService.NewCachedFenceProvider(db, configs.GeofenceCacheTTL)
	calc := workhours.NewCalculator(configs.OvertimeThresholdHours)

	engine := sessionService.NewEngine(store, fences, calc)
	reconciler := syncService.NewReconciler(store, calc)

	sessionCtrl := sessionController.NewAttendanceSessionController(engine, store)
	geofenceCtrl := geofenceController.NewGeofenceLocationController(db, fences)
	syncCtrl := syncController.NewSyncController(reconciler)

	jwt := authmw.AuthJWT(authmw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	/* ===================== USER ROUTES ===================== */
	userAPI := app.Group("/api/u", jwt)
	sessionRoute.AttendanceSessionUserRoutes(userAPI, sessionCtrl)
	geofenceRoute.GeofenceUserRoutes(userAPI, geofenceCtrl)
	syncRoute.SyncUserRoutes(userAPI, syncCtrl)

	/* ===================== ADMIN ROUTES ===================== */
	adminAPI := app.Group("/api/a", jwt)
	sessionRoute.AttendanceSessionAdminRoutes(adminAPI, sessionCtrl)
	geofenceRoute.GeofenceAdminRoutes(adminAPI, geofenceCtrl)
}
