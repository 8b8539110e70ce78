package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/geofence/dto"
	"hadirku_backend/internals/features/attendance/geofence/model"
	"hadirku_backend/internals/features/attendance/geofence/service"
	helper "hadirku_backend/internals/helpers"
)

// GeofenceLocationController: read untuk karyawan, CRUD untuk admin site.
// Engine sendiri hanya membaca lewat FenceProvider; tulisan di sini harus
// meng-invalidate cache provider.
type GeofenceLocationController struct {
	DB       *gorm.DB
	Provider *service.CachedFenceProvider
}

func NewGeofenceLocationController(db *gorm.DB, provider *service.CachedFenceProvider) *GeofenceLocationController {
	return &GeofenceLocationController{DB: db, Provider: provider}
}

var validate = validator.New()

/* ===================== READ ===================== */
// GET /api/u/attendance/locations — fence aktif tenant caller
func (ctrl *GeofenceLocationController) ListActiveLocations(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	fences, err := ctrl.Provider.ActiveFences(c.UserContext(), tenantID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca lokasi")
	}

	return helper.JsonOK(c, "ok", dto.NewGeofenceLocationResponses(fences))
}

/* ===================== CREATE ===================== */
// POST /api/a/attendance/locations
func (ctrl *GeofenceLocationController) CreateLocation(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateGeofenceLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel(tenantID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat lokasi")
	}
	ctrl.Provider.Invalidate(tenantID)

	return helper.JsonCreated(c, "Lokasi dibuat", dto.NewGeofenceLocationResponse(m))
}

/* ===================== UPDATE ===================== */
// PATCH /api/a/attendance/locations/:id
func (ctrl *GeofenceLocationController) UpdateLocation(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateGeofenceLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var mdl model.GeofenceLocationModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("geofence_location_id = ? AND geofence_location_tenant_id = ?", id, tenantID).
		Take(&mdl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Lokasi tidak ditemukan")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca lokasi")
	}

	if req.Name != nil {
		mdl.GeofenceLocationName = *req.Name
	}
	if req.Latitude != nil {
		mdl.GeofenceLocationLatitude = *req.Latitude
	}
	if req.Longitude != nil {
		mdl.GeofenceLocationLongitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		mdl.GeofenceLocationRadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		mdl.GeofenceLocationIsActive = *req.IsActive
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&mdl).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan lokasi")
	}
	ctrl.Provider.Invalidate(tenantID)

	return helper.JsonOK(c, "Lokasi diperbarui", dto.NewGeofenceLocationResponse(mdl))
}

/* ===================== DEACTIVATE ===================== */
// DELETE /api/a/attendance/locations/:id — soft deactivate, fence tidak pernah
// dihapus fisik (sesi lama masih mereferensikan area tsb secara historis)
func (ctrl *GeofenceLocationController) DeactivateLocation(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.GeofenceLocationModel{}).
		Where("geofence_location_id = ? AND geofence_location_tenant_id = ?", id, tenantID).
		Update("geofence_location_is_active", false)
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan lokasi")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lokasi tidak ditemukan")
	}
	ctrl.Provider.Invalidate(tenantID)

	return helper.JsonOK(c, "Lokasi dinonaktifkan", fiber.Map{"deactivated": true})
}
