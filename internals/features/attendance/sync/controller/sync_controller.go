package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hadirku_backend/internals/features/attendance/sync/dto"
	"hadirku_backend/internals/features/attendance/sync/service"
	helper "hadirku_backend/internals/helpers"
)

type SyncController struct {
	Reconciler *service.Reconciler
}

func NewSyncController(reconciler *service.Reconciler) *SyncController {
	return &SyncController{Reconciler: reconciler}
}

var validate = validator.New()

// POST /api/u/attendance/sync
// Batch selalu dibalas 200 dengan hasil per record — kegagalan parsial
// bukan error HTTP; klien re-queue subset yang gagal saja.
func (ctrl *SyncController) ReconcileBatch(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ReconcileBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	results := ctrl.Reconciler.Reconcile(c.UserContext(), tenantID, req.Records)

	return helper.JsonOK(c, "Sync selesai", dto.ReconcileBatchResponse{Results: results})
}
