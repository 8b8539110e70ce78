package dto

import (
	"github.com/google/uuid"

	m "hadirku_backend/internals/features/attendance/geofence/model"
)

/* =========================================================
 * REQUESTS (admin)
 * ========================================================= */

type CreateGeofenceLocationRequest struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"required,gt=0,max=100000"`
}

// Update (partial JSON)
type UpdateGeofenceLocationRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=120"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	RadiusMeters *float64 `json:"radius_meters,omitempty" validate:"omitempty,gt=0,max=100000"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type GeofenceLocationResponse struct {
	LocationID   uuid.UUID `json:"location_id"`
	Name         string    `json:"name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusMeters float64   `json:"radius_meters"`
	IsActive     bool      `json:"is_active"`
}

func NewGeofenceLocationResponse(mdl m.GeofenceLocationModel) GeofenceLocationResponse {
	return GeofenceLocationResponse{
		LocationID:   mdl.GeofenceLocationId,
		Name:         mdl.GeofenceLocationName,
		Latitude:     mdl.GeofenceLocationLatitude,
		Longitude:    mdl.GeofenceLocationLongitude,
		RadiusMeters: mdl.GeofenceLocationRadiusMeters,
		IsActive:     mdl.GeofenceLocationIsActive,
	}
}

func NewGeofenceLocationResponses(models []m.GeofenceLocationModel) []GeofenceLocationResponse {
	out := make([]GeofenceLocationResponse, 0, len(models))
	for _, mdl := range models {
		out = append(out, NewGeofenceLocationResponse(mdl))
	}
	return out
}

func (r CreateGeofenceLocationRequest) ToModel(tenantID uuid.UUID) m.GeofenceLocationModel {
	return m.GeofenceLocationModel{
		GeofenceLocationTenantId:     tenantID,
		GeofenceLocationName:         r.Name,
		GeofenceLocationLatitude:     r.Latitude,
		GeofenceLocationLongitude:    r.Longitude,
		GeofenceLocationRadiusMeters: r.RadiusMeters,
		GeofenceLocationIsActive:     true,
	}
}
