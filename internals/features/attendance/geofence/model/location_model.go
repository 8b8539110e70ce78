package model

import (
	"time"

	"github.com/google/uuid"
)

// GeofenceLocationModel: lingkaran (pusat + radius) tempat check-in diizinkan.
// Dimiliki administrasi site; engine hanya membaca fence yang aktif.
type GeofenceLocationModel struct {
	GeofenceLocationId       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:geofence_location_id" json:"geofence_location_id"`
	GeofenceLocationTenantId uuid.UUID `gorm:"type:uuid;not null;index;column:geofence_location_tenant_id" json:"geofence_location_tenant_id"`

	GeofenceLocationName string `gorm:"type:varchar(120);not null;column:geofence_location_name" json:"geofence_location_name"`

	GeofenceLocationLatitude     float64 `gorm:"type:double precision;not null;column:geofence_location_latitude" json:"geofence_location_latitude"`
	GeofenceLocationLongitude    float64 `gorm:"type:double precision;not null;column:geofence_location_longitude" json:"geofence_location_longitude"`
	GeofenceLocationRadiusMeters float64 `gorm:"type:double precision;not null;column:geofence_location_radius_meters" json:"geofence_location_radius_meters"`

	GeofenceLocationIsActive bool `gorm:"not null;default:true;column:geofence_location_is_active" json:"geofence_location_is_active"`

	GeofenceLocationCreatedAt time.Time  `gorm:"column:geofence_location_created_at;autoCreateTime" json:"geofence_location_created_at"`
	GeofenceLocationUpdatedAt *time.Time `gorm:"column:geofence_location_updated_at;autoUpdateTime" json:"geofence_location_updated_at,omitempty"`
}

func (GeofenceLocationModel) TableName() string { return "geofence_locations" }
