package service

import (
	"math"

	"hadirku_backend/internals/features/attendance/geofence/model"
)

// Radius bumi rata-rata (meter), sama dengan yang dipakai klien mobile.
const earthRadiusMeters = 6371000.0

// Point: koordinat yang dilaporkan device saat check-in/check-out.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Haversine: jarak great-circle dua koordinat dalam meter.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// IsWithinAnyFence: true jika point berada di dalam minimal satu fence aktif
// (batas inklusif, jarak == radius dihitung masuk). Fence nonaktif dilewati.
// Daftar kosong → false (fail closed).
func IsWithinAnyFence(p Point, fences []model.GeofenceLocationModel) bool {
	for _, f := range fences {
		if !f.GeofenceLocationIsActive {
			continue
		}
		d := Haversine(p.Latitude, p.Longitude, f.GeofenceLocationLatitude, f.GeofenceLocationLongitude)
		if d <= f.GeofenceLocationRadiusMeters {
			return true
		}
	}
	return false
}
