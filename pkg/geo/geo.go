package geo

import (
	"math"
)

// EarthRadiusKm is the mean planetary radius used for all km <-> radian conversions.
const EarthRadiusKm = 6371.0

// ValidCoordinate reports whether lat/lon are finite and inside the usual degree ranges.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
