package util

import "math"

const earthRadiusKm = 6371.0

// DistanceKM is the great-circle distance between two points given in degrees.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BoundingBox returns the lat/lng window that contains every point within
// radiusKm of the origin. Used to pre-filter rows before DistanceKM.
func BoundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	dLng := dLat / math.Max(math.Cos(degToRad(lat)), 1e-6)
	return lat - dLat, lat + dLat, lng - dLng, lng + dLng
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
