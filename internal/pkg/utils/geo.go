package utils

import "math"

const earthRadiusKm = 6371.0

// kmPerDegreeLat - one degree of latitude is ~111.32 km everywhere
const kmPerDegreeLat = 111.32

// HaversineDistance computes the great-circle distance between two points in kilometers
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates reports whether lat/lng fall in the WGS84 range
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateRadius reports whether a search radius is usable (0 < r <= 50 km)
func ValidateRadius(radiusKm float64) bool {
	return radiusKm > 0 && radiusKm <= 50
}

// BoundingBox is a cheap rectangular pre-filter around a center point.
// Candidates outside the box cannot be within radiusKm, so the exact
// haversine test only runs on the ones inside it.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBoundingBox builds the box enclosing the radiusKm circle around (lat, lng).
// Near the poles the longitude span degenerates, so the box falls back to the
// full longitude range rather than excluding valid candidates. A box crossing
// the antimeridian is stored with MinLng > MaxLng; Contains wraps the test
// across the seam.
func NewBoundingBox(lat, lng, radiusKm float64) BoundingBox {
	dLat := radiusKm / kmPerDegreeLat

	cosLat := math.Cos(lat * math.Pi / 180.0)
	dLng := 180.0
	if cosLat > 1e-6 {
		dLng = radiusKm / (kmPerDegreeLat * cosLat)
	}

	minLng, maxLng := lng-dLng, lng+dLng
	if dLng >= 180.0 {
		minLng, maxLng = -180.0, 180.0
	} else {
		if minLng < -180.0 {
			minLng += 360.0
		}
		if maxLng > 180.0 {
			maxLng -= 360.0
		}
	}

	return BoundingBox{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLng: minLng,
		MaxLng: maxLng,
	}
}

// Contains reports whether a point lies inside the box. MinLng > MaxLng marks
// a box wrapping the antimeridian.
func (b BoundingBox) Contains(lat, lng float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.MinLng <= b.MaxLng {
		return lng >= b.MinLng && lng <= b.MaxLng
	}
	return lng >= b.MinLng || lng <= b.MaxLng
}
