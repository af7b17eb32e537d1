package geo

import "math"

const earthRadiusKm = 6371

// DistanceKm returns the haversine distance in kilometres between two
// coordinates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1*math.Pi/180)*
			math.Cos(lat2*math.Pi/180)*
			math.Pow(math.Sin(dLng/2), 2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// BoundingBox is a rectangular lat/lng window approximating a circular
// search radius. Used to pre-filter stored places before exact distance
// computation.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoxAround approximates a circle of radiusKm around (lat, lng) with a
// flat-Earth bounding box: radius/111 degrees of latitude and
// radius/(111*cos(lat)) degrees of longitude. Good enough at city scale.
func BoxAround(lat, lng, radiusKm float64) BoundingBox {
	dLat := radiusKm / 111

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLng := radiusKm / (111 * cosLat)

	return BoundingBox{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLng: lng - dLng,
		MaxLng: lng + dLng,
	}
}

// Contains reports whether the coordinate falls inside the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}
