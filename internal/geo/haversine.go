// Package geo provides great-circle distance helpers.
//
// Distances use the haversine formula on WGS-84 coordinates with a mean
// Earth radius of 3958.8 miles.
package geo

import (
	"math"

	"roadtrip-planner-service/internal/domain"
)

const (
	// EarthRadiusMiles is the mean radius of Earth in miles.
	EarthRadiusMiles = 3958.8

	// MetersPerMile converts statute miles to meters.
	MetersPerMile = 1609.344
)

// Miles returns the great-circle distance between a and b in miles.
// ok is false, and the distance NaN, when either point is missing or not finite.
func Miles(a, b *domain.Coordinates) (float64, bool) {
	if !domain.HasCoordinates(a) || !domain.HasCoordinates(b) {
		return math.NaN(), false
	}

	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(math.Min(1, h))), true
}

func MilesToMeters(miles float64) float64 { return miles * MetersPerMile }

func MetersToMiles(meters float64) float64 { return meters / MetersPerMile }

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
