package geo

import (
	"math"
	"sort"

	"knead/models"
)

// earthRadiusMiles for great-circle distance.
const earthRadiusMiles = 3958.8

// DefaultBranches is the read-only registry of known service locations,
// offered as alternatives when an address falls outside the primary radius.
var DefaultBranches = []models.Branch{
	{Name: "Central London", Lat: 51.5074, Lng: -0.1278},
	{Name: "Croydon", Lat: 51.3762, Lng: -0.0982},
	{Name: "Watford", Lat: 51.6565, Lng: -0.3903},
	{Name: "Romford", Lat: 51.5768, Lng: 0.1801},
	{Name: "Kingston upon Thames", Lat: 51.4123, Lng: -0.3007},
}

// haversineMiles returns the great-circle distance between two coordinates.
func haversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// nearestBranches returns up to limit branches sorted ascending by distance
// from the given point.
func nearestBranches(branches []models.Branch, lat, lng float64, limit int) []models.Branch {
	out := make([]models.Branch, len(branches))
	for i, b := range branches {
		b.DistanceMiles = math.Round(haversineMiles(lat, lng, b.Lat, b.Lng)*100) / 100
		out[i] = b
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceMiles < out[j].DistanceMiles
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
