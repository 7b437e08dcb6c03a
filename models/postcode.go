package models

// Branch is a known service location offered as an alternative when an
// address falls outside the primary service area.
type Branch struct {
	Name          string  `json:"name"`
	Lat           float64 `json:"-"`
	Lng           float64 `json:"-"`
	DistanceMiles float64 `json:"distanceMiles"`
}

// PostcodeValidation is the result of a service-area check. Derived per
// request, never persisted.
type PostcodeValidation struct {
	IsValid            bool     `json:"isValid"`
	WithinServiceArea  bool     `json:"withinServiceArea"`
	DistanceFromCenter float64  `json:"distanceFromCenter"` // miles
	NearbyBranches     []Branch `json:"nearbyBranches"`
	Message            string   `json:"message,omitempty"`
}
