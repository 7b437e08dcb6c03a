package geo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	centreLat = 51.5074
	centreLng = -0.1278
)

// fakeGeocoder returns fixed coordinates or a canned error.
type fakeGeocoder struct {
	lat, lng float64
	err      error
}

func (g *fakeGeocoder) Lookup(ctx context.Context, postcode string) (float64, float64, error) {
	if g.err != nil {
		return 0, 0, g.err
	}
	return g.lat, g.lng, nil
}

func testValidator(g Geocoder) *DefaultValidator {
	return &DefaultValidator{
		Geocoder:    g,
		Branches:    DefaultBranches,
		CentreLat:   centreLat,
		CentreLng:   centreLng,
		RadiusMiles: 10.0,
		BranchLimit: 3,
	}
}

func TestValidateWithinArea(t *testing.T) {
	// Croydon, roughly 9 miles from the centre point.
	v := testValidator(&fakeGeocoder{lat: 51.3762, lng: -0.0982})

	result, err := v.Validate(context.Background(), "CR0 1PB")
	require.NoError(t, err)

	assert.True(t, result.IsValid)
	assert.True(t, result.WithinServiceArea)
	assert.Less(t, result.DistanceFromCenter, 10.0)
	assert.Empty(t, result.NearbyBranches)
	assert.Empty(t, result.Message)
}

func TestValidateInclusiveBoundary(t *testing.T) {
	target := fakeGeocoder{lat: 51.6565, lng: -0.3903} // Watford
	distance := math.Round(haversineMiles(centreLat, centreLng, target.lat, target.lng)*100) / 100

	v := testValidator(&target)
	v.RadiusMiles = distance // exactly on the boundary

	result, err := v.Validate(context.Background(), "WD17 1AA")
	require.NoError(t, err)
	assert.True(t, result.WithinServiceArea, "distance equal to radius is in area")

	v.RadiusMiles = distance - 0.01
	result, err = v.Validate(context.Background(), "WD17 1AA")
	require.NoError(t, err)
	assert.False(t, result.WithinServiceArea, "distance beyond radius is out of area")
}

func TestValidateOutOfAreaSuggestsBranches(t *testing.T) {
	// Brighton, well outside a 10 mile London radius.
	v := testValidator(&fakeGeocoder{lat: 50.8225, lng: -0.1372})

	result, err := v.Validate(context.Background(), "BN1 1AA")
	require.NoError(t, err)

	assert.True(t, result.IsValid)
	assert.False(t, result.WithinServiceArea)
	assert.NotEmpty(t, result.Message)
	require.Len(t, result.NearbyBranches, 3)
	for i := 1; i < len(result.NearbyBranches); i++ {
		assert.LessOrEqual(t,
			result.NearbyBranches[i-1].DistanceMiles,
			result.NearbyBranches[i].DistanceMiles,
			"branches must be sorted nearest first")
	}
	// Croydon is the closest registered branch to Brighton.
	assert.Equal(t, "Croydon", result.NearbyBranches[0].Name)
}

func TestValidateMalformedPostcode(t *testing.T) {
	v := testValidator(&fakeGeocoder{})

	for _, input := range []string{"", "banana", "123456", "SW1A"} {
		result, err := v.Validate(context.Background(), input)
		require.NoError(t, err, input)
		assert.False(t, result.IsValid, input)
		assert.NotEmpty(t, result.Message, input)
	}
}

func TestValidateUnknownPostcode(t *testing.T) {
	v := testValidator(&fakeGeocoder{err: ErrUnknownPostcode})

	result, err := v.Validate(context.Background(), "ZZ99 9ZZ")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "postcode not recognised", result.Message)
}

func TestValidateProviderOutage(t *testing.T) {
	v := testValidator(&fakeGeocoder{err: ErrGeocodeUnavailable})

	_, err := v.Validate(context.Background(), "SW1A 1AA")
	assert.ErrorIs(t, err, ErrGeocodeUnavailable)
}

func TestNearestBranchesLimit(t *testing.T) {
	got := nearestBranches(DefaultBranches, centreLat, centreLng, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Central London", got[0].Name)
	assert.Equal(t, 0.0, got[0].DistanceMiles)
}

func TestHaversineKnownDistance(t *testing.T) {
	// London to Paris is roughly 213 miles.
	d := haversineMiles(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 213, d, 3)
}
