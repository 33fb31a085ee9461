package kernel

import (
	"errors"
	"fmt"
	"math"

	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0

	// EarthRadiusKm is the mean earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation to ensure validity.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a point on the earth's surface given as latitude and longitude in degrees.
// Location is an immutable value object; its zero value is invalid and fails validation.
//
// Example:
//
//	loc, err := kernel.NewLocation(12.9716, 77.5946)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(12.971600,77.594600)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location after checking that latitude lies in [-90, 90]
// and longitude lies in [-180, 180]. NaN is rejected for both.
//
// Parameters:
//   - latitude: degrees north of the equator
//   - longitude: degrees east of Greenwich
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if a coordinate is out of bounds
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for literals known to be valid. It panics otherwise.
func MustNewLocation(latitude, longitude float64) Location {
	loc, err := NewLocation(latitude, longitude)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate checks that the Location was created through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns degrees north of the equator.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns degrees east of Greenwich.
func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual reports whether both locations have identical coordinates.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceKm calculates the great-circle distance between two locations in kilometers
// using the haversine formula on a sphere of radius EarthRadiusKm.
//
// Parameters:
//   - other: The Location to calculate distance to
//
// Returns:
//   - float64: distance in kilometers, symmetric and zero for identical points
//   - error: Validation error if either location is improperly constructed
//
// Example:
//
//	bangalore, _ := NewLocation(12.9716, 77.5946)
//	mysore, _ := NewLocation(12.2958, 76.6394)
//	d, _ := bangalore.DistanceKm(mysore) // d ≈ 128
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return Haversine(l.latitude, l.longitude, other.latitude, other.longitude), nil
}

// Destination returns the point reached by travelling distanceKm from l along the
// initial bearing given in degrees clockwise from north. Longitude is normalized
// to [-180, 180].
func (l Location) Destination(bearingDeg, distanceKm float64) (Location, error) {
	if err := l.Validate(); err != nil {
		return Location{}, err
	}

	lat1 := toRadians(l.latitude)
	lon1 := toRadians(l.longitude)
	brng := toRadians(bearingDeg)
	delta := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	lon := math.Mod(toDegrees(lon2)+540, 360) - 180
	return NewLocation(toDegrees(lat2), lon)
}

// Haversine returns the great-circle distance in kilometers between two
// latitude/longitude pairs given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a slightly above 1 for antipodal points
	a = math.Min(1, a)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// setLatitude and setLongitude use pointer receivers so construction can
// validate and assign in one step while the public API stays value-based.
func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
