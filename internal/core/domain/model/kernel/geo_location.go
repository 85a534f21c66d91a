package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrGeoLocationIsNotConstructed is returned when using a zero GeoLocation.
var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"geo location must be created via NewGeoLocation")

// GeoLocation is a point on the globe in decimal degrees.
//
// Example:
//
//	depot, err := kernel.NewGeoLocation(37.3352, -121.8811)
type GeoLocation struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoLocation validates that latitude is within [-90, 90] and longitude within [-180, 180].
func NewGeoLocation(latitude, longitude float64) (GeoLocation, error) {
	loc := GeoLocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return GeoLocation{}, err
	}

	return loc, nil
}

// Validate fails for the zero value.
func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}

func (l GeoLocation) Latitude() float64 {
	return l.latitude
}

func (l GeoLocation) Longitude() float64 {
	return l.longitude
}

func (l GeoLocation) String() string {
	return fmt.Sprintf("GeoLocation(%.6f,%.6f)", l.latitude, l.longitude)
}

// IsEqual compares both coordinates. Both locations must be constructed.
func (l GeoLocation) IsEqual(other GeoLocation) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return l == other, nil
}

func (l *GeoLocation) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	l.latitude = latitude
	return nil
}

func (l *GeoLocation) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	l.longitude = longitude
	return nil
}
