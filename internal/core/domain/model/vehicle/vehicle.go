package vehicle

import (
	"errors"
	"fmt"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSecretIsRequired        = errs.NewValueIsRequiredError("secret")
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// unknownSecretHash is compared against when the vehicle does not exist, at the same cost
// as a stored secret.
var unknownSecretHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("unknown vehicle"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// Vehicle is a delivery vehicle that authenticates with a shared secret, reports its
// position and status, and receives routes when it is Ready.
//
// Only the bcrypt hash of the secret is kept.
type Vehicle struct {
	id         kernel.UUID
	secretHash []byte
	location   kernel.GeoLocation
	status     Status
	guard      guard.ConstructorGuard
}

// NewVehicle registers a vehicle parked at location in the Ready state.
func NewVehicle(id kernel.UUID, secret string, location kernel.GeoLocation) (*Vehicle, error) {
	v := &Vehicle{
		status: Ready,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setSecret(secret),
		v.setLocation(location),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle rebuilds a vehicle from persisted state.
func RestoreVehicle(id kernel.UUID, secretHash []byte, location kernel.GeoLocation, status Status) (*Vehicle, error) {
	v := &Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if len(secretHash) == 0 {
		return nil, ErrSecretIsRequired
	}

	if err := errors.Join(
		v.setID(id),
		v.setLocation(location),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	v.secretHash = secretHash
	v.status = status
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID              { return v.id }
func (v *Vehicle) SecretHash() []byte           { return v.secretHash }
func (v *Vehicle) Location() kernel.GeoLocation { return v.location }
func (v *Vehicle) Status() Status               { return v.status }
func (v *Vehicle) IsReady() bool                { return v.status == Ready }
func (v *Vehicle) IsEqual(other *Vehicle) bool  { return other != nil && v.id.IsEqual(other.id) }

// Authenticate compares secret against the stored hash in constant time.
// Any mismatch yields errs.ErrAuthFailed.
func (v *Vehicle) Authenticate(secret string) error {
	if err := bcrypt.CompareHashAndPassword(v.secretHash, []byte(secret)); err != nil {
		return fmt.Errorf("%w: vehicle %s", errs.ErrAuthFailed, v.id)
	}
	return nil
}

// RejectUnknown fails authentication for a vehicle id with no record. It spends the same
// bcrypt work as Authenticate, so response time does not reveal whether the id exists.
func RejectUnknown(id kernel.UUID, secret string) error {
	_ = bcrypt.CompareHashAndPassword(unknownSecretHash(), []byte(secret))
	return fmt.Errorf("%w: unknown vehicle %s", errs.ErrAuthFailed, id)
}

// ReportTelemetry applies a status and position reported by the vehicle itself.
func (v *Vehicle) ReportTelemetry(status Status, location kernel.GeoLocation) error {
	if err := errors.Join(status.Validate(), location.Validate()); err != nil {
		return err
	}
	v.status = status
	v.location = location
	return nil
}

// StartDelivering marks a Ready vehicle as out on a route.
func (v *Vehicle) StartDelivering() error {
	if v.status != Ready {
		return errs.NewInvalidTransitionError("vehicle", v.status.String(), Delivering.String())
	}
	v.status = Delivering
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setSecret(secret string) error {
	if secret == "" {
		return ErrSecretIsRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("secret", err)
	}
	v.secretHash = hash
	return nil
}

func (v *Vehicle) setLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	v.location = location
	return nil
}
