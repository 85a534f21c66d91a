package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("reservation must be created via NewReservation")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type reservation struct {
		itemID   string
		quantity int
		guard    guard.ConstructorGuard
	}
	errReservationNotConstructed := errors.New("reservation must be created via newReservation")

	newReservation := func(itemID string, quantity int) (reservation, error) {
		if itemID == "" {
			return reservation{}, errors.New("item id is required")
		}
		if quantity <= 0 {
			return reservation{}, errors.New("quantity must be positive")
		}
		return reservation{itemID: itemID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_result_is_valid", func(t *testing.T) {
		r, err := newReservation("item-a", 2)
		require.NoError(t, err)

		require.NoError(t, r.guard.Validate(errReservationNotConstructed))
		assert.Equal(t, 2, r.quantity)
	})

	t.Run("literal_is_rejected", func(t *testing.T) {
		r := reservation{itemID: "item-a", quantity: 2}

		assert.Equal(t, errReservationNotConstructed, r.guard.Validate(errReservationNotConstructed))
	})

	t.Run("constructor_enforces_rules", func(t *testing.T) {
		_, err := newReservation("", 1)
		require.Error(t, err)

		_, err = newReservation("item-a", 0)
		require.Error(t, err)
	})
}
