package order_test

import (
	"fmt"
	"slices"
	"testing"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_TableIsExhaustive(t *testing.T) {
	t.Run("should resolve a descriptor for every enumerated status", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			descriptor, err := order.Lookup(status)

			require.NoError(t, err, "Lookup(%s)", status)
			assert.Equal(t, status, descriptor.Status)
			assert.NotEmpty(t, descriptor.Label, "%s should have a label", status)
			assert.NotEmpty(t, descriptor.Description, "%s should have a description", status)
			assert.NotEmpty(t, descriptor.Color, "%s should have a color", status)
			assert.NotEmpty(t, descriptor.Icon, "%s should have an icon", status)
		}
	})

	t.Run("should only declare successors inside the enumerated set", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			descriptor, err := order.Lookup(status)
			require.NoError(t, err)

			for _, next := range descriptor.Next {
				require.NoError(t, next.Validate(),
					"%s declares invalid successor %q", status, next)
			}
		}
	})

	t.Run("should fail for values outside the enumerated set", func(t *testing.T) {
		_, err := order.Lookup("BOGUS_STATUS")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should hand out copies of the successor slice", func(t *testing.T) {
		descriptor, err := order.Lookup(order.OrderPlaced)
		require.NoError(t, err)
		require.NotEmpty(t, descriptor.Next)

		descriptor.Next[0] = order.Refunded

		fresh, err := order.Lookup(order.OrderPlaced)
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, fresh.Next[0])
	})
}

func TestCanTransition(t *testing.T) {
	t.Run("should agree with the declared successor sets for all pairs", func(t *testing.T) {
		for _, from := range order.AllStatuses() {
			descriptor, err := order.Lookup(from)
			require.NoError(t, err)

			for _, to := range order.AllStatuses() {
				allowed, err := order.CanTransition(from, to)
				require.NoError(t, err)

				expected := slices.Contains(descriptor.Next, to)
				assert.Equal(t, expected, allowed, "CanTransition(%s, %s)", from, to)
			}
		}
	})

	t.Run("should reject self transitions for every status", func(t *testing.T) {
		// No status declares itself as a successor, so A -> A is always illegal.
		for _, status := range order.AllStatuses() {
			allowed, err := order.CanTransition(status, status)

			require.NoError(t, err)
			assert.False(t, allowed, "CanTransition(%s, %s)", status, status)
		}
	})

	t.Run("should fail when the current status does not resolve", func(t *testing.T) {
		_, err := order.CanTransition("BOGUS_STATUS", order.Confirmed)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail when the target status does not resolve", func(t *testing.T) {
		_, err := order.CanTransition(order.Confirmed, "BOGUS_STATUS")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should leave no path out of terminal statuses", func(t *testing.T) {
		terminal := []order.Status{order.Delivered, order.Cancelled, order.Refunded}

		for _, from := range terminal {
			for _, to := range order.AllStatuses() {
				allowed, err := order.CanTransition(from, to)

				require.NoError(t, err)
				assert.False(t, allowed, "terminal %s should not reach %s", from, to)
			}
		}
	})
}

func TestAllowedTransitions(t *testing.T) {
	t.Run("should return descriptors in declared order", func(t *testing.T) {
		allowed, err := order.AllowedTransitions(order.PickupAssigned)
		require.NoError(t, err)

		statuses := make([]order.Status, 0, len(allowed))
		for _, descriptor := range allowed {
			statuses = append(statuses, descriptor.Status)
		}

		assert.Equal(t,
			[]order.Status{order.PickupInProgress, order.PickupFailed, order.Cancelled},
			statuses)
	})

	t.Run("should populate full metadata on each descriptor", func(t *testing.T) {
		allowed, err := order.AllowedTransitions(order.ProcessingStarted)
		require.NoError(t, err)

		require.Len(t, allowed, 1)
		descriptor := allowed[0]
		assert.Equal(t, order.ProcessingCompleted, descriptor.Status)
		assert.NotEmpty(t, descriptor.Label)
		assert.NotEmpty(t, descriptor.Description)
		assert.NotEmpty(t, descriptor.Color)
		assert.NotEmpty(t, descriptor.Icon)
	})

	t.Run("should return an empty sequence for terminal statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Delivered, order.Cancelled, order.Refunded} {
			t.Run(fmt.Sprintf("terminal %s", status), func(t *testing.T) {
				allowed, err := order.AllowedTransitions(status)

				require.NoError(t, err)
				assert.Empty(t, allowed)
			})
		}
	})

	t.Run("should fail when the status does not resolve", func(t *testing.T) {
		_, err := order.AllowedTransitions("BOGUS_STATUS")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
