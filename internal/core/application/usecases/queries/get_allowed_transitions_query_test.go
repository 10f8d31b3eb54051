package queries_test

import (
	"testing"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllowedTransitionsQuery_ValidStatus(t *testing.T) {
	query, err := queries.NewGetAllowedTransitionsQuery(order.PickupAssigned)

	require.NoError(t, err)
	assert.Equal(t, order.PickupAssigned, query.Status())
	assert.NoError(t, query.Validate())
}

func TestNewGetAllowedTransitionsQuery_UnknownStatus(t *testing.T) {
	_, err := queries.NewGetAllowedTransitionsQuery(order.Status("FOLDED"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetAllowedTransitionsQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetAllowedTransitionsQuery

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllowedTransitionsQueryIsNotConstructed)
}

func TestGetAllowedTransitionsQueryHandler_Handle(t *testing.T) {
	handler := queries.NewGetAllowedTransitionsQueryHandler()

	t.Run("should return targets with metadata in declared order", func(t *testing.T) {
		query, err := queries.NewGetAllowedTransitionsQuery(order.PickupAssigned)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, order.PickupInProgress, result[0].Status)
		assert.Equal(t, order.PickupFailed, result[1].Status)
		assert.Equal(t, order.Cancelled, result[2].Status)
		for _, option := range result {
			assert.NotEmpty(t, option.Label)
			assert.NotEmpty(t, option.Description)
			assert.NotEmpty(t, option.Color)
			assert.NotEmpty(t, option.Icon)
		}
	})

	t.Run("should return empty slice for terminal status", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Cancelled, order.Refunded} {
			query, err := queries.NewGetAllowedTransitionsQuery(terminal)
			require.NoError(t, err)

			result, err := handler.Handle(t.Context(), query)

			require.NoError(t, err)
			assert.Empty(t, result, "terminal status %s must offer no transitions", terminal)
		}
	})

	t.Run("should reject query that skipped the constructor", func(t *testing.T) {
		var query queries.GetAllowedTransitionsQuery

		_, err := handler.Handle(t.Context(), query)

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrGetAllowedTransitionsQueryIsNotConstructed)
	})
}
