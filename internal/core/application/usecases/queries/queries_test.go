package queries_test

import (
	"testing"

	"ordercore/internal/core/application/usecases/queries"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCartQuery(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewGetCartQuery(userID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, userID, query.UserID())

	_, err = queries.NewGetCartQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetCartQuery{}.Validate(), queries.ErrGetCartQueryIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(orderID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.False(t, query.ByNumber())
	assert.Equal(t, orderID, query.OrderID())

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetOrderByNumberQuery(t *testing.T) {
	query, err := queries.NewGetOrderByNumberQuery("ORD-20240601-7QK2M9XA")

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ByNumber())
	assert.Equal(t, "ORD-20240601-7QK2M9XA", query.Number().String())

	for _, bad := range []string{"", "ORD-2024-ABC", "ord-20240601-7qk2m9xa", "ORD-20240601-7QK2M9X!"} {
		_, err = queries.NewGetOrderByNumberQuery(bad)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}
}

func TestNewGetUserOrdersQuery(t *testing.T) {
	userID := kernel.NewUUID()

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantLimit int
		wantErr   error
	}{
		{name: "default limit", limit: 0, offset: 0, wantLimit: queries.DefaultUserOrdersLimit},
		{name: "explicit limit", limit: 5, offset: 10, wantLimit: 5},
		{name: "max limit", limit: queries.MaxUserOrdersLimit, wantLimit: queries.MaxUserOrdersLimit},
		{name: "limit too large", limit: queries.MaxUserOrdersLimit + 1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "negative limit", limit: -1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "negative offset", limit: 5, offset: -1, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewGetUserOrdersQuery(userID, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, query.Validate())
			assert.Equal(t, tt.wantLimit, query.Limit())
			assert.Equal(t, tt.offset, query.Offset())
			assert.Equal(t, userID, query.UserID())
		})
	}

	assert.ErrorIs(t, queries.GetUserOrdersQuery{}.Validate(), queries.ErrGetUserOrdersQueryIsNotConstructed)
}

func TestNewValidateCartForCheckoutQuery(t *testing.T) {
	query, err := queries.NewValidateCartForCheckoutQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewValidateCartForCheckoutQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t,
		queries.ValidateCartForCheckoutQuery{}.Validate(),
		queries.ErrValidateCartForCheckoutQueryIsNotConstructed,
	)
}
