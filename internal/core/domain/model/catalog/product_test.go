package catalog_test

import (
	"testing"

	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should trim name and keep flags", func(t *testing.T) {
		p, err := catalog.NewProduct(id, "  Espresso Beans ", kernel.MustMoney("12.50"), true)
		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "Espresso Beans", p.Name())
		assert.True(t, p.IsActive())
		assert.Equal(t, "12.50", p.Price().String())
		assert.True(t, p.ID().IsEqual(id))
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := catalog.NewProduct(id, "   ", kernel.MustMoney("1"), true)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require an id", func(t *testing.T) {
		_, err := catalog.NewProduct(kernel.UUID{}, "Mug", kernel.MustMoney("1"), true)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p catalog.Product
		assert.Equal(t, catalog.ErrProductIsNotConstructed, p.Validate())
	})
}
