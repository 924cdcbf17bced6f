package kernel_test

import (
	"testing"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		for _, s := range []string{"0", "0.01", "100", "99999.99"} {
			m, err := kernel.NewMoney(decimal.RequireFromString(s))
			require.NoError(t, err)
			assert.True(t, m.Decimal().Equal(decimal.RequireFromString(s)))
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.RequireFromString("-0.01"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "-0.01 is negative")
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should be exact for decimal fractions", func(t *testing.T) {
		sum := kernel.Zero
		for range 10 {
			sum = sum.Add(kernel.MustMoney("0.10"))
		}
		assert.True(t, sum.IsEqual(kernel.MustMoney("1.00")))
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		assert.Equal(t, "250.00", kernel.MustMoney("125").Mul(2).String())
		assert.True(t, kernel.MustMoney("19.99").Mul(0).IsZero())
	})

	t.Run("zero value is zero", func(t *testing.T) {
		var m kernel.Money
		assert.True(t, m.IsZero())
		assert.Equal(t, "0.00", m.String())
	})
}
