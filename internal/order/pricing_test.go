package order

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	t.Run("WorkedExample", func(t *testing.T) {
		// Two units at 50.00: subtotal hits the threshold exactly and
		// ships free (threshold is inclusive).
		items := []Item{{ProductID: 1, Price: 50, Quantity: 2}}

		totals, err := ComputeTotals(items, false, 0)
		require.NoError(t, err)

		assert.InDelta(t, 100.00, totals.Subtotal, 1e-9)
		assert.InDelta(t, 0.00, totals.Shipping, 1e-9)
		assert.InDelta(t, 8.00, totals.Tax, 1e-9)
		assert.InDelta(t, 108.00, totals.Total, 1e-9)
	})

	t.Run("BelowThresholdPaysFlatFee", func(t *testing.T) {
		items := []Item{{Price: 99.99, Quantity: 1}}

		totals, err := ComputeTotals(items, false, 0)
		require.NoError(t, err)

		assert.InDelta(t, FlatShippingFee, totals.Shipping, 1e-9)
	})

	t.Run("AboveThresholdShipsFree", func(t *testing.T) {
		items := []Item{{Price: 100.01, Quantity: 1}}

		totals, err := ComputeTotals(items, false, 0)
		require.NoError(t, err)

		assert.InDelta(t, 0, totals.Shipping, 1e-9)
	})

	t.Run("FreeShippingItemOverridesFee", func(t *testing.T) {
		items := []Item{{Price: 20, Quantity: 1}}

		totals, err := ComputeTotals(items, true, 0)
		require.NoError(t, err)

		assert.InDelta(t, 0, totals.Shipping, 1e-9)
	})

	t.Run("DiscountReducesTaxBase", func(t *testing.T) {
		items := []Item{{Price: 50, Quantity: 1}}

		totals, err := ComputeTotals(items, false, 10)
		require.NoError(t, err)

		// tax on (50 - 10), flat fee still applies
		assert.InDelta(t, 3.20, totals.Tax, 1e-9)
		assert.InDelta(t, 50-10+10+3.20, totals.Total, 1e-9)
	})

	t.Run("TotalInvariant", func(t *testing.T) {
		cases := []struct {
			items    []Item
			free     bool
			discount float64
		}{
			{[]Item{{Price: 1.99, Quantity: 3}}, false, 0},
			{[]Item{{Price: 250, Quantity: 1}, {Price: 5.50, Quantity: 4}}, false, 25},
			{[]Item{{Price: 12.34, Quantity: 2}}, true, 1.34},
		}

		for _, c := range cases {
			totals, err := ComputeTotals(c.items, c.free, c.discount)
			require.NoError(t, err)

			assert.InDelta(t,
				totals.Subtotal-totals.Discount+totals.Shipping+totals.Tax,
				totals.Total, 1e-9,
			)

			freeByThreshold := totals.Subtotal >= FreeShippingThreshold
			if freeByThreshold || c.free {
				assert.Zero(t, totals.Shipping)
			} else {
				assert.InDelta(t, FlatShippingFee, totals.Shipping, 1e-9)
			}
		}
	})

	t.Run("RejectsNaN", func(t *testing.T) {
		items := []Item{{Price: math.NaN(), Quantity: 1}}

		_, err := ComputeTotals(items, false, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
