package pricing

import (
	"testing"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGradeMultiplier(t *testing.T) {
	testCases := []struct {
		name       string
		grade      shared.Grade
		multiplier float64
	}{
		{"GradeA", shared.GradeA, 1.0},
		{"GradeB", shared.GradeB, 0.8},
		{"GradeC", shared.GradeC, 0.6},
		{"GradeD_Unpaid", shared.GradeD, 0},
		{"UnknownGrade", shared.Grade("X"), 0},
		{"EmptyGrade", shared.Grade(""), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.multiplier, GradeMultiplier(tc.grade))
		})
	}
}

func TestUnitPrice(t *testing.T) {
	t.Run("GradeScaling", func(t *testing.T) {
		basePrices := []float64{0, 1, 12.75, 26.50, 1000}
		for _, base := range basePrices {
			assert.InDelta(t, base*1.0, UnitPrice(base, shared.GradeA, shared.UnitKilogram), 1e-9)
			assert.InDelta(t, base*0.8, UnitPrice(base, shared.GradeB, shared.UnitKilogram), 1e-9)
			assert.InDelta(t, base*0.6, UnitPrice(base, shared.GradeC, shared.UnitKilogram), 1e-9)
			assert.Zero(t, UnitPrice(base, shared.Grade("Z"), shared.UnitKilogram))
		}
	})

	t.Run("QuintalScalesByHundred", func(t *testing.T) {
		kgPrice := UnitPrice(26.50, shared.GradeB, shared.UnitKilogram)
		quintalPrice := UnitPrice(26.50, shared.GradeB, shared.UnitQuintal)
		assert.InDelta(t, kgPrice*100, quintalPrice, 1e-9)
	})

	t.Run("KilogramUnscaled", func(t *testing.T) {
		assert.InDelta(t, 21.20, UnitPrice(26.50, shared.GradeB, shared.UnitKilogram), 1e-9)
	})

	t.Run("ZeroBasePriceFlowsThrough", func(t *testing.T) {
		// The "unknown commodity" degradation: a zero base prices to zero
		assert.Zero(t, UnitPrice(0, shared.GradeA, shared.UnitQuintal))
	})

	t.Run("NonNegative", func(t *testing.T) {
		for _, grade := range []shared.Grade{shared.GradeA, shared.GradeB, shared.GradeC, shared.GradeD} {
			for _, unit := range []shared.Unit{shared.UnitKilogram, shared.UnitQuintal} {
				assert.GreaterOrEqual(t, UnitPrice(42.37, grade, unit), 0.0)
			}
		}
	})
}

func TestNewCommodityPrice(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		price, err := NewCommodityPrice("Tomato", 26.50, "hq-pricing-desk")
		assert.NoError(t, err)
		assert.Equal(t, "Tomato", price.CommodityName)
		assert.Equal(t, 26.50, price.BasePricePerKg)
		assert.Equal(t, "hq-pricing-desk", price.UpdatedBy)
		assert.False(t, price.LastUpdatedAt.IsZero())
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewCommodityPrice("", 10, "desk")
		assert.ErrorIs(t, err, ErrEmptyCommodityName)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		_, err := NewCommodityPrice("Onion", -1, "desk")
		assert.ErrorIs(t, err, ErrNegativeBasePrice)
	})

	t.Run("EmptyUpdatedBy", func(t *testing.T) {
		_, err := NewCommodityPrice("Onion", 10, "")
		assert.ErrorIs(t, err, ErrEmptyUpdatedBy)
	})
}
