package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labbook/models"
)

func TestComputeTotalSumsItemsAndFee(t *testing.T) {
	items := []models.SessionItem{
		{ServiceID: "hemograma", Name: "Hemograma", PriceCents: 4500},
		{ServiceID: "glicemia", Name: "Glicemia", PriceCents: 2500},
	}

	// 45.00 + 25.00 + 5.00 fee = 75.00
	assert.Equal(t, int64(7500), ComputeTotal(items, 500))
}

func TestComputeTotalOrderIndependent(t *testing.T) {
	a := []models.SessionItem{
		{ServiceID: "a", PriceCents: 4500},
		{ServiceID: "b", PriceCents: 2500},
		{ServiceID: "c", PriceCents: 1999},
	}
	b := []models.SessionItem{a[2], a[0], a[1]}

	assert.Equal(t, ComputeTotal(a, 500), ComputeTotal(b, 500))
}

func TestComputeTotalEmptySelectionIsZero(t *testing.T) {
	// With nothing selected there is nothing to charge, fee included.
	assert.Equal(t, int64(0), ComputeTotal(nil, 500))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "75.00", FormatAmount(7500))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "-1.23", FormatAmount(-123))
}
