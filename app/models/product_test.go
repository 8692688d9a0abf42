package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MohamedTawfiq30/dmorder/app/models"
)

func TestSelectableSizesHidesExhaustedStock(t *testing.T) {
	p := models.Product{Sizes: map[string]int{"S": 3, "M": 0, "L": 1}}

	assert.Equal(t, []string{"L", "S"}, p.SelectableSizes())
}

func TestSelectableSizesAllSoldOut(t *testing.T) {
	p := models.Product{Sizes: map[string]int{"S": 0, "M": 0}}

	assert.Empty(t, p.SelectableSizes())
}

func TestInStock(t *testing.T) {
	p := models.Product{Sizes: map[string]int{"S": 1}}

	assert.True(t, p.InStock("S"))
	assert.False(t, p.InStock("M"), "unknown size reads as zero stock")

	p.Sizes["S"] = 0
	assert.False(t, p.InStock("S"))
}

func TestOrderStatusHelpers(t *testing.T) {
	o := models.Order{Status: models.OrderPending}
	assert.True(t, o.Pending())
	assert.False(t, o.Completed())

	o.Status = models.OrderCompleted
	assert.True(t, o.Completed())
	assert.False(t, o.Pending())
}
