package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knead/models"
)

func TestPriceQuote(t *testing.T) {
	svc := &models.Service{
		Title:  "Swedish Massage",
		Prices: map[string]float64{"30min": 45, "60min": 79.99, "90min": 105},
	}

	q, err := PriceQuote(svc, 60, 0.10)
	require.NoError(t, err)
	assert.Equal(t, 79.99, q.ServicePrice)
	assert.Equal(t, 8.0, q.PlatformFee, "fee must round to two decimal places")
	assert.Equal(t, 87.99, q.TotalAmount)
}

func TestPriceQuoteExactFee(t *testing.T) {
	svc := &models.Service{
		Title:  "Swedish Massage",
		Prices: map[string]float64{"90min": 105},
	}

	q, err := PriceQuote(svc, 90, 0.10)
	require.NoError(t, err)
	assert.Equal(t, 10.5, q.PlatformFee)
	assert.Equal(t, 115.5, q.TotalAmount)
}

func TestPriceQuoteMissingDuration(t *testing.T) {
	svc := &models.Service{
		Title:  "Swedish Massage",
		Prices: map[string]float64{"60min": 80},
	}

	_, err := PriceQuote(svc, 120, 0.10)
	assert.True(t, IsValidation(err))
}

func TestPriceQuoteZeroPrice(t *testing.T) {
	svc := &models.Service{
		Title:  "Swedish Massage",
		Prices: map[string]float64{"60min": 0},
	}

	_, err := PriceQuote(svc, 60, 0.10)
	assert.True(t, IsValidation(err))
}

func TestDurationKey(t *testing.T) {
	assert.Equal(t, "30min", durationKey(30))
	assert.Equal(t, "120min", durationKey(120))
}
