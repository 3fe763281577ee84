package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/motorlend/motorlend/internal/domain/service"
)

func TestRateTable_BoundaryScores(t *testing.T) {
	rates := service.DefaultRateTable()

	t.Run("score 750 is excellent", func(t *testing.T) {
		assert.Equal(t, 0.05, rates.RateFor(750))
	})

	t.Run("score 749 is good", func(t *testing.T) {
		assert.Equal(t, 0.08, rates.RateFor(749))
	})

	t.Run("score 700 is good", func(t *testing.T) {
		assert.Equal(t, 0.08, rates.RateFor(700))
	})

	t.Run("score 650 is fair", func(t *testing.T) {
		assert.Equal(t, 0.12, rates.RateFor(650))
	})

	t.Run("score 649 is poor", func(t *testing.T) {
		assert.Equal(t, 0.18, rates.RateFor(649))
	})

	t.Run("score 300 is poor", func(t *testing.T) {
		assert.Equal(t, 0.18, rates.RateFor(300))
	})
}

func TestRateTable_Overridable(t *testing.T) {
	rates := service.RateTable{Excellent: 0.03, Good: 0.06, Fair: 0.09, Poor: 0.15}
	assert.Equal(t, 0.03, rates.RateFor(800))
	assert.Equal(t, 0.15, rates.RateFor(500))
}

func TestRateTable_Validate(t *testing.T) {
	t.Run("zero table is a configuration error", func(t *testing.T) {
		err := service.RateTable{}.Validate()
		assert.ErrorIs(t, err, service.ErrConfiguration)
	})

	t.Run("negative tier is a configuration error", func(t *testing.T) {
		rates := service.DefaultRateTable()
		rates.Fair = -0.01
		assert.ErrorIs(t, rates.Validate(), service.ErrConfiguration)
	})

	t.Run("defaults validate", func(t *testing.T) {
		assert.NoError(t, service.DefaultRateTable().Validate())
	})
}
