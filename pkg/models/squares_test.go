package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoutStructureIsValid(t *testing.T) {
	t.Run("Standard Split", func(t *testing.T) {
		ps := PayoutStructure{Period1: 0.15, Period2: 0.25, Period3: 0.15, Period4: 0.45}
		assert.True(t, ps.IsValid())
	})

	t.Run("Within Tolerance", func(t *testing.T) {
		ps := PayoutStructure{Period1: 0.25, Period2: 0.25, Period3: 0.25, Period4: 0.2505}
		assert.True(t, ps.IsValid())
	})

	t.Run("Sum Too Low", func(t *testing.T) {
		ps := PayoutStructure{Period1: 0.2, Period2: 0.2, Period3: 0.2, Period4: 0.2}
		assert.False(t, ps.IsValid())
	})

	t.Run("Negative Fraction", func(t *testing.T) {
		ps := PayoutStructure{Period1: -0.1, Period2: 0.4, Period3: 0.3, Period4: 0.4}
		assert.False(t, ps.IsValid())
	})
}

func TestFractionFor(t *testing.T) {
	ps := PayoutStructure{Period1: 0.15, Period2: 0.25, Period3: 0.15, Period4: 0.45}

	assert.Equal(t, 0.15, ps.FractionFor(Period1))
	assert.Equal(t, 0.25, ps.FractionFor(Period2))
	assert.Equal(t, 0.15, ps.FractionFor(Period3))
	assert.Equal(t, 0.45, ps.FractionFor(Period4))

	// Overtime periods pay at the final-period fraction.
	assert.Equal(t, 0.45, ps.FractionFor(Period5))
	assert.Equal(t, 0.45, ps.FractionFor(Period6))
}

func TestPeriodIsValid(t *testing.T) {
	assert.True(t, Period1.IsValid())
	assert.True(t, Period6.IsValid())
	assert.False(t, Period("PERIOD_7").IsValid())
}

func TestGameStatusIsOpen(t *testing.T) {
	assert.True(t, GameSetup.IsOpen())
	assert.True(t, GameActive.IsOpen())
	assert.False(t, GameLocked.IsOpen())
	assert.False(t, GameLive.IsOpen())
	assert.False(t, GameResolved.IsOpen())
	assert.False(t, GameCancelled.IsOpen())
}
