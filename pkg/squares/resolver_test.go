package squares

import (
	"testing"

	"github.com/casey/gridline/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveWinner(t *testing.T) {
	// Identity permutations: digit d sits at index d on both axes.
	rows := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	cols := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	purchases := []models.SquaresPurchase{
		{Id: "g#7#3", UserId: "alice", GridRow: 7, GridCol: 3},
		{Id: "g#0#0", UserId: "bob", GridRow: 0, GridCol: 0},
	}

	t.Run("Trailing Digits Pick The Cell", func(t *testing.T) {
		// Home 17, away 23 -> digits (7, 3).
		winner := ResolveWinner(rows, cols, purchases, 17, 23)
		assert.NotNil(t, winner)
		assert.Equal(t, "alice", winner.UserId)
	})

	t.Run("Zero Zero", func(t *testing.T) {
		winner := ResolveWinner(rows, cols, purchases, 10, 20)
		assert.NotNil(t, winner)
		assert.Equal(t, "bob", winner.UserId)
	})

	t.Run("Unowned Cell", func(t *testing.T) {
		winner := ResolveWinner(rows, cols, purchases, 5, 5)
		assert.Nil(t, winner)
	})

	t.Run("Shuffled Axes", func(t *testing.T) {
		shuffledRows := []int{3, 1, 4, 0, 5, 9, 2, 6, 8, 7}
		shuffledCols := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
		// Home digit 9 is at row index 5; away digit 8 at col index 1.
		owned := []models.SquaresPurchase{{Id: "g#5#1", UserId: "carol", GridRow: 5, GridCol: 1}}

		winner := ResolveWinner(shuffledRows, shuffledCols, owned, 19, 28)
		assert.NotNil(t, winner)
		assert.Equal(t, "carol", winner.UserId)
	})

	t.Run("Unassigned Grid", func(t *testing.T) {
		winner := ResolveWinner(nil, nil, purchases, 17, 23)
		assert.Nil(t, winner)
	})
}
