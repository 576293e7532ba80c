package squares

import "github.com/casey/gridline/pkg/models"

// ResolveWinner finds the purchase occupying the winning cell for a score
// pair. The row axis carries the home score's trailing digit and the column
// axis the away score's. Returns nil when the grid has no number assignment
// or the winning cell is unowned.
func ResolveWinner(rowNumbers, colNumbers []int, purchases []models.SquaresPurchase, homeScore, awayScore int) *models.SquaresPurchase {
	if len(rowNumbers) != 10 || len(colNumbers) != 10 {
		return nil
	}

	homeDigit := homeScore % 10
	awayDigit := awayScore % 10

	row, col := -1, -1
	for i := 0; i < 10; i++ {
		if rowNumbers[i] == homeDigit {
			row = i
		}
		if colNumbers[i] == awayDigit {
			col = i
		}
	}
	if row < 0 || col < 0 {
		return nil
	}

	for i := range purchases {
		if purchases[i].GridRow == row && purchases[i].GridCol == col {
			return &purchases[i]
		}
	}
	return nil
}
