package entity

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
)

const (
	BoardWidth  = 4
	BoardHeight = 4

	// BoardSeed seeds the generator of every new board, so reset+randomize is reproducible.
	BoardSeed = 2024
)

const (
	wallGlyph = "⬜"

	cookieWinsLine = "🍪 wins!\n"
	milkWinsLine   = "🥛 wins!\n"
	noWinnerLine   = "No winner.\n"
)

// Board is the 4x4 grid plus the generator used by Randomize. It is not safe for concurrent use.
type Board struct {
	rows [BoardHeight][BoardWidth]Cell
	rng  *rand.Rand
}

func NewBoard() *Board {
	return &Board{
		rng: rand.New(rand.NewSource(BoardSeed)), //nolint: gosec // reproducible boards, not a secret
	}
}

// Cell returns the cell at the 0-indexed row and column.
func (that *Board) Cell(row, column int) Cell {
	return that.rows[row][column]
}

// Rows returns a copy of the grid.
func (that *Board) Rows() [BoardHeight][BoardWidth]Cell {
	return that.rows
}

// Result evaluates cookie win, milk win, free cells and draw in that order.
func (that *Board) Result() Result {
	switch {
	case that.isWin(CellCookie):
		return ResultCookie
	case that.isWin(CellMilk):
		return ResultMilk
	case that.hasEmpty():
		return ResultInProgress
	default:
		return ResultDraw
	}
}

func (that *Board) isWin(marker Cell) bool {
	for i := 0; i < BoardWidth; i++ {
		if that.rowFilledWith(i, marker) || that.columnFilledWith(i, marker) {
			return true
		}
	}

	mainDiagonal, antiDiagonal := true, true
	for i := 0; i < BoardWidth; i++ {
		mainDiagonal = mainDiagonal && that.rows[i][i] == marker
		antiDiagonal = antiDiagonal && that.rows[i][BoardWidth-1-i] == marker
	}

	return mainDiagonal || antiDiagonal
}

func (that *Board) rowFilledWith(row int, marker Cell) bool {
	for column := 0; column < BoardWidth; column++ {
		if that.rows[row][column] != marker {
			return false
		}
	}
	return true
}

func (that *Board) columnFilledWith(column int, marker Cell) bool {
	for row := 0; row < BoardHeight; row++ {
		if that.rows[row][column] != marker {
			return false
		}
	}
	return true
}

func (that *Board) hasEmpty() bool {
	for _, row := range that.rows {
		for _, cell := range row {
			if cell == CellEmpty {
				return true
			}
		}
	}
	return false
}

// Drop puts marker into the lowest empty cell of the 1-indexed column and returns the 0-indexed row it landed on.
// It does not look at the game result; callers decide whether the game is still open.
func (that *Board) Drop(marker Cell, column int) (int, error) {
	if !marker.IsMarker() {
		return -1, fmt.Errorf("%w: %s", apperror.ErrInvalidMarker, marker.Name())
	}

	if column < 1 || column > BoardWidth {
		return -1, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, column)
	}

	index := column - 1
	for row := BoardHeight - 1; row >= 0; row-- {
		if that.rows[row][index] == CellEmpty {
			that.rows[row][index] = marker
			return row, nil
		}
	}

	return -1, apperror.ErrColumnFull
}

// Randomize overwrites every cell with a marker drawn from the board generator.
func (that *Board) Randomize() {
	for row := 0; row < BoardHeight; row++ {
		for column := 0; column < BoardWidth; column++ {
			that.rows[row][column] = cellFromBool(that.rng.Intn(2) == 1)
		}
	}
}

func (that *Board) Render() string {
	var builder strings.Builder

	for _, row := range that.rows {
		builder.WriteString(wallGlyph)
		for _, cell := range row {
			builder.WriteString(cell.String())
		}
		builder.WriteString(wallGlyph)
		builder.WriteByte('\n')
	}

	builder.WriteString(strings.Repeat(wallGlyph, BoardWidth+2))
	builder.WriteByte('\n')

	switch that.Result() {
	case ResultCookie:
		builder.WriteString(cookieWinsLine)
	case ResultMilk:
		builder.WriteString(milkWinsLine)
	case ResultDraw:
		builder.WriteString(noWinnerLine)
	case ResultInProgress:
	}

	return builder.String()
}

func (that *Board) String() string {
	return that.Render()
}
