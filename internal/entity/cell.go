package entity

import (
	"fmt"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
)

type Cell uint8

const (
	CellEmpty Cell = iota
	CellCookie
	CellMilk
)

const (
	MarkerCookie = "cookie"
	MarkerMilk   = "milk"
	markerEmpty  = "empty"
)

// ParseMarker converts a team token into a placeable cell. "empty" is a valid cell name but not a marker.
func ParseMarker(token string) (Cell, error) {
	switch token {
	case MarkerCookie:
		return CellCookie, nil
	case MarkerMilk:
		return CellMilk, nil
	default:
		return CellEmpty, fmt.Errorf("%w: %q", apperror.ErrInvalidMarker, token)
	}
}

func cellFromBool(b bool) Cell {
	if b {
		return CellCookie
	}
	return CellMilk
}

func (that Cell) IsMarker() bool {
	return that == CellCookie || that == CellMilk
}

func (that Cell) Name() string {
	switch that {
	case CellCookie:
		return MarkerCookie
	case CellMilk:
		return MarkerMilk
	default:
		return markerEmpty
	}
}

func (that Cell) String() string {
	switch that {
	case CellCookie:
		return "🍪"
	case CellMilk:
		return "🥛"
	default:
		return "⬛"
	}
}

// Result is the three-way game outcome: a winner, still in progress, or drawn.
type Result uint8

const (
	ResultInProgress Result = iota
	ResultCookie
	ResultMilk
	ResultDraw
)

func (that Result) IsDecided() bool {
	return that != ResultInProgress
}

// Winner returns the winning marker, or CellEmpty for an open or drawn game.
func (that Result) Winner() Cell {
	switch that {
	case ResultCookie:
		return CellCookie
	case ResultMilk:
		return CellMilk
	default:
		return CellEmpty
	}
}

func (that Result) String() string {
	switch that {
	case ResultCookie:
		return MarkerCookie
	case ResultMilk:
		return MarkerMilk
	case ResultDraw:
		return "draw"
	default:
		return "in_progress"
	}
}
