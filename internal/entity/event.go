package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventPlace     = "place"
	EventReset     = "reset"
	EventRandomize = "randomize"
)

// BoardEvent is one journal record of a board mutation. Seq grows by one with every mutation of the process.
type BoardEvent struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Kind      string    `json:"kind"`
	Marker    string    `json:"marker,omitempty"`
	Column    int       `json:"column,omitempty"`
	Row       *int      `json:"row,omitempty"`
	Result    string    `json:"result"`
	Board     string    `json:"board"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBoardEvent(kind string, board *Board) *BoardEvent {
	return &BoardEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Result:    board.Result().String(),
		Board:     board.Render(),
		CreatedAt: time.Now().UTC(),
	}
}

// NewPlaceEvent records a placement; column is 1-indexed, row 0-indexed from the top.
func NewPlaceEvent(board *Board, marker Cell, column, row int) *BoardEvent {
	event := NewBoardEvent(EventPlace, board)
	event.Marker = marker.Name()
	event.Column = column
	event.Row = &row

	return event
}
