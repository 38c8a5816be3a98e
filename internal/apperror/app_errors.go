package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrColumnFull    = errors.New("column is full")
	ErrInvalidMarker = errors.New("invalid marker")
	ErrInvalidColumn = errors.New("invalid column")
)
