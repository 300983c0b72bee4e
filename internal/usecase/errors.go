package usecase

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoCurrentGameweek = errors.New("no current gameweek")
)
