package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrQuestCompleted     = errors.New("quest is completed")
	ErrStationBuilt       = errors.New("station level is already built")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrTeamFull           = errors.New("team is full")
)
