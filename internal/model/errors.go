package model

import "errors"

var (
	ErrTransitionNotAllowed = errors.New("transition not allowed in current phase")
	ErrSpinInProgress       = errors.New("spin already in progress")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidOutcomeTable  = errors.New("outcome table must partition [0,100)")
	ErrInvalidWarningPool   = errors.New("invalid warning pool")
)
