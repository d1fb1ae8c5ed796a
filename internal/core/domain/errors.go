package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoActiveSession   = errors.New("no active session found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrInvalidSessionID  = errors.New("invalid session id")
	ErrInvalidQuestionID = errors.New("invalid question id")
	ErrMissingFields     = errors.New("missing required fields")
	ErrPasswordFormat    = errors.New("password must be 4 digits")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrInvalidAdminCode  = errors.New("invalid admin code")
	ErrInternal          = errors.New("internal server error")
)
