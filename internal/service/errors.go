package service

import "errors"

var (
	ErrNameRequired      = errors.New("student name is required")
	ErrNoNames           = errors.New("no student names provided")
	ErrNotesRequired     = errors.New("session notes are required")
	ErrInvalidStudentID  = errors.New("invalid student id")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
)
