package model

import "time"

// Student is a roster entry. The optional fields are nil when never filled in.
type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Classroom      *string   `json:"classroom"`
	Workshop       *string   `json:"workshop"`
	Specialization *string   `json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for adding or editing a single student.
type CreateStudentRequest struct {
	Name           string `json:"name" binding:"required,max=120"`
	Classroom      string `json:"classroom" binding:"max=80"`
	Workshop       string `json:"workshop" binding:"max=80"`
	Specialization string `json:"specialization" binding:"max=80"`
}

// UpdateStudentRequest is the payload for editing a student.
type UpdateStudentRequest = CreateStudentRequest

// BulkImportRequest carries pasted names separated by commas or new lines.
type BulkImportRequest struct {
	Names string `json:"names" binding:"required"`
}

// OptionalString maps an empty (or blank) form value to nil.
func OptionalString(s string) *string {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			v := s
			return &v
		}
	}
	return nil
}
