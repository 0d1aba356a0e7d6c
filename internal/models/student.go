package models

import "time"

// Student belongs to exactly one school and is optionally enrolled in one of
// that school's classrooms. Email is unique among active students globally.
type Student struct {
	ID             string     `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"firstName"`
	LastName       string     `db:"last_name" json:"lastName"`
	Email          string     `db:"email" json:"email"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	SchoolID       string     `db:"school_id" json:"schoolId"`
	ClassroomID    *string    `db:"classroom_id" json:"classroomId,omitempty"`
	EnrollmentDate time.Time  `db:"enrollment_date" json:"enrollmentDate"`
	Active         bool       `db:"active" json:"isActive"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// StudentDetail is a student joined with school and classroom names.
type StudentDetail struct {
	Student
	SchoolName    string  `db:"school_name" json:"schoolName"`
	ClassroomName *string `db:"classroom_name" json:"classroomName,omitempty"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	SchoolID    string
	ClassroomID string
}
