package models

import (
	"time"

	"github.com/lib/pq"
)

// DefaultClassroomCapacity applies when a create request omits capacity.
const DefaultClassroomCapacity = 30

// Classroom belongs to exactly one school. The (name, school) pair is unique
// among active rows.
type Classroom struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	SchoolID  string         `db:"school_id" json:"schoolId"`
	Capacity  int            `db:"capacity" json:"capacity"`
	Resources pq.StringArray `db:"resources" json:"resources"`
	Active    bool           `db:"active" json:"isActive"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

// ClassroomDetail is a classroom joined with its school name.
type ClassroomDetail struct {
	Classroom
	SchoolName string `db:"school_name" json:"schoolName"`
}

// ClassroomFilter narrows classroom listings.
type ClassroomFilter struct {
	SchoolID string
}
