package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public directory entry of a user. Academic fields are
// optional until onboarding is completed.
type Profile struct {
	ID                uuid.UUID  `db:"id"`
	UserID            uuid.UUID  `db:"user_id"`
	FullName          string     `db:"full_name"`
	Bio               string     `db:"bio"`
	UniversityID      *uuid.UUID `db:"university_id"`
	SchoolID          *uuid.UUID `db:"school_id"`
	DepartmentID      *uuid.UUID `db:"department_id"`
	CityID            *uuid.UUID `db:"city_id"`
	StudyYear         *int       `db:"study_year"`
	IsVerifiedStudent bool       `db:"is_verified_student"`
	IsPreStudent      bool       `db:"is_pre_student"`
	FollowersCount    int        `db:"followers_count"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}
