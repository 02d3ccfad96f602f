package dto

type ProfileResponse struct {
	ID                string  `json:"id"`
	FullName          string  `json:"full_name"`
	Bio               string  `json:"bio,omitempty"`
	UniversityID      *string `json:"university_id,omitempty"`
	SchoolID          *string `json:"school_id,omitempty"`
	DepartmentID      *string `json:"department_id,omitempty"`
	CityID            *string `json:"city_id,omitempty"`
	StudyYear         *int    `json:"study_year,omitempty"`
	IsVerifiedStudent bool    `json:"is_verified_student"`
	IsPreStudent      bool    `json:"is_pre_student"`
	FollowersCount    int     `json:"followers_count"`
	CreatedAt         string  `json:"created_at"`
}

// UpdateProfileRequest replaces the onboarding fields. Omitted ids clear the
// field.
type UpdateProfileRequest struct {
	FullName     string  `json:"full_name"`
	Bio          string  `json:"bio"`
	UniversityID *string `json:"university_id"`
	SchoolID     *string `json:"school_id"`
	DepartmentID *string `json:"department_id"`
	CityID       *string `json:"city_id"`
	StudyYear    *int    `json:"study_year"`
}
