package models

import "github.com/google/uuid"

type City struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type University struct {
	ID     uuid.UUID  `db:"id" json:"id"`
	Name   string     `db:"name" json:"name"`
	CityID *uuid.UUID `db:"city_id" json:"city_id,omitempty"`
}

type School struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	UniversityID uuid.UUID `db:"university_id" json:"university_id"`
}

type Department struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	SchoolID uuid.UUID `db:"school_id" json:"school_id"`
}
