package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile carries the public-facing details of a user.
type Profile struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string    `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	Headline   string    `json:"headline" gorm:"type:varchar(160)"`
	Bio        string    `json:"bio" gorm:"type:text"`
	HourlyRate float64   `json:"hourlyRate"`
	Location   string    `json:"location" gorm:"type:varchar(120)"`
	Skills     []Skill   `json:"skills,omitempty" gorm:"many2many:profile_skills"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Skill is a named capability shared between profiles and projects.
type Skill struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;type:varchar(80)"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
