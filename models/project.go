package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectType distinguishes fixed-price from hourly projects.
type ProjectType string

const (
	ProjectTypeFixed  ProjectType = "fixed"
	ProjectTypeHourly ProjectType = "hourly"
)

// ProjectStatus defines lifecycle states for a project.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectAwarded    ProjectStatus = "awarded"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// Project is a client's posted job. It is awarded exactly once, when one of
// its proposals is accepted.
type Project struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	ClientID    string         `json:"clientId" gorm:"type:uuid;not null;index"`
	Client      *User          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	ProjectType ProjectType    `json:"projectType" gorm:"type:varchar(10);not null"`
	BudgetMin   float64        `json:"budgetMin"`
	BudgetMax   float64        `json:"budgetMax"`
	Currency    string         `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	Status      ProjectStatus  `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	DueAt       *time.Time     `json:"dueAt"`
	Skills      []Skill        `json:"skills,omitempty" gorm:"many2many:project_skills"`
	Proposals   []Proposal     `json:"proposals,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
