package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

type Project struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"type:varchar(150);not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Budget      float64       `gorm:"not null" json:"budget"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	// Set once, when the client accepts a bid. Non-nil iff status is
	// in_progress or completed.
	FreelancerID *uuid.UUID `gorm:"type:uuid;index" json:"freelancer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Client     *User    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Bids       []Bid    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"bids,omitempty"`
	Reviews    []Review `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
