package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Rating  int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string    `gorm:"type:text" json:"comment"`

	// One review per reviewer per project.
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_project_reviewer" json:"project_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_project_reviewer" json:"reviewer_id"`
	RevieweeID uuid.UUID `gorm:"type:uuid;not null;index" json:"reviewee_id"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee *User    `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
