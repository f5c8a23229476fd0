package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bid struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Amount   float64   `gorm:"not null" json:"amount"`
	Proposal string    `gorm:"type:text;not null" json:"proposal"`

	// One bid per freelancer per project, enforced at the storage
	// boundary so concurrent duplicates cannot both commit.
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_project_freelancer" json:"project_id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bids_project_freelancer" json:"freelancer_id"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
