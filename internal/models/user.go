package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`

	Password     string `gorm:"not null" json:"-"`
	IsFreelancer bool   `gorm:"not null;default:false;index" json:"is_freelancer"`

	Bio    string `gorm:"type:text" json:"bio"`
	Skills string `gorm:"type:text" json:"skills"` // comma separated, e.g. "Python,React,Graphic Design"

	// Mean of ratings on reviews received, rounded to 2 decimals.
	// Recomputed by the ranking service on every new review.
	RankingScore float64 `gorm:"not null;default:0" json:"ranking_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
