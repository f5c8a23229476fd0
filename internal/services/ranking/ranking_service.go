package ranking

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/models"
)

type RankingService struct {
	DB *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db}
}

// Recompute recalculates a user's aggregate ranking score from every
// review where the user is the reviewee: the arithmetic mean of the
// ratings rounded to 2 decimals, or 0 when there are none. It is a
// full recompute, so re-running it against the same review set always
// yields the same score.
// This should be called within the DB transaction that inserted the
// triggering review.
func (s *RankingService) Recompute(tx *gorm.DB, userID uuid.UUID) error {
	var ratings []int
	if err := tx.Model(&models.Review{}).
		Where("reviewee_id = ?", userID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	score := 0.0
	if len(ratings) > 0 {
		total := 0
		for _, r := range ratings {
			total += r
		}
		score = math.Round(float64(total)/float64(len(ratings))*100) / 100
	}

	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("ranking_score", score)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found for id %s", userID)
	}

	return nil
}
