package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/models"
	"github.com/lancehub-id/lancehub_be/internal/services/ranking"
)

type ReviewHandler struct {
	DB      *gorm.DB
	Ranking *ranking.RankingService
}

func NewReviewHandler(db *gorm.DB, rankingService *ranking.RankingService) *ReviewHandler {
	return &ReviewHandler{DB: db, Ranking: rankingService}
}

type PostReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create posts a review on a completed project. Only the client and
// the assigned freelancer may review, each once, and always about the
// other party. The reviewee's ranking score is recomputed in the same
// transaction so a committed review is never visible with a stale
// score.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userUUID, err := getAuth(c)
	if err != nil {
		return err
	}

	projectUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid project ID",
		})
	}

	var req PostReviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Rating must be between 1 and 5",
		})
	}

	var project models.Project
	if err := h.DB.First(&project, "id = ?", projectUUID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}

	if project.Status != models.ProjectStatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Project must be completed to leave a review",
		})
	}

	// The reviewee is always the other party on the project.
	var revieweeID *uuid.UUID
	switch {
	case userUUID == project.ClientID:
		revieweeID = project.FreelancerID
	case project.FreelancerID != nil && userUUID == *project.FreelancerID:
		revieweeID = &project.ClientID
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You are not part of this project",
		})
	}

	if revieweeID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot review this project (no freelancer assigned)",
		})
	}

	var existing models.Review
	if err := h.DB.Where("project_id = ? AND reviewer_id = ?", projectUUID, userUUID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "You have already reviewed this project",
		})
	}

	review := models.Review{
		Rating:     req.Rating,
		Comment:    req.Comment,
		ProjectID:  projectUUID,
		ReviewerID: userUUID,
		RevieweeID: *revieweeID,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return h.Ranking.Recompute(tx, review.RevieweeID)
	})

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"project_id":  projectUUID,
			"reviewer_id": userUUID,
			"error":       err.Error(),
		}).Error("Failed to post review")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to post review",
		})
	}

	h.DB.Preload("Reviewer").Preload("Reviewee").First(&review, "id = ?", review.ID)

	logrus.WithFields(logrus.Fields{
		"review_id":   review.ID,
		"project_id":  projectUUID,
		"reviewer_id": userUUID,
		"reviewee_id": review.RevieweeID,
		"rating":      review.Rating,
	}).Info("Review posted")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    toReviewResponse(&review),
	})
}
