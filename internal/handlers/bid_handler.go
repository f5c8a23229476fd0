package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/models"
)

type BidHandler struct {
	DB *gorm.DB
}

func NewBidHandler(db *gorm.DB) *BidHandler {
	return &BidHandler{DB: db}
}

type PlaceBidReq struct {
	Amount   float64 `json:"amount"`
	Proposal string  `json:"proposal"`
}

// Place creates a bid on an open project. The route is gated to
// freelancers; one bid per freelancer per project.
func (h *BidHandler) Place(c *fiber.Ctx) error {
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

	var req PlaceBidReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	errors := FieldErrors{}
	if req.Amount <= 0 {
		errors.Add("amount", "Amount must be positive")
	}
	if strings.TrimSpace(req.Proposal) == "" {
		errors.Add("proposal", "Proposal is required")
	}
	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var project models.Project
	if err := h.DB.First(&project, "id = ?", projectUUID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}

	if project.Status != models.ProjectStatusOpen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Project is not open for bidding",
		})
	}

	var existing models.Bid
	if err := h.DB.Where("project_id = ? AND freelancer_id = ?", projectUUID, userUUID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "You have already placed a bid on this project",
		})
	}

	bid := models.Bid{
		Amount:       req.Amount,
		Proposal:     req.Proposal,
		ProjectID:    projectUUID,
		FreelancerID: userUUID,
	}

	if err := h.DB.Create(&bid).Error; err != nil {
		// The composite unique index rejects a duplicate that raced
		// past the lookup above.
		logrus.WithFields(logrus.Fields{
			"project_id":    projectUUID,
			"freelancer_id": userUUID,
			"error":         err.Error(),
		}).Error("Failed to place bid")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "You have already placed a bid on this project",
		})
	}

	h.DB.Preload("Freelancer").First(&bid, "id = ?", bid.ID)

	logrus.WithFields(logrus.Fields{
		"bid_id":        bid.ID,
		"project_id":    projectUUID,
		"freelancer_id": userUUID,
		"amount":        bid.Amount,
	}).Info("Bid placed")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    toBidResponse(&bid),
	})
}
