package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/models"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetProfile returns a user's public profile, including the reviews
// they have received.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	var received []models.Review
	if err := h.DB.
		Preload("Reviewer").
		Where("reviewee_id = ?", userUUID).
		Order("created_at DESC").
		Find(&received).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userUUID,
			"error":   err.Error(),
		}).Error("Failed to fetch received reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch reviews",
		})
	}

	resp := toUserResponse(&user)
	for i := range received {
		resp.ReviewsReceived = append(resp.ReviewsReceived, toReviewResponse(&received[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userUUID, err := getAuth(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toUserResponse(&user),
	})
}

type UpdateProfileReq struct {
	Bio    *string `json:"bio"`
	Skills *string `json:"skills"`
}

// UpdateMe applies a partial edit to the caller's bio and skill list;
// fields absent from the body stay unchanged.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userUUID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Skills != nil {
		user.Skills = *req.Skills
	}

	if err := h.DB.Save(&user).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userUUID,
			"error":   err.Error(),
		}).Error("Failed to update profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"data":    toUserResponse(&user),
	})
}
