package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/cache"
	"github.com/lancehub-id/lancehub_be/internal/models"
)

const (
	openProjectsCacheKey = "projects:open"
	openProjectsCacheTTL = 60 * time.Second
)

type ProjectHandler struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewProjectHandler(db *gorm.DB, rdb *redis.Client) *ProjectHandler {
	return &ProjectHandler{DB: db, RDB: rdb}
}

// invalidateListCache drops the cached open-project listing after any
// mutation that can change it.
func (h *ProjectHandler) invalidateListCache() {
	if h.RDB == nil {
		return
	}
	if err := cache.Delete(context.Background(), h.RDB, openProjectsCacheKey); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate project list cache")
	}
}

// List returns open projects, newest first. An optional skill query
// narrows the result to projects whose description contains it,
// case-insensitive.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	skill := strings.TrimSpace(c.Query("skill"))

	// The unfiltered listing is the hot path; serve it through the
	// cache.
	if skill == "" && h.RDB != nil {
		var cached []ProjectResponse
		if found, err := cache.Get(context.Background(), h.RDB, openProjectsCacheKey, &cached); err == nil && found {
			return c.JSON(fiber.Map{
				"success": true,
				"data":    cached,
			})
		}
	}

	q := h.DB.
		Preload("Client").
		Where("status = ?", models.ProjectStatusOpen)

	if skill != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(skill)+"%")
	}

	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to list projects")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch projects",
		})
	}

	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}

	if skill == "" && h.RDB != nil {
		_ = cache.Set(context.Background(), h.RDB, openProjectsCacheKey, out, openProjectsCacheTTL)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

type CreateProjectReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

// Create opens a new project owned by the authenticated user.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	userUUID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	errors := FieldErrors{}
	if strings.TrimSpace(req.Title) == "" {
		errors.Add("title", "Title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		errors.Add("description", "Description is required")
	}
	if req.Budget <= 0 {
		errors.Add("budget", "Budget must be positive")
	}
	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	project := models.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Budget:      req.Budget,
		Status:      models.ProjectStatusOpen,
		ClientID:    userUUID,
	}

	if err := h.DB.Create(&project).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"client_id": userUUID,
			"error":     err.Error(),
		}).Error("Failed to create project")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create project",
		})
	}

	h.DB.Preload("Client").First(&project, "id = ?", project.ID)
	h.invalidateListCache()

	logrus.WithFields(logrus.Fields{
		"project_id": project.ID,
		"client_id":  userUUID,
		"budget":     project.Budget,
	}).Info("Project created")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    toProjectResponse(&project),
	})
}

// Get returns a project with its bids and reviews.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid project ID",
		})
	}

	var project models.Project
	if err := h.DB.
		Preload("Client").
		Preload("Freelancer").
		Preload("Bids.Freelancer").
		Preload("Reviews.Reviewer").
		Preload("Reviews.Reviewee").
		First(&project, "id = ?", projectUUID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toProjectResponse(&project),
	})
}

type UpdateProjectReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
	Status      *string  `json:"status"`
}

// Update applies a partial edit to a project. Only the owning client
// may edit; the status value must be a known state but there is no
// transition guard on this path.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
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

	var project models.Project
	if err := h.DB.First(&project, "id = ?", projectUUID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}

	if project.ClientID != userUUID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized",
		})
	}

	var req UpdateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Title cannot be empty",
			})
		}
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Budget != nil {
		if *req.Budget <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Budget must be positive",
			})
		}
		project.Budget = *req.Budget
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		if !models.ValidProjectStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid status",
			})
		}
		project.Status = status
	}

	if err := h.DB.Save(&project).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"project_id": project.ID,
			"error":      err.Error(),
		}).Error("Failed to update project")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update project",
		})
	}

	h.DB.Preload("Client").Preload("Freelancer").First(&project, "id = ?", project.ID)
	h.invalidateListCache()

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toProjectResponse(&project),
	})
}

type AcceptBidReq struct {
	BidID string `json:"bid_id"`
}

// AcceptBid assigns the bid's freelancer to the project and moves it
// to in_progress. Both writes happen in one transaction; a failed
// acceptance leaves status and freelancer untouched.
func (h *ProjectHandler) AcceptBid(c *fiber.Ctx) error {
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

	var req AcceptBidReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	bidUUID, err := uuid.Parse(req.BidID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid bid ID",
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&project, "id = ?", projectUUID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Project not found")
		}

		if project.ClientID != userUUID {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized")
		}

		if project.Status != models.ProjectStatusOpen {
			return fiber.NewError(fiber.StatusBadRequest, "Project is not open for bidding")
		}

		var bid models.Bid
		if err := tx.First(&bid, "id = ?", bidUUID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bid not found")
		}

		if bid.ProjectID != project.ID {
			return fiber.NewError(fiber.StatusBadRequest, "Bid does not belong to this project")
		}

		freelancerID := bid.FreelancerID
		project.FreelancerID = &freelancerID
		project.Status = models.ProjectStatusInProgress

		return tx.Save(&project).Error
	})

	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"success": false,
				"message": e.Message,
			})
		}
		logrus.WithFields(logrus.Fields{
			"project_id": projectUUID,
			"bid_id":     bidUUID,
			"error":      err.Error(),
		}).Error("Failed to accept bid")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to accept bid",
		})
	}

	var project models.Project
	h.DB.Preload("Client").Preload("Freelancer").Preload("Bids.Freelancer").
		First(&project, "id = ?", projectUUID)
	h.invalidateListCache()

	logrus.WithFields(logrus.Fields{
		"project_id": projectUUID,
		"bid_id":     bidUUID,
	}).Info("Bid accepted")

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toProjectResponse(&project),
	})
}
