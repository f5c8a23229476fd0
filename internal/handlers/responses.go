package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lancehub-id/lancehub_be/internal/models"
)

// UserMini is the public projection of a user embedded in other
// payloads. It never carries credentials or contact details.
type UserMini struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	IsFreelancer bool    `json:"is_freelancer"`
	RankingScore float64 `json:"ranking_score"`
}

// UserResponse is the full user payload for profile endpoints. The
// password digest is never copied here.
type UserResponse struct {
	ID              string           `json:"id"`
	Username        string           `json:"username"`
	Email           string           `json:"email"`
	IsFreelancer    bool             `json:"is_freelancer"`
	Bio             string           `json:"bio"`
	Skills          string           `json:"skills"`
	RankingScore    float64          `json:"ranking_score"`
	CreatedAt       time.Time        `json:"created_at"`
	ReviewsReceived []ReviewResponse `json:"reviews_received,omitempty"`
}

type BidResponse struct {
	ID           string    `json:"id"`
	Amount       float64   `json:"amount"`
	Proposal     string    `json:"proposal"`
	ProjectID    string    `json:"project_id"`
	FreelancerID string    `json:"freelancer_id"`
	CreatedAt    time.Time `json:"created_at"`

	Freelancer *UserMini `json:"freelancer,omitempty"`
}

type ReviewResponse struct {
	ID         string    `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ProjectID  string    `json:"project_id"`
	ReviewerID string    `json:"reviewer_id"`
	RevieweeID string    `json:"reviewee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Reviewer *UserMini `json:"reviewer,omitempty"`
	Reviewee *UserMini `json:"reviewee,omitempty"`
}

type ProjectResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Budget       float64   `json:"budget"`
	Status       string    `json:"status"`
	ClientID     string    `json:"client_id"`
	FreelancerID *string   `json:"freelancer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	Client     *UserMini        `json:"client,omitempty"`
	Freelancer *UserMini        `json:"freelancer,omitempty"`
	Bids       []BidResponse    `json:"bids,omitempty"`
	Reviews    []ReviewResponse `json:"reviews,omitempty"`
}

func toUserMini(u *models.User) *UserMini {
	if u == nil {
		return nil
	}
	return &UserMini{
		ID:           u.ID.String(),
		Username:     u.Username,
		IsFreelancer: u.IsFreelancer,
		RankingScore: u.RankingScore,
	}
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		IsFreelancer: u.IsFreelancer,
		Bio:          u.Bio,
		Skills:       u.Skills,
		RankingScore: u.RankingScore,
		CreatedAt:    u.CreatedAt,
	}
}

func toBidResponse(b *models.Bid) BidResponse {
	return BidResponse{
		ID:           b.ID.String(),
		Amount:       b.Amount,
		Proposal:     b.Proposal,
		ProjectID:    b.ProjectID.String(),
		FreelancerID: b.FreelancerID.String(),
		CreatedAt:    b.CreatedAt,
		Freelancer:   toUserMini(b.Freelancer),
	}
}

func toReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		ProjectID:  r.ProjectID.String(),
		ReviewerID: r.ReviewerID.String(),
		RevieweeID: r.RevieweeID.String(),
		CreatedAt:  r.CreatedAt,
		Reviewer:   toUserMini(r.Reviewer),
		Reviewee:   toUserMini(r.Reviewee),
	}
}

func toProjectResponse(p *models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Budget:      p.Budget,
		Status:      string(p.Status),
		ClientID:    p.ClientID.String(),
		CreatedAt:   p.CreatedAt,
		Client:      toUserMini(p.Client),
		Freelancer:  toUserMini(p.Freelancer),
	}

	if p.FreelancerID != nil {
		id := p.FreelancerID.String()
		resp.FreelancerID = &id
	}

	for i := range p.Bids {
		resp.Bids = append(resp.Bids, toBidResponse(&p.Bids[i]))
	}
	for i := range p.Reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(&p.Reviews[i]))
	}

	return resp
}

// getAuth returns the authenticated user id placed in locals by the
// JWT middleware.
func getAuth(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("userId")
	if raw == nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	uid, ok := raw.(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userUUID, err := uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	return userUUID, nil
}
