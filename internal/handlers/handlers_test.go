package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/db"
	"github.com/lancehub-id/lancehub_be/internal/middleware"
	"github.com/lancehub-id/lancehub_be/internal/models"
	"github.com/lancehub-id/lancehub_be/internal/services/ranking"
	"github.com/lancehub-id/lancehub_be/internal/utils"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory DB
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func newTestApp(t *testing.T, gdb *gorm.DB) *fiber.App {
	t.Helper()

	app := fiber.New()

	authH := &AuthHandler{DB: gdb, JWTSecret: testSecret, Expires: 60}
	userH := NewUserHandler(gdb)
	projectH := NewProjectHandler(gdb, nil)
	bidH := NewBidHandler(gdb)
	reviewH := NewReviewHandler(gdb, ranking.NewRankingService(gdb))

	api := app.Group("/api")

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/users/:id", userH.GetProfile)
	api.Get("/projects", projectH.List)
	api.Get("/projects/:id", projectH.Get)

	protected := api.Group("/",
		middleware.JWTAuth(testSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/profile", userH.Me)
	protected.Put("/profile", userH.UpdateMe)
	protected.Post("/projects", projectH.Create)
	protected.Put("/projects/:id", projectH.Update)
	protected.Post("/projects/:id/accept-bid", projectH.AcceptBid)
	protected.Post("/projects/:id/bids", middleware.RequireFreelancer(), bidH.Place)
	protected.Post("/projects/:id/reviews", reviewH.Create)

	return app
}

func createUser(t *testing.T, gdb *gorm.DB, username string, freelancer bool) models.User {
	t.Helper()

	pw, err := utils.HashPassword("pass123")
	require.NoError(t, err)

	u := models.User{
		Username:     username,
		Email:        username + "@example.com",
		Password:     pw,
		IsFreelancer: freelancer,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func createProject(t *testing.T, gdb *gorm.DB, client models.User, title, description string, createdAt time.Time) models.Project {
	t.Helper()

	p := models.Project{
		Title:       title,
		Description: description,
		Budget:      100,
		Status:      models.ProjectStatusOpen,
		ClientID:    client.ID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()

	token, err := utils.SignJWT(testSecret, u.ID.String(), u.IsFreelancer, 60)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func parseEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return env
}

func parseData(t *testing.T, resp *http.Response, dest any) {
	t.Helper()

	env := parseEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}
