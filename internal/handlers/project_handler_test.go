package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lancehub-id/lancehub_be/internal/models"
)

func placeBid(t *testing.T, gdb *gorm.DB, project models.Project, freelancer models.User, amount float64) models.Bid {
	t.Helper()

	bid := models.Bid{
		Amount:       amount,
		Proposal:     "I can do this",
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	}
	require.NoError(t, gdb.Create(&bid).Error)
	return bid
}

func TestCreateProject(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)

	resp := doJSON(t, app, http.MethodPost, "/api/projects", tokenFor(t, client), map[string]any{
		"title":       "Build landing page",
		"description": "Need a React landing page",
		"budget":      250.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data ProjectResponse
	parseData(t, resp, &data)
	assert.Equal(t, "open", data.Status)
	assert.Equal(t, client.ID.String(), data.ClientID)
	assert.Nil(t, data.FreelancerID)
	require.NotNil(t, data.Client)
	assert.Equal(t, "alice_client", data.Client.Username)
}

func TestCreateProjectRequiresAuth(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)

	resp := doJSON(t, app, http.MethodPost, "/api/projects", "", map[string]any{
		"title":       "X",
		"description": "Y",
		"budget":      10.0,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateProjectValidation(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)

	resp := doJSON(t, app, http.MethodPost, "/api/projects", tokenFor(t, client), map[string]any{
		"title":       "",
		"description": "desc",
		"budget":      -5.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetProjectNotFound(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)

	resp := doJSON(t, app, http.MethodGet, "/api/projects/00000000-0000-0000-0000-000000000001", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProjectOwnership(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	other := createUser(t, gdb, "bob_manager", false)
	project := createProject(t, gdb, client, "Logo design", "Vector logo", time.Now())

	resp := doJSON(t, app, http.MethodPut, "/api/projects/"+project.ID.String(),
		tokenFor(t, other), map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var reloaded models.Project
	require.NoError(t, gdb.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, "Logo design", reloaded.Title)
}

func TestUpdateProjectPartial(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	project := createProject(t, gdb, client, "Logo design", "Vector logo", time.Now())

	resp := doJSON(t, app, http.MethodPut, "/api/projects/"+project.ID.String(),
		tokenFor(t, client), map[string]any{"budget": 500.0})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data ProjectResponse
	parseData(t, resp, &data)
	assert.Equal(t, 500.0, data.Budget)
	assert.Equal(t, "Logo design", data.Title, "unspecified fields stay unchanged")
	assert.Equal(t, "open", data.Status)
}

func TestUpdateProjectStatus(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	project := createProject(t, gdb, client, "Logo design", "Vector logo", time.Now())

	// owner may set any known status on this path
	resp := doJSON(t, app, http.MethodPut, "/api/projects/"+project.ID.String(),
		tokenFor(t, client), map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data ProjectResponse
	parseData(t, resp, &data)
	assert.Equal(t, "completed", data.Status)

	// unknown status values are rejected
	resp = doJSON(t, app, http.MethodPut, "/api/projects/"+project.ID.String(),
		tokenFor(t, client), map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAcceptBid(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	freelancer := createUser(t, gdb, "charlie_dev", true)
	project := createProject(t, gdb, client, "API build", "REST API in Go", time.Now())
	bid := placeBid(t, gdb, project, freelancer, 90)

	resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/accept-bid",
		tokenFor(t, client), map[string]any{"bid_id": bid.ID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data ProjectResponse
	parseData(t, resp, &data)
	assert.Equal(t, "in_progress", data.Status)
	require.NotNil(t, data.FreelancerID)
	assert.Equal(t, freelancer.ID.String(), *data.FreelancerID)
}

func TestAcceptBidNotClient(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	freelancer := createUser(t, gdb, "charlie_dev", true)
	project := createProject(t, gdb, client, "API build", "REST API in Go", time.Now())
	bid := placeBid(t, gdb, project, freelancer, 90)

	resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/accept-bid",
		tokenFor(t, freelancer), map[string]any{"bid_id": bid.ID.String()})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var reloaded models.Project
	require.NoError(t, gdb.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, models.ProjectStatusOpen, reloaded.Status)
	assert.Nil(t, reloaded.FreelancerID)
}

func TestAcceptBidNotOpen(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	freelancer := createUser(t, gdb, "charlie_dev", true)
	second := createUser(t, gdb, "dana_dev", true)
	project := createProject(t, gdb, client, "API build", "REST API in Go", time.Now())
	bid := placeBid(t, gdb, project, freelancer, 90)
	otherBid := placeBid(t, gdb, project, second, 85)

	resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/accept-bid",
		tokenFor(t, client), map[string]any{"bid_id": bid.ID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// a second acceptance is a state error and must change nothing
	resp = doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/accept-bid",
		tokenFor(t, client), map[string]any{"bid_id": otherBid.ID.String()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var reloaded models.Project
	require.NoError(t, gdb.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, models.ProjectStatusInProgress, reloaded.Status)
	require.NotNil(t, reloaded.FreelancerID)
	assert.Equal(t, freelancer.ID, *reloaded.FreelancerID)
}

func TestAcceptBidWrongProject(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	freelancer := createUser(t, gdb, "charlie_dev", true)
	project := createProject(t, gdb, client, "API build", "REST API in Go", time.Now())
	other := createProject(t, gdb, client, "Logo design", "Vector logo", time.Now())
	foreignBid := placeBid(t, gdb, other, freelancer, 50)

	resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/accept-bid",
		tokenFor(t, client), map[string]any{"bid_id": foreignBid.ID.String()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var reloaded models.Project
	require.NoError(t, gdb.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, models.ProjectStatusOpen, reloaded.Status)
	assert.Nil(t, reloaded.FreelancerID)
}

func TestAcceptBidUnknownBid(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	project := createProject(t, gdb, client, "API build", "REST API in Go", time.Now())

	resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/accept-bid",
		tokenFor(t, client), map[string]any{"bid_id": "00000000-0000-0000-0000-000000000001"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListOpenProjects(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)

	base := time.Now().Add(-time.Hour)
	createProject(t, gdb, client, "Old project", "Plain HTML site", base)
	createProject(t, gdb, client, "New project", "React Native app", base.Add(10*time.Minute))
	assigned := createProject(t, gdb, client, "Taken project", "React dashboard", base.Add(20*time.Minute))
	assigned.Status = models.ProjectStatusInProgress
	require.NoError(t, gdb.Save(&assigned).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data []ProjectResponse
	parseData(t, resp, &data)
	require.Len(t, data, 2, "only open projects are listed")
	assert.Equal(t, "New project", data[0].Title, "newest first")
	assert.Equal(t, "Old project", data[1].Title)
}

func TestListOpenProjectsSkillFilter(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)

	base := time.Now().Add(-time.Hour)
	createProject(t, gdb, client, "Old project", "Plain HTML site", base)
	createProject(t, gdb, client, "New project", "React Native app", base.Add(10*time.Minute))

	resp := doJSON(t, app, http.MethodGet, "/api/projects?skill=react", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data []ProjectResponse
	parseData(t, resp, &data)
	require.Len(t, data, 1, "filter is a case-insensitive substring over description")
	assert.Equal(t, "New project", data[0].Title)
}

func TestGetProjectNested(t *testing.T) {
	gdb := newTestDB(t)
	app := newTestApp(t, gdb)
	client := createUser(t, gdb, "alice_client", false)
	freelancer := createUser(t, gdb, "charlie_dev", true)
	project := createProject(t, gdb, client, "API build", "REST API in Go", time.Now())
	placeBid(t, gdb, project, freelancer, 90)

	resp := doJSON(t, app, http.MethodGet, "/api/projects/"+project.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data ProjectResponse
	parseData(t, resp, &data)
	require.Len(t, data.Bids, 1)
	require.NotNil(t, data.Bids[0].Freelancer)
	assert.Equal(t, "charlie_dev", data.Bids[0].Freelancer.Username)
	assert.Equal(t, 0.0, data.Bids[0].Freelancer.RankingScore)
}
