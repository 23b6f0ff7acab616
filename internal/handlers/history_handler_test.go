package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/models"
	"alfredoptarigan/job-predictor/internal/repositories"
	"alfredoptarigan/job-predictor/internal/repositories/mocks"
)

func newHistoryApp(repo repositories.PredictionRepository) *fiber.App {
	app := fiber.New()
	h := NewHistoryHandler(repo, zap.NewNop())
	app.Get("/predictions", h.HandleList)
	app.Delete("/predictions/:id", h.HandleDelete)
	return app
}

func TestHistoryHandlerList(t *testing.T) {
	id := uuid.New()
	date := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	repo := &mocks.PredictionRepository{}
	repo.On("FindByUserID", mock.Anything, "42", 0).Return([]models.PredictionRecord{
		{
			ID:        id,
			UserID:    "42",
			CGPA:      "8.0",
			Degree:    "B.Tech",
			Major:     "CS",
			Skills:    "Python,SQL",
			Role:      "Data Analyst",
			TopJobs:   `[{"job":"Data Analyst","confidence":0.7,"explanation":"x"}]`,
			CreatedAt: date,
		},
		{UserID: "42", TopJobs: "not json"},
	}, nil)

	resp, err := newHistoryApp(repo).Test(httptest.NewRequest(http.MethodGet, "/predictions?user_id=42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var history []models.PredictionHistoryItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, history, 2)
	assert.Equal(t, id.String(), history[0].ID)
	assert.Equal(t, "Python,SQL", history[0].Skills)
	assert.Equal(t, []models.JobPrediction{{Job: "Data Analyst", Confidence: 0.7, Explanation: "x"}}, history[0].TopJobs)
	assert.True(t, date.Equal(history[0].Date))
	assert.Empty(t, history[1].TopJobs)
	repo.AssertExpectations(t)
}

func TestHistoryHandlerListErrors(t *testing.T) {
	testCases := []struct {
		name       string
		url        string
		setup      func(repo *mocks.PredictionRepository)
		nilRepo    bool
		wantStatus int
	}{
		{
			name:       "missing user id",
			url:        "/predictions",
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name: "repository failure",
			url:  "/predictions?user_id=1&limit=5",
			setup: func(repo *mocks.PredictionRepository) {
				repo.On("FindByUserID", mock.Anything, "1", 5).Return(nil, errors.New("timeout"))
			},
			wantStatus: fiber.StatusInternalServerError,
		},
		{
			name:       "no database",
			url:        "/predictions?user_id=1",
			nilRepo:    true,
			wantStatus: fiber.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mocks.PredictionRepository{}
			if tc.setup != nil {
				tc.setup(repo)
			}

			var app *fiber.App
			if tc.nilRepo {
				app = newHistoryApp(nil)
			} else {
				app = newHistoryApp(repo)
			}

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.url, nil))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			repo.AssertExpectations(t)
		})
	}
}

func TestHistoryHandlerDelete(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name       string
		url        string
		setup      func(repo *mocks.PredictionRepository)
		wantStatus int
	}{
		{
			name: "deleted",
			url:  "/predictions/" + id.String() + "?user_id=42",
			setup: func(repo *mocks.PredictionRepository) {
				repo.On("Delete", mock.Anything, id, "42").Return(nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name: "not owned or missing",
			url:  "/predictions/" + id.String() + "?user_id=7",
			setup: func(repo *mocks.PredictionRepository) {
				repo.On("Delete", mock.Anything, id, "7").Return(repositories.ErrPredictionNotFound)
			},
			wantStatus: fiber.StatusNotFound,
		},
		{
			name: "repository failure",
			url:  "/predictions/" + id.String() + "?user_id=42",
			setup: func(repo *mocks.PredictionRepository) {
				repo.On("Delete", mock.Anything, id, "42").Return(errors.New("connection reset"))
			},
			wantStatus: fiber.StatusInternalServerError,
		},
		{
			name:       "bad id",
			url:        "/predictions/17?user_id=42",
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "missing user id",
			url:        "/predictions/" + id.String(),
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mocks.PredictionRepository{}
			if tc.setup != nil {
				tc.setup(repo)
			}

			resp, err := newHistoryApp(repo).Test(httptest.NewRequest(http.MethodDelete, tc.url, nil))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			repo.AssertExpectations(t)
		})
	}
}
