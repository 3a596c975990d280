package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"placelog-api/internal/models"
	"placelog-api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPlaceService is a mock implementation of the PlaceService interface
type MockPlaceService struct {
	mock.Mock
}

func (m *MockPlaceService) SavePlace(ctx context.Context, name string, lat, lon float64, notes string) (*models.PlaceVisit, error) {
	args := m.Called(ctx, name, lat, lon, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaceVisit), args.Error(1)
}

func (m *MockPlaceService) UpdateNotes(ctx context.Context, placeID, notes string) (*models.PlaceVisit, error) {
	args := m.Called(ctx, placeID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaceVisit), args.Error(1)
}

func (m *MockPlaceService) DeletePlace(ctx context.Context, placeID string) error {
	args := m.Called(ctx, placeID)
	return args.Error(0)
}

func (m *MockPlaceService) ListPlaces(ctx context.Context) ([]models.PlaceVisit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlaceVisit), args.Error(1)
}

func (m *MockPlaceService) GetPlace(ctx context.Context, placeID string) (*models.PlaceVisit, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaceVisit), args.Error(1)
}

func TestPlaceHandler_SavePlace(t *testing.T) {
	gin.SetMode(gin.TestMode)

	saved := &models.PlaceVisit{
		PlaceID:   "Joe's Diner_40.7123_-74.0099",
		Name:      "Joe's Diner",
		Latitude:  40.7123,
		Longitude: -74.0099,
	}

	tests := []struct {
		name           string
		body           string
		mockPlace      *models.PlaceVisit
		mockError      error
		expectCall     bool
		expectedStatus int
	}{
		{
			name:           "successful save",
			body:           `{"name":"Joe's Diner","latitude":40.7123,"longitude":-74.0099}`,
			mockPlace:      saved,
			expectCall:     true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"latitude":40.7123,"longitude":-74.0099}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate place",
			body:           `{"name":"Joe's Diner","latitude":40.7123,"longitude":-74.0099}`,
			mockError:      repository.ErrDuplicatePlace,
			expectCall:     true,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPlaceService)
			h := NewPlaceHandler(mockSvc)

			if tt.expectCall {
				mockSvc.On("SavePlace", mock.Anything, "Joe's Diner", 40.7123, -74.0099, "").
					Return(tt.mockPlace, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/places", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			c, _ := gin.CreateTestContext(w)
			c.Request = req

			h.SavePlace(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPlaceHandler_ListPlaces(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockPlaceService)
	h := NewPlaceHandler(mockSvc)

	places := []models.PlaceVisit{
		{PlaceID: "a", Name: "Afuri Ramen"},
		{PlaceID: "b", Name: "Joe's Diner"},
	}
	mockSvc.On("ListPlaces", mock.Anything).Return(places, nil)

	req := httptest.NewRequest(http.MethodGet, "/places", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.ListPlaces(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []models.PlaceVisit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, places, got)
}

func TestPlaceHandler_GetPlace_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockPlaceService)
	h := NewPlaceHandler(mockSvc)

	mockSvc.On("GetPlace", mock.Anything, "missing").Return(nil, repository.ErrPlaceNotFound)

	req := httptest.NewRequest(http.MethodGet, "/places/missing", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.GetPlace(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceHandler_DeletePlace(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{name: "successful delete", expectedStatus: http.StatusNoContent},
		{name: "missing place", mockError: repository.ErrPlaceNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPlaceService)
			h := NewPlaceHandler(mockSvc)

			mockSvc.On("DeletePlace", mock.Anything, "place-1").Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/places/place-1", nil)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			c.Params = gin.Params{{Key: "id", Value: "place-1"}}

			h.DeletePlace(c)
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}
