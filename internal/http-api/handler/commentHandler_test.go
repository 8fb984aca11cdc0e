package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/handler"
	"photostack/internal/http-api/models"
	"photostack/internal/http-api/service"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(identity dto.Identity, photoID int64, input dto.CreateCommentDTO) (*models.Comment, error) {
	args := m.Called(identity, photoID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Update(identity dto.Identity, commentID int64, input dto.UpdateCommentDTO) (*models.Comment, error) {
	args := m.Called(identity, commentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(identity dto.Identity, commentID int64) error {
	args := m.Called(identity, commentID)
	return args.Error(0)
}

func (m *MockCommentService) GetByID(commentID int64) (*models.Comment, error) {
	args := m.Called(commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListByPhoto(photoID int64, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(photoID, page, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) ListByUser(userID string, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(userID, page, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) ListMine(identity dto.Identity, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(identity, page, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func setupCommentRouter(mockService *MockCommentService, identity dto.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewCommentHandler(mockService)
	h.RegisterRoutes(r.Group("/api"), mockAuthMiddleware(identity), anonymousMiddleware())
	return r
}

func TestCommentHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, testViewer())

		mockService.On("Create", testViewer(), int64(1), dto.CreateCommentDTO{Content: "nice"}).
			Return(&models.Comment{ID: 9, PhotoID: 1, Content: "nice", Sentiment: models.SentimentPositive}, nil).Once()

		body, _ := json.Marshal(gin.H{"content": "nice"})
		req, _ := http.NewRequest(http.MethodPost, "/api/photos/1/comments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "positive")
	})

	t.Run("EmptyContentRejected", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, testViewer())

		body, _ := json.Marshal(gin.H{"content": ""})
		req, _ := http.NewRequest(http.MethodPost, "/api/photos/1/comments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentHandler_Delete(t *testing.T) {
	t.Run("ForbiddenForNonAuthor", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, testViewer())

		mockService.On("Delete", testViewer(), int64(9)).Return(service.ErrForbidden).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/comments/9", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCommentHandler_ListByPhoto(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupCommentRouter(mockService, testViewer())

	mockService.On("ListByPhoto", int64(1), 1, 20).
		Return([]models.Comment{{ID: 9, Content: "nice"}}, int64(1), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/photos/1/comments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp["pagination"])
}

func TestCommentHandler_ListByUser(t *testing.T) {
	t.Run("PublicHistory", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, testViewer())

		mockService.On("ListByUser", "user-abc", 1, 20).
			Return([]models.Comment{{ID: 9, UserID: "user-abc", Content: "nice"}}, int64(1), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/users/user-abc/comments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotNil(t, resp["pagination"])
		mockService.AssertExpectations(t)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, testViewer())

		mockService.On("ListByUser", "nobody", 1, 20).
			Return([]models.Comment(nil), int64(0), service.ErrNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/users/nobody/comments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
