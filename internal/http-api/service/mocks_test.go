package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"photostack/internal/cognitive"
	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/models"
)

// --- MOCK REPOSITORIES ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindBySubject(subjectID string) (*models.User, error) {
	args := m.Called(subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListCreators(page, limit int) ([]models.User, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) AdjustPhotoCount(id string, delta int64) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustCommentCount(id string, delta int64) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustRatingCount(id string, delta int64) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStats(id string, photoCount, totalViews, commentCount, ratingCount int64) error {
	args := m.Called(id, photoCount, totalViews, commentCount, ratingCount)
	return args.Error(0)
}

type MockPhotoRepo struct {
	mock.Mock
}

func (m *MockPhotoRepo) Create(ctx context.Context, photo *models.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepo) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoRepo) Update(ctx context.Context, photo *models.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoRepo) List(ctx context.Context, filters dto.PhotoListFilters, page, limit int) ([]models.Photo, int64, error) {
	args := m.Called(ctx, filters, page, limit)
	return args.Get(0).([]models.Photo), args.Get(1).(int64), args.Error(2)
}

func (m *MockPhotoRepo) Search(ctx context.Context, filters dto.PhotoSearchFilters, page, limit int) ([]models.Photo, int64, error) {
	args := m.Called(ctx, filters, page, limit)
	return args.Get(0).([]models.Photo), args.Get(1).(int64), args.Error(2)
}

func (m *MockPhotoRepo) ListByCreator(ctx context.Context, creatorID string, page, limit int) ([]models.Photo, int64, error) {
	args := m.Called(ctx, creatorID, page, limit)
	return args.Get(0).([]models.Photo), args.Get(1).(int64), args.Error(2)
}

func (m *MockPhotoRepo) Trending(ctx context.Context, since time.Time, limit int) ([]models.Photo, error) {
	args := m.Called(ctx, since, limit)
	return args.Get(0).([]models.Photo), args.Error(1)
}

func (m *MockPhotoRepo) IncrementViewCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoRepo) RefreshRatingAggregates(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoRepo) AdjustCommentCount(ctx context.Context, id int64, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockPhotoRepo) CreatorStats(ctx context.Context, creatorID string) (int64, int64, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id int64) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPhoto(photoID int64, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(photoID, page, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListByUser(userID string, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(userID, page, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) CountByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Update(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByUserAndPhoto(userID string, photoID int64) (*models.Rating, error) {
	args := m.Called(userID, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByPhoto(photoID int64) ([]models.Rating, error) {
	args := m.Called(photoID)
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) CountByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) CountForCreator(creatorID string) (int64, error) {
	args := m.Called(creatorID)
	return args.Get(0).(int64), args.Error(1)
}

// --- MOCK USER SERVICE ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetOrCreate(identity dto.Identity) (*models.User, error) {
	args := m.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Register(identity dto.Identity, input dto.RegisterUserDTO) (*models.User, error) {
	args := m.Called(identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(identity dto.Identity, input dto.UpdateUserDTO) (*models.User, error) {
	args := m.Called(identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetBySubject(subjectID string) (*models.User, error) {
	args := m.Called(subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListCreators(page, limit int) ([]models.User, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) UpdateRole(identity dto.Identity, role string) (*models.User, error) {
	args := m.Called(identity, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Stats(identity dto.Identity) (*dto.UserStatsResponse, error) {
	args := m.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserStatsResponse), args.Error(1)
}

// --- MOCK ADAPTERS ---

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, ownerID, fileName, mimeType string, data []byte) (string, string, error) {
	args := m.Called(ctx, ownerID, fileName, mimeType, data)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) Remove(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

type MockSentimentAnalyzer struct {
	mock.Mock
}

func (m *MockSentimentAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (cognitive.SentimentResult, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(cognitive.SentimentResult), args.Error(1)
}

type MockImageAnalyzer struct {
	mock.Mock
}

func (m *MockImageAnalyzer) AnalyzeImage(ctx context.Context, mimeType string, data []byte) (cognitive.ImageAnalysis, error) {
	args := m.Called(ctx, mimeType, data)
	return args.Get(0).(cognitive.ImageAnalysis), args.Error(1)
}
