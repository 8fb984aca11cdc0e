package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/models"
)

func testIdentity() dto.Identity {
	return dto.Identity{SubjectID: "sub-123", Email: "viewer@example.com", DisplayName: "Viewer"}
}

func testUser() *models.User {
	return &models.User{ID: uuid.NewString(), SubjectID: "sub-123", Email: "viewer@example.com", DisplayName: "Viewer", Role: models.RoleConsumer}
}

func newRatingService(ratings *MockRatingRepository, photos *MockPhotoRepo, users *MockUserService, userRepo *MockUserRepository) RatingService {
	return NewRatingService(ratings, photos, users, userRepo)
}

func TestRatingService_Upsert(t *testing.T) {
	t.Run("RejectsOutOfRangeValues", func(t *testing.T) {
		svc := newRatingService(new(MockRatingRepository), new(MockPhotoRepo), new(MockUserService), new(MockUserRepository))

		for _, value := range []int{0, 6, -1, 100} {
			_, err := svc.Upsert(testIdentity(), 1, value)
			assert.ErrorIs(t, err, ErrValidation)
		}
	})

	t.Run("PhotoNotFound", func(t *testing.T) {
		photos := new(MockPhotoRepo)
		photos.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := newRatingService(new(MockRatingRepository), photos, new(MockUserService), new(MockUserRepository))
		_, err := svc.Upsert(testIdentity(), 99, 4)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("FirstRatingCreatesRowAndBumpsCount", func(t *testing.T) {
		user := testUser()
		ratings := new(MockRatingRepository)
		photos := new(MockPhotoRepo)
		users := new(MockUserService)
		userRepo := new(MockUserRepository)

		photos.On("GetByID", mock.Anything, int64(1)).Return(&models.Photo{ID: 1, AverageRating: 4, RatingCount: 1}, nil)
		users.On("GetOrCreate", testIdentity()).Return(user, nil)
		ratings.On("GetByUserAndPhoto", user.ID, int64(1)).Return(nil, gorm.ErrRecordNotFound)
		ratings.On("Create", mock.MatchedBy(func(r *models.Rating) bool {
			return r.PhotoID == 1 && r.UserID == user.ID && r.Value == 4
		})).Return(nil)
		userRepo.On("AdjustRatingCount", user.ID, int64(1)).Return(nil)
		photos.On("RefreshRatingAggregates", mock.Anything, int64(1)).Return(nil)

		svc := newRatingService(ratings, photos, users, userRepo)
		stats, err := svc.Upsert(testIdentity(), 1, 4)

		assert.NoError(t, err)
		assert.Equal(t, 4.0, stats.AverageRating)
		assert.Equal(t, int64(1), stats.RatingCount)
		ratings.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("SecondRatingReplacesWithoutNewRow", func(t *testing.T) {
		user := testUser()
		existing := &models.Rating{ID: 7, PhotoID: 1, UserID: user.ID, Value: 2}
		ratings := new(MockRatingRepository)
		photos := new(MockPhotoRepo)
		users := new(MockUserService)
		userRepo := new(MockUserRepository)

		photos.On("GetByID", mock.Anything, int64(1)).Return(&models.Photo{ID: 1, AverageRating: 5, RatingCount: 1}, nil)
		users.On("GetOrCreate", testIdentity()).Return(user, nil)
		ratings.On("GetByUserAndPhoto", user.ID, int64(1)).Return(existing, nil)
		ratings.On("Update", mock.MatchedBy(func(r *models.Rating) bool {
			return r.ID == 7 && r.Value == 5
		})).Return(nil)
		photos.On("RefreshRatingAggregates", mock.Anything, int64(1)).Return(nil)

		svc := newRatingService(ratings, photos, users, userRepo)
		stats, err := svc.Upsert(testIdentity(), 1, 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), stats.RatingCount)
		ratings.AssertNotCalled(t, "Create", mock.Anything)
		userRepo.AssertNotCalled(t, "AdjustRatingCount", mock.Anything, mock.Anything)
	})

	t.Run("RawStoredAverageIsRoundedForResponse", func(t *testing.T) {
		user := testUser()
		existing := &models.Rating{ID: 7, PhotoID: 1, UserID: user.ID, Value: 3}
		ratings := new(MockRatingRepository)
		photos := new(MockPhotoRepo)
		users := new(MockUserService)
		userRepo := new(MockUserRepository)

		// the column holds the unrounded average, only the response rounds
		photos.On("GetByID", mock.Anything, int64(1)).
			Return(&models.Photo{ID: 1, AverageRating: 3.6666666666666665, RatingCount: 3}, nil)
		users.On("GetOrCreate", testIdentity()).Return(user, nil)
		ratings.On("GetByUserAndPhoto", user.ID, int64(1)).Return(existing, nil)
		ratings.On("Update", mock.Anything).Return(nil)
		photos.On("RefreshRatingAggregates", mock.Anything, int64(1)).Return(nil)

		svc := newRatingService(ratings, photos, users, userRepo)
		stats, err := svc.Upsert(testIdentity(), 1, 4)

		assert.NoError(t, err)
		assert.Equal(t, 3.67, stats.AverageRating)
	})
}

func TestRatingService_Remove(t *testing.T) {
	t.Run("RemovesAndRecomputes", func(t *testing.T) {
		user := testUser()
		existing := &models.Rating{ID: 7, PhotoID: 1, UserID: user.ID, Value: 5}
		ratings := new(MockRatingRepository)
		photos := new(MockPhotoRepo)
		users := new(MockUserService)
		userRepo := new(MockUserRepository)

		users.On("GetOrCreate", testIdentity()).Return(user, nil)
		ratings.On("GetByUserAndPhoto", user.ID, int64(1)).Return(existing, nil)
		ratings.On("Delete", existing).Return(nil)
		userRepo.On("AdjustRatingCount", user.ID, int64(-1)).Return(nil)
		photos.On("RefreshRatingAggregates", mock.Anything, int64(1)).Return(nil)
		photos.On("GetByID", mock.Anything, int64(1)).Return(&models.Photo{ID: 1, AverageRating: 3.5, RatingCount: 2}, nil)

		svc := newRatingService(ratings, photos, users, userRepo)
		stats, err := svc.Remove(testIdentity(), 1)

		assert.NoError(t, err)
		assert.Equal(t, 3.5, stats.AverageRating)
		assert.Equal(t, int64(2), stats.RatingCount)
		ratings.AssertExpectations(t)
	})

	t.Run("NoRatingToRemove", func(t *testing.T) {
		user := testUser()
		ratings := new(MockRatingRepository)
		users := new(MockUserService)

		users.On("GetOrCreate", testIdentity()).Return(user, nil)
		ratings.On("GetByUserAndPhoto", user.ID, int64(1)).Return(nil, gorm.ErrRecordNotFound)

		svc := newRatingService(ratings, new(MockPhotoRepo), users, new(MockUserRepository))
		_, err := svc.Remove(testIdentity(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRatingService_GetStats(t *testing.T) {
	uid := uuid.NewString

	t.Run("AverageAndDistribution", func(t *testing.T) {
		ratings := new(MockRatingRepository)
		photos := new(MockPhotoRepo)

		photos.On("GetByID", mock.Anything, int64(1)).Return(&models.Photo{ID: 1}, nil)
		ratings.On("GetByPhoto", int64(1)).Return([]models.Rating{
			{PhotoID: 1, UserID: uid(), Value: 3},
			{PhotoID: 1, UserID: uid(), Value: 5},
			{PhotoID: 1, UserID: uid(), Value: 4},
		}, nil)

		svc := newRatingService(ratings, photos, new(MockUserService), new(MockUserRepository))
		stats, err := svc.GetStats(1)

		assert.NoError(t, err)
		assert.Equal(t, 4.0, stats.Average)
		assert.Equal(t, int64(3), stats.Total)
		assert.Equal(t, int64(1), stats.Distribution[3])
		assert.Equal(t, int64(1), stats.Distribution[4])
		assert.Equal(t, int64(1), stats.Distribution[5])
		assert.Equal(t, int64(0), stats.Distribution[1])
	})

	t.Run("AverageRoundsToTwoDecimals", func(t *testing.T) {
		ratings := new(MockRatingRepository)
		photos := new(MockPhotoRepo)

		photos.On("GetByID", mock.Anything, int64(1)).Return(&models.Photo{ID: 1}, nil)
		ratings.On("GetByPhoto", int64(1)).Return([]models.Rating{
			{PhotoID: 1, UserID: uid(), Value: 3},
			{PhotoID: 1, UserID: uid(), Value: 4},
		}, nil)

		svc := newRatingService(ratings, photos, new(MockUserService), new(MockUserRepository))
		stats, err := svc.GetStats(1)

		assert.NoError(t, err)
		assert.Equal(t, 3.5, stats.Average)
		assert.Equal(t, int64(2), stats.Total)
	})

	t.Run("NoRatings", func(t *testing.T) {
		ratings := new(MockRatingRepository)
		photos := new(MockPhotoRepo)

		photos.On("GetByID", mock.Anything, int64(1)).Return(&models.Photo{ID: 1}, nil)
		ratings.On("GetByPhoto", int64(1)).Return([]models.Rating{}, nil)

		svc := newRatingService(ratings, photos, new(MockUserService), new(MockUserRepository))
		stats, err := svc.GetStats(1)

		assert.NoError(t, err)
		assert.Equal(t, 0.0, stats.Average)
		assert.Equal(t, int64(0), stats.Total)
	})
}

func TestRatingService_GetUserRating(t *testing.T) {
	user := testUser()
	ratings := new(MockRatingRepository)
	users := new(MockUserService)

	users.On("GetOrCreate", testIdentity()).Return(user, nil)
	ratings.On("GetByUserAndPhoto", user.ID, int64(1)).Return(&models.Rating{PhotoID: 1, UserID: user.ID, Value: 4}, nil)

	svc := newRatingService(ratings, new(MockPhotoRepo), users, new(MockUserRepository))
	rating, err := svc.GetUserRating(testIdentity(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 4, rating.Value)
}
