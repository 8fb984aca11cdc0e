package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/models"
	"photostack/internal/http-api/repository"
)

// RatingService manages star ratings and keeps the photo aggregate
// columns consistent with the rating rows.
type RatingService interface {
	Upsert(identity dto.Identity, photoID int64, value int) (*dto.PhotoRatingStats, error)
	Remove(identity dto.Identity, photoID int64) (*dto.PhotoRatingStats, error)
	GetStats(photoID int64) (*dto.RatingStatsResponse, error)
	GetUserRating(identity dto.Identity, photoID int64) (*dto.UserRatingResponse, error)
}

type ratingService struct {
	ratings  repository.RatingRepository
	photos   repository.PhotoRepo
	users    UserService
	userRepo repository.UserRepository
}

func NewRatingService(ratings repository.RatingRepository, photos repository.PhotoRepo, users UserService, userRepo repository.UserRepository) RatingService {
	return &ratingService{ratings: ratings, photos: photos, users: users, userRepo: userRepo}
}

// Upsert records the user's rating for a photo. A second rating from the
// same user replaces the first instead of adding a row.
func (s *ratingService) Upsert(identity dto.Identity, photoID int64, value int) (*dto.PhotoRatingStats, error) {
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	ctx := context.Background()
	if _, err := s.photos.GetByID(ctx, photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: photo not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}

	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}

	existing, err := s.ratings.GetByUserAndPhoto(user.ID, photoID)
	switch {
	case err == nil:
		existing.Value = value
		if err := s.ratings.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to update rating: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating := &models.Rating{PhotoID: photoID, UserID: user.ID, Value: value}
		if err := s.ratings.Create(rating); err != nil {
			// a concurrent insert hit the unique index first, retry as update
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return s.Upsert(identity, photoID, value)
			}
			return nil, fmt.Errorf("failed to create rating: %w", err)
		}
		if err := s.userRepo.AdjustRatingCount(user.ID, 1); err != nil {
			return nil, fmt.Errorf("failed to bump rating count: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up rating: %w", err)
	}

	return s.refresh(ctx, photoID)
}

// Remove deletes the user's rating and recomputes the aggregate.
func (s *ratingService) Remove(identity dto.Identity, photoID int64) (*dto.PhotoRatingStats, error) {
	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}

	rating, err := s.ratings.GetByUserAndPhoto(user.ID, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: rating not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up rating: %w", err)
	}

	if err := s.ratings.Delete(rating); err != nil {
		return nil, fmt.Errorf("failed to delete rating: %w", err)
	}
	if err := s.userRepo.AdjustRatingCount(user.ID, -1); err != nil {
		return nil, fmt.Errorf("failed to drop rating count: %w", err)
	}

	return s.refresh(context.Background(), photoID)
}

// refresh recomputes the photo aggregate from the rating rows and reads
// back the stored values. The average is stored raw and only rounded
// here for the response.
func (s *ratingService) refresh(ctx context.Context, photoID int64) (*dto.PhotoRatingStats, error) {
	if err := s.photos.RefreshRatingAggregates(ctx, photoID); err != nil {
		return nil, fmt.Errorf("failed to refresh rating aggregates: %w", err)
	}
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}
	return &dto.PhotoRatingStats{
		AverageRating: math.Round(photo.AverageRating*100) / 100,
		RatingCount:   photo.RatingCount,
	}, nil
}

// GetStats returns the average, total and per-star distribution for a photo.
func (s *ratingService) GetStats(photoID int64) (*dto.RatingStatsResponse, error) {
	if _, err := s.photos.GetByID(context.Background(), photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: photo not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}

	ratings, err := s.ratings.GetByPhoto(photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum int
	for _, r := range ratings {
		distribution[r.Value]++
		sum += r.Value
	}

	var average float64
	if len(ratings) > 0 {
		average = math.Round(float64(sum)/float64(len(ratings))*100) / 100
	}

	return &dto.RatingStatsResponse{
		Average:      average,
		Total:        int64(len(ratings)),
		Distribution: distribution,
	}, nil
}

// GetUserRating returns the caller's own rating for a photo.
func (s *ratingService) GetUserRating(identity dto.Identity, photoID int64) (*dto.UserRatingResponse, error) {
	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}

	rating, err := s.ratings.GetByUserAndPhoto(user.ID, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: rating not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up rating: %w", err)
	}
	return &dto.UserRatingResponse{Value: rating.Value}, nil
}
