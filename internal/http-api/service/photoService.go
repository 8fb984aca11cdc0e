package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"photostack/internal/cognitive"
	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/models"
	"photostack/internal/http-api/repository"
	"photostack/internal/storage"
)

// Trending periods accepted by the trending endpoint.
var trendingWindows = map[string]time.Duration{
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

// PhotoService manages the photo lifecycle from upload through deletion.
type PhotoService interface {
	List(ctx context.Context, filters dto.PhotoListFilters, page, limit int) ([]models.Photo, int64, error)
	Get(ctx context.Context, id int64) (*models.Photo, error)
	Create(ctx context.Context, identity dto.Identity, input dto.CreatePhotoDTO, image dto.UploadedImage) (*models.Photo, error)
	Update(ctx context.Context, identity dto.Identity, id int64, input dto.UpdatePhotoDTO) (*models.Photo, error)
	Delete(ctx context.Context, identity dto.Identity, id int64) error
	Search(ctx context.Context, filters dto.PhotoSearchFilters, page, limit int) ([]models.Photo, int64, error)
	ListByCreator(ctx context.Context, creatorID string, page, limit int) ([]models.Photo, int64, error)
	Trending(ctx context.Context, period string, limit int) ([]models.Photo, error)
}

type photoService struct {
	photos   repository.PhotoRepo
	users    UserService
	userRepo repository.UserRepository
	blobs    storage.Storage
	analyzer cognitive.ImageAnalyzer
}

func NewPhotoService(photos repository.PhotoRepo, users UserService, userRepo repository.UserRepository, blobs storage.Storage, analyzer cognitive.ImageAnalyzer) PhotoService {
	return &photoService{
		photos:   photos,
		users:    users,
		userRepo: userRepo,
		blobs:    blobs,
		analyzer: analyzer,
	}
}

func (s *photoService) List(ctx context.Context, filters dto.PhotoListFilters, page, limit int) ([]models.Photo, int64, error) {
	return s.photos.List(ctx, filters, page, limit)
}

// Get fetches a photo and counts the view. The increment is fire-and-forget
// relative to the returned snapshot.
func (s *photoService) Get(ctx context.Context, id int64) (*models.Photo, error) {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: photo not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}

	if err := s.photos.IncrementViewCount(ctx, id); err != nil {
		slog.Warn("failed to count view", "photo_id", id, "error", err)
	} else {
		photo.ViewCount++
	}
	return photo, nil
}

// Create uploads the blob, runs image analysis and stores the photo.
// Analysis failures degrade to empty enrichment and never block the upload.
func (s *photoService) Create(ctx context.Context, identity dto.Identity, input dto.CreatePhotoDTO, image dto.UploadedImage) (*models.Photo, error) {
	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}
	if !user.IsCreator() {
		return nil, fmt.Errorf("%w: only creators may upload photos", ErrForbidden)
	}

	url, objectName, err := s.blobs.Upload(ctx, user.ID, image.FileName, image.MimeType, image.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	analysis := cognitive.DefaultImageAnalysis()
	if s.analyzer != nil {
		if a, err := s.analyzer.AnalyzeImage(ctx, image.MimeType, image.Data); err != nil {
			slog.Warn("image analysis failed", "error", err)
		} else {
			analysis = a
		}
	}

	photo := &models.Photo{
		CreatorID:      user.ID,
		Title:          input.Title,
		Caption:        input.Caption,
		Location:       input.Location,
		People:         dto.ParsePeople(input.People),
		BlobURL:        url,
		BlobName:       objectName,
		MimeType:       image.MimeType,
		FileSize:       image.Size,
		AITags:         analysis.Tags,
		AIDescription:  analysis.Description,
		DominantColors: analysis.DominantColors,
		IsAdultContent: analysis.IsAdultContent,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		// orphaned blobs are cheaper than failed uploads, clean up anyway
		if rmErr := s.blobs.Remove(ctx, objectName); rmErr != nil {
			slog.Warn("failed to remove orphaned blob", "object", objectName, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	if err := s.userRepo.AdjustPhotoCount(user.ID, 1); err != nil {
		slog.Warn("failed to bump photo count", "user_id", user.ID, "error", err)
	}
	return photo, nil
}

// Update edits photo metadata. Only the owning creator may update.
func (s *photoService) Update(ctx context.Context, identity dto.Identity, id int64, input dto.UpdatePhotoDTO) (*models.Photo, error) {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: photo not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}

	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}
	if photo.CreatorID != user.ID {
		return nil, fmt.Errorf("%w: only the owner may update a photo", ErrForbidden)
	}

	if input.Title != nil {
		photo.Title = *input.Title
	}
	if input.Caption != nil {
		photo.Caption = *input.Caption
	}
	if input.Location != nil {
		photo.Location = *input.Location
	}
	if input.People != nil {
		photo.People = dto.ParsePeople(*input.People)
	}
	if err := s.photos.Update(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}
	return photo, nil
}

// Delete removes the photo with its comments and ratings, then the blob.
// Blob removal failures are logged and swallowed; the database row is the
// source of truth.
func (s *photoService) Delete(ctx context.Context, identity dto.Identity, id int64) error {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: photo not found", ErrNotFound)
		}
		return fmt.Errorf("failed to fetch photo: %w", err)
	}

	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return err
	}
	if photo.CreatorID != user.ID {
		return fmt.Errorf("%w: only the owner may delete a photo", ErrForbidden)
	}

	if err := s.photos.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	if photo.BlobName != "" {
		if err := s.blobs.Remove(ctx, photo.BlobName); err != nil {
			slog.Warn("failed to remove blob", "object", photo.BlobName, "error", err)
		}
	}

	if err := s.userRepo.AdjustPhotoCount(user.ID, -1); err != nil {
		slog.Warn("failed to drop photo count", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *photoService) Search(ctx context.Context, filters dto.PhotoSearchFilters, page, limit int) ([]models.Photo, int64, error) {
	return s.photos.Search(ctx, filters, page, limit)
}

func (s *photoService) ListByCreator(ctx context.Context, creatorID string, page, limit int) ([]models.Photo, int64, error) {
	if _, err := s.userRepo.FindByID(creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("%w: creator not found", ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to fetch creator: %w", err)
	}
	return s.photos.ListByCreator(ctx, creatorID, page, limit)
}

// Trending returns the most engaged-with photos in the given period.
func (s *photoService) Trending(ctx context.Context, period string, limit int) ([]models.Photo, error) {
	window, ok := trendingWindows[period]
	if !ok {
		return nil, fmt.Errorf("%w: period must be day, week or month", ErrValidation)
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.photos.Trending(ctx, time.Now().Add(-window), limit)
}
