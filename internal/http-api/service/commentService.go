package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"photostack/internal/cognitive"
	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/models"
	"photostack/internal/http-api/repository"
)

// CommentService manages comment threads and their sentiment enrichment.
type CommentService interface {
	Create(identity dto.Identity, photoID int64, input dto.CreateCommentDTO) (*models.Comment, error)
	Update(identity dto.Identity, commentID int64, input dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(identity dto.Identity, commentID int64) error
	GetByID(commentID int64) (*models.Comment, error)
	ListByPhoto(photoID int64, page, limit int) ([]models.Comment, int64, error)
	ListByUser(userID string, page, limit int) ([]models.Comment, int64, error)
	ListMine(identity dto.Identity, page, limit int) ([]models.Comment, int64, error)
}

type commentService struct {
	comments  repository.CommentRepository
	photos    repository.PhotoRepo
	users     UserService
	userRepo  repository.UserRepository
	sentiment cognitive.SentimentAnalyzer
}

func NewCommentService(comments repository.CommentRepository, photos repository.PhotoRepo, users UserService, userRepo repository.UserRepository, sentiment cognitive.SentimentAnalyzer) CommentService {
	return &commentService{
		comments:  comments,
		photos:    photos,
		users:     users,
		userRepo:  userRepo,
		sentiment: sentiment,
	}
}

// classify runs sentiment analysis, falling back to the neutral result
// when the analyzer is unavailable. Comments never fail over enrichment.
func (s *commentService) classify(text string) cognitive.SentimentResult {
	if s.sentiment == nil {
		return cognitive.DefaultSentiment()
	}
	result, err := s.sentiment.AnalyzeSentiment(context.Background(), text)
	if err != nil {
		slog.Warn("sentiment analysis failed", "error", err)
		return cognitive.DefaultSentiment()
	}
	return result
}

func (s *commentService) Create(identity dto.Identity, photoID int64, input dto.CreateCommentDTO) (*models.Comment, error) {
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

	sentiment := s.classify(input.Content)
	comment := &models.Comment{
		PhotoID:         photoID,
		UserID:          user.ID,
		UserDisplayName: user.DisplayName,
		Content:         input.Content,
		Sentiment:       sentiment.Sentiment,
		SentimentScore:  sentiment.Score,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if err := s.photos.AdjustCommentCount(ctx, photoID, 1); err != nil {
		return nil, fmt.Errorf("failed to bump photo comment count: %w", err)
	}
	if err := s.userRepo.AdjustCommentCount(user.ID, 1); err != nil {
		return nil, fmt.Errorf("failed to bump user comment count: %w", err)
	}
	return comment, nil
}

// Update rewrites the comment body, re-classifies sentiment and marks
// the comment edited. Only the author may edit.
func (s *commentService) Update(identity dto.Identity, commentID int64, input dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}
	if comment.UserID != user.ID {
		return nil, fmt.Errorf("%w: only the author may edit a comment", ErrForbidden)
	}

	sentiment := s.classify(input.Content)
	comment.Content = input.Content
	comment.Sentiment = sentiment.Sentiment
	comment.SentimentScore = sentiment.Score
	comment.IsEdited = true
	if err := s.comments.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// Delete soft-deletes the comment and reverses the engagement counters.
// Deleting an already-deleted comment is a no-op error so the counters
// are only adjusted once.
func (s *commentService) Delete(identity dto.Identity, commentID int64) error {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: comment not found", ErrNotFound)
		}
		return fmt.Errorf("failed to fetch comment: %w", err)
	}
	if comment.IsDeleted {
		return fmt.Errorf("%w: comment not found", ErrNotFound)
	}

	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return err
	}
	if comment.UserID != user.ID {
		return fmt.Errorf("%w: only the author may delete a comment", ErrForbidden)
	}

	comment.IsDeleted = true
	if err := s.comments.Update(comment); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if err := s.photos.AdjustCommentCount(context.Background(), comment.PhotoID, -1); err != nil {
		return fmt.Errorf("failed to drop photo comment count: %w", err)
	}
	if err := s.userRepo.AdjustCommentCount(user.ID, -1); err != nil {
		return fmt.Errorf("failed to drop user comment count: %w", err)
	}
	return nil
}

func (s *commentService) GetByID(commentID int64) (*models.Comment, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if comment.IsDeleted {
		return nil, fmt.Errorf("%w: comment not found", ErrNotFound)
	}
	return comment, nil
}

func (s *commentService) ListByPhoto(photoID int64, page, limit int) ([]models.Comment, int64, error) {
	if _, err := s.photos.GetByID(context.Background(), photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("%w: photo not found", ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to fetch photo: %w", err)
	}
	return s.comments.ListByPhoto(photoID, page, limit)
}

// ListByUser returns another user's visible comments. Soft-deleted
// comments stay hidden here just like in the photo listings.
func (s *commentService) ListByUser(userID string, page, limit int) ([]models.Comment, int64, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to fetch user: %w", err)
	}
	return s.comments.ListByUser(userID, page, limit)
}

func (s *commentService) ListMine(identity dto.Identity, page, limit int) ([]models.Comment, int64, error) {
	user, err := s.users.GetOrCreate(identity)
	if err != nil {
		return nil, 0, err
	}
	return s.comments.ListByUser(user.ID, page, limit)
}
