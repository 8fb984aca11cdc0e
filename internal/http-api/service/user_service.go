package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/models"
	"photostack/internal/http-api/repository"
)

// UserService manages user accounts and their engagement stats.
type UserService interface {
	GetOrCreate(identity dto.Identity) (*models.User, error)
	Register(identity dto.Identity, input dto.RegisterUserDTO) (*models.User, error)
	UpdateProfile(identity dto.Identity, input dto.UpdateUserDTO) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetBySubject(subjectID string) (*models.User, error)
	ListCreators(page, limit int) ([]models.User, int64, error)
	UpdateRole(identity dto.Identity, role string) (*models.User, error)
	Stats(identity dto.Identity) (*dto.UserStatsResponse, error)
}

type userService struct {
	users    repository.UserRepository
	photos   repository.PhotoRepo
	comments repository.CommentRepository
	ratings  repository.RatingRepository
}

func NewUserService(users repository.UserRepository, photos repository.PhotoRepo, comments repository.CommentRepository, ratings repository.RatingRepository) UserService {
	return &userService{users: users, photos: photos, comments: comments, ratings: ratings}
}

// GetOrCreate resolves the authenticated identity to a local user,
// creating the account on first sight. An existing account with the same
// email but no matching subject is rebound to the new subject id, which
// covers identity-provider migrations.
func (s *userService) GetOrCreate(identity dto.Identity) (*models.User, error) {
	user, err := s.users.FindBySubject(identity.SubjectID)
	if err == nil {
		now := time.Now()
		user.LastLoginAt = &now
		if err := s.users.Update(user); err != nil {
			return nil, fmt.Errorf("failed to record login: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if identity.Email != "" {
		if existing, err := s.users.FindByEmail(identity.Email); err == nil {
			existing.SubjectID = identity.SubjectID
			now := time.Now()
			existing.LastLoginAt = &now
			if err := s.users.Update(existing); err != nil {
				return nil, fmt.Errorf("failed to rebind user: %w", err)
			}
			return existing, nil
		}
	}

	role := identity.Role
	if role != models.RoleCreator {
		role = models.RoleConsumer
	}
	displayName := identity.DisplayName
	if displayName == "" {
		displayName = identity.Email
	}
	now := time.Now()
	user = &models.User{
		SubjectID:   identity.SubjectID,
		Email:       identity.Email,
		DisplayName: displayName,
		Role:        role,
		IsActive:    true,
		LastLoginAt: &now,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Register creates an account explicitly with a chosen role and profile.
func (s *userService) Register(identity dto.Identity, input dto.RegisterUserDTO) (*models.User, error) {
	if _, err := s.users.FindBySubject(identity.SubjectID); err == nil {
		return nil, fmt.Errorf("%w: account already registered", ErrConflict)
	}

	role := input.Role
	if role == "" {
		role = models.RoleConsumer
	}
	if role != models.RoleCreator && role != models.RoleConsumer {
		return nil, fmt.Errorf("%w: role must be creator or consumer", ErrValidation)
	}

	now := time.Now()
	user := &models.User{
		SubjectID:   identity.SubjectID,
		Email:       identity.Email,
		DisplayName: input.DisplayName,
		Role:        role,
		Bio:         input.Bio,
		Avatar:      input.Avatar,
		IsActive:    true,
		LastLoginAt: &now,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(identity dto.Identity, input dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(id string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *userService) GetBySubject(subjectID string) (*models.User, error) {
	user, err := s.users.FindBySubject(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *userService) ListCreators(page, limit int) ([]models.User, int64, error) {
	return s.users.ListCreators(page, limit)
}

// UpdateRole switches the caller between creator and consumer.
func (s *userService) UpdateRole(identity dto.Identity, role string) (*models.User, error) {
	if role != models.RoleCreator && role != models.RoleConsumer {
		return nil, fmt.Errorf("%w: role must be creator or consumer", ErrValidation)
	}
	user, err := s.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return user, nil
}

// Stats recomputes the caller's engagement counters from source tables
// and writes them back so the denormalized columns self-heal.
func (s *userService) Stats(identity dto.Identity) (*dto.UserStatsResponse, error) {
	user, err := s.GetOrCreate(identity)
	if err != nil {
		return nil, err
	}

	photoCount, totalViews, err := s.photos.CreatorStats(context.Background(), user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute photo stats: %w", err)
	}
	commentCount, err := s.comments.CountByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	ratingCount, err := s.ratings.CountByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}
	totalRatings, err := s.ratings.CountForCreator(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count received ratings: %w", err)
	}

	if err := s.users.UpdateStats(user.ID, photoCount, totalViews, commentCount, ratingCount); err != nil {
		return nil, fmt.Errorf("failed to store stats: %w", err)
	}

	return &dto.UserStatsResponse{
		Role:         user.Role,
		PhotoCount:   photoCount,
		TotalViews:   totalViews,
		TotalRatings: totalRatings,
		CommentCount: commentCount,
		RatingCount:  ratingCount,
		MemberSince:  user.CreatedAt,
		LastLogin:    user.LastLoginAt,
	}, nil
}
