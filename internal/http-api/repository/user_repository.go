package repository

import (
	"photostack/internal/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindBySubject(subjectID string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	ListCreators(page, limit int) ([]models.User, int64, error)
	AdjustPhotoCount(id string, delta int64) error
	AdjustCommentCount(id string, delta int64) error
	AdjustRatingCount(id string, delta int64) error
	UpdateStats(id string, photoCount, totalViews, commentCount, ratingCount int64) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	// return nil on error so callers never see a zero-value user
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindBySubject(subjectID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("subject_id = ?", subjectID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCreators returns active creators ordered by photo count
func (r *userRepository) ListCreators(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	q := r.db.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleCreator, true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("role = ? AND is_active = ?", models.RoleCreator, true).
		Order("photo_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) AdjustPhotoCount(id string, delta int64) error {
	return r.adjustCount(id, "photo_count", delta)
}

func (r *userRepository) AdjustCommentCount(id string, delta int64) error {
	return r.adjustCount(id, "comment_count", delta)
}

func (r *userRepository) AdjustRatingCount(id string, delta int64) error {
	return r.adjustCount(id, "rating_count", delta)
}

// adjustCount applies a relative increment; GREATEST keeps counts from
// going negative when decrements race.
func (r *userRepository) adjustCount(id, column string, delta int64) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta)).Error
}

// UpdateStats overwrites the denormalized engagement counters in one write
func (r *userRepository) UpdateStats(id string, photoCount, totalViews, commentCount, ratingCount int64) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"photo_count":   photoCount,
			"total_views":   totalViews,
			"comment_count": commentCount,
			"rating_count":  ratingCount,
		}).Error
}
