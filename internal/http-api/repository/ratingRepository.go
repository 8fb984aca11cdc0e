package repository

import (
	"photostack/internal/http-api/models"

	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating data operations.
type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	Delete(rating *models.Rating) error
	GetByUserAndPhoto(userID string, photoID int64) (*models.Rating, error)
	GetByPhoto(photoID int64) ([]models.Rating, error)
	CountByUser(userID string) (int64, error)
	CountForCreator(creatorID string) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

func (r *ratingRepository) Delete(rating *models.Rating) error {
	return r.db.Delete(rating).Error
}

func (r *ratingRepository) GetByUserAndPhoto(userID string, photoID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND photo_id = ?", userID, photoID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetByPhoto(photoID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("photo_id = ?", photoID).Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) CountByUser(userID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Rating{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// CountForCreator counts the ratings received across a creator's photos.
func (r *ratingRepository) CountForCreator(creatorID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Rating{}).
		Joins("JOIN photos ON photos.id = ratings.photo_id").
		Where("photos.creator_id = ?", creatorID).
		Count(&total).Error
	return total, err
}
