package repository

import (
	"context"
	"time"

	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/models"

	"gorm.io/gorm"
)

// PhotoRepo defines data access for photos.
type PhotoRepo interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id int64) (*models.Photo, error)
	Update(ctx context.Context, photo *models.Photo) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters dto.PhotoListFilters, page, limit int) ([]models.Photo, int64, error)
	Search(ctx context.Context, filters dto.PhotoSearchFilters, page, limit int) ([]models.Photo, int64, error)
	ListByCreator(ctx context.Context, creatorID string, page, limit int) ([]models.Photo, int64, error)
	Trending(ctx context.Context, since time.Time, limit int) ([]models.Photo, error)
	IncrementViewCount(ctx context.Context, id int64) error
	RefreshRatingAggregates(ctx context.Context, id int64) error
	AdjustCommentCount(ctx context.Context, id int64, delta int64) error
	CreatorStats(ctx context.Context, creatorID string) (photoCount, totalViews int64, err error)
}

// GormPhotoRepo implements PhotoRepo using GORM.
type GormPhotoRepo struct {
	db *gorm.DB
}

func NewGormPhotoRepo(db *gorm.DB) *GormPhotoRepo {
	return &GormPhotoRepo{db: db}
}

func (r *GormPhotoRepo) Create(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *GormPhotoRepo) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).Preload("Creator").First(&photo, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *GormPhotoRepo) Update(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Save(photo).Error
}

// Delete removes the photo together with its comments and ratings in one
// transaction so engagement rows never outlive their photo.
func (r *GormPhotoRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, "id = ?", id).Error
	})
}

func (r *GormPhotoRepo) List(ctx context.Context, filters dto.PhotoListFilters, page, limit int) ([]models.Photo, int64, error) {
	var photos []models.Photo
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Photo{})
	if filters.CreatorID != "" {
		query = query.Where("creator_id = ?", filters.CreatorID)
	}
	if filters.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filters.Location+"%")
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR caption ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch filters.Sort {
	case "rating":
		order = "average_rating DESC, rating_count DESC"
	case "views":
		order = "view_count DESC"
	case "oldest":
		order = "created_at ASC"
	}

	offset := (page - 1) * limit
	err := query.Preload("Creator").
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

// Search matches free text against title, caption, location and the
// JSON-serialized tags and people columns.
func (r *GormPhotoRepo) Search(ctx context.Context, filters dto.PhotoSearchFilters, page, limit int) ([]models.Photo, int64, error) {
	var photos []models.Photo
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Photo{})
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where(
			"title ILIKE ? OR caption ILIKE ? OR location ILIKE ? OR ai_description ILIKE ? OR ai_tags::text ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	for _, tag := range filters.Tags {
		query = query.Where("ai_tags::text ILIKE ?", "%"+tag+"%")
	}
	if filters.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filters.Location+"%")
	}
	for _, person := range filters.People {
		query = query.Where("people::text ILIKE ?", "%"+person+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Creator").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

func (r *GormPhotoRepo) ListByCreator(ctx context.Context, creatorID string, page, limit int) ([]models.Photo, int64, error) {
	return r.List(ctx, dto.PhotoListFilters{CreatorID: creatorID}, page, limit)
}

// Trending ranks recent photos by a blend of views, ratings and comments.
func (r *GormPhotoRepo) Trending(ctx context.Context, since time.Time, limit int) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("created_at >= ?", since).
		Order("(view_count + rating_count * 5 + comment_count * 3) DESC, created_at DESC").
		Limit(limit).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *GormPhotoRepo) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// RefreshRatingAggregates recomputes average_rating and rating_count from the
// ratings table in a single statement, so concurrent upserts cannot leave the
// aggregate out of sync with the rating rows.
func (r *GormPhotoRepo) RefreshRatingAggregates(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE photos SET
			average_rating = COALESCE((SELECT AVG(value) FROM ratings WHERE photo_id = ?), 0),
			rating_count   = (SELECT COUNT(*) FROM ratings WHERE photo_id = ?)
		WHERE id = ?`, id, id, id).Error
}

func (r *GormPhotoRepo) AdjustCommentCount(ctx context.Context, id int64, delta int64) error {
	return r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count + ?, 0)", delta)).Error
}

// CreatorStats sums a creator's photo and view totals for profile stats.
func (r *GormPhotoRepo) CreatorStats(ctx context.Context, creatorID string) (int64, int64, error) {
	var row struct {
		PhotoCount int64
		TotalViews int64
	}
	err := r.db.WithContext(ctx).Model(&models.Photo{}).
		Select("COUNT(*) AS photo_count, COALESCE(SUM(view_count), 0) AS total_views").
		Where("creator_id = ?", creatorID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.PhotoCount, row.TotalViews, nil
}
