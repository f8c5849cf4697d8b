package repository

import (
	"context"

	"pinfood/internal/models"

	"gorm.io/gorm"
)

// SavedPostRepository defines persistence operations for saved posts.
type SavedPostRepository interface {
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Create(ctx context.Context, userID, postID uint) error
	Delete(ctx context.Context, userID, postID uint) (bool, error)
	ListPostIDsByUser(ctx context.Context, userID uint, limit, offset int) ([]uint, error)
	ListPostIDsForUser(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

type savedPostRepository struct {
	db *gorm.DB
}

// NewSavedPostRepository returns a new SavedPostRepository implementation.
func NewSavedPostRepository(db *gorm.DB) SavedPostRepository {
	return &savedPostRepository{db: db}
}

func (r *savedPostRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the save. The unique index backstops the caller's existence
// check under concurrent toggles.
func (r *savedPostRepository) Create(ctx context.Context, userID, postID uint) error {
	save := models.SavedPost{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&save).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Post already saved")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *savedPostRepository) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListPostIDsByUser returns the user's saved post IDs, most recently saved
// first.
func (r *savedPostRepository) ListPostIDsByUser(ctx context.Context, userID uint, limit, offset int) ([]uint, error) {
	var ids []uint
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ListPostIDsForUser reports which of the given posts the user has saved.
func (r *savedPostRepository) ListPostIDsForUser(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	saved := make(map[uint]bool, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return saved, nil
	}

	var ids []uint
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}
