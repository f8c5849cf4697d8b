package repository

import (
	"context"
	"errors"

	"pinfood/internal/cache"
	"pinfood/internal/models"

	"gorm.io/gorm"
)

const restaurantSearchLimit = 20

// RestaurantRepository defines persistence operations for restaurant accounts.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]models.Restaurant, error)
	GetByEmail(ctx context.Context, email string) (*models.Restaurant, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Search(ctx context.Context, query string) ([]models.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository returns a new RestaurantRepository implementation.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

// GetByID always reads the database so the password hash survives the
// round-trip. The scrubbed profile cache lives in the service layer.
func (r *restaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := readDB(r.db).WithContext(ctx).First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Restaurant", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]models.Restaurant, error) {
	result := make(map[uint]models.Restaurant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var restaurants []models.Restaurant
	if err := readDB(r.db).WithContext(ctx).Where("id IN ?", ids).Find(&restaurants).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, rest := range restaurants {
		result[rest.ID] = rest
	}
	return result, nil
}

func (r *restaurantRepository) GetByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := readDB(r.db).WithContext(ctx).Where("email = ?", email).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &restaurant, nil
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if err := r.db.WithContext(ctx).Create(restaurant).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Restaurant already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update persists the editable profile columns only, never credentials.
func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	updates := map[string]any{
		"name":                restaurant.Name,
		"location":            restaurant.Location,
		"description":         restaurant.Description,
		"profile_picture_url": restaurant.ProfilePictureURL,
	}
	if err := r.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("id = ?", restaurant.ID).Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRestaurant(ctx, restaurant.ID)
	return nil
}

// Search matches restaurant names case-insensitively. Results are capped and
// ordered by name so the same query always paints the same list.
func (r *restaurantRepository) Search(ctx context.Context, query string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := readDB(r.db).WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("name ASC").
		Limit(restaurantSearchLimit).
		Find(&restaurants).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return restaurants, nil
}
