package service

import (
	"context"
	"strings"

	"pinfood/internal/cache"
	"pinfood/internal/models"
	"pinfood/internal/repository"
)

// RestaurantService handles restaurant profiles and search.
type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

// NewRestaurantService returns a new RestaurantService.
func NewRestaurantService(restaurantRepo repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurantRepo: restaurantRepo}
}

// GetProfile returns a restaurant's public profile, cache-aside. The password
// is scrubbed before the profile ever reaches the cache.
func (s *RestaurantService) GetProfile(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := cache.Aside(ctx, cache.RestaurantKey(id), &restaurant, cache.RestaurantTTL, func() error {
		loaded, err := s.restaurantRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		loaded.Password = ""
		restaurant = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// UpdateRestaurantInput carries the editable restaurant fields. Nil pointers
// leave the stored value untouched.
type UpdateRestaurantInput struct {
	Name              *string
	Location          *string
	Description       *string
	ProfilePictureURL *string
}

// UpdateProfile edits the caller's own restaurant profile.
func (s *RestaurantService) UpdateProfile(ctx context.Context, id uint, in UpdateRestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		restaurant.Name = name
	}
	if in.Location != nil {
		restaurant.Location = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		restaurant.Description = strings.TrimSpace(*in.Description)
	}
	if in.ProfilePictureURL != nil {
		restaurant.ProfilePictureURL = strings.TrimSpace(*in.ProfilePictureURL)
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	cache.InvalidateRestaurant(ctx, id)
	restaurant.Password = ""
	return restaurant, nil
}

// Search finds restaurants by name for the tag picker.
func (s *RestaurantService) Search(ctx context.Context, query string) ([]models.Restaurant, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	restaurants, err := s.restaurantRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		restaurants[i].Password = ""
	}
	return restaurants, nil
}
