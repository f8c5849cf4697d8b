package server

import (
	"pinfood/internal/models"
	"pinfood/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchRestaurants handles GET /api/restaurants/search
func (s *Server) SearchRestaurants(c *fiber.Ctx) error {
	results, err := s.restaurantService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"restaurants": results})
}

// GetRestaurant handles GET /api/restaurants/:id
func (s *Server) GetRestaurant(c *fiber.Ctx) error {
	restaurantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	restaurant, err := s.restaurantService.GetProfile(c.Context(), restaurantID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(restaurant)
}

// GetRestaurantPosts handles GET /api/restaurants/:id/posts
func (s *Server) GetRestaurantPosts(c *fiber.Ctx) error {
	restaurantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	views, total, err := s.feedService.GetRestaurantPosts(c.Context(), viewerID, restaurantID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  views,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetMyRestaurant handles GET /api/restaurants/me
func (s *Server) GetMyRestaurant(c *fiber.Ctx) error {
	restaurant, err := s.restaurantService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(restaurant)
}

// UpdateMyRestaurant handles PUT /api/restaurants/me
func (s *Server) UpdateMyRestaurant(c *fiber.Ctx) error {
	var req struct {
		Name              *string `json:"name"`
		Location          *string `json:"location"`
		Description       *string `json:"description"`
		ProfilePictureURL *string `json:"profile_picture_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	restaurant, err := s.restaurantService.UpdateProfile(c.Context(), currentUserID(c), service.UpdateRestaurantInput{
		Name:              req.Name,
		Location:          req.Location,
		Description:       req.Description,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(restaurant)
}

// GetMyRestaurantPosts handles GET /api/restaurants/me/posts
func (s *Server) GetMyRestaurantPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	views, total, err := s.feedService.GetRestaurantPosts(c.Context(), 0, currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  views,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}
