package server

import (
	"pinfood/internal/models"
	"pinfood/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	views, err := s.feedService.GetFeed(c.Context(), viewerID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  views,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	view, err := s.feedService.GetPost(c.Context(), viewerID, postID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(view)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content      string `json:"content"`
		ImageURL     string `json:"image_url"`
		RestaurantID *uint  `json:"restaurant_id"`
		Location     *struct {
			Lat  *float64 `json:"lat"`
			Lng  *float64 `json:"lng"`
			Name string   `json:"name"`
		} `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		UserID:       currentUserID(c),
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		RestaurantID: req.RestaurantID,
	}
	if req.Location != nil {
		in.LocationLat = req.Location.Lat
		in.LocationLng = req.Location.Lng
		in.LocationName = req.Location.Name
	}

	post, err := s.engagementService.CreatePost(c.Context(), in)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.engagementService.ToggleLike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.Unlike(c.Context(), currentUserID(c), postID); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"liked": false})
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	comments, err := s.feedService.GetComments(c.Context(), postID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.AddComment(c.Context(), currentUserID(c), postID, req.Content)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.DeleteComment(c.Context(), currentUserID(c), commentID); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
