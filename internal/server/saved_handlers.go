package server

import (
	"pinfood/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSave handles POST /api/posts/:id/save
func (s *Server) ToggleSave(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	saved, err := s.engagementService.ToggleSave(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"saved": saved})
}

// UnsavePost handles DELETE /api/posts/:id/save
func (s *Server) UnsavePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.Unsave(c.Context(), currentUserID(c), postID); err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"saved": false})
}

// CheckSaved handles GET /api/posts/:id/saved. Clients use it to render the
// bookmark state without fetching the whole saved list.
func (s *Server) CheckSaved(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	saved, err := s.engagementService.IsSaved(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{"saved": saved})
}

// GetSavedPosts handles GET /api/saved
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	views, err := s.feedService.GetSavedPosts(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  views,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetUserSavedPosts handles GET /api/users/:id/saved. Saved lists are public
// in the app, mirroring the profile screen.
func (s *Server) GetUserSavedPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	views, err := s.feedService.GetSavedPosts(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  views,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}
