package service

import (
	"context"

	"pinfood/internal/models"
)

// Function-field repository stubs. Unset fields return zero values so each
// test only wires what it asserts on.

type stubUserRepo struct {
	getByIDFn  func(ctx context.Context, id uint) (*models.User, error)
	getByIDsFn func(ctx context.Context, ids []uint) (map[uint]models.User, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	if s.getByIDsFn != nil {
		return s.getByIDsFn(ctx, ids)
	}
	return map[uint]models.User{}, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id uint) error           { return nil }

type stubRestaurantRepo struct {
	getByIDFn  func(ctx context.Context, id uint) (*models.Restaurant, error)
	getByIDsFn func(ctx context.Context, ids []uint) (map[uint]models.Restaurant, error)
	updateFn   func(ctx context.Context, restaurant *models.Restaurant) error
	searchFn   func(ctx context.Context, query string) ([]models.Restaurant, error)
}

func (s *stubRestaurantRepo) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Restaurant", id)
}

func (s *stubRestaurantRepo) GetByIDs(ctx context.Context, ids []uint) (map[uint]models.Restaurant, error) {
	if s.getByIDsFn != nil {
		return s.getByIDsFn(ctx, ids)
	}
	return map[uint]models.Restaurant{}, nil
}

func (s *stubRestaurantRepo) GetByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	return nil, nil
}
func (s *stubRestaurantRepo) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return nil
}

func (s *stubRestaurantRepo) Update(ctx context.Context, restaurant *models.Restaurant) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, restaurant)
	}
	return nil
}

func (s *stubRestaurantRepo) Search(ctx context.Context, query string) ([]models.Restaurant, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query)
	}
	return nil, nil
}

type stubPostRepo struct {
	createFn           func(ctx context.Context, post *models.Post) error
	getByIDFn          func(ctx context.Context, id uint) (*models.Post, error)
	listFn             func(ctx context.Context, limit, offset int) ([]models.Post, error)
	listByAuthorFn     func(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	listByRestaurantFn func(ctx context.Context, restaurantID uint, limit, offset int) ([]models.Post, error)
	listByIDsFn        func(ctx context.Context, ids []uint) ([]models.Post, error)
	deleteFn           func(ctx context.Context, id uint) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (s *stubPostRepo) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubPostRepo) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	if s.listByAuthorFn != nil {
		return s.listByAuthorFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (s *stubPostRepo) ListByRestaurant(ctx context.Context, restaurantID uint, limit, offset int) ([]models.Post, error) {
	if s.listByRestaurantFn != nil {
		return s.listByRestaurantFn(ctx, restaurantID, limit, offset)
	}
	return nil, nil
}

func (s *stubPostRepo) ListByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	if s.listByIDsFn != nil {
		return s.listByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (s *stubPostRepo) CountByAuthor(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

func (s *stubPostRepo) CountByRestaurant(ctx context.Context, restaurantID uint) (int64, error) {
	return 0, nil
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubCommentRepo struct {
	createFn         func(ctx context.Context, comment *models.Comment) error
	getByIDFn        func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn     func(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error)
	countByPostIDsFn func(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	deleteFn         func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("Comment", id)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID, limit, offset)
	}
	return nil, nil
}

func (s *stubCommentRepo) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	if s.countByPostIDsFn != nil {
		return s.countByPostIDsFn(ctx, postIDs)
	}
	return map[uint]int64{}, nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubLikeRepo struct {
	createFn              func(ctx context.Context, userID, postID uint) error
	deleteFn              func(ctx context.Context, userID, postID uint) (bool, error)
	countByPostIDsFn      func(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	listPostIDsForUserFn  func(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	countReceivedByUserFn func(ctx context.Context, userID uint) (int64, error)
}

func (s *stubLikeRepo) Create(ctx context.Context, userID, postID uint) error {
	if s.createFn != nil {
		return s.createFn(ctx, userID, postID)
	}
	return nil
}

func (s *stubLikeRepo) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *stubLikeRepo) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	if s.countByPostIDsFn != nil {
		return s.countByPostIDsFn(ctx, postIDs)
	}
	return map[uint]int64{}, nil
}

func (s *stubLikeRepo) ListPostIDsForUser(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	if s.listPostIDsForUserFn != nil {
		return s.listPostIDsForUserFn(ctx, userID, postIDs)
	}
	return map[uint]bool{}, nil
}

func (s *stubLikeRepo) CountReceivedByUser(ctx context.Context, userID uint) (int64, error) {
	if s.countReceivedByUserFn != nil {
		return s.countReceivedByUserFn(ctx, userID)
	}
	return 0, nil
}

type stubSavedPostRepo struct {
	existsFn             func(ctx context.Context, userID, postID uint) (bool, error)
	createFn             func(ctx context.Context, userID, postID uint) error
	deleteFn             func(ctx context.Context, userID, postID uint) (bool, error)
	listPostIDsByUserFn  func(ctx context.Context, userID uint, limit, offset int) ([]uint, error)
	listPostIDsForUserFn func(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

func (s *stubSavedPostRepo) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *stubSavedPostRepo) Create(ctx context.Context, userID, postID uint) error {
	if s.createFn != nil {
		return s.createFn(ctx, userID, postID)
	}
	return nil
}

func (s *stubSavedPostRepo) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *stubSavedPostRepo) ListPostIDsByUser(ctx context.Context, userID uint, limit, offset int) ([]uint, error) {
	if s.listPostIDsByUserFn != nil {
		return s.listPostIDsByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (s *stubSavedPostRepo) ListPostIDsForUser(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	if s.listPostIDsForUserFn != nil {
		return s.listPostIDsForUserFn(ctx, userID, postIDs)
	}
	return map[uint]bool{}, nil
}
