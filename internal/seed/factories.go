// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pinfood/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		DisplayName:       gofakeit.Name(),
		Email:             fmt.Sprintf("%s%d@example.com", gofakeit.Username(), gofakeit.Number(100, 999)),
		Description:       gofakeit.Sentence(10),
		ProfilePictureURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateRestaurant constructs and persists a sample `models.Restaurant`.
func (f *Factory) CreateRestaurant(overrides ...func(*models.Restaurant)) (*models.Restaurant, error) {
	name := restaurantName(f.rng)
	restaurant := &models.Restaurant{
		Name:              name,
		Email:             fmt.Sprintf("contact-%s@example.com", gofakeit.UUID()[:8]),
		Location:          fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City()),
		Description:       gofakeit.Sentence(12),
		ProfilePictureURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		restaurant.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		restaurant.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(restaurant)
	}

	if err := f.db.Create(restaurant).Error; err != nil {
		return nil, err
	}
	return restaurant, nil
}

// BuildPost constructs a post struct with realistic food content but does not
// persist it. Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content: postContent(f.rng),
		UserID:  user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	// Most food posts carry a photo.
	if f.rng.Float32() < 0.7 {
		url := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		post.ImageURL = &url
	}

	// Some posts carry a geotag.
	if f.rng.Float32() < 0.5 {
		lat := gofakeit.Latitude()
		lng := gofakeit.Longitude()
		post.LocationLat = &lat
		post.LocationLng = &lng
		post.LocationName = gofakeit.City()
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	batchSize := f.opts.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	if err := f.db.CreateInBatches(&posts, batchSize).Error; err != nil {
		return err
	}
	log.Printf("CreatePostsBatch: %d posts", len(posts))
	return nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: commentContent(f.rng),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateSave persists a bookmark of `post` by `user`.
func (f *Factory) CreateSave(user *models.User, post *models.Post) error {
	saved := &models.SavedPost{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(saved).Error
}

var restaurantStyles = []string{
	"Taquería", "Trattoria", "Bistro", "Izakaya", "Brasserie", "Cantina",
	"Osteria", "Ramen-ya", "Parrilla", "Mesón", "Diner", "Deli",
}

func restaurantName(r *rand.Rand) string {
	style := restaurantStyles[r.Intn(len(restaurantStyles))]
	return fmt.Sprintf("%s %s", style, gofakeit.LastName())
}

var postTemplates = []string{
	"Tried the %s today. %s",
	"Finally got around to making %s at home. %s",
	"Best %s I've had in a long time. %s",
	"Weekend brunch: %s. %s",
	"You have to try the %s here. %s",
}

func postContent(r *rand.Rand) string {
	dish := gofakeit.Dinner()
	if r.Intn(2) == 0 {
		dish = gofakeit.Lunch()
	}
	template := postTemplates[r.Intn(len(postTemplates))]
	return fmt.Sprintf(template, dish, gofakeit.Sentence(8))
}

var commentTemplates = []string{
	"Looks amazing!",
	"Adding this to my list.",
	"Where is this?",
	"Made my mouth water.",
	"How was the service?",
}

func commentContent(r *rand.Rand) string {
	if r.Intn(3) == 0 {
		return commentTemplates[r.Intn(len(commentTemplates))]
	}
	return gofakeit.Sentence(8)
}
