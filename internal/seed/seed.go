package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pinfood/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumRestaurants int
	NumPosts       int
	ShouldClean    bool
	// SkipBcrypt stores plaintext passwords. Only for throwaway dev databases
	// where hashing thousands of accounts is too slow.
	SkipBcrypt bool
	// MaxDays bounds how far back generated post timestamps reach.
	MaxDays   int
	BatchSize int
}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Seeder{
		db:      db,
		opts:    opts,
		factory: NewFactory(db, opts),
		rng:     rng,
	}
}

// Seed runs the full pipeline: accounts, posts, then engagement.
func (s *Seeder) Seed() error {
	log.Printf("Seeding %d users, %d restaurants, %d posts...",
		s.opts.NumUsers, s.opts.NumRestaurants, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, restaurants, err := s.SeedAccounts(s.opts.NumUsers, s.opts.NumRestaurants)
	if err != nil {
		return fmt.Errorf("failed to create accounts: %w", err)
	}
	log.Printf("created %d users and %d restaurants", len(users), len(restaurants))

	posts, err := s.SeedPosts(users, restaurants, s.opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := s.SeedEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// ClearAll removes all seeded data. Tables are truncated children-first so
// the statement also works on databases without cascading truncate.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE saved_posts, likes, comments, posts, restaurants, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedAccounts creates user and restaurant accounts. A few fixed accounts are
// always present so developers have known logins.
func (s *Seeder) SeedAccounts(numUsers, numRestaurants int) ([]*models.User, []*models.Restaurant, error) {
	users := make([]*models.User, 0, numUsers)

	// Known dev accounts. All seeded accounts share the password "password123".
	if numUsers >= 2 {
		for _, name := range []string{"Demo User", "Test Account"} {
			user, err := s.factory.CreateUser(func(u *models.User) {
				u.DisplayName = name
				u.Email = fmt.Sprintf("%s@pinfood.dev", slugify(name))
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}

	restaurants := make([]*models.Restaurant, 0, numRestaurants)
	for i := 0; i < numRestaurants; i++ {
		restaurant, err := s.factory.CreateRestaurant()
		if err != nil {
			log.Printf("failed to create restaurant: %v", err)
			continue
		}
		restaurants = append(restaurants, restaurant)
	}

	return users, restaurants, nil
}

// SeedPosts creates posts spread over the configured time window. Roughly
// forty percent tag one of the seeded restaurants.
func (s *Seeder) SeedPosts(users []*models.User, restaurants []*models.Restaurant, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[s.rng.Intn(len(users))]
		post := s.factory.BuildPost(user, func(p *models.Post) {
			if len(restaurants) > 0 && s.rng.Float32() < 0.4 {
				restaurant := restaurants[s.rng.Intn(len(restaurants))]
				p.RestaurantID = &restaurant.ID
				if p.LocationName == "" {
					p.LocationName = restaurant.Name
				}
			}
		})
		posts = append(posts, post)
	}

	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SeedEngagement sprinkles likes, saves, and comments over the posts. Each
// (user, post) pair is used at most once per relation, honoring the unique
// indexes.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	var likes, saves, comments int
	for _, post := range posts {
		for _, user := range s.sampleUsers(users, s.rng.Intn(len(users)/2+1)) {
			if err := s.factory.CreateLike(user, post); err != nil {
				return err
			}
			likes++
		}
		for _, user := range s.sampleUsers(users, s.rng.Intn(3)) {
			if err := s.factory.CreateSave(user, post); err != nil {
				return err
			}
			saves++
		}
		for _, user := range s.sampleUsers(users, s.rng.Intn(4)) {
			if _, err := s.factory.CreateComment(user, post); err != nil {
				return err
			}
			comments++
		}
	}

	log.Printf("created %d likes, %d saves, %d comments", likes, saves, comments)
	return nil
}

// sampleUsers returns up to n distinct users.
func (s *Seeder) sampleUsers(users []*models.User, n int) []*models.User {
	if n >= len(users) {
		n = len(users)
	}
	idx := s.rng.Perm(len(users))[:n]
	sampled := make([]*models.User, 0, n)
	for _, i := range idx {
		sampled = append(sampled, users[i])
	}
	return sampled
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
