// Command main runs the database seeder for PinFood.
package main

import (
	"flag"
	"log"

	"pinfood/internal/config"
	"pinfood/internal/database"
	"pinfood/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numRestaurants := flag.Int("restaurants", 15, "Number of restaurant accounts to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (fast, dev only)")
	maxDays := flag.Int("max-days", 90, "Spread post timestamps over this many days")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d restaurants, %d posts, clean=%v\n",
		*numUsers, *numRestaurants, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(db, seed.Options{
		NumUsers:       *numUsers,
		NumRestaurants: *numRestaurants,
		NumPosts:       *numPosts,
		ShouldClean:    *shouldClean,
		SkipBcrypt:     *skipBcrypt,
		MaxDays:        *maxDays,
	})

	if err := seeder.Seed(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All seeded accounts have the password: password123")
}
