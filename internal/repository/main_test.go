package repository

import (
	"fmt"
	"testing"

	"pinfood/internal/database"
	"pinfood/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test so cases stay isolated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := models.User{
		DisplayName: name,
		Email:       fmt.Sprintf("%s@example.com", name),
		Password:    "hashed-password",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()

	restaurant := models.Restaurant{
		Name:     name,
		Email:    fmt.Sprintf("%s@restaurant.example.com", name),
		Password: "hashed-password",
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return &restaurant
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()

	post := models.Post{UserID: userID, Content: content}
	require.NoError(t, db.Create(&post).Error)
	return &post
}
