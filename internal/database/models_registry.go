package database

import "pinfood/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Restaurant{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
	}
}
