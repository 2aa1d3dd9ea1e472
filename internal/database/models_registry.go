package database

import "agriconnect/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Forum{},
		&models.ForumMembership{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
	}
}
