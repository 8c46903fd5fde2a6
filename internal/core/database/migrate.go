package database

import (
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

// Models lists every table the service owns, parents first.
func Models() []any {
	return []any{&domain.User{}, &domain.Category{}, &domain.Tag{}, &domain.Post{}}
}

// Migrate creates or alters tables, indexes and the post_tags join table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
