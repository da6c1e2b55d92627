package database

import (
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/models"
)

// RunMigrations brings the schema up to date. Composite unique indexes on the
// association tables are part of the model tags and created here.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingList{},
		&models.Follow{},
	)
}
