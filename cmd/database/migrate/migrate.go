package migration

import (
	"Meal-Planner-Backend/entities"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Account{}); err != nil {
		return fmt.Errorf("migrating account table: %w", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrating user table: %w", err)
	}
	if err := db.AutoMigrate(&entities.MealPlan{}); err != nil {
		return fmt.Errorf("migrating meal plan table: %w", err)
	}
	if err := db.AutoMigrate(&entities.MealSlot{}); err != nil {
		return fmt.Errorf("migrating meal slot table: %w", err)
	}
	if err := db.AutoMigrate(&entities.FavoriteRecipe{}); err != nil {
		return fmt.Errorf("migrating favorite recipe table: %w", err)
	}

	log.Info("Database migration complete")
	return nil
}
