package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteRecipe marks an external catalog recipe as a favorite of a user.
type FavoriteRecipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe,priority:1" json:"user_id"`
	RecipeID  string    `gorm:"not null;uniqueIndex:idx_favorite_user_recipe,priority:2" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID"`
}

func (f *FavoriteRecipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
