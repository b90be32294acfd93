package favorite

import (
	"Meal-Planner-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FavoriteRepository interface {
		GetFavoriteRecipeIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
		IsFavorite(ctx context.Context, userID uuid.UUID, recipeID string) (bool, error)
		AddFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error
		RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) GetFavoriteRecipeIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	recipeIDs := make([]string, 0)
	if err := r.db.WithContext(ctx).
		Model(&entities.FavoriteRecipe{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("recipe_id", &recipeIDs).Error; err != nil {
		return nil, err
	}
	return recipeIDs, nil
}

func (r *favoriteRepository) IsFavorite(ctx context.Context, userID uuid.UUID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) AddFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error {
	// Check if already favorited
	var existing entities.FavoriteRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	favorite := entities.FavoriteRecipe{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}

	// a concurrent add of the same pair is absorbed by the unique index
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
}

func (r *favoriteRepository) RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.FavoriteRecipe{}).Error
}
