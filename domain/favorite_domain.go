package domain

import "fmt"

var (
	MessageSuccessGetFavorites   = "success get favorites"
	MessageSuccessCheckFavorite  = "success check favorite"
	MessageSuccessAddFavorite    = "recipe added to favorites"
	MessageSuccessRemoveFavorite = "recipe removed from favorites"

	MessageFailedGetFavorites   = "failed to get favorites"
	MessageFailedCheckFavorite  = "failed to check favorite"
	MessageFailedAddFavorite    = "failed to add favorite"
	MessageFailedRemoveFavorite = "failed to remove favorite"

	ErrRecipeIDRequired = fmt.Errorf("%w: recipe id is required", ErrValidation)
)

type (
	FavoriteRequest struct {
		RecipeID string `json:"recipeId" validate:"required,max=64"`
	}

	FavoriteListResponse struct {
		RecipeIDs []string `json:"recipeIds"`
	}

	FavoriteCheckResponse struct {
		IsFavorite bool `json:"isFavorite"`
	}
)
