package domain

import (
	"fmt"
)

const (
	DefaultSearchResults = 10
	MaxSearchResults     = 50
	MaxBatchRecipes      = 50
)

var (
	MessageSuccessSearchRecipes   = "success search recipes"
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRandomRecipe = "success get random recipe"

	MessageFailedSearchRecipes   = "failed to search recipes"
	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRandomRecipe = "no recommendation available"

	ErrRecipeNotFound      = fmt.Errorf("%w: recipe not found", ErrNotFound)
	ErrRecipeIDsRequired   = fmt.Errorf("%w: at least one recipe id is required", ErrValidation)
	ErrTooManyRecipeIDs    = fmt.Errorf("%w: too many recipe ids", ErrValidation)
	ErrSearchQueryRequired = fmt.Errorf("%w: search query is required", ErrValidation)
	ErrRecipeProvider      = fmt.Errorf("%w: recipe provider request failed", ErrUpstream)
	ErrRecipeProviderAuth  = fmt.Errorf("%w: recipe provider authentication failed", ErrUpstream)
)

type (
	RecipeSearchRequest struct {
		Query      string `query:"query" validate:"required,max=200"`
		MaxResults int    `query:"max_results" validate:"omitempty,min=1,max=50"`
		PageNumber int    `query:"page_number" validate:"omitempty,min=0"`
	}

	RecipeSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url,omitempty"`
	}

	RecipeSearchResponse struct {
		Recipes      []RecipeSummary `json:"recipes"`
		TotalResults int             `json:"total_results"`
		PageNumber   int             `json:"page_number"`
		MaxResults   int             `json:"max_results"`
	}

	Recipe struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Ingredients  []string `json:"ingredients"`
		Instructions string   `json:"instructions"`
		ImageURL     string   `json:"image_url,omitempty"`
	}
)
