package domain

import (
	"fmt"
)

const (
	MealTypeBreakfast       = "Breakfast"
	MealTypeSecondBreakfast = "Second Breakfast"
	MealTypeLunch           = "Lunch"
	MealTypeSnack           = "Snack"
	MealTypeDinner          = "Dinner"

	MinMenuDays = 1
	MaxMenuDays = 31

	CopyNamePrefix = "Copy of "
)

var MealTypes = []string{
	MealTypeBreakfast,
	MealTypeSecondBreakfast,
	MealTypeLunch,
	MealTypeSnack,
	MealTypeDinner,
}

func IsValidMealType(mealType string) bool {
	for _, t := range MealTypes {
		if t == mealType {
			return true
		}
	}
	return false
}

var (
	MessageSuccessCreateMenu   = "menu created successfully"
	MessageSuccessGetMenus     = "success get menus"
	MessageSuccessGetMenuMeals = "success get menu meals"
	MessageSuccessUpdateMeal   = "meal updated successfully"
	MessageSuccessDeleteMenu   = "menu deleted successfully"
	MessageSuccessExtendMenu   = "menu extended successfully"
	MessageSuccessShareMenu    = "menu shared successfully"
	MessageSuccessUnshareMenu  = "menu unshared successfully"
	MessageSuccessShareStatus  = "success get share status"
	MessageSuccessGetShared    = "success get shared menu"
	MessageSuccessCopyShared   = "shared menu copied successfully"
	MessageSuccessShareEmail   = "share link sent successfully"

	MessageFailedCreateMenu   = "failed to create menu"
	MessageFailedGetMenus     = "failed to get menus"
	MessageFailedGetMenuMeals = "failed to get menu meals"
	MessageFailedUpdateMeal   = "failed to update meal"
	MessageFailedDeleteMenu   = "failed to delete menu"
	MessageFailedExtendMenu   = "failed to extend menu"
	MessageFailedShareMenu    = "failed to share menu"
	MessageFailedUnshareMenu  = "failed to unshare menu"
	MessageFailedShareStatus  = "failed to get share status"
	MessageFailedGetShared    = "failed to get shared menu"
	MessageFailedCopyShared   = "failed to copy shared menu"
	MessageFailedShareEmail   = "failed to send share link"

	ErrMenuNotFound        = fmt.Errorf("%w: menu not found", ErrNotFound)
	ErrSharedMenuNotFound  = fmt.Errorf("%w: shared menu not found", ErrNotFound)
	ErrMenuNameRequired    = fmt.Errorf("%w: menu name is required", ErrValidation)
	ErrInvalidDayCount     = fmt.Errorf("%w: day count must be between %d and %d", ErrValidation, MinMenuDays, MaxMenuDays)
	ErrInvalidMealType     = fmt.Errorf("%w: invalid meal type", ErrValidation)
	ErrDayIndexOutOfRange  = fmt.Errorf("%w: day index out of range", ErrValidation)
	ErrInvalidExtension    = fmt.Errorf("%w: additional days must be positive", ErrValidation)
	ErrShareTokenMissing   = fmt.Errorf("%w: share token is required", ErrValidation)
	ErrShareMailNotEnabled = fmt.Errorf("%w: share mail is not configured", ErrUpstream)
)

type (
	CreateMenuRequest struct {
		Name     string `json:"name" validate:"required,max=255"`
		DayCount int    `json:"number" validate:"required,min=1,max=31"`
	}

	MenuSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		DayCount int    `json:"dayCount"`
	}

	MealSlot struct {
		RecipeID string `json:"recipeId"`
		DayIndex int    `json:"dayIndex"`
		MealType string `json:"mealType"`
	}

	UpdateMealRequest struct {
		MenuID   string  `json:"menuId" validate:"required,uuid"`
		DayIndex *int    `json:"dayIndex" validate:"required,min=0"`
		MealType string  `json:"mealType" validate:"required,mealtype"`
		RecipeID *string `json:"recipeId"`
	}

	ExtendMenuRequest struct {
		MenuID         string `json:"menuId" validate:"required,uuid"`
		AdditionalDays int    `json:"additionalDays" validate:"required,min=1"`
	}

	ExtendMenuResponse struct {
		DayCount int `json:"dayCount"`
	}

	MenuIDRequest struct {
		MenuID string `json:"menuId" validate:"required,uuid"`
	}

	ShareMenuResponse struct {
		Token string `json:"token"`
	}

	ShareStatusResponse struct {
		Name     string  `json:"name"`
		DayCount int     `json:"dayCount"`
		Token    *string `json:"token"`
	}

	SharedMenuResponse struct {
		Menu  MenuSummary `json:"menu"`
		Meals []MealSlot  `json:"meals"`
	}

	CopySharedRequest struct {
		Token string `json:"token" validate:"required"`
	}

	CopySharedResponse struct {
		MenuID string `json:"menuId"`
	}

	ShareEmailRequest struct {
		MenuID string `json:"menuId" validate:"required,uuid"`
		Email  string `json:"email" validate:"required,email"`
	}
)
