package menu

import (
	"Meal-Planner-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	MenuRepository interface {
		Transaction(ctx context.Context, fn func(repo MenuRepository) error) error

		CreateMenu(ctx context.Context, plan *entities.MealPlan) error
		GetMenusByUser(ctx context.Context, userID uuid.UUID) ([]*entities.MealPlan, error)
		GetMenuByOwner(ctx context.Context, menuID, userID uuid.UUID, forUpdate bool) (*entities.MealPlan, error)
		GetMenuByShareToken(ctx context.Context, token string) (*entities.MealPlan, error)
		IncrementDayCount(ctx context.Context, menuID, userID uuid.UUID, additionalDays int) (bool, error)
		SetShareToken(ctx context.Context, menuID, userID uuid.UUID, token *string) (bool, error)
		DeleteMenu(ctx context.Context, menuID uuid.UUID) error

		GetSlots(ctx context.Context, menuID uuid.UUID) ([]*entities.MealSlot, error)
		UpsertSlot(ctx context.Context, slot *entities.MealSlot) error
		DeleteSlot(ctx context.Context, menuID uuid.UUID, dayIndex int, mealType string) error
		CreateSlots(ctx context.Context, slots []*entities.MealSlot) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// Transaction runs fn against a repository bound to one database transaction.
// The transaction commits when fn returns nil and rolls back on error or panic.
func (r *menuRepository) Transaction(ctx context.Context, fn func(repo MenuRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&menuRepository{db: tx})
	})
}

func (r *menuRepository) CreateMenu(ctx context.Context, plan *entities.MealPlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error
}

func (r *menuRepository) GetMenusByUser(ctx context.Context, userID uuid.UUID) ([]*entities.MealPlan, error) {
	var plans []*entities.MealPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Order("id asc").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *menuRepository) GetMenuByOwner(ctx context.Context, menuID, userID uuid.UUID, forUpdate bool) (*entities.MealPlan, error) {
	query := r.db.WithContext(ctx)
	// sqlite serialises writers and has no row locks
	if forUpdate && r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var plan entities.MealPlan
	if err := query.
		Where("id = ? AND user_id = ?", menuID, userID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *menuRepository) GetMenuByShareToken(ctx context.Context, token string) (*entities.MealPlan, error) {
	var plan entities.MealPlan
	if err := r.db.WithContext(ctx).
		Where("share_token = ?", token).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// IncrementDayCount adds to day_count in a single statement so concurrent extends never lose an update.
func (r *menuRepository) IncrementDayCount(ctx context.Context, menuID, userID uuid.UUID, additionalDays int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.MealPlan{}).
		Where("id = ? AND user_id = ?", menuID, userID).
		Update("day_count", gorm.Expr("day_count + ?", additionalDays))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *menuRepository) SetShareToken(ctx context.Context, menuID, userID uuid.UUID, token *string) (bool, error) {
	var value interface{}
	if token != nil {
		value = *token
	}

	result := r.db.WithContext(ctx).
		Model(&entities.MealPlan{}).
		Where("id = ? AND user_id = ?", menuID, userID).
		Update("share_token", value)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteMenu removes the slots before the plan itself.
func (r *menuRepository) DeleteMenu(ctx context.Context, menuID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("meal_plan_id = ?", menuID).
		Delete(&entities.MealSlot{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", menuID).
		Delete(&entities.MealPlan{}).Error
}

func (r *menuRepository) GetSlots(ctx context.Context, menuID uuid.UUID) ([]*entities.MealSlot, error) {
	var slots []*entities.MealSlot
	if err := r.db.WithContext(ctx).
		Where("meal_plan_id = ?", menuID).
		Order("day_index asc").
		Order("created_at asc").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *menuRepository) UpsertSlot(ctx context.Context, slot *entities.MealSlot) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "meal_plan_id"},
				{Name: "day_index"},
				{Name: "meal_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"recipe_id", "updated_at"}),
		}).
		Create(slot).Error
}

func (r *menuRepository) DeleteSlot(ctx context.Context, menuID uuid.UUID, dayIndex int, mealType string) error {
	return r.db.WithContext(ctx).
		Where("meal_plan_id = ? AND day_index = ? AND meal_type = ?", menuID, dayIndex, mealType).
		Delete(&entities.MealSlot{}).Error
}

func (r *menuRepository) CreateSlots(ctx context.Context, slots []*entities.MealSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(slots, 100).Error
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
