package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlan struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name       string    `gorm:"not null" json:"name"`
	DayCount   int       `gorm:"not null" json:"day_count"`
	ShareToken *string   `gorm:"uniqueIndex" json:"share_token,omitempty"`

	User  *User       `gorm:"foreignKey:UserID"`
	Slots []*MealSlot `gorm:"foreignKey:MealPlanID"`
	Timestamp
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// MealSlot holds the recipe chosen for one meal of one day. An absent row is an empty slot.
type MealSlot struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MealPlanID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_slot_address,priority:1" json:"meal_plan_id"`
	DayIndex   int       `gorm:"not null;uniqueIndex:idx_meal_slot_address,priority:2" json:"day_index"`
	MealType   string    `gorm:"not null;uniqueIndex:idx_meal_slot_address,priority:3" json:"meal_type"`
	RecipeID   string    `gorm:"not null" json:"recipe_id"`

	MealPlan *MealPlan `gorm:"foreignKey:MealPlanID"`
	Timestamp
}

func (MealSlot) TableName() string {
	return "meal_plans_recipes"
}

func (s *MealSlot) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
