package utils

import (
	"Meal-Planner-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordViolations(t *testing.T) {
	tests := []struct {
		password string
		want     []string
	}{
		{"abc", []string{RuleMinLength, RuleUppercase, RuleDigit, RuleSpecial}},
		{"abcdefgh", []string{RuleUppercase, RuleDigit, RuleSpecial}},
		{"Abcdefg1", []string{RuleSpecial}},
		{"Abcdef1!", []string{}},
		{"ABCDEFG1?", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordViolations(tt.password))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("123456789"))
	assert.True(t, IsValidPhone("12345678901"))
	assert.False(t, IsValidPhone("12345678"))
	assert.False(t, IsValidPhone("123456789012"))
	assert.False(t, IsValidPhone("12345678a"))
}

func TestValidateStruct_UsesWireNames(t *testing.T) {
	InitValidator()

	err := ValidateStruct(Validate, &domain.RegisterRequest{
		Email:       "not-an-email",
		Password:    "abc",
		Name:        "Ana",
		LastName:    "Lee",
		PhoneNumber: "1",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var fields domain.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, []string{"email"}, fields["email"])
	assert.Equal(t, []string{"phone"}, fields["phoneNumber"])
	assert.Len(t, fields["password"], 4)

	err = ValidateStruct(Validate, &domain.CreateMenuRequest{Name: "x", DayCount: 40})
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, []string{"max"}, fields["number"])
}

func TestValidateStruct_MealType(t *testing.T) {
	InitValidator()
	day := 0

	err := ValidateStruct(Validate, &domain.UpdateMealRequest{
		MenuID:   "6f1c1d8e-58a9-4a7c-9d59-5a3c8c3b1f00",
		DayIndex: &day,
		MealType: "Second Breakfast",
	})
	assert.NoError(t, err)

	err = ValidateStruct(Validate, &domain.UpdateMealRequest{
		MenuID:   "6f1c1d8e-58a9-4a7c-9d59-5a3c8c3b1f00",
		DayIndex: &day,
		MealType: "Elevenses",
	})
	var fields domain.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, []string{"mealtype"}, fields["mealType"])
}
