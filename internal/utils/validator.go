package utils

import (
	"Meal-Planner-Backend/domain"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const PasswordSpecialChars = "!@#$%^&*()-_=+[]{};:,.?/"

const (
	RuleMinLength = "min_length"
	RuleUppercase = "uppercase"
	RuleDigit     = "digit"
	RuleSpecial   = "special"
)

var (
	Validate      *validator.Validate
	validatorOnce sync.Once

	phonePattern = regexp.MustCompile(`^[0-9]{9,11}$`)
)

func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("mealtype", func(fl validator.FieldLevel) bool {
			return domain.IsValidMealType(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return len(PasswordViolations(fl.Field().String())) == 0
		})
		Validate = v
	})
}

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// PasswordViolations lists every complexity rule the password fails, in a fixed order.
func PasswordViolations(password string) []string {
	violations := make([]string, 0, 4)
	if len([]rune(password)) < 8 {
		violations = append(violations, RuleMinLength)
	}

	hasUpper, hasDigit, hasSpecial := false, false, false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsDigit(char):
			hasDigit = true
		case strings.ContainsRune(PasswordSpecialChars, char):
			hasSpecial = true
		}
	}
	if !hasUpper {
		violations = append(violations, RuleUppercase)
	}
	if !hasDigit {
		violations = append(violations, RuleDigit)
	}
	if !hasSpecial {
		violations = append(violations, RuleSpecial)
	}
	return violations
}

// ToFieldErrors converts validator output into per-field rule lists keyed by json name.
func ToFieldErrors(err error) domain.FieldErrors {
	fields := domain.FieldErrors{}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields.Add("request", "invalid")
		return fields
	}

	for _, fe := range validationErrors {
		name := fe.Field()
		if fe.Tag() == "password" {
			if password, ok := fe.Value().(string); ok {
				fields.Add(name, PasswordViolations(password)...)
				continue
			}
		}
		fields.Add(name, fe.Tag())
	}
	return fields
}

// ValidateStruct runs struct validation and returns domain.FieldErrors on failure.
func ValidateStruct(v *validator.Validate, value any) error {
	if err := v.Struct(value); err != nil {
		return ToFieldErrors(err)
	}
	return nil
}

// fieldName reports request fields by their wire name (json, then query, then form tag).
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}
