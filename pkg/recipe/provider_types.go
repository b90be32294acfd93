package recipe

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// oneOrMany decodes a JSON value that the provider sends either as a single object or as an array.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*o = nil
		return nil
	}
	if data[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}

	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*o = oneOrMany[T]{one}
	return nil
}

// flexInt accepts 12 and "12".
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	*f = flexInt(value)
	return nil
}

// flexString accepts "91" and 91.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

type (
	providerError struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	searchEnvelope struct {
		Recipes struct {
			MaxResults   flexInt                  `json:"max_results"`
			PageNumber   flexInt                  `json:"page_number"`
			TotalResults flexInt                  `json:"total_results"`
			Recipe       oneOrMany[searchRecipe] `json:"recipe"`
		} `json:"recipes"`
	}

	searchRecipe struct {
		ID          flexString `json:"recipe_id"`
		Name        string     `json:"recipe_name"`
		Description string     `json:"recipe_description"`
		Image       string     `json:"recipe_image"`
	}

	detailEnvelope struct {
		Recipe *struct {
			ID          flexString `json:"recipe_id"`
			Name        string     `json:"recipe_name"`
			Description string     `json:"recipe_description"`
			Images      struct {
				Image oneOrMany[string] `json:"recipe_image"`
			} `json:"recipe_images"`
			Ingredients struct {
				Ingredient oneOrMany[struct {
					Description string `json:"ingredient_description"`
				}] `json:"ingredient"`
			} `json:"ingredients"`
			Directions struct {
				Direction oneOrMany[struct {
					Number      flexInt `json:"direction_number"`
					Description string  `json:"direction_description"`
				}] `json:"direction"`
			} `json:"directions"`
		} `json:"recipe"`
	}
)

// Provider error codes that matter to the gateway.
const (
	providerCodeInvalidToken = 13
	providerCodeTokenExpired = 14
	providerCodeInvalidID    = 106
)
