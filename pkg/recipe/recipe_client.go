package recipe

import (
	"Meal-Planner-Backend/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sethvargo/go-retry"
)

type (
	RecipeClient interface {
		Search(ctx context.Context, query string, maxResults, pageNumber int) (domain.RecipeSearchResponse, error)
		GetRecipe(ctx context.Context, recipeID string) (domain.Recipe, error)
	}

	ClientConfig struct {
		BaseURL     string
		Timeout     time.Duration
		MaxRetries  uint64
		BackoffBase time.Duration
	}

	recipeClient struct {
		config     ClientConfig
		httpClient *http.Client
		tokens     AccessTokenSource
	}
)

var errTokenRejected = errors.New("provider rejected access token")

func NewRecipeClient(config ClientConfig, tokens AccessTokenSource) RecipeClient {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.BackoffBase <= 0 {
		config.BackoffBase = 200 * time.Millisecond
	}
	return &recipeClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		tokens:     tokens,
	}
}

func (c *recipeClient) Search(ctx context.Context, query string, maxResults, pageNumber int) (domain.RecipeSearchResponse, error) {
	params := url.Values{}
	params.Set("search_expression", query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("page_number", strconv.Itoa(pageNumber))

	var envelope searchEnvelope
	if err := c.get(ctx, "/recipes/search/v3", params, &envelope); err != nil {
		return domain.RecipeSearchResponse{}, err
	}

	recipes := make([]domain.RecipeSummary, 0, len(envelope.Recipes.Recipe))
	for _, r := range envelope.Recipes.Recipe {
		recipes = append(recipes, domain.RecipeSummary{
			ID:          string(r.ID),
			Name:        r.Name,
			Description: r.Description,
			ImageURL:    r.Image,
		})
	}

	return domain.RecipeSearchResponse{
		Recipes:      recipes,
		TotalResults: int(envelope.Recipes.TotalResults),
		PageNumber:   int(envelope.Recipes.PageNumber),
		MaxResults:   int(envelope.Recipes.MaxResults),
	}, nil
}

func (c *recipeClient) GetRecipe(ctx context.Context, recipeID string) (domain.Recipe, error) {
	params := url.Values{}
	params.Set("recipe_id", recipeID)

	var envelope detailEnvelope
	if err := c.get(ctx, "/recipe/v2", params, &envelope); err != nil {
		return domain.Recipe{}, err
	}
	if envelope.Recipe == nil {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}

	r := envelope.Recipe
	recipe := domain.Recipe{
		ID:          string(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Ingredients: make([]string, 0, len(r.Ingredients.Ingredient)),
	}
	if len(r.Images.Image) > 0 {
		recipe.ImageURL = r.Images.Image[0]
	}
	for _, ingredient := range r.Ingredients.Ingredient {
		recipe.Ingredients = append(recipe.Ingredients, ingredient.Description)
	}

	steps := make([]string, 0, len(r.Directions.Direction))
	for _, direction := range r.Directions.Direction {
		if direction.Number > 0 {
			steps = append(steps, fmt.Sprintf("%d. %s", direction.Number, direction.Description))
		} else {
			steps = append(steps, direction.Description)
		}
	}
	recipe.Instructions = strings.Join(steps, "\n")

	return recipe, nil
}

// get performs one provider call with bounded retries. Network errors, 429 and 5xx are retried;
// a rejected token is refreshed once.
func (c *recipeClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("format", "json")
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path + "?" + params.Encode()

	call := func() error {
		backoff := retry.WithMaxRetries(c.config.MaxRetries, retry.NewExponential(c.config.BackoffBase))
		return retry.Do(ctx, backoff, func(ctx context.Context) error {
			return c.do(ctx, endpoint, out)
		})
	}

	err := call()
	// the token refresh does not count against the retry budget
	if errors.Is(err, errTokenRejected) {
		c.tokens.Invalidate()
		err = call()
	}
	if err == nil {
		return nil
	}

	if kind := domain.KindOf(err); kind != nil {
		return err
	}
	log.Errorw("recipe provider call failed", "path", path, "error", err)
	if errors.Is(err, errTokenRejected) {
		return domain.ErrRecipeProviderAuth
	}
	return domain.ErrRecipeProvider
}

func (c *recipeClient) do(ctx context.Context, endpoint string, out any) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		log.Errorw("recipe provider token request failed", "error", err)
		return domain.ErrRecipeProviderAuth
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warnw("recipe provider unreachable, retrying", "error", err)
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return retry.RetryableError(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errTokenRejected
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		log.Warnw("recipe provider transient failure, retrying", "status", resp.StatusCode)
		return retry.RetryableError(fmt.Errorf("provider status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("provider status %d", resp.StatusCode)
	}

	var perr providerError
	if err := json.Unmarshal(body, &perr); err == nil && perr.Error != nil {
		switch perr.Error.Code {
		case providerCodeInvalidID:
			return domain.ErrRecipeNotFound
		case providerCodeInvalidToken, providerCodeTokenExpired:
			return errTokenRejected
		default:
			return fmt.Errorf("provider error %d: %s", perr.Error.Code, perr.Error.Message)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}
