package recipe

import (
	"Meal-Planner-Backend/domain"
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

// randomSeeds are broad search terms a random recommendation is drawn from.
var randomSeeds = []string{
	"chicken", "salad", "soup", "pasta", "rice", "beef",
	"egg", "fish", "vegetable", "potato", "cake", "bread",
}

type (
	RecipeService interface {
		Search(ctx context.Context, req domain.RecipeSearchRequest) (domain.RecipeSearchResponse, error)
		GetRecipes(ctx context.Context, ids []string) ([]domain.Recipe, error)
		GetRandom(ctx context.Context) (domain.Recipe, error)
	}

	recipeService struct {
		client RecipeClient
		intn   func(n int) int
	}
)

func NewRecipeService(client RecipeClient) RecipeService {
	return &recipeService{
		client: client,
		intn:   rand.IntN,
	}
}

func (s *recipeService) Search(ctx context.Context, req domain.RecipeSearchRequest) (domain.RecipeSearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return domain.RecipeSearchResponse{}, domain.ErrSearchQueryRequired
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = domain.DefaultSearchResults
	}
	if maxResults > domain.MaxSearchResults {
		maxResults = domain.MaxSearchResults
	}
	page := req.PageNumber
	if page < 0 {
		page = 0
	}

	return s.client.Search(ctx, query, maxResults, page)
}

// ParseRecipeIDs splits a comma separated id list, dropping blanks and duplicates.
func ParseRecipeIDs(raw string) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// GetRecipes fetches details for ids in parallel and returns them in request order.
// Ids the provider no longer knows are left out.
func (s *recipeService) GetRecipes(ctx context.Context, ids []string) ([]domain.Recipe, error) {
	ids = ParseRecipeIDs(strings.Join(ids, ","))
	if len(ids) == 0 {
		return nil, domain.ErrRecipeIDsRequired
	}
	if len(ids) > domain.MaxBatchRecipes {
		return nil, domain.ErrTooManyRecipeIDs
	}

	results := make([]*domain.Recipe, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			recipe, err := s.client.GetRecipe(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrRecipeNotFound) {
					log.Warnw("recipe no longer available", "recipe_id", id)
					return nil
				}
				return err
			}
			results[i] = &recipe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(results))
	for _, recipe := range results {
		if recipe != nil {
			recipes = append(recipes, *recipe)
		}
	}
	return recipes, nil
}

func (s *recipeService) GetRandom(ctx context.Context) (domain.Recipe, error) {
	seed := randomSeeds[s.intn(len(randomSeeds))]
	found, err := s.client.Search(ctx, seed, domain.MaxSearchResults, 0)
	if err != nil {
		return domain.Recipe{}, err
	}
	if len(found.Recipes) == 0 {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}

	pick := found.Recipes[s.intn(len(found.Recipes))]
	return s.client.GetRecipe(ctx, pick.ID)
}
