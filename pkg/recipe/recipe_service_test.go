package recipe

import (
	"Meal-Planner-Backend/domain"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	search   domain.RecipeSearchResponse
	queries  []string
	recipes  map[string]domain.Recipe
	failOn   string
	searchEr error
}

func (f *fakeClient) Search(_ context.Context, query string, maxResults, page int) (domain.RecipeSearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, fmt.Sprintf("%s|%d|%d", query, maxResults, page))
	return f.search, f.searchEr
}

func (f *fakeClient) GetRecipe(_ context.Context, id string) (domain.Recipe, error) {
	if id == f.failOn {
		return domain.Recipe{}, domain.ErrRecipeProvider
	}
	recipe, ok := f.recipes[id]
	if !ok {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func TestParseRecipeIDs(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, ParseRecipeIDs(" 1,2,,3 ,2"))
	assert.Empty(t, ParseRecipeIDs(""))
}

func TestSearch_NormalisesPaging(t *testing.T) {
	client := &fakeClient{}
	svc := NewRecipeService(client)
	ctx := context.Background()

	_, err := svc.Search(ctx, domain.RecipeSearchRequest{Query: "  "})
	assert.ErrorIs(t, err, domain.ErrSearchQueryRequired)

	_, err = svc.Search(ctx, domain.RecipeSearchRequest{Query: " soup "})
	require.NoError(t, err)
	_, err = svc.Search(ctx, domain.RecipeSearchRequest{Query: "soup", MaxResults: 500, PageNumber: -3})
	require.NoError(t, err)

	assert.Equal(t, []string{"soup|10|0", "soup|50|0"}, client.queries)
}

func TestGetRecipes_KeepsOrderAndSkipsMissing(t *testing.T) {
	client := &fakeClient{recipes: map[string]domain.Recipe{}}
	ids := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		id := fmt.Sprint(i)
		ids = append(ids, id)
		if i != 5 {
			client.recipes[id] = domain.Recipe{ID: id}
		}
	}
	svc := NewRecipeService(client)

	recipes, err := svc.GetRecipes(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, recipes, 11)
	got := make([]string, 0, len(recipes))
	for _, r := range recipes {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "6", "7", "8", "9", "10", "11", "12"}, got)
}

func TestGetRecipes_Limits(t *testing.T) {
	svc := NewRecipeService(&fakeClient{})
	ctx := context.Background()

	_, err := svc.GetRecipes(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrRecipeIDsRequired)

	many := make([]string, domain.MaxBatchRecipes+1)
	for i := range many {
		many[i] = fmt.Sprint(i)
	}
	_, err = svc.GetRecipes(ctx, many)
	assert.ErrorIs(t, err, domain.ErrTooManyRecipeIDs)
}

func TestGetRecipes_UpstreamFailureFailsBatch(t *testing.T) {
	client := &fakeClient{recipes: map[string]domain.Recipe{"1": {ID: "1"}}, failOn: "2"}
	_, err := NewRecipeService(client).GetRecipes(context.Background(), []string{"1", "2"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGetRandom(t *testing.T) {
	client := &fakeClient{
		search: domain.RecipeSearchResponse{Recipes: []domain.RecipeSummary{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		recipes: map[string]domain.Recipe{
			"b": {ID: "b", Name: "Picked"},
		},
	}
	svc := &recipeService{client: client, intn: func(n int) int { return 1 }}

	recipe, err := svc.GetRandom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Picked", recipe.Name)
	assert.Equal(t, []string{randomSeeds[1] + "|50|0"}, client.queries)
}

func TestGetRandom_NoRecommendation(t *testing.T) {
	svc := &recipeService{client: &fakeClient{}, intn: func(int) int { return 0 }}
	_, err := svc.GetRandom(context.Background())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	svc = &recipeService{client: &fakeClient{searchEr: domain.ErrRecipeProvider}, intn: func(int) int { return 0 }}
	_, err = svc.GetRandom(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}
