package menu

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/internal/utils"
	"Meal-Planner-Backend/internal/utils/mailing"
	"Meal-Planner-Backend/pkg/user"
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	MenuService interface {
		Create(ctx context.Context, identity domain.Identity, req domain.CreateMenuRequest) (domain.MenuSummary, error)
		List(ctx context.Context, identity domain.Identity) ([]domain.MenuSummary, error)
		FetchSlots(ctx context.Context, identity domain.Identity, menuID string) ([]domain.MealSlot, error)
		UpdateMeal(ctx context.Context, identity domain.Identity, req domain.UpdateMealRequest) error
		Extend(ctx context.Context, identity domain.Identity, req domain.ExtendMenuRequest) (domain.ExtendMenuResponse, error)
		Delete(ctx context.Context, identity domain.Identity, menuID string) error

		Share(ctx context.Context, identity domain.Identity, menuID string) (domain.ShareMenuResponse, error)
		Unshare(ctx context.Context, identity domain.Identity, menuID string) error
		ShareStatus(ctx context.Context, identity domain.Identity, menuID string) (domain.ShareStatusResponse, error)
		ShareByEmail(ctx context.Context, identity domain.Identity, req domain.ShareEmailRequest) (domain.ShareMenuResponse, error)
		FetchShared(ctx context.Context, token string) (domain.SharedMenuResponse, error)
		CopyShared(ctx context.Context, identity domain.Identity, token string) (domain.CopySharedResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
		userService    user.UserService
		mailer         mailing.Mailer
		appURL         string
	}
)

func NewMenuService(menuRepository MenuRepository, userService user.UserService, mailer mailing.Mailer, appURL string) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		userService:    userService,
		mailer:         mailer,
		appURL:         appURL,
	}
}

// internal passes domain errors through and hides everything else behind ErrInternal.
func internal(op string, err error) error {
	if domain.KindOf(err) != nil {
		return err
	}
	log.Errorw("menu "+op+" failed", "error", err)
	return fmt.Errorf("%w: %s", domain.ErrInternal, op)
}

func (s *menuService) owner(ctx context.Context, identity domain.Identity, menuID string) (uuid.UUID, uuid.UUID, error) {
	id, err := domain.ParseID(menuID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return id, userID, nil
}

func (s *menuService) loadOwned(ctx context.Context, repo MenuRepository, menuID, userID uuid.UUID, forUpdate bool) (*entities.MealPlan, error) {
	plan, err := repo.GetMenuByOwner(ctx, menuID, userID, forUpdate)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *menuService) Create(ctx context.Context, identity domain.Identity, req domain.CreateMenuRequest) (domain.MenuSummary, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.MenuSummary{}, domain.ErrMenuNameRequired
	}
	if req.DayCount < domain.MinMenuDays || req.DayCount > domain.MaxMenuDays {
		return domain.MenuSummary{}, domain.ErrInvalidDayCount
	}

	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return domain.MenuSummary{}, err
	}

	plan := &entities.MealPlan{
		UserID:   userID,
		Name:     name,
		DayCount: req.DayCount,
	}
	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		return repo.CreateMenu(ctx, plan)
	})
	if err != nil {
		return domain.MenuSummary{}, internal("create", err)
	}
	return toMenuSummary(plan), nil
}

func (s *menuService) List(ctx context.Context, identity domain.Identity) ([]domain.MenuSummary, error) {
	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return nil, err
	}

	plans, err := s.menuRepository.GetMenusByUser(ctx, userID)
	if err != nil {
		return nil, internal("list", err)
	}

	result := make([]domain.MenuSummary, 0, len(plans))
	for _, plan := range plans {
		result = append(result, toMenuSummary(plan))
	}
	return result, nil
}

func (s *menuService) FetchSlots(ctx context.Context, identity domain.Identity, menuID string) ([]domain.MealSlot, error) {
	id, userID, err := s.owner(ctx, identity, menuID)
	if err != nil {
		return nil, err
	}

	if _, err := s.loadOwned(ctx, s.menuRepository, id, userID, false); err != nil {
		return nil, internal("fetch slots", err)
	}
	slots, err := s.menuRepository.GetSlots(ctx, id)
	if err != nil {
		return nil, internal("fetch slots", err)
	}
	return toMealSlots(slots), nil
}

// UpdateMeal sets or clears one slot. A nil or blank recipe id removes the row, so an empty slot is always absent.
func (s *menuService) UpdateMeal(ctx context.Context, identity domain.Identity, req domain.UpdateMealRequest) error {
	if !domain.IsValidMealType(req.MealType) {
		return domain.ErrInvalidMealType
	}
	if req.DayIndex == nil || *req.DayIndex < 0 {
		return domain.ErrDayIndexOutOfRange
	}
	dayIndex := *req.DayIndex

	id, userID, err := s.owner(ctx, identity, req.MenuID)
	if err != nil {
		return err
	}

	recipeID := ""
	if req.RecipeID != nil {
		recipeID = strings.TrimSpace(*req.RecipeID)
	}

	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		plan, err := s.loadOwned(ctx, repo, id, userID, true)
		if err != nil {
			return err
		}
		if dayIndex >= plan.DayCount {
			return domain.ErrDayIndexOutOfRange
		}

		if recipeID == "" {
			return repo.DeleteSlot(ctx, plan.ID, dayIndex, req.MealType)
		}
		return repo.UpsertSlot(ctx, &entities.MealSlot{
			MealPlanID: plan.ID,
			DayIndex:   dayIndex,
			MealType:   req.MealType,
			RecipeID:   recipeID,
		})
	})
	if err != nil {
		return internal("update meal", err)
	}
	return nil
}

func (s *menuService) Extend(ctx context.Context, identity domain.Identity, req domain.ExtendMenuRequest) (domain.ExtendMenuResponse, error) {
	if req.AdditionalDays <= 0 {
		return domain.ExtendMenuResponse{}, domain.ErrInvalidExtension
	}
	id, userID, err := s.owner(ctx, identity, req.MenuID)
	if err != nil {
		return domain.ExtendMenuResponse{}, err
	}

	var dayCount int
	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		updated, err := repo.IncrementDayCount(ctx, id, userID, req.AdditionalDays)
		if err != nil {
			return err
		}
		if !updated {
			return domain.ErrMenuNotFound
		}
		plan, err := s.loadOwned(ctx, repo, id, userID, false)
		if err != nil {
			return err
		}
		dayCount = plan.DayCount
		return nil
	})
	if err != nil {
		return domain.ExtendMenuResponse{}, internal("extend", err)
	}
	return domain.ExtendMenuResponse{DayCount: dayCount}, nil
}

func (s *menuService) Delete(ctx context.Context, identity domain.Identity, menuID string) error {
	id, userID, err := s.owner(ctx, identity, menuID)
	if err != nil {
		return err
	}

	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		plan, err := s.loadOwned(ctx, repo, id, userID, true)
		if err != nil {
			return err
		}
		return repo.DeleteMenu(ctx, plan.ID)
	})
	if err != nil {
		return internal("delete", err)
	}
	return nil
}

// Share issues a fresh token on every call; the previous link stops working.
func (s *menuService) Share(ctx context.Context, identity domain.Identity, menuID string) (domain.ShareMenuResponse, error) {
	id, userID, err := s.owner(ctx, identity, menuID)
	if err != nil {
		return domain.ShareMenuResponse{}, err
	}

	token, err := s.issueToken(ctx, id, userID)
	if err != nil {
		return domain.ShareMenuResponse{}, err
	}
	return domain.ShareMenuResponse{Token: token}, nil
}

func (s *menuService) issueToken(ctx context.Context, menuID, userID uuid.UUID) (string, error) {
	token, err := utils.NewShareToken()
	if err != nil {
		return "", internal("generate share token", err)
	}

	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		updated, err := repo.SetShareToken(ctx, menuID, userID, &token)
		if err != nil {
			return err
		}
		if !updated {
			return domain.ErrMenuNotFound
		}
		return nil
	})
	if err != nil {
		return "", internal("share", err)
	}
	return token, nil
}

func (s *menuService) Unshare(ctx context.Context, identity domain.Identity, menuID string) error {
	id, userID, err := s.owner(ctx, identity, menuID)
	if err != nil {
		return err
	}

	updated, err := s.menuRepository.SetShareToken(ctx, id, userID, nil)
	if err != nil {
		return internal("unshare", err)
	}
	if !updated {
		return domain.ErrMenuNotFound
	}
	return nil
}

func (s *menuService) ShareStatus(ctx context.Context, identity domain.Identity, menuID string) (domain.ShareStatusResponse, error) {
	id, userID, err := s.owner(ctx, identity, menuID)
	if err != nil {
		return domain.ShareStatusResponse{}, err
	}

	plan, err := s.loadOwned(ctx, s.menuRepository, id, userID, false)
	if err != nil {
		return domain.ShareStatusResponse{}, internal("share status", err)
	}
	return domain.ShareStatusResponse{
		Name:     plan.Name,
		DayCount: plan.DayCount,
		Token:    plan.ShareToken,
	}, nil
}

// ShareByEmail mails the public link, reusing the current token when the plan is already shared.
func (s *menuService) ShareByEmail(ctx context.Context, identity domain.Identity, req domain.ShareEmailRequest) (domain.ShareMenuResponse, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return domain.ShareMenuResponse{}, domain.ErrShareMailNotEnabled
	}
	id, userID, err := s.owner(ctx, identity, req.MenuID)
	if err != nil {
		return domain.ShareMenuResponse{}, err
	}

	plan, err := s.loadOwned(ctx, s.menuRepository, id, userID, false)
	if err != nil {
		return domain.ShareMenuResponse{}, internal("share by email", err)
	}

	token := ""
	if plan.ShareToken != nil && *plan.ShareToken != "" {
		token = *plan.ShareToken
	} else if token, err = s.issueToken(ctx, id, userID); err != nil {
		return domain.ShareMenuResponse{}, err
	}

	link := mailing.SharedMenuLink(s.appURL, token)
	subject := fmt.Sprintf("Meal plan shared with you: %s", plan.Name)
	if err := s.mailer.SendMail(strings.TrimSpace(req.Email), subject, mailing.SharedMenuBody(plan.Name, link)); err != nil {
		log.Errorw("share mail failed", "menu_id", id, "error", err)
		return domain.ShareMenuResponse{}, fmt.Errorf("%w: sending share mail", domain.ErrUpstream)
	}
	return domain.ShareMenuResponse{Token: token}, nil
}

// FetchShared is the anonymous read path: the token alone grants access.
func (s *menuService) FetchShared(ctx context.Context, token string) (domain.SharedMenuResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.SharedMenuResponse{}, domain.ErrSharedMenuNotFound
	}

	plan, err := s.menuRepository.GetMenuByShareToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return domain.SharedMenuResponse{}, domain.ErrSharedMenuNotFound
		}
		return domain.SharedMenuResponse{}, internal("fetch shared", err)
	}
	slots, err := s.menuRepository.GetSlots(ctx, plan.ID)
	if err != nil {
		return domain.SharedMenuResponse{}, internal("fetch shared", err)
	}

	return domain.SharedMenuResponse{
		Menu:  toMenuSummary(plan),
		Meals: toMealSlots(slots),
	}, nil
}

func (s *menuService) CopyShared(ctx context.Context, identity domain.Identity, token string) (domain.CopySharedResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.CopySharedResponse{}, domain.ErrShareTokenMissing
	}
	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return domain.CopySharedResponse{}, err
	}

	var copyID uuid.UUID
	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		source, err := repo.GetMenuByShareToken(ctx, token)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrSharedMenuNotFound
			}
			return err
		}

		plan := &entities.MealPlan{
			UserID:   userID,
			Name:     domain.CopyNamePrefix + source.Name,
			DayCount: source.DayCount,
		}
		if err := repo.CreateMenu(ctx, plan); err != nil {
			return err
		}

		sourceSlots, err := repo.GetSlots(ctx, source.ID)
		if err != nil {
			return err
		}
		slots := make([]*entities.MealSlot, 0, len(sourceSlots))
		for _, slot := range sourceSlots {
			slots = append(slots, &entities.MealSlot{
				MealPlanID: plan.ID,
				DayIndex:   slot.DayIndex,
				MealType:   slot.MealType,
				RecipeID:   slot.RecipeID,
			})
		}
		if err := repo.CreateSlots(ctx, slots); err != nil {
			return err
		}

		copyID = plan.ID
		return nil
	})
	if err != nil {
		return domain.CopySharedResponse{}, internal("copy shared", err)
	}
	return domain.CopySharedResponse{MenuID: copyID.String()}, nil
}

func toMenuSummary(plan *entities.MealPlan) domain.MenuSummary {
	return domain.MenuSummary{
		ID:       plan.ID.String(),
		Name:     plan.Name,
		DayCount: plan.DayCount,
	}
}

func toMealSlots(slots []*entities.MealSlot) []domain.MealSlot {
	result := make([]domain.MealSlot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, domain.MealSlot{
			RecipeID: slot.RecipeID,
			DayIndex: slot.DayIndex,
			MealType: slot.MealType,
		})
	}
	return result
}
