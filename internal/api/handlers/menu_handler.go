package handlers

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/presenters"
	"Meal-Planner-Backend/internal/utils"
	"Meal-Planner-Backend/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		CreateMenu(c *fiber.Ctx) error
		GetMenus(c *fiber.Ctx) error
		FetchMenu(c *fiber.Ctx) error
		UpdateMeal(c *fiber.Ctx) error
		DeleteMenu(c *fiber.Ctx) error
		ExtendMenu(c *fiber.Ctx) error
		ShareMenu(c *fiber.Ctx) error
		UnshareMenu(c *fiber.Ctx) error
		CheckShare(c *fiber.Ctx) error
		ShareMenuByEmail(c *fiber.Ctx) error
		GetSharedMenu(c *fiber.Ctx) error
		CopySharedMenu(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) CreateMenu(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	req := new(domain.CreateMenuRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}

	res, err := h.menuService.Create(c.UserContext(), identity, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenu)
}

func (h *menuHandler) GetMenus(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	res, err := h.menuService.List(c.UserContext(), identity)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetMenus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenus)
}

func (h *menuHandler) FetchMenu(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	res, err := h.menuService.FetchSlots(c.UserContext(), identity, c.Query("menuId"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenuMeals, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuMeals)
}

func (h *menuHandler) UpdateMeal(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	req := new(domain.UpdateMealRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMeal, err)
	}

	if err := h.menuService.UpdateMeal(c.UserContext(), identity, *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMeal, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateMeal)
}

func (h *menuHandler) DeleteMenu(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	if err := h.menuService.Delete(c.UserContext(), identity, c.Query("menuId")); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMenu, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenu)
}

func (h *menuHandler) ExtendMenu(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	req := new(domain.ExtendMenuRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExtendMenu, err)
	}

	res, err := h.menuService.Extend(c.UserContext(), identity, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExtendMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessExtendMenu)
}

func (h *menuHandler) parseMenuID(c *fiber.Ctx, message string) (*domain.MenuIDRequest, error) {
	req := new(domain.MenuIDRequest)
	if err := c.BodyParser(req); err != nil {
		return nil, presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return nil, presenters.ErrorResponse(c, fiber.StatusBadRequest, message, err)
	}
	return req, nil
}

func (h *menuHandler) ShareMenu(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}
	req, err := h.parseMenuID(c, domain.MessageFailedShareMenu)
	if req == nil {
		return err
	}

	res, err := h.menuService.Share(c.UserContext(), identity, req.MenuID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShareMenu)
}

func (h *menuHandler) UnshareMenu(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}
	req, err := h.parseMenuID(c, domain.MessageFailedUnshareMenu)
	if req == nil {
		return err
	}

	if err := h.menuService.Unshare(c.UserContext(), identity, req.MenuID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUnshareMenu, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnshareMenu)
}

func (h *menuHandler) CheckShare(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	res, err := h.menuService.ShareStatus(c.UserContext(), identity, c.Params("menuId"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareStatus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShareStatus)
}

func (h *menuHandler) ShareMenuByEmail(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	req := new(domain.ShareEmailRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareEmail, err)
	}

	res, err := h.menuService.ShareByEmail(c.UserContext(), identity, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareEmail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShareEmail)
}

// GetSharedMenu is public; the share token in the path is the only credential.
func (h *menuHandler) GetSharedMenu(c *fiber.Ctx) error {
	res, err := h.menuService.FetchShared(c.UserContext(), c.Params("token"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetShared, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShared)
}

func (h *menuHandler) CopySharedMenu(c *fiber.Ctx) error {
	identity, ok, err := identityOrAbort(c)
	if !ok {
		return err
	}

	req := new(domain.CopySharedRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCopyShared, err)
	}

	res, err := h.menuService.CopyShared(c.UserContext(), identity, req.Token)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCopyShared, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCopyShared)
}
