package controller

import (
	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/pkg/serverutils"
	"ai-thinkspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISelectionController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Set(ctx *fiber.Ctx) error
}

type selectionController struct {
	selectionService service.ISelectionService
}

func NewSelectionController(selectionService service.ISelectionService) ISelectionController {
	return &selectionController{
		selectionService: selectionService,
	}
}

func (c *selectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/selection/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Get)
	h.Put("", c.Set)
}

func (c *selectionController) Get(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.selectionService.Get(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get selection", res))
}

func (c *selectionController) Set(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SetSelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.selectionService.Set(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set selection", res))
}
