package controller

import (
	"errors"

	"ai-thinkspace-be/internal/pkg/autosave"
	"ai-thinkspace-be/internal/pkg/serverutils"
	"ai-thinkspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
	coalescer         *autosave.Coalescer
}

func NewGenerationController(generationService service.IGenerationService, coalescer *autosave.Coalescer) IGenerationController {
	return &generationController{
		generationService: generationService,
		coalescer:         coalescer,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":id/generate", c.Generate)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	// Pending autosaves must land first so the provider sees the ledger the
	// user sees.
	c.coalescer.FlushSession(id)

	res, err := c.generationService.Generate(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrGenerationInFlight) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse("Generation already in progress for this session", nil))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate outputs", res))
}
