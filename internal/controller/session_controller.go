package controller

import (
	"strconv"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/pkg/autosave"
	"ai-thinkspace-be/internal/pkg/serverutils"
	"ai-thinkspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	UpdateStep(ctx *fiber.Ctx) error
	FlushSteps(ctx *fiber.Ctx) error
	SetLens(ctx *fiber.Ctx) error
	SetSentence(ctx *fiber.Ctx) error
	ToggleLock(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	coalescer      *autosave.Coalescer
}

func NewSessionController(sessionService service.ISessionService, coalescer *autosave.Coalescer) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		coalescer:      coalescer,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Put(":id/steps/:stepNumber", c.UpdateStep)
	h.Post(":id/steps/flush", c.FlushSteps)
	h.Put(":id/lens", c.SetLens)
	h.Put(":id/sentence", c.SetSentence)
	h.Post(":id/lock", c.ToggleLock)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.sessionService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.sessionService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

// UpdateStep queues the write through the autosave coalescer instead of
// hitting the database directly: rapid keystroke saves collapse into one
// write after the quiet interval. Ownership is checked once here.
func (c *sessionController) UpdateStep(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	stepNumber, err := strconv.Atoi(ctx.Params("stepNumber"))
	if err != nil || stepNumber < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid step number")
	}

	var req dto.UpdateStepRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	ok, err := c.sessionService.Exists(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if !ok {
		return ctx.JSON(serverutils.SuccessResponse[any]("Success queue step write", nil))
	}

	c.coalescer.Queue(id, stepNumber, req.Content)

	return ctx.JSON(serverutils.SuccessResponse("Success queue step write", &dto.UpdateStepResponse{
		Id:         id,
		StepNumber: stepNumber,
		Queued:     true,
	}))
}

// FlushSteps forces every pending write for the session; the client calls it
// on navigation so nothing is lost between debounce intervals.
func (c *sessionController) FlushSteps(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	ok, err := c.sessionService.Exists(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if ok {
		c.coalescer.FlushSession(id)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success flush step writes", nil))
}

func (c *sessionController) SetLens(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.SetLensRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.SetLens(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set thinking lens", res))
}

func (c *sessionController) SetSentence(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.SetSentenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.SetSentence(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set sentence of truth", res))
}

func (c *sessionController) ToggleLock(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.sessionService.ToggleLock(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle sentence lock", res))
}
