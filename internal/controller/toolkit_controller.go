package controller

import (
	"ai-thinkspace-be/internal/pkg/serverutils"
	"ai-thinkspace-be/pkg/toolkit"

	"github.com/gofiber/fiber/v2"
)

// toolkitController serves the static toolkit catalog; no auth needed since
// the definitions carry no user data.
type IToolkitController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetLenses(ctx *fiber.Ctx) error
}

type toolkitController struct{}

func NewToolkitController() IToolkitController {
	return &toolkitController{}
}

func (c *toolkitController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/toolkit/v1")
	h.Get("", c.GetAll)
	h.Get("lenses", c.GetLenses)
}

func (c *toolkitController) GetAll(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get toolkits", toolkit.All()))
}

func (c *toolkitController) GetLenses(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get lenses", toolkit.Lenses()))
}
