package controller

import (
	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/serverutils"
	"agency-site-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRenderController interface {
	RegisterRoutes(r fiber.Router)
	Render(ctx *fiber.Ctx) error
}

type renderController struct {
	renderService service.IRenderService
}

func NewRenderController(renderService service.IRenderService) IRenderController {
	return &renderController{
		renderService: renderService,
	}
}

func (c *renderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/render/v1")
	h.Post("", c.Render)
}

// Render renders a caller-supplied document. The ?format query wins over the body field.
// The route is public, so upload refs are not looked up in the media table.
func (c *renderController) Render(ctx *fiber.Ctx) error {
	var req dto.RenderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if f := ctx.Query("format"); f != "" {
		req.Format = f
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	format := entity.RenderFormat(req.Format)
	if format == "" {
		format = entity.RenderFormatHTML
	}

	res, err := c.renderService.RenderDetached(ctx.UserContext(), req.Document, format)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success render document", res))
}
