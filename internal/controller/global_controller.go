package controller

import (
	"agency-site-be/internal/dto"
	"agency-site-be/internal/pkg/serverutils"
	"agency-site-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGlobalController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type globalController struct {
	globalService service.IGlobalService
}

func NewGlobalController(globalService service.IGlobalService) IGlobalController {
	return &globalController{
		globalService: globalService,
	}
}

func (c *globalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/globals/v1")
	h.Get(":key", c.Show)
}

func (c *globalController) Show(ctx *fiber.Ctx) error {
	var query dto.ShowQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.globalService.Get(ctx.UserContext(), ctx.Params("key"), query.Format)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show global", res))
}
