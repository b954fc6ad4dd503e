package controller

import (
	"agency-site-be/internal/dto"
	"agency-site-be/internal/pkg/serverutils"
	"agency-site-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IJobController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type jobController struct {
	jobService service.IJobService
}

func NewJobController(jobService service.IJobService) IJobController {
	return &jobController{
		jobService: jobService,
	}
}

func (c *jobController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/jobs/v1")
	h.Get("", c.List)
	h.Get(":slug", c.Show)
}

func (c *jobController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	items, total, err := c.jobService.List(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	page, limit := pageParams(query.Page, query.Limit)
	return ctx.JSON(serverutils.SuccessResponse("Success list jobs", serverutils.PaginatedResponse[*dto.JobSummary]{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (c *jobController) Show(ctx *fiber.Ctx) error {
	var query dto.ShowQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.jobService.ShowBySlug(ctx.UserContext(), ctx.Params("slug"), query.Format)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show job", res))
}
