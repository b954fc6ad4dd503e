package controller

import (
	"agency-site-be/internal/dto"
	"agency-site-be/internal/pkg/serverutils"
	"agency-site-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type postController struct {
	postService service.IPostService
}

func NewPostController(postService service.IPostService) IPostController {
	return &postController{
		postService: postService,
	}
}

func (c *postController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/posts/v1")
	h.Get("", c.List)
	h.Get(":slug", c.Show)
}

func (c *postController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	items, total, err := c.postService.List(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	page, limit := pageParams(query.Page, query.Limit)
	return ctx.JSON(serverutils.SuccessResponse("Success list posts", serverutils.PaginatedResponse[*dto.PostSummary]{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (c *postController) Show(ctx *fiber.Ctx) error {
	var query dto.ShowQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.postService.ShowBySlug(ctx.UserContext(), ctx.Params("slug"), query.Format)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}
