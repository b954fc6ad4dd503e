package controller

import (
	"agency-site-be/internal/dto"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/pkg/serverutils"
	"agency-site-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	UpsertPost(ctx *fiber.Ctx) error
	DeletePost(ctx *fiber.Ctx) error
	UpsertJob(ctx *fiber.Ctx) error
	DeleteJob(ctx *fiber.Ctx) error
	ListLeads(ctx *fiber.Ctx) error
	PutGlobal(ctx *fiber.Ctx) error
	PatchGlobal(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	authService   service.IAuthService
	postService   service.IPostService
	jobService    service.IJobService
	leadService   service.ILeadService
	globalService service.IGlobalService
	logReader     logger.LogReader
}

func NewAdminController(
	authService service.IAuthService,
	postService service.IPostService,
	jobService service.IJobService,
	leadService service.ILeadService,
	globalService service.IGlobalService,
	logReader logger.LogReader,
) IAdminController {
	return &adminController{
		authService:   authService,
		postService:   postService,
		jobService:    jobService,
		leadService:   leadService,
		globalService: globalService,
		logReader:     logReader,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")

	h.Post("/login", c.Login)

	h.Use(serverutils.JwtMiddleware)
	h.Put("/posts/:slug", c.UpsertPost)
	h.Delete("/posts/:slug", c.DeletePost)
	h.Put("/jobs/:slug", c.UpsertJob)
	h.Delete("/jobs/:slug", c.DeleteJob)
	h.Get("/leads", c.ListLeads)
	h.Put("/globals/:key", c.PutGlobal)
	h.Patch("/globals/:key", c.PatchGlobal)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) UpsertPost(ctx *fiber.Ctx) error {
	var req dto.UpsertPostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Slug = ctx.Params("slug")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Upsert(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(upsertStatus(res)).JSON(serverutils.SuccessResponse("Success save post", res))
}

func (c *adminController) DeletePost(ctx *fiber.Ctx) error {
	if err := c.postService.Delete(ctx.UserContext(), ctx.Params("slug")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete post", nil))
}

func (c *adminController) UpsertJob(ctx *fiber.Ctx) error {
	var req dto.UpsertJobRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Slug = ctx.Params("slug")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.jobService.Upsert(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(upsertStatus(res)).JSON(serverutils.SuccessResponse("Success save job", res))
}

func (c *adminController) DeleteJob(ctx *fiber.Ctx) error {
	if err := c.jobService.Delete(ctx.UserContext(), ctx.Params("slug")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete job", nil))
}

func (c *adminController) ListLeads(ctx *fiber.Ctx) error {
	var query dto.LeadListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	items, total, err := c.leadService.List(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	page, limit := pageParams(query.Page, query.Limit)
	return ctx.JSON(serverutils.SuccessResponse("Success list leads", serverutils.PaginatedResponse[*dto.LeadResponse]{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (c *adminController) PutGlobal(ctx *fiber.Ctx) error {
	var req dto.PutGlobalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Key = ctx.Params("key")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.globalService.Put(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save global", res))
}

// PatchGlobal takes the merge patch as the raw body (application/merge-patch+json).
func (c *adminController) PatchGlobal(ctx *fiber.Ctx) error {
	req := dto.PatchGlobalRequest{
		Key:   ctx.Params("key"),
		Patch: append([]byte(nil), ctx.Body()...),
	}

	res, err := c.globalService.Patch(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success patch global", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var query dto.LogQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}
	if query.Limit == 0 {
		query.Limit = 50
	}

	logs, err := c.logReader.GetLogs(query.Level, query.Limit, query.Offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func upsertStatus(res *dto.UpsertResponse) int {
	if res.Created {
		return fiber.StatusCreated
	}
	return fiber.StatusOK
}
