package controller

import (
	"errors"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/serverutils"
	"github.com/Fordjour12/monthly-zen-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GetDraft(ctx *fiber.Ctx) error
	GetLatestDraft(ctx *fiber.Ctx) error
	DeleteDraft(ctx *fiber.Ctx) error
	GetJob(ctx *fiber.Ctx) error
	GetLatestJob(ctx *fiber.Ctx) error
}

type planController struct {
	generationService service.GenerationService
	draftService      service.DraftService
	jobService        service.GenerationJobService
}

func NewPlanController(
	generationService service.GenerationService,
	draftService service.DraftService,
	jobService service.GenerationJobService,
) IPlanController {
	return &planController{
		generationService: generationService,
		draftService:      draftService,
		jobService:        jobService,
	}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plans/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate", c.Generate)
	h.Get("/drafts/latest", c.GetLatestDraft)
	h.Get("/drafts/:draftKey", c.GetDraft)
	h.Delete("/drafts/:draftKey", c.DeleteDraft)
	h.Get("/jobs/latest", c.GetLatestJob)
	h.Get("/jobs/:id", c.GetJob)
}

func (c *planController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GeneratePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.StartGeneration(ctx.Context(), userId, &req)
	if err != nil {
		var exceeded *dto.QuotaExceededError
		if errors.As(err, &exceeded) {
			return fiber.NewError(fiber.StatusTooManyRequests, exceeded.Error())
		}
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Plan generation queued", res))
}

func (c *planController) GetDraft(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	draftKey := ctx.Params("draftKey")

	res, err := c.draftService.GetDraft(ctx.Context(), userId, draftKey)
	if err != nil {
		return err
	}
	if res == nil {
		// Expired drafts are indistinguishable from missing ones.
		return fiber.NewError(fiber.StatusNotFound, "draft not found or expired")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get draft", res))
}

func (c *planController) GetLatestDraft(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.draftService.GetLatestDraft(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no live draft found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get latest draft", res))
}

func (c *planController) DeleteDraft(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	draftKey := ctx.Params("draftKey")

	if err := c.draftService.DeleteDraft(ctx.Context(), userId, draftKey); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete draft", nil))
}

func (c *planController) GetJob(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	jobId, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid job id")
	}

	res, err := c.jobService.GetJobForUser(ctx.Context(), userId, jobId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "job not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get job", res))
}

func (c *planController) GetLatestJob(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.jobService.GetLatestJobByUser(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no generation job found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get latest job", res))
}
