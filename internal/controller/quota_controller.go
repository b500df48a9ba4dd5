package controller

import (
	"errors"
	"strconv"

	"github.com/Fordjour12/monthly-zen-sub002/internal/dto"
	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/serverutils"
	"github.com/Fordjour12/monthly-zen-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQuotaController interface {
	RegisterRoutes(r fiber.Router)
	GetCurrent(ctx *fiber.Ctx) error
	Initialize(ctx *fiber.Ctx) error
	Request(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type quotaController struct {
	service service.QuotaService
}

func NewQuotaController(service service.QuotaService) IQuotaController {
	return &quotaController{service: service}
}

func (c *quotaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/quota/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/current", c.GetCurrent)
	h.Post("/initialize", c.Initialize)
	h.Post("/request", c.Request)
	h.Get("/history", c.GetHistory)
}

func (c *quotaController) GetCurrent(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetCurrentStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no quota period found, call initialize first")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current quota", res))
}

func (c *quotaController) Initialize(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.InitializePeriod(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success initialize quota period", res))
}

func (c *quotaController) Request(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RequestTokensRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RequestTokens(ctx.Context(), userId, req.Amount)
	if err != nil {
		var exceeded *dto.QuotaExceededError
		if errors.As(err, &exceeded) {
			resp := serverutils.ErrorResponse(fiber.StatusTooManyRequests, "quota exceeded")
			resp.Data = dto.TokenGrantResponse{
				Granted:         false,
				Remaining:       exceeded.Remaining,
				UsagePercentage: exceeded.UsagePercentage,
				Status:          "exceeded",
			}
			return ctx.Status(fiber.StatusTooManyRequests).JSON(resp)
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success request tokens", res))
}

func (c *quotaController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	months, _ := strconv.Atoi(ctx.Query("months", "12"))

	res, err := c.service.GetHistory(ctx.Context(), userId, months)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get quota history", res))
}
