package controller

import (
	"github.com/gofiber/fiber/v2"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/pkg/serverutils"
	"rag-assistant-be/pkg/eval"
)

type IEvalController interface {
	RegisterRoutes(r fiber.Router)
	Evaluate(ctx *fiber.Ctx) error
}

type evalController struct {
	evaluator *eval.Evaluator
}

func NewEvalController(evaluator *eval.Evaluator) IEvalController {
	return &evalController{
		evaluator: evaluator,
	}
}

func (c *evalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/eval/v1")
	h.Post("", c.Evaluate)
}

func (c *evalController) Evaluate(ctx *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	report, err := c.evaluator.Evaluate(ctx.Context(), req.Samples, req.Mode)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run evaluation", report))
}
